package commands

// Audit listing defaults
const (
	TopCommandsShown = 5
	TimestampFormat  = "2006-01-02 15:04:05"
)

// Error messages
const (
	ErrDoctorServiceUnavailable = "doctor service unavailable"
	ErrKeyRequired              = "--key is required"
)

// Success messages
const (
	MsgConfigurationValid       = "Configuration valid"
	MsgNoDifferencesFromDefault = "No differences from default configuration."
	MsgNoAuditRecorded          = "No commands journaled yet."
	MsgAuditCleared             = "Audit journal cleared."
	MsgAuditDisabledHint        = "Audit is disabled; enable it with `termsim config set audit.enabled true`."
)
