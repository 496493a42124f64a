package domain

// Config mirrors ~/.termsim/config.yaml.
type Config struct {
	ConfigFormatVersion string          `yaml:"config_format_version"`
	Shell               ShellSettings   `yaml:"shell"`
	Server              ServerSettings  `yaml:"server"`
	Audit               AuditSettings   `yaml:"audit"`
	Logging             LoggingSettings `yaml:"logging"`
}

// ShellSettings tunes the interpreter.
type ShellSettings struct {
	PromptPrefix string `yaml:"prompt_prefix"`
	HistoryLimit int    `yaml:"history_limit"`
	ProcessLimit int    `yaml:"process_limit"`
	CPUSampleMS  int    `yaml:"cpu_sample_ms"`
}

// ServerSettings configures the HTTP front end.
type ServerSettings struct {
	Addr           string `yaml:"addr"`
	HistoryWindow  int    `yaml:"history_window"`
	DefaultSession string `yaml:"default_session"`
}

// AuditSettings controls the persisted command journal.
type AuditSettings struct {
	Enabled bool   `yaml:"enabled"`
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

// LoggingSettings toggles diagnostic output.
type LoggingSettings struct {
	Verbose bool `yaml:"verbose"`
}
