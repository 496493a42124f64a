package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// FilePermissions is the default permission for files created by touch (rw-r--r--)
	FilePermissions = 0o644
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
)

// Interpreter defaults
const (
	// DefaultHistoryLimit is the number of entries the history command shows
	DefaultHistoryLimit = 20
	// DefaultProcessLimit is the number of processes ps shows
	DefaultProcessLimit = 20
	// DefaultCPUSampleInterval is how long the cpu command samples utilization
	DefaultCPUSampleInterval = time.Second
	// DefaultPromptPrefix is shown before the working directory in the REPL
	DefaultPromptPrefix = "termsim"
)

// Server defaults
const (
	// DefaultServerAddr is the HTTP listen address
	DefaultServerAddr = ":5000"
	// DefaultHistoryWindow is the number of entries GET /api/history returns
	DefaultHistoryWindow = 10
	// DefaultSessionID is used when a request carries no session header
	DefaultSessionID = "default"
	// SessionHeader carries the session key
	SessionHeader = "X-Session-ID"
	// RequestIDHeader echoes the generated request id
	RequestIDHeader = "X-Request-ID"
)

// Audit defaults
const (
	// DefaultAuditListLimit is the default number of journal records to list
	DefaultAuditListLimit = 20
	// MaxAuditAnalysisRecords is the maximum number of records to analyze
	MaxAuditAnalysisRecords = 1000
)

// Time formats
const (
	// TimestampFormat is the standard timestamp format
	TimestampFormat = time.RFC3339
)

// ClearScreenSequence clears the terminal and homes the cursor.
const ClearScreenSequence = "\x1b[2J\x1b[H"

// BytesPerGiB converts byte counts to binary gigabytes.
const BytesPerGiB = 1024 * 1024 * 1024
