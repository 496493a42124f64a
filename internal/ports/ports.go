// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// The interpreter core depends only on these abstractions. Host probing,
// persistence and logging live behind them in the infrastructure layer, so
// tests can swap in stubs for failure paths the real OS rarely produces.
package ports

import (
	"context"
	"time"

	"github.com/doeshing/termsim/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.termsim/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// SystemProbe reports host process and metric data.
// CPU blocks for the given interval and cannot be interrupted.
type SystemProbe interface {
	Processes(limit int) ([]domain.ProcessInfo, error)
	CPU(interval time.Duration) (domain.CPUStats, error)
	Memory() (domain.MemoryStats, error)
	Platform() (domain.PlatformInfo, error)
}

// CommandRecorder observes every command the interpreter records.
type CommandRecorder interface {
	Record(entry domain.HistoryEntry, result domain.Result, elapsed time.Duration) error
}

// AuditRepository persists journaled commands.
type AuditRepository interface {
	Save(domain.AuditRecord) error
	Records(limit int, search string) ([]domain.AuditRecord, error)
	Clear() error
	ExportJSON(dest string) error
	Path() string
	Close() error
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stdout, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
