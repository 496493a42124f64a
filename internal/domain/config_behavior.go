package domain

import (
	"fmt"
	"strings"
	"time"
)

// Audit backends.
const (
	AuditBackendSQLite = "sqlite"
	AuditBackendJSONL  = "jsonl"
)

// GetPromptPrefix returns the REPL prompt prefix.
func (c *Config) GetPromptPrefix() string {
	if strings.TrimSpace(c.Shell.PromptPrefix) == "" {
		return DefaultPromptPrefix
	}
	return c.Shell.PromptPrefix
}

// GetHistoryLimit returns how many entries the history command prints.
func (c *Config) GetHistoryLimit() int {
	if c.Shell.HistoryLimit <= 0 {
		return DefaultHistoryLimit
	}
	return c.Shell.HistoryLimit
}

// GetProcessLimit returns how many rows ps prints.
func (c *Config) GetProcessLimit() int {
	if c.Shell.ProcessLimit <= 0 {
		return DefaultProcessLimit
	}
	return c.Shell.ProcessLimit
}

// GetCPUSampleInterval returns the blocking window used by the cpu command.
func (c *Config) GetCPUSampleInterval() time.Duration {
	if c.Shell.CPUSampleMS <= 0 {
		return DefaultCPUSampleInterval
	}
	return time.Duration(c.Shell.CPUSampleMS) * time.Millisecond
}

// GetServerAddr returns the HTTP listen address.
func (c *Config) GetServerAddr() string {
	if c.Server.Addr == "" {
		return DefaultServerAddr
	}
	return c.Server.Addr
}

// GetHistoryWindow returns how many entries GET /api/history returns.
func (c *Config) GetHistoryWindow() int {
	if c.Server.HistoryWindow <= 0 {
		return DefaultHistoryWindow
	}
	return c.Server.HistoryWindow
}

// GetDefaultSession returns the session key used when a request omits one.
func (c *Config) GetDefaultSession() string {
	if c.Server.DefaultSession == "" {
		return DefaultSessionID
	}
	return c.Server.DefaultSession
}

// IsAuditEnabled reports whether commands should be journaled.
func (c *Config) IsAuditEnabled() bool {
	return c.Audit.Enabled
}

// GetAuditBackend returns the normalized journal backend name.
func (c *Config) GetAuditBackend() string {
	backend := strings.ToLower(strings.TrimSpace(c.Audit.Backend))
	if backend == "" {
		return AuditBackendSQLite
	}
	return backend
}

// ValidateConsistency checks the internal consistency of the configuration.
func (c *Config) ValidateConsistency() error {
	switch c.GetAuditBackend() {
	case AuditBackendSQLite, AuditBackendJSONL:
	default:
		return fmt.Errorf("audit.backend must be %s|%s, got %s", AuditBackendSQLite, AuditBackendJSONL, c.Audit.Backend)
	}
	if c.Audit.Enabled && strings.TrimSpace(c.Audit.Path) == "" {
		return fmt.Errorf("audit.path must be set when audit is enabled")
	}
	return nil
}
