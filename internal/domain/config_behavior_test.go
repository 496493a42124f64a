package domain_test

import (
	"testing"
	"time"

	"github.com/doeshing/termsim/internal/domain"
)

// TestConfig_Defaults tests that zero values fall back to built-in defaults
func TestConfig_Defaults(t *testing.T) {
	var cfg domain.Config

	if got := cfg.GetPromptPrefix(); got != domain.DefaultPromptPrefix {
		t.Errorf("GetPromptPrefix() = %q", got)
	}
	if got := cfg.GetHistoryLimit(); got != domain.DefaultHistoryLimit {
		t.Errorf("GetHistoryLimit() = %d", got)
	}
	if got := cfg.GetProcessLimit(); got != domain.DefaultProcessLimit {
		t.Errorf("GetProcessLimit() = %d", got)
	}
	if got := cfg.GetCPUSampleInterval(); got != domain.DefaultCPUSampleInterval {
		t.Errorf("GetCPUSampleInterval() = %s", got)
	}
	if got := cfg.GetServerAddr(); got != domain.DefaultServerAddr {
		t.Errorf("GetServerAddr() = %q", got)
	}
	if got := cfg.GetHistoryWindow(); got != domain.DefaultHistoryWindow {
		t.Errorf("GetHistoryWindow() = %d", got)
	}
	if got := cfg.GetDefaultSession(); got != domain.DefaultSessionID {
		t.Errorf("GetDefaultSession() = %q", got)
	}
	if got := cfg.GetAuditBackend(); got != domain.AuditBackendSQLite {
		t.Errorf("GetAuditBackend() = %q", got)
	}
	if cfg.IsAuditEnabled() {
		t.Error("audit should be disabled by default")
	}
}

// TestConfig_Overrides tests that explicit values win over defaults
func TestConfig_Overrides(t *testing.T) {
	cfg := domain.Config{
		Shell: domain.ShellSettings{
			PromptPrefix: "lab",
			HistoryLimit: 5,
			ProcessLimit: 7,
			CPUSampleMS:  250,
		},
		Server: domain.ServerSettings{
			Addr:           "127.0.0.1:9000",
			HistoryWindow:  3,
			DefaultSession: "shared",
		},
		Audit: domain.AuditSettings{Enabled: true, Backend: " JSONL ", Path: "/tmp/audit.jsonl"},
	}

	if got := cfg.GetPromptPrefix(); got != "lab" {
		t.Errorf("GetPromptPrefix() = %q", got)
	}
	if got := cfg.GetHistoryLimit(); got != 5 {
		t.Errorf("GetHistoryLimit() = %d", got)
	}
	if got := cfg.GetProcessLimit(); got != 7 {
		t.Errorf("GetProcessLimit() = %d", got)
	}
	if got := cfg.GetCPUSampleInterval(); got != 250*time.Millisecond {
		t.Errorf("GetCPUSampleInterval() = %s", got)
	}
	if got := cfg.GetServerAddr(); got != "127.0.0.1:9000" {
		t.Errorf("GetServerAddr() = %q", got)
	}
	if got := cfg.GetHistoryWindow(); got != 3 {
		t.Errorf("GetHistoryWindow() = %d", got)
	}
	if got := cfg.GetDefaultSession(); got != "shared" {
		t.Errorf("GetDefaultSession() = %q", got)
	}
	if got := cfg.GetAuditBackend(); got != domain.AuditBackendJSONL {
		t.Errorf("GetAuditBackend() = %q", got)
	}
}

// TestConfig_ValidateConsistency tests cross-field validation
func TestConfig_ValidateConsistency(t *testing.T) {
	tests := []struct {
		name      string
		audit     domain.AuditSettings
		wantError bool
	}{
		{
			name:  "disabled audit needs nothing",
			audit: domain.AuditSettings{},
		},
		{
			name:  "enabled sqlite with path",
			audit: domain.AuditSettings{Enabled: true, Backend: "sqlite", Path: "~/.termsim/audit.db"},
		},
		{
			name:      "enabled without path",
			audit:     domain.AuditSettings{Enabled: true, Backend: "jsonl"},
			wantError: true,
		},
		{
			name:      "unknown backend",
			audit:     domain.AuditSettings{Backend: "postgres"},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := domain.Config{Audit: tt.audit}
			err := cfg.ValidateConsistency()
			if tt.wantError && err == nil {
				t.Error("expected error but got none")
			}
			if !tt.wantError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
