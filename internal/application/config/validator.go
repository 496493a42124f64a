package config

import (
	"fmt"
	"net"
	"strings"

	"github.com/doeshing/termsim/internal/domain"
)

// Validate ensures config structure is consistent.
func Validate(cfg domain.Config) error {
	if err := validateShell(cfg.Shell); err != nil {
		return err
	}
	if err := validateServer(cfg.Server); err != nil {
		return err
	}
	return cfg.ValidateConsistency()
}

func validateShell(shell domain.ShellSettings) error {
	if strings.ContainsAny(shell.PromptPrefix, "\r\n") {
		return fmt.Errorf("shell.prompt_prefix must be a single line")
	}
	if shell.HistoryLimit < 0 {
		return fmt.Errorf("shell.history_limit must be >= 0")
	}
	if shell.ProcessLimit < 0 {
		return fmt.Errorf("shell.process_limit must be >= 0")
	}
	if shell.CPUSampleMS < 0 {
		return fmt.Errorf("shell.cpu_sample_ms must be >= 0")
	}
	return nil
}

func validateServer(server domain.ServerSettings) error {
	if server.Addr != "" {
		if _, _, err := net.SplitHostPort(server.Addr); err != nil {
			return fmt.Errorf("server.addr invalid: %w", err)
		}
	}
	if server.HistoryWindow < 0 {
		return fmt.Errorf("server.history_window must be >= 0")
	}
	if strings.TrimSpace(server.DefaultSession) != server.DefaultSession {
		return fmt.Errorf("server.default_session must not have surrounding whitespace")
	}
	return nil
}
