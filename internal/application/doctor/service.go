package doctor

import (
	"context"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"

	configapp "github.com/doeshing/termsim/internal/application/config"
	"github.com/doeshing/termsim/internal/domain"
	"github.com/doeshing/termsim/internal/ports"
)

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Probe          ports.SystemProbe
	Audit          ports.AuditRepository
	// Getwd defaults to os.Getwd.
	Getwd func() (string, error)
}

// Run executes checks and returns a report. The error is non-nil only when
// the configuration cannot be loaded, since later checks depend on it.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	if err := configapp.Validate(cfg); err != nil {
		checks = append(checks, fail("Config file", err.Error()))
	} else {
		checks = append(checks, ok("Config file", fmt.Sprintf("loaded format %s", cfg.ConfigFormatVersion)))
	}

	checks = append(checks, s.probeCheck(), s.auditCheck(cfg), s.workdirCheck())
	return domain.HealthReport{Checks: checks}, nil
}

func (s *Service) probeCheck() domain.HealthCheck {
	if s.Probe == nil {
		return warn("System probe", "not initialized")
	}
	memStats, err := s.Probe.Memory()
	if err != nil {
		return fail("System probe", fmt.Sprintf("memory: %v", err))
	}
	info, err := s.Probe.Platform()
	if err != nil {
		return fail("System probe", fmt.Sprintf("platform: %v", err))
	}
	return ok("System probe", fmt.Sprintf("%s, %s RAM", info.Platform, humanize.IBytes(memStats.Total)))
}

func (s *Service) auditCheck(cfg domain.Config) domain.HealthCheck {
	if !cfg.IsAuditEnabled() {
		return ok("Audit journal", "disabled")
	}
	if s.Audit == nil {
		return warn("Audit journal", "enabled but store not initialized")
	}
	if _, err := s.Audit.Records(1, ""); err != nil {
		return fail("Audit journal", err.Error())
	}
	details := fmt.Sprintf("%s backend at %s", cfg.GetAuditBackend(), s.Audit.Path())
	if info, err := os.Stat(s.Audit.Path()); err == nil {
		details += fmt.Sprintf(" (%s)", humanize.Bytes(uint64(info.Size())))
	}
	return ok("Audit journal", details)
}

func (s *Service) workdirCheck() domain.HealthCheck {
	getwd := s.Getwd
	if getwd == nil {
		getwd = os.Getwd
	}
	wd, err := getwd()
	if err != nil {
		return fail("Working directory", err.Error())
	}
	probe, err := os.CreateTemp(wd, ".termsim-doctor-*")
	if err != nil {
		return warn("Working directory", fmt.Sprintf("%s is read-only", wd))
	}
	name := probe.Name()
	_ = probe.Close()
	_ = os.Remove(name)
	return ok("Working directory", wd)
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
