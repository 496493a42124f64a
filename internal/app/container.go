package app

import (
	"context"
	"os"
	"sync"

	"github.com/doeshing/termsim/internal/application/doctor"
	"github.com/doeshing/termsim/internal/application/interpreter"
	"github.com/doeshing/termsim/internal/domain"
	"github.com/doeshing/termsim/internal/infrastructure/audit"
	"github.com/doeshing/termsim/internal/infrastructure/config"
	"github.com/doeshing/termsim/internal/infrastructure/system"
	"github.com/doeshing/termsim/internal/infrastructure/web"
	"github.com/doeshing/termsim/internal/pkg/logger"
	"github.com/doeshing/termsim/internal/ports"
)

// Container wires up application services with infrastructure adapters.
type Container struct {
	Config         domain.Config
	ConfigProvider ports.ConfigProvider
	ConfigLoader   *config.FileLoader
	Logger         ports.Logger
	Probe          ports.SystemProbe
	DoctorService  *doctor.Service

	auditOnce sync.Once
	audit     ports.AuditRepository
	auditErr  error
}

// BuildContainer constructs the dependency graph. configPath may be empty
// to use the default location.
func BuildContainer(ctx context.Context, configPath string, verbose bool) (*Container, error) {
	cfgLoader := config.NewFileLoader(configPath)
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.NewStd(verbose || cfg.Logging.Verbose)
	probe := system.NewProbe()

	c := &Container{
		Config:         cfg,
		ConfigProvider: cfgLoader,
		ConfigLoader:   cfgLoader,
		Logger:         log,
		Probe:          probe,
	}

	c.DoctorService = &doctor.Service{
		ConfigProvider: cfgLoader,
		Probe:          probe,
	}
	if cfg.IsAuditEnabled() {
		store, err := c.AuditStore()
		if err != nil {
			log.Warn("audit journal unavailable", map[string]interface{}{"error": err.Error()})
		} else {
			c.DoctorService.Audit = store
		}
	}

	return c, nil
}

// AuditStore opens the configured journal on first use.
func (c *Container) AuditStore() (ports.AuditRepository, error) {
	c.auditOnce.Do(func() {
		c.audit, c.auditErr = audit.Open(c.Config)
	})
	return c.audit, c.auditErr
}

// NewInterpreter builds an interpreter for session, journaling its commands
// when audit is enabled.
func (c *Container) NewInterpreter(session string, opts ...interpreter.Option) *interpreter.Interpreter {
	base := []interpreter.Option{
		interpreter.WithProbe(c.Probe),
		interpreter.WithLogger(c.Logger),
		interpreter.WithHistoryLimit(c.Config.GetHistoryLimit()),
		interpreter.WithProcessLimit(c.Config.GetProcessLimit()),
		interpreter.WithCPUSampleInterval(c.Config.GetCPUSampleInterval()),
	}
	if c.Config.IsAuditEnabled() {
		if store, err := c.AuditStore(); err == nil {
			base = append(base, interpreter.WithRecorder(audit.NewRecorder(store, session)))
		}
	}
	return interpreter.New(append(base, opts...)...)
}

// NewWebServer builds the HTTP front end. Every session starts in the
// directory the server was launched from.
func (c *Container) NewWebServer() *web.Server {
	root, err := os.Getwd()
	if err != nil {
		root = "."
	}
	sessions := web.NewSessions(func(session string) *interpreter.Interpreter {
		return c.NewInterpreter(session, interpreter.WithWorkingDirectory(root))
	})
	return web.NewServer(sessions, web.Options{
		HistoryWindow:  c.Config.GetHistoryWindow(),
		DefaultSession: c.Config.GetDefaultSession(),
		Logger:         c.Logger,
	})
}

// Close releases the audit journal, if it was opened.
func (c *Container) Close() error {
	if c.audit != nil {
		return c.audit.Close()
	}
	return nil
}
