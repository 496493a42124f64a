package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/termsim/assets"
	"github.com/doeshing/termsim/internal/domain"
	"github.com/doeshing/termsim/internal/pkg/filesystem"
	"github.com/doeshing/termsim/internal/ports"
)

// EnvConfigPath overrides the config file location.
const EnvConfigPath = "TERMSIM_CONFIG"

// FileLoader loads YAML configuration from ~/.termsim/config.yaml (overridable via TERMSIM_CONFIG).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader. An empty path uses the default location.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider. A missing file is created from the
// embedded defaults.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.resolvePath()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := defaultConfig()
			if err := writeConfig(path, cfg); err != nil {
				return domain.Config{}, err
			}
			return cfg, nil
		}
		return domain.Config{}, err
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parse %s: %w", path, err)
	}

	return hydrateDefaults(cfg), nil
}

func (l *FileLoader) resolvePath() string {
	if l.overridePath != "" {
		return filesystem.ExpandPath(l.overridePath)
	}
	if custom := os.Getenv(EnvConfigPath); custom != "" {
		return filesystem.ExpandPath(custom)
	}
	return filepath.Join(filesystem.DataDir(), "config.yaml")
}

func ensureConfigDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions)
}

func writeConfig(path string, cfg domain.Config) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, domain.SecureFilePermissions)
}

// Path returns the resolved config file path.
func (l *FileLoader) Path() string {
	return l.resolvePath()
}

// Save writes the given config back to disk.
func (l *FileLoader) Save(cfg domain.Config) error {
	path := l.resolvePath()
	if err := ensureConfigDir(path); err != nil {
		return err
	}
	return writeConfig(path, cfg)
}

// Reset overwrites the config with defaults and returns the default snapshot.
func (l *FileLoader) Reset() (domain.Config, error) {
	cfg := defaultConfig()
	if err := l.Save(cfg); err != nil {
		return domain.Config{}, err
	}
	return cfg, nil
}

// Backup copies the current config file to a timestamped backup.
func (l *FileLoader) Backup() (string, error) {
	path := l.resolvePath()
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	backup := fmt.Sprintf("%s.%s.bak", path, time.Now().Format("20060102T150405"))
	if err := os.WriteFile(backup, data, domain.SecureFilePermissions); err != nil {
		return "", err
	}
	return backup, nil
}

func defaultConfig() domain.Config {
	var cfg domain.Config
	if err := yaml.Unmarshal(assets.DefaultConfigYAML, &cfg); err != nil {
		// Embedded YAML is compiled in; fall back to a minimal config anyway.
		return hydrateDefaults(domain.Config{ConfigFormatVersion: "1"})
	}
	return hydrateDefaults(cfg)
}

// hydrateDefaults fills fields a hand-edited file may have dropped.
func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = "1"
	}
	if cfg.Shell.PromptPrefix == "" {
		cfg.Shell.PromptPrefix = domain.DefaultPromptPrefix
	}
	if cfg.Shell.HistoryLimit == 0 {
		cfg.Shell.HistoryLimit = domain.DefaultHistoryLimit
	}
	if cfg.Shell.ProcessLimit == 0 {
		cfg.Shell.ProcessLimit = domain.DefaultProcessLimit
	}
	if cfg.Shell.CPUSampleMS == 0 {
		cfg.Shell.CPUSampleMS = int(domain.DefaultCPUSampleInterval / time.Millisecond)
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = domain.DefaultServerAddr
	}
	if cfg.Server.HistoryWindow == 0 {
		cfg.Server.HistoryWindow = domain.DefaultHistoryWindow
	}
	if cfg.Server.DefaultSession == "" {
		cfg.Server.DefaultSession = domain.DefaultSessionID
	}
	if cfg.Audit.Backend == "" {
		cfg.Audit.Backend = domain.AuditBackendSQLite
	}
	if cfg.Audit.Path == "" {
		cfg.Audit.Path = "~/.termsim/audit.db"
	}
	return cfg
}

// DefaultConfig exposes the bootstrap configuration template.
func DefaultConfig() domain.Config {
	return defaultConfig()
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
