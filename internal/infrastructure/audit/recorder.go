// Package audit persists the command journal.
//
// Two backends exist: a SQLite database (the default) and an append-only
// JSONL file. Recorder adapts either one to the interpreter's
// CommandRecorder port for a single session.
package audit

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/doeshing/termsim/internal/domain"
	"github.com/doeshing/termsim/internal/pkg/filesystem"
	"github.com/doeshing/termsim/internal/ports"
)

// Open returns the repository selected by cfg.Audit.
func Open(cfg domain.Config) (ports.AuditRepository, error) {
	backend := cfg.GetAuditBackend()
	path := filesystem.ExpandPath(cfg.Audit.Path)
	if cfg.Audit.Path == "" {
		path = DefaultPath(backend)
	}
	switch backend {
	case domain.AuditBackendSQLite:
		return NewSQLiteStore(path), nil
	case domain.AuditBackendJSONL:
		return NewFileStore(path), nil
	default:
		return nil, fmt.Errorf("unknown audit backend %q", cfg.Audit.Backend)
	}
}

// DefaultPath returns the journal location used when audit.path is empty.
func DefaultPath(backend string) string {
	if backend == domain.AuditBackendJSONL {
		return filepath.Join(filesystem.DataDir(), "audit.jsonl")
	}
	return filepath.Join(filesystem.DataDir(), "audit.db")
}

// Recorder journals every dispatched command under one session key.
type Recorder struct {
	repo    ports.AuditRepository
	session string
}

// NewRecorder binds repo to session.
func NewRecorder(repo ports.AuditRepository, session string) *Recorder {
	return &Recorder{repo: repo, session: session}
}

// Record implements ports.CommandRecorder.
func (r *Recorder) Record(entry domain.HistoryEntry, result domain.Result, elapsed time.Duration) error {
	return r.repo.Save(domain.NewAuditRecord(r.session, entry, result, elapsed))
}

var _ ports.CommandRecorder = (*Recorder)(nil)
