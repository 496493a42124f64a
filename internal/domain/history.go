package domain

import (
	"strings"
	"time"
)

// HistoryEntry captures one dispatched command line.
type HistoryEntry struct {
	Command          string    `json:"command"`
	Arguments        []string  `json:"args"`
	Timestamp        time.Time `json:"timestamp"`
	WorkingDirectory string    `json:"cwd"`
}

// Line renders the command and its arguments the way they were typed,
// modulo whitespace and verb casing.
func (e HistoryEntry) Line() string {
	if len(e.Arguments) == 0 {
		return e.Command
	}
	return e.Command + " " + strings.Join(e.Arguments, " ")
}

// AuditRecord is the persisted projection of a HistoryEntry and its outcome.
type AuditRecord struct {
	ID               int64     `json:"id,omitempty"`
	Session          string    `json:"session"`
	Command          string    `json:"command"`
	Arguments        []string  `json:"args"`
	WorkingDirectory string    `json:"cwd"`
	Success          bool      `json:"success"`
	Timestamp        time.Time `json:"timestamp"`
	DurationMS       int64     `json:"duration_ms"`
}

// NewAuditRecord combines a history entry with its result.
func NewAuditRecord(session string, entry HistoryEntry, result Result, elapsed time.Duration) AuditRecord {
	args := make([]string, len(entry.Arguments))
	copy(args, entry.Arguments)
	return AuditRecord{
		Session:          session,
		Command:          entry.Command,
		Arguments:        args,
		WorkingDirectory: entry.WorkingDirectory,
		Success:          result.Success,
		Timestamp:        entry.Timestamp,
		DurationMS:       elapsed.Milliseconds(),
	}
}

// Line renders the command line stored in the record.
func (r AuditRecord) Line() string {
	if len(r.Arguments) == 0 {
		return r.Command
	}
	return r.Command + " " + strings.Join(r.Arguments, " ")
}
