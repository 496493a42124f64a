package audit

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/doeshing/termsim/internal/domain"
	"github.com/doeshing/termsim/internal/ports"
)

// SQLiteStore persists the command journal in a SQLite database.
type SQLiteStore struct {
	db       *sql.DB
	path     string
	fallback *FileStore
	mu       sync.Mutex
}

// NewSQLiteStore creates (or opens) the database at path. When the database
// cannot be opened the store degrades to a JSONL file beside it.
func NewSQLiteStore(path string) *SQLiteStore {
	_ = os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions)
	fallback := NewFileStore(strings.TrimSuffix(path, filepath.Ext(path)) + ".jsonl")

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return &SQLiteStore{path: path, fallback: fallback}
	}
	store := &SQLiteStore{db: db, path: path}
	if err := store.init(); err != nil {
		_ = db.Close()
		return &SQLiteStore{path: path, fallback: fallback}
	}
	return store
}

func (s *SQLiteStore) init() error {
	if s.db == nil {
		return os.ErrInvalid
	}
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS commands (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp TEXT,
		session TEXT,
		command TEXT,
		args TEXT,
		cwd TEXT,
		success INTEGER,
		duration_ms INTEGER
	);`)
	return err
}

// Degraded reports whether the store is writing to the JSONL fallback.
func (s *SQLiteStore) Degraded() bool {
	return s.db == nil
}

// Save inserts a new record.
func (s *SQLiteStore) Save(record domain.AuditRecord) error {
	if s.db == nil {
		return s.fallback.Save(record)
	}
	args, err := json.Marshal(record.Arguments)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.db.Exec(`INSERT INTO commands
		(timestamp, session, command, args, cwd, success, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		record.Timestamp.Format(time.RFC3339Nano),
		record.Session,
		record.Command,
		string(args),
		record.WorkingDirectory,
		boolToInt(record.Success),
		record.DurationMS,
	)
	return err
}

// Records returns journal entries newest first (limit/search optional).
func (s *SQLiteStore) Records(limit int, search string) ([]domain.AuditRecord, error) {
	if s.db == nil {
		return s.fallback.Records(limit, search)
	}
	builder := strings.Builder{}
	builder.WriteString("SELECT id, timestamp, session, command, args, cwd, success, duration_ms FROM commands")
	var args []interface{}
	if search != "" {
		builder.WriteString(" WHERE command LIKE ? OR args LIKE ?")
		args = append(args, "%"+search+"%", "%"+search+"%")
	}
	builder.WriteString(" ORDER BY id DESC")
	if limit > 0 {
		builder.WriteString(" LIMIT ?")
		args = append(args, limit)
	}

	rows, err := s.db.Query(builder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.AuditRecord
	for rows.Next() {
		var rec domain.AuditRecord
		var ts, rawArgs string
		var success int
		if err := rows.Scan(&rec.ID, &ts, &rec.Session, &rec.Command, &rawArgs, &rec.WorkingDirectory, &success, &rec.DurationMS); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			rec.Timestamp = t
		}
		if rawArgs != "" {
			_ = json.Unmarshal([]byte(rawArgs), &rec.Arguments)
		}
		rec.Success = success == 1
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Clear deletes all journal entries.
func (s *SQLiteStore) Clear() error {
	if s.db == nil {
		return s.fallback.Clear()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec("DELETE FROM commands")
	return err
}

// ExportJSON writes the command table to a jsonl file, oldest first.
func (s *SQLiteStore) ExportJSON(dest string) error {
	records, err := s.Records(0, "")
	if err != nil {
		return err
	}
	return writeJSONL(dest, records)
}

// Path returns the sqlite database path.
func (s *SQLiteStore) Path() string {
	if s.db == nil {
		return s.fallback.Path()
	}
	return s.path
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ ports.AuditRepository = (*SQLiteStore)(nil)
