package logger

import (
	"io"
	"log"
	"os"

	"github.com/doeshing/termsim/internal/ports"
)

// StdLogger is a lightweight implementation backed by Go's log package.
type StdLogger struct {
	verbose bool
	out     *log.Logger
}

// NewStd creates a StdLogger writing to stderr.
func NewStd(verbose bool) *StdLogger {
	return NewWithWriter(os.Stderr, verbose)
}

// NewWithWriter creates a StdLogger writing to w.
func NewWithWriter(w io.Writer, verbose bool) *StdLogger {
	return &StdLogger{verbose: verbose, out: log.New(w, "", log.LstdFlags)}
}

func (l *StdLogger) Debug(msg string, fields map[string]interface{}) {
	if !l.verbose {
		return
	}
	l.out.Println("[DEBUG]", msg, fields)
}

func (l *StdLogger) Info(msg string, fields map[string]interface{}) {
	if !l.verbose {
		return
	}
	l.out.Println("[INFO]", msg, fields)
}

func (l *StdLogger) Warn(msg string, fields map[string]interface{}) {
	if !l.verbose {
		return
	}
	l.out.Println("[WARN]", msg, fields)
}

// Error is always written; failures matter even without --verbose.
func (l *StdLogger) Error(msg string, err error, fields map[string]interface{}) {
	l.out.Println("[ERROR]", msg, err, fields)
}

type nop struct{}

// Nop returns a logger that discards everything.
func Nop() ports.Logger { return nop{} }

func (nop) Debug(string, map[string]interface{})        {}
func (nop) Info(string, map[string]interface{})         {}
func (nop) Warn(string, map[string]interface{})         {}
func (nop) Error(string, error, map[string]interface{}) {}

var _ ports.Logger = (*StdLogger)(nil)
