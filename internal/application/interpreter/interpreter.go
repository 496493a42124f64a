// Package interpreter implements the termsim command interpreter.
//
// An Interpreter tokenizes a command line, selects a handler from a fixed
// dispatch table and normalizes the outcome into a domain.Result. Each
// instance owns its working directory and history; nothing is shared between
// instances except the immutable dispatch table.
//
// An Interpreter is not safe for concurrent use. Callers that serve several
// sessions must serialize calls, since the process working directory is
// global.
package interpreter

import (
	"fmt"
	"os"
	"time"

	"github.com/doeshing/termsim/internal/domain"
	"github.com/doeshing/termsim/internal/pkg/logger"
	"github.com/doeshing/termsim/internal/ports"
)

// Interpreter executes command lines against the host.
type Interpreter struct {
	workingDirectory string
	history          []domain.HistoryEntry

	probe        ports.SystemProbe
	recorder     ports.CommandRecorder
	log          ports.Logger
	now          func() time.Time
	historyLimit int
	processLimit int
	cpuInterval  time.Duration
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithProbe sets the host process/metric provider.
func WithProbe(p ports.SystemProbe) Option {
	return func(in *Interpreter) {
		if p != nil {
			in.probe = p
		}
	}
}

// WithRecorder registers an observer notified after every recorded command.
func WithRecorder(r ports.CommandRecorder) Option {
	return func(in *Interpreter) { in.recorder = r }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l ports.Logger) Option {
	return func(in *Interpreter) {
		if l != nil {
			in.log = l
		}
	}
}

// WithHistoryLimit caps how many entries the history command prints.
func WithHistoryLimit(n int) Option {
	return func(in *Interpreter) {
		if n > 0 {
			in.historyLimit = n
		}
	}
}

// WithProcessLimit caps how many rows ps prints.
func WithProcessLimit(n int) Option {
	return func(in *Interpreter) {
		if n > 0 {
			in.processLimit = n
		}
	}
}

// WithCPUSampleInterval sets the blocking window of the cpu command.
func WithCPUSampleInterval(d time.Duration) Option {
	return func(in *Interpreter) {
		if d > 0 {
			in.cpuInterval = d
		}
	}
}

// WithClock overrides the history timestamp source.
func WithClock(now func() time.Time) Option {
	return func(in *Interpreter) {
		if now != nil {
			in.now = now
		}
	}
}

// WithWorkingDirectory starts the instance in dir instead of the process
// working directory. The process follows on the first dispatched command.
func WithWorkingDirectory(dir string) Option {
	return func(in *Interpreter) {
		if dir != "" {
			in.workingDirectory = dir
		}
	}
}

// New creates an Interpreter rooted at the current process directory.
func New(opts ...Option) *Interpreter {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	in := &Interpreter{
		workingDirectory: wd,
		probe:            unavailableProbe{},
		log:              logger.Nop(),
		now:              time.Now,
		historyLimit:     domain.DefaultHistoryLimit,
		processLimit:     domain.DefaultProcessLimit,
		cpuInterval:      domain.DefaultCPUSampleInterval,
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Parse tokenizes and executes one command line. It never panics and never
// returns an error; every failure is folded into the Result.
func (in *Interpreter) Parse(line string) domain.Result {
	verb, args, ok := tokenize(line)
	if !ok {
		return domain.OK("")
	}
	return in.execute(verb, args)
}

func (in *Interpreter) execute(verb string, args []string) domain.Result {
	in.syncWorkingDirectory()

	entry := domain.HistoryEntry{
		Command:          verb,
		Arguments:        append([]string{}, args...),
		Timestamp:        in.now(),
		WorkingDirectory: in.workingDirectory,
	}

	start := time.Now()
	result := in.dispatch(verb, args)
	elapsed := time.Since(start)

	in.history = append(in.history, entry)
	in.log.Debug("command dispatched", map[string]interface{}{
		"verb":    verb,
		"args":    len(args),
		"success": result.Success,
		"kind":    string(result.Kind),
		"elapsed": elapsed.String(),
	})

	if in.recorder != nil {
		if err := in.recorder.Record(entry, result, elapsed); err != nil {
			in.log.Error("record command", err, map[string]interface{}{"verb": verb})
		}
	}
	return result
}

// dispatch runs the handler for verb. Handler errors and panics both become
// a generic failure; nothing escapes to the caller.
func (in *Interpreter) dispatch(verb string, args []string) (result domain.Result) {
	handler, ok := dispatchTable[verb]
	if !ok {
		return domain.UnknownCommand(verb)
	}

	defer func() {
		if r := recover(); r != nil {
			in.log.Error("handler panicked", fmt.Errorf("%v", r), map[string]interface{}{"verb": verb})
			result = domain.GenericFailure(fmt.Sprint(r))
		}
	}()

	res, err := handler(in, args)
	if err != nil {
		return domain.GenericFailure(err.Error())
	}
	return res
}

// syncWorkingDirectory moves the process back to this instance's directory
// when another instance (or the caller) changed it in between.
func (in *Interpreter) syncWorkingDirectory() {
	if current, err := os.Getwd(); err == nil && current == in.workingDirectory {
		return
	}
	if err := os.Chdir(in.workingDirectory); err != nil {
		in.log.Warn("working directory unavailable", map[string]interface{}{
			"dir":   in.workingDirectory,
			"error": err.Error(),
		})
	}
}

// WorkingDirectory returns the directory relative paths resolve against.
func (in *Interpreter) WorkingDirectory() string {
	return in.workingDirectory
}

// History returns a copy of every recorded entry, oldest first.
func (in *Interpreter) History() []domain.HistoryEntry {
	out := make([]domain.HistoryEntry, len(in.history))
	copy(out, in.history)
	return out
}

// RecentHistory returns at most n of the newest entries, oldest first.
func (in *Interpreter) RecentHistory(n int) []domain.HistoryEntry {
	if n <= 0 || n >= len(in.history) {
		return in.History()
	}
	out := make([]domain.HistoryEntry, n)
	copy(out, in.history[len(in.history)-n:])
	return out
}

// ClearHistory drops every recorded entry.
func (in *Interpreter) ClearHistory() {
	in.history = nil
}
