package web

import (
	"sync"

	"github.com/doeshing/termsim/internal/application/interpreter"
)

// Factory builds the interpreter for a newly seen session.
type Factory func(session string) *interpreter.Interpreter

// Sessions maps session keys to interpreters, creating them on first use.
// Sessions are never evicted.
type Sessions struct {
	mu       sync.Mutex
	sessions map[string]*interpreter.Interpreter
	factory  Factory
}

// NewSessions creates an empty registry.
func NewSessions(factory Factory) *Sessions {
	return &Sessions{sessions: map[string]*interpreter.Interpreter{}, factory: factory}
}

// Get returns the interpreter for id.
func (s *Sessions) Get(id string) *interpreter.Interpreter {
	s.mu.Lock()
	defer s.mu.Unlock()
	in, ok := s.sessions[id]
	if !ok {
		in = s.factory(id)
		s.sessions[id] = in
	}
	return in
}

// Len returns the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
