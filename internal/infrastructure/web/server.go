// Package web exposes interpreters over a small JSON HTTP API.
//
// Each X-Session-ID gets its own interpreter. All interpreter calls are
// serialized behind one lock because they share the process working
// directory.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/doeshing/termsim/assets"
	"github.com/doeshing/termsim/internal/domain"
	"github.com/doeshing/termsim/internal/pkg/logger"
	"github.com/doeshing/termsim/internal/ports"
)

const (
	msgMissingCmd       = "Missing 'cmd' parameter"
	msgHistoryCleared   = "History cleared"
	msgNotFound         = "Endpoint not found"
	msgMethodNotAllowed = "Method not allowed"

	maxBodyBytes      = 1 << 20
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Options configures a Server.
type Options struct {
	HistoryWindow  int
	DefaultSession string
	Logger         ports.Logger
}

// Server serves the exec/history/clear API.
type Server struct {
	sessions       *Sessions
	historyWindow  int
	defaultSession string
	log            ports.Logger

	// execMu serializes every interpreter call.
	execMu sync.Mutex
}

// NewServer builds a server over sessions.
func NewServer(sessions *Sessions, opts Options) *Server {
	s := &Server{
		sessions:       sessions,
		historyWindow:  opts.HistoryWindow,
		defaultSession: opts.DefaultSession,
		log:            opts.Logger,
	}
	if s.historyWindow <= 0 {
		s.historyWindow = domain.DefaultHistoryWindow
	}
	if s.defaultSession == "" {
		s.defaultSession = domain.DefaultSessionID
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	return s
}

type execRequest struct {
	Cmd *string `json:"cmd"`
}

type historyResponse struct {
	Success bool                  `json:"success"`
	History []domain.HistoryEntry `json:"history"`
}

// Handler returns the routed handler wrapped with request ids and logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/exec", s.handleExec)
	mux.HandleFunc("GET /api/history", s.handleHistory)
	mux.HandleFunc("POST /api/clear", s.handleClear)
	mux.HandleFunc("GET /{$}", s.handleIndex)
	for _, path := range []string{"/api/exec", "/api/history", "/api/clear"} {
		mux.HandleFunc(path, s.handleMethodNotAllowed)
	}
	mux.HandleFunc("/", s.handleNotFound)
	return s.withRequestID(mux)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.log.Info("web server listening", map[string]interface{}{"addr": addr})

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) handleExec(w http.ResponseWriter, r *http.Request) {
	var req execRequest
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusOK, domain.Result{Output: fmt.Sprintf("Server error: %v", err)})
		return
	}
	if len(strings.TrimSpace(string(body))) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			writeJSON(w, http.StatusOK, domain.Result{Output: fmt.Sprintf("Server error: %v", err)})
			return
		}
	}
	if req.Cmd == nil {
		writeJSON(w, http.StatusOK, domain.Result{Output: msgMissingCmd})
		return
	}

	line := strings.TrimSpace(*req.Cmd)
	if line == "" {
		writeJSON(w, http.StatusOK, domain.OK(""))
		return
	}

	session := s.sessionID(r)
	s.execMu.Lock()
	result := s.sessions.Get(session).Parse(line)
	s.execMu.Unlock()

	s.log.Debug("exec", map[string]interface{}{
		"session":    session,
		"request_id": requestID(r),
		"kind":       string(result.Kind),
	})
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	s.execMu.Lock()
	history := s.sessions.Get(s.sessionID(r)).RecentHistory(s.historyWindow)
	s.execMu.Unlock()

	if history == nil {
		history = []domain.HistoryEntry{}
	}
	writeJSON(w, http.StatusOK, historyResponse{Success: true, History: history})
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	s.execMu.Lock()
	s.sessions.Get(s.sessionID(r)).ClearHistory()
	s.execMu.Unlock()

	writeJSON(w, http.StatusOK, domain.OK(msgHistoryCleared))
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(assets.ConsoleHTML)
}

func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, domain.Result{Output: msgMethodNotAllowed})
}

func (s *Server) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusNotFound, domain.Result{Output: msgNotFound})
}

func (s *Server) sessionID(r *http.Request) string {
	if id := strings.TrimSpace(r.Header.Get(domain.SessionHeader)); id != "" {
		return id
	}
	return s.defaultSession
}

type requestIDKey struct{}

// withRequestID tags each request with a uuid, reusing a client-supplied
// X-Request-ID, and logs the outcome.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(domain.RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(domain.RequestIDHeader, id)

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))

		s.log.Info("request", map[string]interface{}{
			"request_id": id,
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     rec.status,
			"duration":   time.Since(start).String(),
		})
	})
}

func requestID(r *http.Request) string {
	id, _ := r.Context().Value(requestIDKey{}).(string)
	return id
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
