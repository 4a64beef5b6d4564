// Package web serves the step-by-step search over HTTP. Each POST /init creates
// a session holding a random map and a stepper; GET /next advances it.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pdrpinto/gridsearch"
	"github.com/pdrpinto/gridsearch/mapgen"
	"go.uber.org/zap"
)

// DefaultMaxSessions bounds the live sessions; the oldest is evicted first.
const DefaultMaxSessions = 64

// MaxSide is the largest rows or cols value /init accepts.
const MaxSide = 1000

type session struct {
	mu          sync.Mutex // guards stepper
	grid        *gridsearch.Grid
	start, goal gridsearch.Position
	stepper     *gridsearch.Stepper
	walls       [][2]int
}

// Server holds the stepper sessions.
type Server struct {
	mu          sync.Mutex // guards sessions and order
	sessions    map[string]*session
	order       []string
	maxSessions int
	logger      *zap.Logger
	seed        func() int64
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMaxSessions caps the number of live sessions.
func WithMaxSessions(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxSessions = n
		}
	}
}

// WithSeedSource supplies the map seed used when a request names none.
func WithSeedSource(seed func() int64) Option {
	return func(s *Server) { s.seed = seed }
}

// NewServer returns a Server with no sessions.
func NewServer(options ...Option) *Server {
	s := &Server{
		sessions:    make(map[string]*session),
		maxSessions: DefaultMaxSessions,
		logger:      zap.NewNop(),
		seed:        func() int64 { return time.Now().UnixNano() },
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Handler routes the JSON endpoints.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /init", s.handleInit)
	mux.HandleFunc("GET /next", s.handleNext)
	mux.HandleFunc("GET /run", s.handleRun)
	return mux
}

// Serve answers requests on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second}
	errs := make(chan error, 1)
	go func() { errs <- srv.Serve(ln) }()

	s.logger.Info("Serving", zap.String("addr", ln.Addr().String()))
	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		shutdownContext, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownContext); err != nil {
			return err
		}
		if err := <-errs; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// Listen opens addr, falling back to a random loopback port when addr is taken.
func Listen(addr string) (net.Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err == nil {
		return ln, nil
	}
	return net.Listen("tcp", "127.0.0.1:0")
}

func (s *Server) store(sess *session) string {
	id := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = sess
	s.order = append(s.order, id)
	for len(s.order) > s.maxSessions {
		evicted := s.order[0]
		s.order = s.order[1:]
		delete(s.sessions, evicted)
		s.logger.Debug("Session evicted", zap.String("id", evicted))
	}
	return id
}

func (s *Server) lookup(r *http.Request) (*session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[r.URL.Query().Get("id")]
	return sess, ok
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func intParam(r *http.Request, name string, fallback int, valid func(int) bool) int {
	if v, err := strconv.Atoi(r.URL.Query().Get(name)); err == nil && valid(v) {
		return v
	}
	return fallback
}

// sideParam is intParam for rows and cols: small or malformed values fall back,
// values above MaxSide are rejected.
func sideParam(r *http.Request, name string, fallback int) (int, error) {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	switch {
	case err != nil || v <= 4:
		return fallback, nil
	case v > MaxSide:
		return 0, fmt.Errorf("%s must be at most %d, got %d", name, MaxSide, v)
	}
	return v, nil
}

func (s *Server) params(r *http.Request) (mapgen.Params, error) {
	params := mapgen.DefaultParams()
	var err error
	if params.Rows, err = sideParam(r, "rows", params.Rows); err != nil {
		return params, err
	}
	if params.Cols, err = sideParam(r, "cols", params.Cols); err != nil {
		return params, err
	}
	params.Clusters = intParam(r, "clusters", params.Clusters, func(v int) bool { return v > 0 })
	params.Steps = intParam(r, "steps", params.Steps, func(v int) bool { return v > 0 })
	if v, err := strconv.ParseFloat(r.URL.Query().Get("density"), 64); err == nil && v >= 0 && v <= 1 {
		params.Density = v
	}
	params.Seed = s.seed()
	if v, err := strconv.ParseInt(r.URL.Query().Get("seed"), 10, 64); err == nil {
		params.Seed = v
	}
	return params, nil
}
