// Package web serves puzzle boards over HTTP. Clients create a session, post
// canvas pixel coordinates to touch tiles and watch state pushes over a
// websocket.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/fifteen/internal/config"
	"github.com/vovakirdan/fifteen/internal/puzzle"
	"github.com/vovakirdan/fifteen/internal/storage"
)

// Config holds configuration for the web server.
type Config struct {
	Address     string
	Puzzle      config.FifteenConfig
	MaxSessions int
	Store       *storage.Store // Receives solves; may be nil
	Logger      *log.Logger
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Address:     ":8080",
		Puzzle:      config.DefaultFifteenConfig(),
		MaxSessions: 1000,
	}
}

// Server is the HTTP surface.
type Server struct {
	cfg      Config
	sessions *Manager
	hub      *Hub
	router   chi.Router
	logger   *log.Logger
}

// NewServer creates a server and starts its websocket hub. Call Close when
// done.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Server{
		cfg:    cfg,
		hub:    NewHub(logger.With("component", "hub")),
		logger: logger,
	}
	s.sessions = NewManager(cfg.Puzzle, cfg.MaxSessions, s.recordSolve, logger)
	s.routes()

	go s.hub.Run()
	return s
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Get("/", s.handleList)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Delete("/", s.handleDelete)
			r.Post("/touch", s.handleTouch)
			r.Post("/undo", s.handleUndo)
			r.Post("/redo", s.handleRedo)
			r.Post("/shuffle", s.handleShuffle)
			r.Get("/ws", s.handleWS)
		})
	})

	r.Get("/api/scores/{game}", s.handleScores)

	s.router = r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Sessions returns the session manager.
func (s *Server) Sessions() *Manager {
	return s.sessions
}

// Close stops the websocket hub.
func (s *Server) Close() {
	s.hub.Stop()
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Address,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting web server", "address", s.cfg.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.Close()
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	s.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// logRequests logs each request through charmbracelet/log.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// recordSolve saves a finished web board.
func (s *Server) recordSolve(gameID string, moves, secs, w, h int) {
	s.logger.Info("puzzle solved", "game", gameID, "moves", moves, "secs", secs)
	if s.cfg.Store == nil {
		return
	}
	if _, err := s.cfg.Store.SaveSolve(gameID, moves, secs, w, h); err != nil {
		s.logger.Warn("could not save solve", "game", gameID, "error", err)
	}
}

// publish pushes the state to the session's websocket watchers.
func (s *Server) publish(st State) {
	s.hub.Publish(&Message{Event: EventState, SessionID: st.ID, State: &st})
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// fail maps an error to a status. Bad input is the client's fault; anything
// else is a broken board and is logged.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrTooManySessions):
		respondError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, puzzle.ErrOutOfBounds),
		errors.Is(err, puzzle.ErrInvalidGeometry),
		errors.Is(err, errBadRequest):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error("board fault", "path", r.URL.Path, "error", err)
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}
