// Package web serves the run history as a JSON leaderboard API.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/krackeddevs/sprint-runner/internal/registry"
	"github.com/krackeddevs/sprint-runner/internal/storage"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// Config holds configuration for the HTTP server.
type Config struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DefaultConfig returns a config listening on :8080.
func DefaultConfig() Config {
	return Config{
		Address:      ":8080",
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
}

// Server exposes the leaderboard over HTTP.
type Server struct {
	config Config
	store  *storage.Store
	logger *log.Logger
	srv    *http.Server
}

// NewServer creates a leaderboard server backed by store.
func NewServer(cfg Config, store *storage.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{
		config: cfg,
		store:  store,
		logger: logger,
	}
	s.srv = &http.Server{
		Addr:         cfg.Address,
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

// Handler returns the routed handler with logging and panic recovery.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", s.health).Methods(http.MethodGet)
	api.HandleFunc("/games", s.games).Methods(http.MethodGet)
	api.HandleFunc("/games/{game:[a-z0-9\\-]+}/runs", s.gameRuns).Methods(http.MethodGet)
	api.HandleFunc("/games/{game:[a-z0-9\\-]+}/stats", s.gameStats).Methods(http.MethodGet)
	api.HandleFunc("/runs/{runID:[a-fA-F0-9\\-]+}", s.run).Methods(http.MethodGet)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})

	logged := handlers.CustomLoggingHandler(io.Discard, router, s.logRequest)
	return handlers.RecoveryHandler(handlers.RecoveryLogger(s.logger.StandardLog()))(logged)
}

// logRequest writes one access line per request through the structured logger.
func (s *Server) logRequest(_ io.Writer, p handlers.LogFormatterParams) {
	s.logger.Info("http request",
		"method", p.Request.Method,
		"path", p.URL.Path,
		"status", p.StatusCode,
		"size", p.Size,
		"remote", p.Request.RemoteAddr,
		"duration", time.Since(p.TimeStamp).Round(time.Microsecond),
	)
}

// Start begins serving in the background. Errors other than a clean
// shutdown are sent on the returned channel.
func (s *Server) Start() <-chan error {
	errCh := make(chan error, 1)

	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		errCh <- fmt.Errorf("web: cannot listen on %s: %w", s.config.Address, err)
		close(errCh)
		return errCh
	}
	s.logger.Info("starting HTTP server", "address", ln.Addr().String())

	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("web: HTTP server: %w", err)
		}
		close(errCh)
	}()
	return errCh
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.config.Address
}

type gameInfo struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	HighScore int    `json:"high_score"`
}

type runsResponse struct {
	GameID string              `json:"game_id"`
	Runs   []storage.RunRecord `json:"runs"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) games(w http.ResponseWriter, r *http.Request) {
	list := registry.List()
	out := make([]gameInfo, 0, len(list))
	for _, g := range list {
		info := gameInfo{ID: g.ID, Title: g.Title}
		if s.store != nil {
			high, err := s.store.HighScore(g.ID)
			if err != nil {
				s.internalError(w, err)
				return
			}
			info.HighScore = high
		}
		out = append(out, info)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) gameRuns(w http.ResponseWriter, r *http.Request) {
	gameID, ok := s.knownGame(w, r)
	if !ok {
		return
	}

	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	runs := []storage.RunRecord{}
	if s.store != nil {
		runs, err = s.store.TopRuns(gameID, limit)
		if err != nil {
			s.internalError(w, err)
			return
		}
		if runs == nil {
			runs = []storage.RunRecord{}
		}
	}
	writeJSON(w, http.StatusOK, runsResponse{GameID: gameID, Runs: runs})
}

func (s *Server) gameStats(w http.ResponseWriter, r *http.Request) {
	gameID, ok := s.knownGame(w, r)
	if !ok {
		return
	}

	if s.store == nil {
		writeJSON(w, http.StatusOK, storage.GameStats{GameID: gameID})
		return
	}
	stats, err := s.store.GameStats(gameID)
	if err != nil {
		s.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) run(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}

	record, err := s.store.RunByID(mux.Vars(r)["runID"])
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, "run not found")
	case err != nil:
		s.internalError(w, err)
	default:
		writeJSON(w, http.StatusOK, record)
	}
}

// knownGame resolves the {game} route variable, answering 404 for
// unregistered games.
func (s *Server) knownGame(w http.ResponseWriter, r *http.Request) (string, bool) {
	gameID := mux.Vars(r)["game"]
	if !registry.Exists(gameID) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown game %q", gameID))
		return "", false
	}
	return gameID, true
}

func (s *Server) internalError(w http.ResponseWriter, err error) {
	s.logger.Error("request failed", "error", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}

// parseLimit reads the limit query value; empty means the default and
// values above maxLimit are capped.
func parseLimit(v string) (int, error) {
	if v == "" {
		return defaultLimit, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid limit %q", v)
	}
	return min(n, maxLimit), nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
