// Package server provides the HTTP surface of the game: match state for the
// renderer, the mirrored camera stream, and tuning management.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ayusman/handpong/internal/capture"
	"github.com/ayusman/handpong/internal/game"
	"github.com/ayusman/handpong/internal/server/api"
	"github.com/ayusman/handpong/internal/store"
)

// Game is the slice of the application the server talks to.
type Game interface {
	Snapshot() game.Snapshot
	Tuning() game.Config
	ApplyTuning(game.Config) error
}

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	Camera    capture.Camera
	Game      Game
}

// Server represents the HTTP server for the game.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	if s.config.Game != nil {
		s.mux.HandleFunc("/api/state", s.handleState)
		s.mux.HandleFunc("/api/config", s.handleConfig)

		matchHandler := NewMatchHandler(s.config.Game)
		s.mux.Handle("/api/ws", matchHandler)
	}

	// Register tuning profile API if Store is configured
	if s.config.Store != nil {
		tuningHandler := api.NewTuningHandler(s.config.Store)
		s.mux.Handle("/api/tunings", tuningHandler)
		s.mux.Handle("/api/tunings/", tuningHandler)
	}

	// Register camera stream endpoint if Camera is configured
	if s.config.Camera != nil {
		streamHandler := NewStreamHandler(s.config.Camera)
		s.mux.Handle("/api/stream", streamHandler)
	}

	// Serve static files if StaticDir is configured
	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// handleState handles GET requests to /api/state: the latest match snapshot.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.config.Game.Snapshot()); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// handleConfig handles GET and PUT requests to /api/config: the live game
// tuning. A PUT persists the tuning and applies it on the next tick.
func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(s.config.Game.Tuning())

	case http.MethodPut:
		var cfg game.Config
		if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
			http.Error(w, "Invalid JSON body", http.StatusBadRequest)
			return
		}

		if err := cfg.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if err := s.config.Game.ApplyTuning(cfg); err != nil {
			http.Error(w, "Failed to apply tuning", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(cfg)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
