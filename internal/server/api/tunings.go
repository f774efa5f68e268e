// Package api provides HTTP API handlers for game tuning profiles.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ayusman/handpong/internal/game"
	"github.com/ayusman/handpong/internal/store"
)

// TuningHandler handles HTTP requests for tuning profile resources.
type TuningHandler struct {
	store *store.Store
}

// NewTuningHandler creates a new TuningHandler with the given store.
func NewTuningHandler(s *store.Store) *TuningHandler {
	return &TuningHandler{store: s}
}

// ServeHTTP implements the http.Handler interface and routes requests to appropriate methods.
func (h *TuningHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/tunings, /api/tunings/{name} or
	// /api/tunings/{name}/activate
	path := strings.TrimPrefix(r.URL.Path, "/api/tunings")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		// Collection endpoint: /api/tunings
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.list(w, r)
		return
	}

	if name, ok := strings.CutSuffix(path, "/activate"); ok {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.activate(w, r, name)
		return
	}

	// Item endpoint: /api/tunings/{name}
	name := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, name)
	case http.MethodPut:
		h.save(w, r, name)
	case http.MethodDelete:
		h.delete(w, r, name)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

type listTuningsResponse struct {
	Tunings []string `json:"tunings"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// list handles GET /api/tunings and returns all profile names.
func (h *TuningHandler) list(w http.ResponseWriter, r *http.Request) {
	names, err := h.store.Tunings().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list tunings")
		return
	}

	writeJSON(w, http.StatusOK, listTuningsResponse{Tunings: names})
}

// get handles GET /api/tunings/{name} and returns one profile.
func (h *TuningHandler) get(w http.ResponseWriter, r *http.Request, name string) {
	cfg, err := h.store.Tunings().Get(name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Tuning not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to load tuning")
		return
	}

	writeJSON(w, http.StatusOK, cfg)
}

// save handles PUT /api/tunings/{name} and creates or replaces a profile.
func (h *TuningHandler) save(w http.ResponseWriter, r *http.Request, name string) {
	var cfg game.Config
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if err := cfg.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.Tunings().Save(name, cfg); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save tuning")
		return
	}

	writeJSON(w, http.StatusOK, cfg)
}

// delete handles DELETE /api/tunings/{name}.
func (h *TuningHandler) delete(w http.ResponseWriter, r *http.Request, name string) {
	if err := h.store.Tunings().Delete(name); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Tuning not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete tuning")
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}

// activate handles POST /api/tunings/{name}/activate and marks the profile as
// the one the game loads on startup.
func (h *TuningHandler) activate(w http.ResponseWriter, r *http.Request, name string) {
	if err := h.store.Tunings().SetActive(name); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Tuning not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to activate tuning")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"active": name})
}
