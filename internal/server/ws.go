package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// MatchHandler broadcasts match snapshots to WebSocket clients. Renderers
// draw directly from these messages; the simulation never waits on a client.
type MatchHandler struct {
	game    Game
	clients map[*websocket.Conn]string
	mu      sync.RWMutex
}

// NewMatchHandler creates a new MatchHandler over the given game.
func NewMatchHandler(g Game) *MatchHandler {
	h := &MatchHandler{
		game:    g,
		clients: make(map[*websocket.Conn]string),
	}
	go h.broadcast()
	return h
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *MatchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	id := uuid.New().String()

	h.mu.Lock()
	h.clients[conn] = id
	h.mu.Unlock()
	log.Printf("renderer %s connected", id)

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
		log.Printf("renderer %s disconnected", id)
	}()

	// Keep connection alive by reading messages
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// broadcast pushes the current snapshot to every connected client at the
// simulation rate.
func (h *MatchHandler) broadcast() {
	ticker := time.NewTicker(33 * time.Millisecond) // ~30 FPS, matches the tick
	defer ticker.Stop()

	for range ticker.C {
		h.mu.RLock()
		idle := len(h.clients) == 0
		h.mu.RUnlock()
		if idle {
			continue
		}

		msg, err := json.Marshal(h.game.Snapshot())
		if err != nil {
			continue
		}

		h.mu.RLock()
		for conn := range h.clients {
			conn.WriteMessage(websocket.TextMessage, msg)
		}
		h.mu.RUnlock()
	}
}
