package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ReloadEvent is sent to every connected page after a successful rebuild.
type ReloadEvent struct {
	Type    string `json:"type"`
	BuildID string `json:"build_id"`
}

// Hub tracks live-reload websocket clients.
type Hub struct {
	log *slog.Logger

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

// NewHub creates an empty hub.
func NewHub(log *slog.Logger) *Hub {
	return &Hub{log: log, conns: make(map[*websocket.Conn]struct{})}
}

// ServeHTTP upgrades the request and keeps the connection until the client leaves.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade", "error", err)
		return
	}
	h.register(conn)
	defer h.unregister(conn)

	// Clients never send anything useful; reading only detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug("websocket read", "error", err)
			}
			return
		}
	}
}

func (h *Hub) register(conn *websocket.Conn) {
	h.mu.Lock()
	h.conns[conn] = struct{}{}
	n := len(h.conns)
	h.mu.Unlock()
	h.log.Debug("websocket connected", "clients", n)
}

func (h *Hub) unregister(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, conn)
	n := len(h.conns)
	h.mu.Unlock()
	conn.Close()
	h.log.Debug("websocket disconnected", "clients", n)
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// BroadcastReload tells every client that buildID is ready and returns how many were
// reached. Clients that fail the write are dropped.
func (h *Hub) BroadcastReload(buildID string) int {
	data, err := json.Marshal(ReloadEvent{Type: "reload", BuildID: buildID})
	if err != nil {
		h.log.Error("marshal reload event", "error", err)
		return 0
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	sent := 0
	for conn := range h.conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.log.Debug("send reload", "error", err)
			conn.Close()
			delete(h.conns, conn)
			continue
		}
		sent++
	}
	h.log.Info("broadcast reload", "build_id", buildID, "clients", sent)
	return sent
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
		conn.Close()
		delete(h.conns, conn)
	}
}
