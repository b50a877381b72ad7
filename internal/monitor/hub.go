package monitor

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"roverctl/models"
)

// Client wraps a websocket connection with a per-connection write mutex.
// Gorilla WebSocket requires that writes are not concurrent on the same Conn.
type Client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// Hub is a lightweight broadcast hub for the monitor's WebSocket clients.
// Clients only ever receive; anything they send is discarded by the
// read-loop, so the serial link keeps a single writer.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
}

// NewHub constructs an empty hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]struct{})}
}

// Add registers a connection with the hub and returns the Client wrapper.
func (h *Hub) Add(conn *websocket.Conn) *Client {
	c := &Client{conn: conn}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	return c
}

// Remove unregisters a client and closes its connection.
func (h *Hub) Remove(c *Client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	_ = c.conn.Close()
}

// Count returns the number of registered clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Publish broadcasts an event to all connected clients.
//
// Note: write failures are ignored here; the read-loop in handleWS notices
// the disconnect and removes the client. This keeps the publish path on the
// control loop fast.
func (h *Hub) Publish(ev models.Event) {
	// Marshal once for consistency across clients
	b, _ := json.Marshal(ev)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		c.mu.Lock()
		_ = c.conn.WriteMessage(websocket.TextMessage, b)
		c.mu.Unlock()
	}
}
