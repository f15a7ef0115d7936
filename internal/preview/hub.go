package preview

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// MessageType is the type of a message sent to browsers.
type MessageType string

const (
	MessageUpdate MessageType = "update"
	MessageError  MessageType = "error"
)

// Message is sent to browsers via WebSocket.
type Message struct {
	Type  MessageType `json:"type"`
	HTML  string      `json:"html,omitempty"`
	Error string      `json:"error,omitempty"`
}

// client serializes writes to one connection.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// hub manages the WebSocket connections.
type hub struct {
	clients  map[*client]bool
	mu       sync.RWMutex
	upgrader websocket.Upgrader

	// hello returns the message sent to a client right after it connects.
	hello func() Message
}

func newHub(hello func() Message) *hub {
	return &hub{
		clients: make(map[*client]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // preview only
			},
		},
		hello: hello,
	}
}

// handleWebSocket upgrades the connection, sends the current state and keeps
// the connection registered until the client goes away.
func (h *hub) handleWebSocket(w http.ResponseWriter, req *http.Request) {
	conn, err := h.upgrader.Upgrade(w, req, nil)
	if err != nil {
		return
	}
	c := &client{conn: conn}

	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()

	if h.hello != nil {
		if data, err := json.Marshal(h.hello()); err == nil {
			_ = c.write(data)
		}
	}

	// Keep connection alive until client disconnects
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.remove(c)
}

// broadcast sends a message to all connected clients.
func (h *hub) broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	h.mu.RLock()
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		if err := c.write(data); err != nil {
			h.remove(c)
		}
	}
}

func (h *hub) remove(c *client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	c.conn.Close()
}

// count returns the number of connected clients.
func (h *hub) count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// close closes all client connections.
func (h *hub) close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		c.conn.Close()
		delete(h.clients, c)
	}
}
