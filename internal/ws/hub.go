package ws

import (
	"context"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"stockgyan-backend/internal/models"
)

// MessagePoster persists an inbound chat message. The chat service
// implements it; keeping the interface here avoids a dependency cycle
// because the service broadcasts back through the hub.
type MessagePoster interface {
	PostMessage(ctx context.Context, userID int, sender string, req *models.CreateChatMessageRequest) (*models.ChatMessage, error)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin is enforced by the CORS layer on the upgrade request
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub tracks live chat connections per user. A user may hold several
// connections (multiple tabs); each gets every message for that user.
type Hub struct {
	mu      sync.RWMutex
	clients map[int]map[*client]bool
}

func NewHub() *Hub {
	return &Hub{clients: make(map[int]map[*client]bool)}
}

func (h *Hub) register(userID int, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[userID] == nil {
		h.clients[userID] = make(map[*client]bool)
	}
	h.clients[userID][c] = true
}

func (h *Hub) unregister(userID int, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.clients[userID]; ok {
		delete(conns, c)
		if len(conns) == 0 {
			delete(h.clients, userID)
		}
	}
}

// Broadcast pushes a stored message to every live connection of its user
func (h *Hub) Broadcast(userID int, m *models.ChatMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[userID] {
		c.enqueue(m)
	}
}

// ServeWS upgrades the request and runs the connection until the client
// disconnects. Inbound frames are chat message payloads posted on behalf of
// the authenticated user.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, userID int, poster MessagePoster) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WS] upgrade failed for user %d: %v", userID, err)
		return
	}

	c := newClient(conn, userID, h, poster)
	h.register(userID, c)
	log.Printf("[WS] user %d connected", userID)

	go c.writePump()
	c.readPump()
}
