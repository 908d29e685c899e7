package ws

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"

	"stockgyan-backend/internal/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 4096
)

type client struct {
	conn   *websocket.Conn
	userID int
	hub    *Hub
	poster MessagePoster
	send   chan *models.ChatMessage
}

func newClient(conn *websocket.Conn, userID int, hub *Hub, poster MessagePoster) *client {
	return &client{
		conn:   conn,
		userID: userID,
		hub:    hub,
		poster: poster,
		send:   make(chan *models.ChatMessage, 64),
	}
}

// enqueue hands a message to the write pump, dropping it if the client
// cannot keep up. The full thread is always available over the history
// endpoint.
func (c *client) enqueue(m *models.ChatMessage) {
	select {
	case c.send <- m:
	default:
	}
}

func (c *client) readPump() {
	defer func() {
		c.hub.unregister(c.userID, c)
		close(c.send)
		_ = c.conn.Close()
		log.Printf("[WS] user %d disconnected", c.userID)
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var req models.CreateChatMessageRequest
		if err := json.Unmarshal(data, &req); err != nil {
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		// PostMessage broadcasts back through the hub, so this connection
		// (and any other tab) sees the stored message with its ID and time
		if _, err := c.poster.PostMessage(ctx, c.userID, models.ChatSenderUser, &req); err != nil {
			log.Printf("[WS] user %d message rejected: %v", c.userID, err)
		}
		cancel()
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				_ = c.conn.WriteControl(websocket.CloseMessage, []byte{}, time.Now().Add(time.Second))
				return
			}
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(time.Second)); err != nil {
				return
			}
		}
	}
}
