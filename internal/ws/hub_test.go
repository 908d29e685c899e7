package ws

import (
	"testing"

	"stockgyan-backend/internal/models"
)

func TestHubBroadcastReachesAllUserConnections(t *testing.T) {
	h := NewHub()

	c1 := newClient(nil, 7, h, nil)
	c2 := newClient(nil, 7, h, nil)
	other := newClient(nil, 8, h, nil)
	h.register(7, c1)
	h.register(7, c2)
	h.register(8, other)

	msg := &models.ChatMessage{ID: 1, UserID: 7, Sender: models.ChatSenderUser, Body: "hi"}
	h.Broadcast(7, msg)

	for i, c := range []*client{c1, c2} {
		select {
		case got := <-c.send:
			if got.ID != 1 {
				t.Errorf("connection %d got wrong message: %+v", i, got)
			}
		default:
			t.Errorf("connection %d received nothing", i)
		}
	}
	select {
	case <-other.send:
		t.Error("message leaked to another user's connection")
	default:
	}
}

func TestHubUnregisterStopsDelivery(t *testing.T) {
	h := NewHub()
	c := newClient(nil, 7, h, nil)
	h.register(7, c)
	h.unregister(7, c)

	h.Broadcast(7, &models.ChatMessage{ID: 1, UserID: 7})
	select {
	case <-c.send:
		t.Error("unregistered connection still receives")
	default:
	}
}

func TestClientEnqueueDropsWhenFull(t *testing.T) {
	c := newClient(nil, 7, nil, nil)
	for i := 0; i < cap(c.send)+10; i++ {
		c.enqueue(&models.ChatMessage{ID: i})
	}
	if len(c.send) != cap(c.send) {
		t.Errorf("queue should be full, have %d of %d", len(c.send), cap(c.send))
	}
}
