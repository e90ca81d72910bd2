package live

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registeredClient(t *testing.T, h *Hub, room string) *Client {
	t.Helper()
	client := &Client{
		Hub:  h,
		Send: make(chan []byte, 4),
		Room: room,
	}
	h.Register <- client

	// Регистрация обрабатывается горутиной Run асинхронно.
	require.Eventually(t, func() bool {
		h.mu.RLock()
		defer h.mu.RUnlock()
		_, ok := h.rooms[room][client]
		return ok
	}, time.Second, time.Millisecond)
	return client
}

func TestHubBroadcastToRoom(t *testing.T) {
	h := NewHub()
	go h.Run()

	subscriber := registeredClient(t, h, "event_7")
	bystander := registeredClient(t, h, "event_8")

	h.BroadcastToRoom("event_7", map[string]int{"round_id": 1})

	select {
	case raw := <-subscriber.Send:
		var msg Message
		require.NoError(t, json.Unmarshal(raw, &msg))
		assert.Equal(t, TypeRoundRecorded, msg.Type)
		assert.Equal(t, "event_7", msg.RoomID)
	case <-time.After(time.Second):
		t.Fatal("subscriber did not receive the broadcast")
	}

	assert.Empty(t, bystander.Send)
}

func TestHubBroadcastToEmptyRoom(t *testing.T) {
	h := NewHub()
	go h.Run()

	// Комнаты нет — рассылка просто ничего не делает.
	h.BroadcastToRoom("event_99", "payload")
}

func TestHubUnregisterClosesClient(t *testing.T) {
	h := NewHub()
	go h.Run()

	client := registeredClient(t, h, "event_7")
	h.Unregister <- client

	require.Eventually(t, func() bool {
		h.mu.RLock()
		defer h.mu.RUnlock()
		_, ok := h.rooms["event_7"]
		return !ok
	}, time.Second, time.Millisecond)

	// Канал закрыт, отправлять больше некуда.
	_, open := <-client.Send
	assert.False(t, open)
}

func TestHubSlowClientDoesNotBlock(t *testing.T) {
	h := NewHub()
	go h.Run()

	slow := &Client{Hub: h, Send: make(chan []byte), Room: "event_7"}
	h.Register <- slow
	fast := registeredClient(t, h, "event_7")

	done := make(chan struct{})
	go func() {
		h.BroadcastToRoom("event_7", "payload")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast blocked on a slow client")
	}

	select {
	case <-fast.Send:
	case <-time.After(time.Second):
		t.Fatal("fast client did not receive the broadcast")
	}
}
