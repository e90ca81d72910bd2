package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/szl-run/szl-backend/live"
	"github.com/szl-run/szl-backend/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// В продакшене здесь должна быть проверка Origin,
		// чтобы разрешать подключения только с доверенных доменов.
		return true
	},
}

type WebSocketHandler struct {
	hub          *live.Hub
	eventService services.EventService
}

func NewWebSocketHandler(hub *live.Hub, es services.EventService) *WebSocketHandler {
	return &WebSocketHandler{
		hub:          hub,
		eventService: es,
	}
}

// ServeRoundsFeed подключает табло к live-фиду кругов забега.
// Клиент подключается к /ws/events/{eventID}/rounds.
func (h *WebSocketHandler) ServeRoundsFeed(w http.ResponseWriter, r *http.Request) {
	eventID, err := getIDFromURL(r, "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	// Проверяем, что забег существует, прежде чем открывать комнату.
	event, err := h.eventService.GetEventByID(r.Context(), eventID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// upgrader.Upgrade сам отправляет HTTP ошибку клиенту.
		slog.Error("failed to upgrade websocket connection", "event_id", event.ID, "error", err)
		return
	}

	// ID комнаты соответствует ID забега.
	roomID := fmt.Sprintf("event_%d", eventID)

	client := &live.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		Room: roomID,
	}
	client.Hub.Register <- client

	go client.WritePump()
	go client.ReadPump()

	slog.Info("live feed client connected", "room", roomID)
}
