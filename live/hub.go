package live

import (
	"encoding/json"
	"log"
	"sync"
)

// Message — конверт live-фида. Сейчас единственный тип — ROUND_RECORDED.
type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
	RoomID  string      `json:"room_id,omitempty"`
}

const TypeRoundRecorded = "ROUND_RECORDED"

// Hub держит websocket-подписчиков по комнатам. Комната — ID забега:
// табло подписывается на /ws/events/{id}/rounds и получает каждое
// пересечение линии в этом забеге.
type Hub struct {
	Register   chan *Client
	Unregister chan *Client
	rooms      map[string]map[*Client]bool
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		rooms:      make(map[string]map[*Client]bool),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			if _, ok := h.rooms[client.Room]; !ok {
				h.rooms[client.Room] = make(map[*Client]bool)
			}
			h.rooms[client.Room][client] = true
			h.mu.Unlock()

		case client := <-h.Unregister:
			h.mu.Lock()
			if roomClients, ok := h.rooms[client.Room]; ok {
				if _, okClient := roomClients[client]; okClient {
					client.close()
					delete(roomClients, client)
					if len(roomClients) == 0 {
						delete(h.rooms, client.Room)
					}
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastToRoom отправляет payload всем подписчикам комнаты. Медленный
// клиент с полным буфером пропускает сообщение, но не тормозит остальных.
func (h *Hub) BroadcastToRoom(roomID string, payload interface{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	roomClients, ok := h.rooms[roomID]
	if !ok {
		return
	}

	messageBytes, err := json.Marshal(Message{
		Type:    TypeRoundRecorded,
		Payload: payload,
		RoomID:  roomID,
	})
	if err != nil {
		log.Printf("live: failed to marshal message for room %s: %v", roomID, err)
		return
	}

	for client := range roomClients {
		select {
		case client.Send <- messageBytes:
		default:
			log.Printf("live: send buffer full for a client in room %s, dropping message", roomID)
		}
	}
}
