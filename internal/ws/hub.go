// Package ws delivers live conversation updates over websockets. Each
// connected client subscribes to a single conversation; the hub fans a
// published event out to every client in that conversation's room.
package ws

import (
	"sync"

	"go.uber.org/zap"

	"github.com/unimatch/campus-platform/internal/logger"
)

// Event is a payload addressed to one conversation's subscribers.
type Event struct {
	ConversationID string
	Payload        []byte
}

// Hub maintains the set of active clients grouped by conversation.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	events     chan Event

	mu    sync.RWMutex
	rooms map[string]map[*Client]bool

	log *zap.SugaredLogger
}

func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		events:     make(chan Event, 64),
		rooms:      make(map[string]map[*Client]bool),
		log:        logger.New("ws-hub"),
	}
}

// Run processes registrations and event fan-out until the process exits.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			room := h.rooms[client.ConversationID]
			if room == nil {
				room = make(map[*Client]bool)
				h.rooms[client.ConversationID] = room
			}
			room[client] = true
			h.mu.Unlock()
			h.log.Debugw("client subscribed",
				"conversation_id", client.ConversationID, "user_id", client.UserID)

		case client := <-h.unregister:
			h.mu.Lock()
			if room, ok := h.rooms[client.ConversationID]; ok {
				if room[client] {
					delete(room, client)
					close(client.send)
				}
				if len(room) == 0 {
					delete(h.rooms, client.ConversationID)
				}
			}
			h.mu.Unlock()

		case event := <-h.events:
			h.mu.RLock()
			for client := range h.rooms[event.ConversationID] {
				select {
				case client.send <- event.Payload:
				default:
					// Slow consumer; drop the event for this client
					// rather than blocking the hub.
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Publish delivers a payload to every subscriber of the conversation.
func (h *Hub) Publish(conversationID string, payload []byte) {
	h.events <- Event{ConversationID: conversationID, Payload: payload}
}
