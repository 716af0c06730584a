package ws

import (
	"encoding/json"
	"sync"

	"github.com/motus-games/motus/internal/protocol"
)

// Hub tracks live connections and their room membership and fans session
// emissions out to the right sockets.
type Hub struct {
	mtx     sync.RWMutex
	clients map[string]*Client
	rooms   map[string]map[string]*Client
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		rooms:   make(map[string]map[string]*Client),
	}
}

func (h *Hub) Register(client *Client) {
	h.mtx.Lock()
	defer h.mtx.Unlock()
	h.clients[client.ID] = client
}

// Unregister drops the client from the hub and from its room.
func (h *Hub) Unregister(client *Client) {
	h.mtx.Lock()
	defer h.mtx.Unlock()

	delete(h.clients, client.ID)
	if client.roomID == "" {
		return
	}
	if room, ok := h.rooms[client.roomID]; ok {
		delete(room, client.ID)
		if len(room) == 0 {
			delete(h.rooms, client.roomID)
		}
	}
}

// JoinRoom moves the client into a room, leaving its previous one.
func (h *Hub) JoinRoom(roomID string, client *Client) {
	h.mtx.Lock()
	defer h.mtx.Unlock()

	if client.roomID != "" && client.roomID != roomID {
		if prev, ok := h.rooms[client.roomID]; ok {
			delete(prev, client.ID)
			if len(prev) == 0 {
				delete(h.rooms, client.roomID)
			}
		}
	}

	room, ok := h.rooms[roomID]
	if !ok {
		room = make(map[string]*Client)
		h.rooms[roomID] = room
	}
	room[client.ID] = client
	client.roomID = roomID
}

// Deliver routes emissions to their recipients. Marshalling failures drop
// the single emission, not the batch.
func (h *Hub) Deliver(roomID string, emissions []protocol.Emission) {
	for _, e := range emissions {
		data, err := json.Marshal(e.Data)
		if err != nil {
			continue
		}
		frame := protocol.Frame{Event: e.Event, Data: data}

		switch e.Scope {
		case protocol.ScopeConn:
			if client := h.client(e.ConnID); client != nil {
				client.enqueue(frame)
			}
		case protocol.ScopeRoom:
			for _, client := range h.roomSnapshot(roomID) {
				client.enqueue(frame)
			}
		case protocol.ScopeRoomExcept:
			for _, client := range h.roomSnapshot(roomID) {
				if client.ID != e.ConnID {
					client.enqueue(frame)
				}
			}
		}
	}
}

// Send delivers a single frame to one connection.
func (h *Hub) Send(connID string, frame protocol.Frame) {
	if client := h.client(connID); client != nil {
		client.enqueue(frame)
	}
}

func (h *Hub) client(connID string) *Client {
	h.mtx.RLock()
	defer h.mtx.RUnlock()
	return h.clients[connID]
}

func (h *Hub) roomSnapshot(roomID string) []*Client {
	h.mtx.RLock()
	defer h.mtx.RUnlock()

	room := h.rooms[roomID]
	clients := make([]*Client, 0, len(room))
	for _, client := range room {
		clients = append(clients, client)
	}
	return clients
}
