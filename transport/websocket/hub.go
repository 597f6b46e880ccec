package websocket

import (
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/labyrinth-backend/internal/protocol"
)

// Hub tracks connected clients and the rooms they follow.
type Hub struct {
	logger *slog.Logger

	mutex   sync.RWMutex
	clients map[string]*client
	rooms   map[string]map[string]struct{}
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:  logger.With("component", "hub"),
		clients: make(map[string]*client),
		rooms:   make(map[string]map[string]struct{}),
	}
}

// Publish delivers room events: broadcasts to every follower of the room,
// targeted events to their player only. It never blocks.
func (that *Hub) Publish(roomID string, events []protocol.Event) {
	log := that.logger.With("method", "Publish", "roomID", roomID)

	that.mutex.RLock()
	defer that.mutex.RUnlock()

	for _, event := range events {
		data, err := event.Encode()
		if err != nil {
			log.Error("failed to encode event", "event", event.Name, "error", err)
			continue
		}

		if !event.IsBroadcast() {
			if c, ok := that.clients[event.Target]; ok {
				c.enqueue(data)
			}
			continue
		}

		for playerID := range that.rooms[roomID] {
			if c, ok := that.clients[playerID]; ok {
				c.enqueue(data)
			}
		}
	}
}

// Send delivers an event to a single player regardless of rooms.
func (that *Hub) Send(playerID string, event protocol.Event) {
	data, err := event.Encode()
	if err != nil {
		that.logger.Error("failed to encode event", "event", event.Name, "error", err)
		return
	}

	that.mutex.RLock()
	defer that.mutex.RUnlock()

	if c, ok := that.clients[playerID]; ok {
		c.enqueue(data)
	}
}

func (that *Hub) register(c *client) {
	that.mutex.Lock()
	defer that.mutex.Unlock()

	that.clients[c.id] = c
}

// unregister forgets the client and returns the rooms it followed.
func (that *Hub) unregister(c *client) []string {
	that.mutex.Lock()
	defer that.mutex.Unlock()

	delete(that.clients, c.id)

	var rooms []string
	for roomID, followers := range that.rooms {
		if _, ok := followers[c.id]; !ok {
			continue
		}

		rooms = append(rooms, roomID)
		delete(followers, c.id)
		if len(followers) == 0 {
			delete(that.rooms, roomID)
		}
	}

	return rooms
}

// follow subscribes the player to room broadcasts and reports whether it is new.
func (that *Hub) follow(roomID, playerID string) bool {
	that.mutex.Lock()
	defer that.mutex.Unlock()

	followers, ok := that.rooms[roomID]
	if !ok {
		followers = make(map[string]struct{})
		that.rooms[roomID] = followers
	}

	if _, ok = followers[playerID]; ok {
		return false
	}

	followers[playerID] = struct{}{}

	return true
}

func (that *Hub) unfollow(roomID, playerID string) {
	that.mutex.Lock()
	defer that.mutex.Unlock()

	followers, ok := that.rooms[roomID]
	if !ok {
		return
	}

	delete(followers, playerID)
	if len(followers) == 0 {
		delete(that.rooms, roomID)
	}
}

func (that *Hub) hasFollowers(roomID string) bool {
	that.mutex.RLock()
	defer that.mutex.RUnlock()

	return len(that.rooms[roomID]) > 0
}
