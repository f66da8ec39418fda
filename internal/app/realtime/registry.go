// internal/app/realtime/registry.go
package realtime

import (
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Registry tracks which sessions are in which group rooms and fans
// broadcasts out to them. A session sits in at most one room at a time; a
// room exists exactly as long as it has at least one session.
type Registry struct {
	mu    sync.RWMutex
	rooms map[primitive.ObjectID]map[*Session]struct{}
	log   *zap.Logger
}

// NewRegistry builds an empty registry.
func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{
		rooms: make(map[primitive.ObjectID]map[*Session]struct{}),
		log:   logger,
	}
}

// Join adds a session to a group room.
func (reg *Registry) Join(groupID primitive.ObjectID, s *Session) {
	reg.mu.Lock()
	room, ok := reg.rooms[groupID]
	if !ok {
		room = make(map[*Session]struct{})
		reg.rooms[groupID] = room
	}
	room[s] = struct{}{}
	size := len(room)
	reg.mu.Unlock()

	reg.log.Info("session joined room",
		zap.String("group_id", groupID.Hex()),
		zap.String("session_id", s.ID),
		zap.Int("room_size", size))
}

// Leave removes a session from one room, dropping the room when it empties.
func (reg *Registry) Leave(groupID primitive.ObjectID, s *Session) {
	reg.mu.Lock()
	if room, ok := reg.rooms[groupID]; ok {
		delete(room, s)
		if len(room) == 0 {
			delete(reg.rooms, groupID)
		}
	}
	reg.mu.Unlock()
}

// Drop removes a session from any room it is in. Called when the session's
// connection closes.
func (reg *Registry) Drop(s *Session) {
	reg.mu.Lock()
	for groupID, room := range reg.rooms {
		if _, ok := room[s]; ok {
			delete(room, s)
			if len(room) == 0 {
				delete(reg.rooms, groupID)
			}
		}
	}
	reg.mu.Unlock()
}

// RoomSize reports how many sessions are in a group's room.
func (reg *Registry) RoomSize(groupID primitive.ObjectID) int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.rooms[groupID])
}

// Broadcast queues payload to every session in the group's room. A session
// whose outbound queue is full is closed and dropped rather than allowed
// to stall the room; it can reconnect and replay history over REST.
func (reg *Registry) Broadcast(groupID primitive.ObjectID, payload []byte) {
	reg.mu.RLock()
	room := reg.rooms[groupID]
	sessions := make([]*Session, 0, len(room))
	for s := range room {
		sessions = append(sessions, s)
	}
	reg.mu.RUnlock()

	var slow []*Session
	for _, s := range sessions {
		if !s.trySend(payload) {
			slow = append(slow, s)
		}
	}
	for _, s := range slow {
		reg.log.Warn("dropping slow chat session",
			zap.String("session_id", s.ID),
			zap.String("group_id", groupID.Hex()))
		reg.Drop(s)
		s.Close()
	}
}
