// internal/app/realtime/session.go
package realtime

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/hackmatehq/hackmate/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const (
	// pongWait is how long a connection may go silent before the read
	// side gives up; pings go out on pingPeriod to keep it alive.
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
	writeWait  = 10 * time.Second
)

// Session is one authenticated websocket connection. The connection is
// only ever written by writePump draining the send channel, so all
// outbound traffic (broadcasts, error events, pings) is serialized.
type Session struct {
	ID   string
	User models.User

	conn *websocket.Conn
	log  *zap.Logger

	// mu guards the send channel's lifecycle and the current room.
	// trySend races Close across the registry, the gateway, and
	// readPump's teardown, so the closed check and the channel send
	// happen under the same lock that performs the close.
	mu     sync.Mutex
	send   chan []byte
	closed bool
	room   primitive.ObjectID
}

func newSession(conn *websocket.Conn, user models.User, sendBuffer int, logger *zap.Logger) *Session {
	return &Session{
		ID:   uuid.NewString(),
		User: user,
		conn: conn,
		log:  logger,
		send: make(chan []byte, sendBuffer),
	}
}

// joinRoom records the session's current room. A session sits in at most
// one room; joining another replaces it, and the returned previous room
// (when there was a different one) must be left in the registry.
func (s *Session) joinRoom(groupID primitive.ObjectID) (primitive.ObjectID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.room
	s.room = groupID
	return prev, !prev.IsZero() && prev != groupID
}

// inRoom reports whether groupID is the session's current room. Messages
// to any other room are rejected.
func (s *Session) inRoom(groupID primitive.ObjectID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.room == groupID
}

// leaveRoom clears the current room if it matches groupID.
func (s *Session) leaveRoom(groupID primitive.ObjectID) {
	s.mu.Lock()
	if s.room == groupID {
		s.room = primitive.ObjectID{}
	}
	s.mu.Unlock()
}

// trySend queues payload without blocking. False means the session is
// closed, or its queue is full and it should be evicted.
func (s *Session) trySend(payload []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	select {
	case s.send <- payload:
		return true
	default:
		return false
	}
}

// Close shuts the outbound queue; writePump then sends a close frame and
// tears down the connection. Safe to call more than once and safe against
// concurrent trySend.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.send)
}

// readPump consumes inbound frames and hands them to the gateway until the
// connection dies. It owns the read deadline: every pong extends it.
func (s *Session) readPump(g *Gateway) {
	defer func() {
		g.registry.Drop(s)
		s.Close()
		_ = s.conn.Close()
	}()

	s.conn.SetReadLimit(g.maxMessageBytes)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure) {
				s.log.Warn("websocket read failed",
					zap.String("session_id", s.ID),
					zap.Error(err))
			}
			return
		}
		g.handleFrame(s, raw)
	}
}

// writePump drains the send channel onto the wire and keeps the
// connection alive with pings.
func (s *Session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
