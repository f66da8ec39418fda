// internal/app/realtime/events.go

// Package realtime runs the websocket side of group chat: authenticated
// sessions, per-group rooms, and persist-then-broadcast message fan-out.
package realtime

import (
	"encoding/json"

	"github.com/hackmatehq/hackmate/internal/domain/models"
)

// Wire event names. Clients send join_group and send_message; the server
// emits receive_message and error.
const (
	EventJoinGroup      = "join_group"
	EventSendMessage    = "send_message"
	EventReceiveMessage = "receive_message"
	EventError          = "error"
)

// Envelope is the framing for every websocket message in both directions:
// an event name plus an event-specific payload.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// JoinGroupData is the payload of a join_group event.
type JoinGroupData struct {
	GroupID string `json:"groupId"`
}

// SendMessageData is the payload of a send_message event.
type SendMessageData struct {
	GroupID     string `json:"groupId"`
	Content     string `json:"content"`
	ContentType string `json:"contentType,omitempty"`
}

// ErrorData is the payload of an error event.
type ErrorData struct {
	Message string `json:"message"`
}

func marshalEvent(event string, data any) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Event: event, Data: raw})
}

// ErrorEvent encodes an error event for one session.
func ErrorEvent(message string) []byte {
	b, _ := marshalEvent(EventError, ErrorData{Message: message})
	return b
}

// MessageEvent encodes a receive_message broadcast.
func MessageEvent(view models.MessageView) ([]byte, error) {
	return marshalEvent(EventReceiveMessage, view)
}
