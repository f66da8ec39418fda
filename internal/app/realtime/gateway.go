// internal/app/realtime/gateway.go
package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/hackmatehq/hackmate/internal/app/system/apperr"
	"github.com/hackmatehq/hackmate/internal/app/system/htmlsanitize"
	"github.com/hackmatehq/hackmate/internal/app/system/httpjson"
	"github.com/hackmatehq/hackmate/internal/app/system/identity"
	"github.com/hackmatehq/hackmate/internal/app/system/timeouts"
	"github.com/hackmatehq/hackmate/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// GroupSource resolves groups for room authorization. Implemented by the
// groups store.
type GroupSource interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (models.Group, error)
}

// MessageSink persists chat messages. Implemented by the messages store.
type MessageSink interface {
	Create(ctx context.Context, m models.Message) (models.Message, error)
}

// Config tunes per-connection behavior.
type Config struct {
	SendBuffer      int   // outbound queue length per session
	MaxMessageBytes int64 // read limit on inbound frames
}

// Gateway is the websocket endpoint. It authenticates the handshake,
// upgrades, and then routes event frames: join_group admits the session
// into a room after a membership check, send_message persists and then
// broadcasts.
type Gateway struct {
	registry *Registry
	groups   GroupSource
	messages MessageSink
	verifier identity.Verifier
	users    identity.UserLoader
	log      *zap.Logger

	upgrader        websocket.Upgrader
	sendBuffer      int
	maxMessageBytes int64
}

// NewGateway wires a Gateway.
func NewGateway(reg *Registry, groups GroupSource, messages MessageSink, verifier identity.Verifier, users identity.UserLoader, cfg Config, logger *zap.Logger) *Gateway {
	return &Gateway{
		registry: reg,
		groups:   groups,
		messages: messages,
		verifier: verifier,
		users:    users,
		log:      logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Auth is the bearer token, not the Origin header; browser
			// clients connect from arbitrary origins.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		sendBuffer:      cfg.SendBuffer,
		maxMessageBytes: cfg.MaxMessageBytes,
	}
}

// ServeHTTP handles GET /ws. The credential is checked before the upgrade
// so an unauthenticated caller gets a plain 401, never a socket.
func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	token := identity.BearerToken(r)
	if token == "" {
		httpjson.Error(w, apperr.Unauthorized("Not authorized, no token provided."), g.log)
		return
	}
	subject, err := g.verifier.Verify(r.Context(), token)
	if err != nil {
		if !errors.Is(err, identity.ErrInvalidCredential) {
			g.log.Warn("identity verification failed", zap.Error(err))
		}
		httpjson.Error(w, apperr.Unauthorized("Not authorized, token failed."), g.log)
		return
	}
	user, err := g.users.GetBySubject(r.Context(), subject)
	if err != nil {
		httpjson.Error(w, apperr.Unauthorized("User not found."), g.log)
		return
	}

	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		g.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	s := newSession(conn, user, g.sendBuffer, g.log)
	g.log.Info("chat session opened",
		zap.String("session_id", s.ID),
		zap.String("user_id", user.ID.Hex()))

	go s.writePump()
	s.readPump(g)

	g.log.Info("chat session closed", zap.String("session_id", s.ID))
}

// handleFrame dispatches one inbound frame. Malformed frames and domain
// failures answer with an error event on the same session; they never tear
// the connection down.
func (g *Gateway) handleFrame(s *Session, raw []byte) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		s.trySend(ErrorEvent("Malformed event."))
		return
	}

	switch env.Event {
	case EventJoinGroup:
		g.handleJoinGroup(s, env.Data)
	case EventSendMessage:
		g.handleSendMessage(s, env.Data)
	default:
		s.trySend(ErrorEvent("Unknown event."))
	}
}

func (g *Gateway) handleJoinGroup(s *Session, data json.RawMessage) {
	var in JoinGroupData
	if err := json.Unmarshal(data, &in); err != nil {
		s.trySend(ErrorEvent("Malformed join_group event."))
		return
	}
	groupID, err := primitive.ObjectIDFromHex(in.GroupID)
	if err != nil {
		s.trySend(ErrorEvent("Invalid group id."))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeouts.Short())
	defer cancel()

	group, err := g.groups.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			s.trySend(ErrorEvent("Group not found."))
			return
		}
		g.log.Error("room authorization failed", zap.Error(err))
		s.trySend(ErrorEvent("Could not join group chat."))
		return
	}
	if !group.HasMember(s.User.ID) {
		s.trySend(ErrorEvent("You are not a member of this group."))
		return
	}
	if group.Status == models.GroupStatusDisbanded {
		s.trySend(ErrorEvent("Group has been disbanded."))
		return
	}

	// Joining another group replaces the previous room; fan-out from the
	// old room stops here.
	if prev, replaced := s.joinRoom(groupID); replaced {
		g.registry.Leave(prev, s)
	}
	g.registry.Join(groupID, s)
}

func (g *Gateway) handleSendMessage(s *Session, data json.RawMessage) {
	var in SendMessageData
	if err := json.Unmarshal(data, &in); err != nil {
		s.trySend(ErrorEvent("Malformed send_message event."))
		return
	}
	groupID, err := primitive.ObjectIDFromHex(in.GroupID)
	if err != nil {
		s.trySend(ErrorEvent("Invalid group id."))
		return
	}
	if !s.inRoom(groupID) {
		s.trySend(ErrorEvent("Join the group chat before sending messages."))
		return
	}

	content := htmlsanitize.Plain(in.Content)
	if content == "" {
		s.trySend(ErrorEvent("Message content is required."))
		return
	}
	if len(content) > models.MaxMessageContentLen {
		s.trySend(ErrorEvent("Message is too long."))
		return
	}
	contentType := in.ContentType
	switch contentType {
	case "":
		contentType = models.ContentTypeText
	case models.ContentTypeText, models.ContentTypeMedia:
	default:
		s.trySend(ErrorEvent("Invalid content type."))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeouts.Short())
	defer cancel()

	// Joining the room admitted the session once; membership can have been
	// revoked since (leave, disband), so re-check against the current group.
	group, err := g.groups.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			s.trySend(ErrorEvent("Group not found."))
			return
		}
		g.log.Error("membership check failed", zap.Error(err))
		s.trySend(ErrorEvent("Could not send message."))
		return
	}
	if !group.HasMember(s.User.ID) || group.Status == models.GroupStatusDisbanded {
		s.leaveRoom(groupID)
		g.registry.Leave(groupID, s)
		s.trySend(ErrorEvent("You are no longer a member of this group."))
		return
	}

	// Persist first; the broadcast only ever carries stored messages, so
	// everything a client sees live is also in history.
	msg, err := g.messages.Create(ctx, models.Message{
		SenderID:    s.User.ID,
		GroupID:     groupID,
		Content:     content,
		ContentType: contentType,
	})
	if err != nil {
		g.log.Error("message persist failed",
			zap.String("group_id", groupID.Hex()),
			zap.Error(err))
		s.trySend(ErrorEvent("Could not send message."))
		return
	}

	view := models.MessageView{
		Message: msg,
		Sender: models.UserSummary{
			ID:             s.User.ID,
			Name:           s.User.Name,
			ProfilePicture: s.User.ProfilePicture,
		},
	}
	payload, err := MessageEvent(view)
	if err != nil {
		g.log.Error("message encode failed", zap.Error(err))
		return
	}
	g.registry.Broadcast(groupID, payload)
}
