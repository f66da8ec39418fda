// internal/app/features/groups/membership.go
package groups

import (
	"context"
	"errors"
	"net/http"

	groupstore "github.com/hackmatehq/hackmate/internal/app/store/groups"
	"github.com/hackmatehq/hackmate/internal/app/system/apperr"
	"github.com/hackmatehq/hackmate/internal/app/system/httpjson"
	"github.com/hackmatehq/hackmate/internal/app/system/identity"
	"github.com/hackmatehq/hackmate/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type membershipResponse struct {
	Message string `json:"message"`
}

// HandleJoinGroup services POST /groups/{id}/join. Admission is a single
// conditional write in the store; this handler only translates outcomes.
func (h *Handler) HandleJoinGroup(w http.ResponseWriter, r *http.Request) {
	user, ok := identity.CurrentUser(r)
	if !ok {
		httpjson.Error(w, apperr.Unauthorized("Sign in required."), h.Log)
		return
	}
	id, err := groupIDParam(r)
	if err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err = groupstore.New(h.DB).AddMember(ctx, id, user.ID)
	switch {
	case err == nil:
	case errors.Is(err, mongo.ErrNoDocuments):
		httpjson.Error(w, apperr.NotFound("Group not found."), h.Log)
		return
	case errors.Is(err, groupstore.ErrAlreadyMember):
		httpjson.Error(w, apperr.Conflict("You are already a member of this group."), h.Log)
		return
	case errors.Is(err, groupstore.ErrNotOpen):
		httpjson.Error(w, apperr.Conflict("Group is not open for new members."), h.Log)
		return
	case errors.Is(err, groupstore.ErrFull):
		httpjson.Error(w, apperr.Conflict("Group is already full."), h.Log)
		return
	default:
		httpjson.Error(w, apperr.Server("Server error while joining group.", err), h.Log)
		return
	}

	h.Log.Info("member joined",
		zap.String("group_id", id.Hex()),
		zap.String("user_id", user.ID.Hex()))

	httpjson.Write(w, http.StatusOK, membershipResponse{Message: "Joined group successfully."})
}

// HandleLeaveGroup services POST /groups/{id}/leave. Leaders cannot leave;
// they disband instead.
func (h *Handler) HandleLeaveGroup(w http.ResponseWriter, r *http.Request) {
	user, ok := identity.CurrentUser(r)
	if !ok {
		httpjson.Error(w, apperr.Unauthorized("Sign in required."), h.Log)
		return
	}
	id, err := groupIDParam(r)
	if err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err = groupstore.New(h.DB).RemoveMember(ctx, id, user.ID)
	switch {
	case err == nil:
	case errors.Is(err, mongo.ErrNoDocuments):
		httpjson.Error(w, apperr.NotFound("Group not found."), h.Log)
		return
	case errors.Is(err, groupstore.ErrLeaderLeave):
		httpjson.Error(w, apperr.Validation("The leader cannot leave the group. Disband it instead."), h.Log)
		return
	case errors.Is(err, groupstore.ErrNotMember):
		httpjson.Error(w, apperr.Validation("You are not a member of this group."), h.Log)
		return
	default:
		httpjson.Error(w, apperr.Server("Server error while leaving group.", err), h.Log)
		return
	}

	h.Log.Info("member left",
		zap.String("group_id", id.Hex()),
		zap.String("user_id", user.ID.Hex()))

	httpjson.Write(w, http.StatusOK, membershipResponse{Message: "Left group successfully."})
}
