// internal/app/features/groups/disband.go
package groups

import (
	"context"
	"errors"
	"net/http"

	groupstore "github.com/hackmatehq/hackmate/internal/app/store/groups"
	userstore "github.com/hackmatehq/hackmate/internal/app/store/users"
	"github.com/hackmatehq/hackmate/internal/app/system/apperr"
	"github.com/hackmatehq/hackmate/internal/app/system/htmlsanitize"
	"github.com/hackmatehq/hackmate/internal/app/system/httpjson"
	"github.com/hackmatehq/hackmate/internal/app/system/identity"
	"github.com/hackmatehq/hackmate/internal/app/system/timeouts"
	"github.com/hackmatehq/hackmate/internal/app/system/txn"
	"github.com/hackmatehq/hackmate/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type disbandGroupInput struct {
	Outcome string `json:"outcome"`
}

// HandleDisbandGroup services PUT /groups/{id}/disband. The status flip and
// the history fan-out to every member commit in one transaction, so a
// disbanded group always has its run recorded on every roster.
func (h *Handler) HandleDisbandGroup(w http.ResponseWriter, r *http.Request) {
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

	var in disbandGroupInput
	if r.ContentLength > 0 {
		if err := httpjson.Decode(w, r, &in); err != nil {
			httpjson.Error(w, err, h.Log)
			return
		}
	}
	outcome := htmlsanitize.Plain(in.Outcome)
	if outcome == "" {
		outcome = "Participant"
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	gStore := groupstore.New(h.DB)
	group, err := gStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, apperr.NotFound("Group not found."), h.Log)
			return
		}
		httpjson.Error(w, apperr.Server("Server error while disbanding group.", err), h.Log)
		return
	}
	if group.LeaderID != user.ID {
		httpjson.Error(w, apperr.Forbidden("Only the group leader can disband the group."), h.Log)
		return
	}

	entry := models.HistoryEntry{
		HackathonName: group.HackathonName,
		TeamName:      group.Name,
		Outcome:       outcome,
	}

	uStore := userstore.New(h.DB)
	var members []primitive.ObjectID
	err = txn.WithTransaction(ctx, h.Client, func(sc mongo.SessionContext) error {
		// The roster is re-read inside the transaction: a join can commit
		// after the leader check above, and a transient-error retry re-runs
		// this callback. Every member at disband time gets the entry.
		current, err := gStore.GetByID(sc, id)
		if err != nil {
			return err
		}
		members = current.Members
		if err := gStore.MarkDisbanded(sc, id); err != nil {
			return err
		}
		return uStore.PushHistory(sc, members, entry)
	})
	switch {
	case err == nil:
	case errors.Is(err, groupstore.ErrAlreadyDisbanded):
		httpjson.Error(w, apperr.Conflict("Group is already disbanded."), h.Log)
		return
	case txn.IsNotSupported(err):
		httpjson.Error(w, apperr.Server("Disband requires a MongoDB replica set.", err), h.Log)
		return
	default:
		httpjson.Error(w, apperr.Server("Server error while disbanding group.", err), h.Log)
		return
	}

	h.Log.Info("group disbanded",
		zap.String("group_id", id.Hex()),
		zap.String("leader_id", user.ID.Hex()),
		zap.Int("members", len(members)))

	httpjson.Write(w, http.StatusOK, membershipResponse{Message: "Group disbanded and history recorded."})
}
