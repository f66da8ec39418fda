// internal/app/features/applications/decide.go
package applications

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	applicationstore "github.com/hackmatehq/hackmate/internal/app/store/applications"
	groupstore "github.com/hackmatehq/hackmate/internal/app/store/groups"
	"github.com/hackmatehq/hackmate/internal/app/system/apperr"
	"github.com/hackmatehq/hackmate/internal/app/system/httpjson"
	"github.com/hackmatehq/hackmate/internal/app/system/identity"
	"github.com/hackmatehq/hackmate/internal/app/system/timeouts"
	"github.com/hackmatehq/hackmate/internal/app/system/txn"
	"github.com/hackmatehq/hackmate/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type decideApplicationInput struct {
	Status string `json:"status"`
}

// HandleDecideApplication services PUT /applications/{id}. Only the leader
// of the applied-to group decides. Acceptance admits the applicant and
// flips the application in one transaction; the conditional member write
// still guards capacity inside it, so a full group aborts the accept.
func (h *Handler) HandleDecideApplication(w http.ResponseWriter, r *http.Request) {
	user, ok := identity.CurrentUser(r)
	if !ok {
		httpjson.Error(w, apperr.Unauthorized("Sign in required."), h.Log)
		return
	}
	appID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, apperr.Validation("Invalid application id."), h.Log)
		return
	}

	var in decideApplicationInput
	if err := httpjson.Decode(w, r, &in); err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}
	if in.Status != models.ApplicationStatusAccepted && in.Status != models.ApplicationStatusRejected {
		httpjson.Error(w, apperr.Validation("Status must be accepted or rejected."), h.Log)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	aStore := applicationstore.New(h.DB)
	app, err := aStore.GetByID(ctx, appID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, apperr.NotFound("Application not found."), h.Log)
			return
		}
		httpjson.Error(w, apperr.Server("Server error while deciding application.", err), h.Log)
		return
	}

	gStore := groupstore.New(h.DB)
	group, err := gStore.GetByID(ctx, app.GroupID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, apperr.NotFound("Group not found."), h.Log)
			return
		}
		httpjson.Error(w, apperr.Server("Server error while deciding application.", err), h.Log)
		return
	}
	if group.LeaderID != user.ID {
		httpjson.Error(w, apperr.Forbidden("Only the group leader can decide applications."), h.Log)
		return
	}

	var decided models.Application
	if in.Status == models.ApplicationStatusRejected {
		decided, err = aStore.MarkDecided(ctx, appID, models.ApplicationStatusRejected)
	} else {
		err = txn.WithTransaction(ctx, h.Client, func(sc mongo.SessionContext) error {
			if err := gStore.AddMember(sc, app.GroupID, app.ApplicantID); err != nil {
				return err
			}
			var txErr error
			decided, txErr = aStore.MarkDecided(sc, appID, models.ApplicationStatusAccepted)
			return txErr
		})
	}
	switch {
	case err == nil:
	case errors.Is(err, applicationstore.ErrNotPending):
		httpjson.Error(w, apperr.Validation("Application has already been decided."), h.Log)
		return
	case errors.Is(err, groupstore.ErrFull):
		httpjson.Error(w, apperr.Conflict("Cannot accept, group is full."), h.Log)
		return
	case errors.Is(err, groupstore.ErrNotOpen):
		httpjson.Error(w, apperr.Conflict("Group is not open for new members."), h.Log)
		return
	case errors.Is(err, groupstore.ErrAlreadyMember):
		httpjson.Error(w, apperr.Conflict("Applicant is already a member of this group."), h.Log)
		return
	case txn.IsNotSupported(err):
		httpjson.Error(w, apperr.Server("Accepting applications requires a MongoDB replica set.", err), h.Log)
		return
	default:
		httpjson.Error(w, apperr.Server("Server error while deciding application.", err), h.Log)
		return
	}

	h.Log.Info("application decided",
		zap.String("application_id", appID.Hex()),
		zap.String("group_id", app.GroupID.Hex()),
		zap.String("status", decided.Status))

	httpjson.Write(w, http.StatusOK, decided)
}
