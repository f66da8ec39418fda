// internal/app/features/applications/list.go
package applications

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	groupstore "github.com/hackmatehq/hackmate/internal/app/store/groups"
	"github.com/hackmatehq/hackmate/internal/app/store/queries/applicationviews"
	"github.com/hackmatehq/hackmate/internal/app/system/apperr"
	"github.com/hackmatehq/hackmate/internal/app/system/httpjson"
	"github.com/hackmatehq/hackmate/internal/app/system/identity"
	"github.com/hackmatehq/hackmate/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// HandleListApplications services GET /applications/group/{groupId}: the
// pending queue for a group, visible only to its leader.
func (h *Handler) HandleListApplications(w http.ResponseWriter, r *http.Request) {
	user, ok := identity.CurrentUser(r)
	if !ok {
		httpjson.Error(w, apperr.Unauthorized("Sign in required."), h.Log)
		return
	}
	groupID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "groupId"))
	if err != nil {
		httpjson.Error(w, apperr.Validation("Invalid group id."), h.Log)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	group, err := groupstore.New(h.DB).GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, apperr.NotFound("Group not found."), h.Log)
			return
		}
		httpjson.Error(w, apperr.Server("Server error while fetching applications.", err), h.Log)
		return
	}
	if group.LeaderID != user.ID {
		httpjson.Error(w, apperr.Forbidden("Only the group leader can view applications."), h.Log)
		return
	}

	views, err := applicationviews.ListPendingForGroup(ctx, h.DB, groupID)
	if err != nil {
		httpjson.Error(w, apperr.Server("Server error while fetching applications.", err), h.Log)
		return
	}

	httpjson.Write(w, http.StatusOK, views)
}
