// internal/app/features/groups/view.go
package groups

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	groupstore "github.com/hackmatehq/hackmate/internal/app/store/groups"
	userstore "github.com/hackmatehq/hackmate/internal/app/store/users"
	"github.com/hackmatehq/hackmate/internal/app/system/apperr"
	"github.com/hackmatehq/hackmate/internal/app/system/httpjson"
	"github.com/hackmatehq/hackmate/internal/app/system/timeouts"
	"github.com/hackmatehq/hackmate/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// groupIDParam extracts and validates the {id} route parameter.
func groupIDParam(r *http.Request) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		return primitive.NilObjectID, apperr.Validation("Invalid group id.")
	}
	return id, nil
}

// HandleGetGroup services GET /groups/{id} with leader and member
// identities resolved.
func (h *Handler) HandleGetGroup(w http.ResponseWriter, r *http.Request) {
	id, err := groupIDParam(r)
	if err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	group, err := groupstore.New(h.DB).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, apperr.NotFound("Group not found."), h.Log)
			return
		}
		httpjson.Error(w, apperr.Server("Server error while fetching group.", err), h.Log)
		return
	}

	ids := append([]primitive.ObjectID{group.LeaderID}, group.Members...)
	summaries, err := userstore.New(h.DB).Summaries(ctx, ids)
	if err != nil {
		httpjson.Error(w, apperr.Server("Server error while fetching group.", err), h.Log)
		return
	}

	// The leader surfaces with contact email; members surface with skills.
	leader := summaries[group.LeaderID]
	leader.Skills = nil

	view := models.GroupView{
		Group:         group,
		Leader:        leader,
		MemberDetails: make([]models.UserSummary, 0, len(group.Members)),
	}
	for _, m := range group.Members {
		if s, ok := summaries[m]; ok {
			s.Email = ""
			view.MemberDetails = append(view.MemberDetails, s)
		}
	}

	httpjson.Write(w, http.StatusOK, view)
}
