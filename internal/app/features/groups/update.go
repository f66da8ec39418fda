// internal/app/features/groups/update.go
package groups

import (
	"context"
	"errors"
	"net/http"
	"strings"

	groupstore "github.com/hackmatehq/hackmate/internal/app/store/groups"
	"github.com/hackmatehq/hackmate/internal/app/system/apperr"
	"github.com/hackmatehq/hackmate/internal/app/system/htmlsanitize"
	"github.com/hackmatehq/hackmate/internal/app/system/httpjson"
	"github.com/hackmatehq/hackmate/internal/app/system/identity"
	"github.com/hackmatehq/hackmate/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
)

type updateGroupInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// HandleUpdateGroup services PUT /groups/{id}. Only the leader may edit,
// and only name, description, and tags are editable; capacity and the
// application form are fixed at creation.
func (h *Handler) HandleUpdateGroup(w http.ResponseWriter, r *http.Request) {
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

	var in updateGroupInput
	if err := httpjson.Decode(w, r, &in); err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}

	var fieldErrs []apperr.FieldError
	in.Name = strings.TrimSpace(in.Name)
	if len(in.Name) < minNameLen || len(in.Name) > maxNameLen {
		fieldErrs = append(fieldErrs, apperr.FieldError{Field: "name", Message: "Group name must be between 3 and 50 characters"})
	}
	in.Description = htmlsanitize.Plain(in.Description)
	if len(in.Description) > maxDescLen {
		fieldErrs = append(fieldErrs, apperr.FieldError{Field: "description", Message: "Description cannot be more than 500 characters"})
	}
	if len(fieldErrs) > 0 {
		httpjson.Error(w, apperr.Validation("Invalid group data.", fieldErrs...), h.Log)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	store := groupstore.New(h.DB)
	group, err := store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, apperr.NotFound("Group not found."), h.Log)
			return
		}
		httpjson.Error(w, apperr.Server("Server error while updating group.", err), h.Log)
		return
	}
	if group.LeaderID != user.ID {
		httpjson.Error(w, apperr.Forbidden("Only the group leader can update the group."), h.Log)
		return
	}

	updated, err := store.UpdateInfo(ctx, id, in.Name, in.Description, in.Tags)
	if err != nil {
		httpjson.Error(w, apperr.Server("Server error while updating group.", err), h.Log)
		return
	}

	httpjson.Write(w, http.StatusOK, updated)
}
