// internal/app/features/groups/mygroups.go
package groups

import (
	"context"
	"net/http"

	groupstore "github.com/hackmatehq/hackmate/internal/app/store/groups"
	"github.com/hackmatehq/hackmate/internal/app/system/apperr"
	"github.com/hackmatehq/hackmate/internal/app/system/httpjson"
	"github.com/hackmatehq/hackmate/internal/app/system/identity"
	"github.com/hackmatehq/hackmate/internal/app/system/timeouts"
	"github.com/hackmatehq/hackmate/internal/domain/models"
)

// HandleMyGroups services GET /groups/my-groups: every group the caller
// belongs to, filtered by status (default open).
func (h *Handler) HandleMyGroups(w http.ResponseWriter, r *http.Request) {
	user, ok := identity.CurrentUser(r)
	if !ok {
		httpjson.Error(w, apperr.Unauthorized("Sign in required."), h.Log)
		return
	}

	status := r.URL.Query().Get("status")
	switch status {
	case "":
		status = models.GroupStatusOpen
	case models.GroupStatusOpen, models.GroupStatusLocked, models.GroupStatusDisbanded:
	default:
		httpjson.Error(w, apperr.Validation("Invalid status filter."), h.Log)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	groups, err := groupstore.New(h.DB).ListByMember(ctx, user.ID, status)
	if err != nil {
		httpjson.Error(w, apperr.Server("Server error while fetching your groups.", err), h.Log)
		return
	}

	httpjson.Write(w, http.StatusOK, groups)
}
