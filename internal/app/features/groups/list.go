// internal/app/features/groups/list.go
package groups

import (
	"context"
	"net/http"
	"strings"

	groupstore "github.com/hackmatehq/hackmate/internal/app/store/groups"
	userstore "github.com/hackmatehq/hackmate/internal/app/store/users"
	"github.com/hackmatehq/hackmate/internal/app/system/apperr"
	"github.com/hackmatehq/hackmate/internal/app/system/httpjson"
	"github.com/hackmatehq/hackmate/internal/app/system/paging"
	"github.com/hackmatehq/hackmate/internal/app/system/timeouts"
	"github.com/hackmatehq/hackmate/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type listGroupsResponse struct {
	Groups     []models.GroupListItem `json:"groups"`
	Pagination paging.Meta            `json:"pagination"`
}

// HandleListGroups services GET /groups: a paginated directory of open
// groups, optionally filtered by hackathon name substring and tags.
func (h *Handler) HandleListGroups(w http.ResponseWriter, r *http.Request) {
	params := paging.Parse(r)

	f := groupstore.Filter{
		HackathonName: strings.TrimSpace(r.URL.Query().Get("hackathonName")),
	}
	if raw := r.URL.Query().Get("tags"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				f.Tags = append(f.Tags, t)
			}
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	groups, total, err := groupstore.New(h.DB).List(ctx, f, params.Skip(), int64(params.Limit))
	if err != nil {
		httpjson.Error(w, apperr.Server("Server error while fetching groups.", err), h.Log)
		return
	}

	leaderIDs := make([]primitive.ObjectID, 0, len(groups))
	for _, g := range groups {
		leaderIDs = append(leaderIDs, g.LeaderID)
	}
	leaders, err := userstore.New(h.DB).Summaries(ctx, leaderIDs)
	if err != nil {
		httpjson.Error(w, apperr.Server("Server error while fetching groups.", err), h.Log)
		return
	}

	items := make([]models.GroupListItem, 0, len(groups))
	for _, g := range groups {
		items = append(items, models.GroupListItem{Group: g, Leader: leaders[g.LeaderID]})
	}

	httpjson.Write(w, http.StatusOK, listGroupsResponse{
		Groups:     items,
		Pagination: params.MetaFor(total),
	})
}
