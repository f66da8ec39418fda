// internal/app/features/groups/routes.go
package groups

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes mounts the groups surface. Browsing is public; everything that
// writes, plus my-groups, requires an authenticated user.
func Routes(h *Handler, requireUser func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	// PUBLIC
	r.Get("/", h.HandleListGroups)

	r.Group(func(pr chi.Router) {
		pr.Use(requireUser)

		// static segment must register before the {id} wildcard
		pr.Get("/my-groups", h.HandleMyGroups)

		pr.Post("/", h.HandleCreateGroup)
		pr.Put("/{id}", h.HandleUpdateGroup)
		pr.Post("/{id}/join", h.HandleJoinGroup)
		pr.Post("/{id}/leave", h.HandleLeaveGroup)
		pr.Put("/{id}/disband", h.HandleDisbandGroup)
	})

	// PUBLIC detail (after /my-groups so chi resolves the literal first)
	r.Get("/{id}", h.HandleGetGroup)

	return r
}
