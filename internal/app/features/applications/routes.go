// internal/app/features/applications/routes.go
package applications

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes mounts the application surface. Everything here requires an
// authenticated user.
func Routes(h *Handler, requireUser func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(requireUser)

	r.Post("/", h.HandleSubmitApplication)
	r.Get("/group/{groupId}", h.HandleListApplications)
	r.Put("/{id}", h.HandleDecideApplication)

	return r
}
