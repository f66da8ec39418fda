// internal/app/features/users/routes.go
package users

import (
	"github.com/go-chi/chi/v5"
	"github.com/hackmatehq/hackmate/internal/app/system/identity"
)

// Routes mounts the user provisioning surface. Sync verifies its own
// credential because the local user record may not exist yet.
func Routes(h *Handler, verifier identity.Verifier) chi.Router {
	r := chi.NewRouter()
	r.Post("/sync", h.HandleSync(verifier))
	return r
}
