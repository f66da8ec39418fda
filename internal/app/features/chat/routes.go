// internal/app/features/chat/routes.go
package chat

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes mounts the chat history surface. Members only.
func Routes(h *Handler, requireUser func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(requireUser)

	r.Get("/{groupId}", h.HandleHistory)

	return r
}
