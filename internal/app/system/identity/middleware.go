package identity

import (
	"context"
	"net/http"

	"github.com/hackmatehq/hackmate/internal/app/system/apperr"
	"github.com/hackmatehq/hackmate/internal/app/system/httpjson"
	"github.com/hackmatehq/hackmate/internal/domain/models"
	"go.uber.org/zap"
)

// UserLoader resolves a verified subject to the local user record.
// Implemented by the users store.
type UserLoader interface {
	GetBySubject(ctx context.Context, subjectID string) (models.User, error)
}

type ctxKey struct{}

// CurrentUser returns the authenticated user injected by RequireUser.
func CurrentUser(r *http.Request) (models.User, bool) {
	u, ok := r.Context().Value(ctxKey{}).(models.User)
	return u, ok
}

func withUser(r *http.Request, u models.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), ctxKey{}, u))
}

// WithTestUser injects a user directly into the request context, bypassing
// verification. Test helper only.
func WithTestUser(r *http.Request, u models.User) *http.Request {
	return withUser(r, u)
}

// RequireUser verifies the bearer credential, loads the matching user, and
// injects it into the request context. Any failure is a 401; there is no
// anonymous path through routes that use this.
func RequireUser(v Verifier, users UserLoader, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				httpjson.Error(w, apperr.Unauthorized("Not authorized, no token provided."), log)
				return
			}

			subject, err := v.Verify(r.Context(), token)
			if err != nil {
				if err != ErrInvalidCredential {
					log.Warn("identity verification failed", zap.Error(err))
				}
				httpjson.Error(w, apperr.Unauthorized("Not authorized, token failed."), log)
				return
			}

			user, err := users.GetBySubject(r.Context(), subject)
			if err != nil {
				httpjson.Error(w, apperr.Unauthorized("User not found."), log)
				return
			}

			next.ServeHTTP(w, withUser(r, user))
		})
	}
}
