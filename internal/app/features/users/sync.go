// internal/app/features/users/sync.go
package users

import (
	"context"
	"errors"
	"net/http"
	"strings"

	userstore "github.com/hackmatehq/hackmate/internal/app/store/users"
	"github.com/hackmatehq/hackmate/internal/app/system/apperr"
	"github.com/hackmatehq/hackmate/internal/app/system/htmlsanitize"
	"github.com/hackmatehq/hackmate/internal/app/system/httpjson"
	"github.com/hackmatehq/hackmate/internal/app/system/identity"
	"github.com/hackmatehq/hackmate/internal/app/system/timeouts"
	"github.com/hackmatehq/hackmate/internal/domain/models"
	"go.uber.org/zap"
)

type syncUserInput struct {
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	ProfilePicture string   `json:"profilePicture"`
	Bio            string   `json:"bio"`
	Year           string   `json:"year"`
	Skills         []string `json:"skills"`
}

// HandleSync services POST /users/sync. The identity provider owns
// credentials; this endpoint creates or refreshes the local profile record
// for a verified subject. It runs before RequireUser can succeed for a new
// user, so it verifies the credential itself.
func (h *Handler) HandleSync(verifier identity.Verifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := identity.BearerToken(r)
		if token == "" {
			httpjson.Error(w, apperr.Unauthorized("Not authorized, no token provided."), h.Log)
			return
		}
		subject, err := verifier.Verify(r.Context(), token)
		if err != nil {
			if !errors.Is(err, identity.ErrInvalidCredential) {
				h.Log.Warn("identity verification failed", zap.Error(err))
			}
			httpjson.Error(w, apperr.Unauthorized("Not authorized, token failed."), h.Log)
			return
		}

		var in syncUserInput
		if err := httpjson.Decode(w, r, &in); err != nil {
			httpjson.Error(w, err, h.Log)
			return
		}

		var fieldErrs []apperr.FieldError
		in.Name = htmlsanitize.Plain(in.Name)
		if in.Name == "" {
			fieldErrs = append(fieldErrs, apperr.FieldError{Field: "name", Message: "Name is required"})
		}
		in.Email = strings.TrimSpace(strings.ToLower(in.Email))
		if in.Email == "" || !strings.Contains(in.Email, "@") {
			fieldErrs = append(fieldErrs, apperr.FieldError{Field: "email", Message: "A valid email is required"})
		}
		if len(fieldErrs) > 0 {
			httpjson.Error(w, apperr.Validation("Invalid profile data.", fieldErrs...), h.Log)
			return
		}

		skills := in.Skills[:0]
		for _, s := range in.Skills {
			if s = htmlsanitize.Plain(s); s != "" {
				skills = append(skills, s)
			}
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
		defer cancel()

		user, err := userstore.New(h.DB).Upsert(ctx, models.User{
			SubjectID:      subject,
			Name:           in.Name,
			Email:          in.Email,
			ProfilePicture: strings.TrimSpace(in.ProfilePicture),
			Bio:            htmlsanitize.Plain(in.Bio),
			Year:           htmlsanitize.Plain(in.Year),
			Skills:         skills,
		})
		if err != nil {
			httpjson.Error(w, apperr.Server("Server error while syncing profile.", err), h.Log)
			return
		}

		httpjson.Write(w, http.StatusOK, user)
	}
}
