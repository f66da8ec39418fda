// internal/app/features/groups/create.go
package groups

import (
	"context"
	"net/http"
	"strings"

	groupstore "github.com/hackmatehq/hackmate/internal/app/store/groups"
	"github.com/hackmatehq/hackmate/internal/app/system/apperr"
	"github.com/hackmatehq/hackmate/internal/app/system/htmlsanitize"
	"github.com/hackmatehq/hackmate/internal/app/system/httpjson"
	"github.com/hackmatehq/hackmate/internal/app/system/identity"
	"github.com/hackmatehq/hackmate/internal/app/system/timeouts"
	"github.com/hackmatehq/hackmate/internal/domain/models"
	"go.uber.org/zap"
)

// Field bounds for group creation and edits.
const (
	minNameLen = 3
	maxNameLen = 50
	maxDescLen = 500
)

type createGroupInput struct {
	Name            string                `json:"name"`
	HackathonName   string                `json:"hackathonName"`
	Description     string                `json:"description"`
	MemberLimit     int                   `json:"memberLimit"`
	Tags            []string              `json:"tags"`
	Visibility      string                `json:"visibility"`
	ApplicationForm []models.FormQuestion `json:"applicationForm"`
}

func (in *createGroupInput) validate() []apperr.FieldError {
	var errs []apperr.FieldError

	in.Name = strings.TrimSpace(in.Name)
	if len(in.Name) < minNameLen || len(in.Name) > maxNameLen {
		errs = append(errs, apperr.FieldError{Field: "name", Message: "Group name must be between 3 and 50 characters"})
	}

	in.HackathonName = strings.TrimSpace(in.HackathonName)
	if in.HackathonName == "" {
		errs = append(errs, apperr.FieldError{Field: "hackathonName", Message: "Hackathon name is required"})
	}

	if in.MemberLimit < models.MinMemberLimit || in.MemberLimit > models.MaxMemberLimit {
		errs = append(errs, apperr.FieldError{Field: "memberLimit", Message: "Member limit must be between 2 and 10"})
	}

	in.Description = htmlsanitize.Plain(in.Description)
	if len(in.Description) > maxDescLen {
		errs = append(errs, apperr.FieldError{Field: "description", Message: "Description cannot be more than 500 characters"})
	}

	tags := in.Tags[:0]
	for _, t := range in.Tags {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	in.Tags = tags

	form := in.ApplicationForm[:0]
	for _, q := range in.ApplicationForm {
		if q.Question = htmlsanitize.Plain(q.Question); q.Question != "" {
			form = append(form, q)
		}
	}
	in.ApplicationForm = form

	if in.Visibility != "" && in.Visibility != models.VisibilityPublic && in.Visibility != models.VisibilityCollegeOnly {
		errs = append(errs, apperr.FieldError{Field: "visibility", Message: "Visibility must be Public or College-only"})
	}

	return errs
}

// HandleCreateGroup services POST /groups. The creator becomes leader and
// sole member of a new open group.
func (h *Handler) HandleCreateGroup(w http.ResponseWriter, r *http.Request) {
	user, ok := identity.CurrentUser(r)
	if !ok {
		httpjson.Error(w, apperr.Unauthorized("Sign in required."), h.Log)
		return
	}

	var in createGroupInput
	if err := httpjson.Decode(w, r, &in); err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}
	if fieldErrs := in.validate(); len(fieldErrs) > 0 {
		httpjson.Error(w, apperr.Validation("Invalid group data.", fieldErrs...), h.Log)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	store := groupstore.New(h.DB)
	group, err := store.Create(ctx, models.Group{
		Name:            in.Name,
		HackathonName:   in.HackathonName,
		Description:     in.Description,
		Tags:            in.Tags,
		LeaderID:        user.ID,
		MemberLimit:     in.MemberLimit,
		Visibility:      in.Visibility,
		ApplicationForm: in.ApplicationForm,
	})
	if err != nil {
		httpjson.Error(w, apperr.Server("Server error during group creation.", err), h.Log)
		return
	}

	h.Log.Info("group created",
		zap.String("group_id", group.ID.Hex()),
		zap.String("leader_id", user.ID.Hex()),
		zap.String("hackathon", group.HackathonName))

	httpjson.Write(w, http.StatusCreated, group)
}
