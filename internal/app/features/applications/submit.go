// internal/app/features/applications/submit.go
package applications

import (
	"context"
	"errors"
	"net/http"

	applicationstore "github.com/hackmatehq/hackmate/internal/app/store/applications"
	groupstore "github.com/hackmatehq/hackmate/internal/app/store/groups"
	"github.com/hackmatehq/hackmate/internal/app/system/apperr"
	"github.com/hackmatehq/hackmate/internal/app/system/htmlsanitize"
	"github.com/hackmatehq/hackmate/internal/app/system/httpjson"
	"github.com/hackmatehq/hackmate/internal/app/system/identity"
	"github.com/hackmatehq/hackmate/internal/app/system/timeouts"
	"github.com/hackmatehq/hackmate/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type submitApplicationInput struct {
	GroupID string          `json:"groupId"`
	Answers []models.Answer `json:"answers"`
}

// HandleSubmitApplication services POST /applications. The submission is
// checked against a snapshot of the group (open, not already a member,
// answers match the form); the unique (group, applicant) index arbitrates
// concurrent duplicates.
func (h *Handler) HandleSubmitApplication(w http.ResponseWriter, r *http.Request) {
	user, ok := identity.CurrentUser(r)
	if !ok {
		httpjson.Error(w, apperr.Unauthorized("Sign in required."), h.Log)
		return
	}

	var in submitApplicationInput
	if err := httpjson.Decode(w, r, &in); err != nil {
		httpjson.Error(w, err, h.Log)
		return
	}
	groupID, err := primitive.ObjectIDFromHex(in.GroupID)
	if err != nil {
		httpjson.Error(w, apperr.Validation("Invalid group id."), h.Log)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	group, err := groupstore.New(h.DB).GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, apperr.NotFound("Group not found."), h.Log)
			return
		}
		httpjson.Error(w, apperr.Server("Server error while submitting application.", err), h.Log)
		return
	}

	switch {
	case group.Status != models.GroupStatusOpen:
		httpjson.Error(w, apperr.Conflict("Group is not accepting applications."), h.Log)
		return
	case group.HasMember(user.ID):
		httpjson.Error(w, apperr.Conflict("You are already a member of this group."), h.Log)
		return
	case group.IsFull():
		httpjson.Error(w, apperr.Conflict("Group is already full."), h.Log)
		return
	}

	if len(in.Answers) != len(group.ApplicationForm) {
		httpjson.Error(w, apperr.Validation("Please answer all application questions."), h.Log)
		return
	}
	for i := range in.Answers {
		in.Answers[i].Question = group.ApplicationForm[i].Question
		in.Answers[i].Answer = htmlsanitize.Plain(in.Answers[i].Answer)
		if in.Answers[i].Answer == "" {
			httpjson.Error(w, apperr.Validation("Please answer all application questions."), h.Log)
			return
		}
	}

	app, err := applicationstore.New(h.DB).Create(ctx, models.Application{
		GroupID:     groupID,
		ApplicantID: user.ID,
		Answers:     in.Answers,
	})
	if err != nil {
		if errors.Is(err, applicationstore.ErrDuplicate) {
			httpjson.Error(w, apperr.Duplicate("You have already applied to this group."), h.Log)
			return
		}
		httpjson.Error(w, apperr.Server("Server error while submitting application.", err), h.Log)
		return
	}

	h.Log.Info("application submitted",
		zap.String("application_id", app.ID.Hex()),
		zap.String("group_id", groupID.Hex()),
		zap.String("applicant_id", user.ID.Hex()))

	httpjson.Write(w, http.StatusCreated, app)
}
