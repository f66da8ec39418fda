package applicationstore_test

import (
	"errors"
	"testing"

	applicationstore "github.com/hackmatehq/hackmate/internal/app/store/applications"
	"github.com/hackmatehq/hackmate/internal/app/system/indexes"
	"github.com/hackmatehq/hackmate/internal/domain/models"
	"github.com/hackmatehq/hackmate/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestCreateDuplicate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	if err := indexes.EnsureAll(ctx, db, zap.NewNop()); err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}
	store := applicationstore.New(db)

	groupID := primitive.NewObjectID()
	applicantID := primitive.NewObjectID()

	first, err := store.Create(ctx, models.Application{
		GroupID:     groupID,
		ApplicantID: applicantID,
		Answers:     []models.Answer{{Question: "Why?", Answer: "Because."}},
	})
	if err != nil {
		t.Fatalf("first Create: %v", err)
	}
	if first.Status != models.ApplicationStatusPending {
		t.Errorf("status: got %q, want %q", first.Status, models.ApplicationStatusPending)
	}

	_, err = store.Create(ctx, models.Application{
		GroupID:     groupID,
		ApplicantID: applicantID,
	})
	if !errors.Is(err, applicationstore.ErrDuplicate) {
		t.Errorf("second Create: got %v, want ErrDuplicate", err)
	}

	// A rejected application still blocks re-application: the unique
	// index is not scoped by status.
	if _, err := store.MarkDecided(ctx, first.ID, models.ApplicationStatusRejected); err != nil {
		t.Fatalf("MarkDecided: %v", err)
	}
	_, err = store.Create(ctx, models.Application{
		GroupID:     groupID,
		ApplicantID: applicantID,
	})
	if !errors.Is(err, applicationstore.ErrDuplicate) {
		t.Errorf("re-apply after rejection: got %v, want ErrDuplicate", err)
	}
}

func TestMarkDecidedOneShot(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := applicationstore.New(db)

	app, err := store.Create(ctx, models.Application{
		GroupID:     primitive.NewObjectID(),
		ApplicantID: primitive.NewObjectID(),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	decided, err := store.MarkDecided(ctx, app.ID, models.ApplicationStatusAccepted)
	if err != nil {
		t.Fatalf("first decision: %v", err)
	}
	if decided.Status != models.ApplicationStatusAccepted {
		t.Errorf("status: got %q, want %q", decided.Status, models.ApplicationStatusAccepted)
	}

	_, err = store.MarkDecided(ctx, app.ID, models.ApplicationStatusRejected)
	if !errors.Is(err, applicationstore.ErrNotPending) {
		t.Errorf("second decision: got %v, want ErrNotPending", err)
	}

	final, err := store.GetByID(ctx, app.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if final.Status != models.ApplicationStatusAccepted {
		t.Errorf("final status: got %q, want %q (first decision sticks)", final.Status, models.ApplicationStatusAccepted)
	}
}
