package userstore_test

import (
	"testing"

	userstore "github.com/hackmatehq/hackmate/internal/app/store/users"
	"github.com/hackmatehq/hackmate/internal/domain/models"
	"github.com/hackmatehq/hackmate/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSummaries(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)
	store := userstore.New(db)

	alice := fx.CreateUser(ctx, "Alice A")
	bob := fx.CreateUser(ctx, "Bob B")

	summaries, err := store.Summaries(ctx, []primitive.ObjectID{alice.ID, bob.ID, primitive.NewObjectID()})
	if err != nil {
		t.Fatalf("Summaries: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("got %d summaries, want 2 (unknown ids dropped)", len(summaries))
	}
	if summaries[alice.ID].Name != "Alice A" {
		t.Errorf("alice name: got %q", summaries[alice.ID].Name)
	}
	if len(summaries[bob.ID].Skills) == 0 {
		t.Errorf("bob skills missing from summary")
	}
}

func TestPushHistory(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)
	store := userstore.New(db)

	alice := fx.CreateUser(ctx, "Alice History")
	bob := fx.CreateUser(ctx, "Bob History")

	entry := models.HistoryEntry{
		HackathonName: "HackTheNorth",
		TeamName:      "Team Rocket",
		Outcome:       "Participant",
	}
	if err := store.PushHistory(ctx, []primitive.ObjectID{alice.ID, bob.ID}, entry); err != nil {
		t.Fatalf("PushHistory: %v", err)
	}

	for _, id := range []primitive.ObjectID{alice.ID, bob.ID} {
		u, err := store.GetByID(ctx, id)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if len(u.HackathonHistory) != 1 || u.HackathonHistory[0] != entry {
			t.Errorf("history for %s: got %+v, want one %+v", u.Name, u.HackathonHistory, entry)
		}
	}
}

func TestUpsertBySubject(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := userstore.New(db)

	first, err := store.Upsert(ctx, models.User{
		SubjectID: "subject-upsert",
		Name:      "Original Name",
		Email:     "upsert@test.com",
	})
	if err != nil {
		t.Fatalf("first Upsert: %v", err)
	}

	second, err := store.Upsert(ctx, models.User{
		SubjectID: "subject-upsert",
		Name:      "Updated Name",
		Email:     "upsert@test.com",
	})
	if err != nil {
		t.Fatalf("second Upsert: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("upsert created a second record: %s vs %s", second.ID.Hex(), first.ID.Hex())
	}
	if second.Name != "Updated Name" {
		t.Errorf("name: got %q, want %q", second.Name, "Updated Name")
	}

	got, err := store.GetBySubject(ctx, "subject-upsert")
	if err != nil {
		t.Fatalf("GetBySubject: %v", err)
	}
	if got.ID != first.ID {
		t.Errorf("GetBySubject id: got %s, want %s", got.ID.Hex(), first.ID.Hex())
	}
}
