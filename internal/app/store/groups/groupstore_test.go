package groupstore_test

import (
	"errors"
	"sync"
	"testing"

	groupstore "github.com/hackmatehq/hackmate/internal/app/store/groups"
	"github.com/hackmatehq/hackmate/internal/domain/models"
	"github.com/hackmatehq/hackmate/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreateAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := groupstore.New(db)

	leader := primitive.NewObjectID()
	created, err := store.Create(ctx, models.Group{
		Name:          "Team Rocket",
		HackathonName: "HackTheNorth",
		LeaderID:      leader,
		MemberLimit:   4,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Status != models.GroupStatusOpen {
		t.Errorf("status: got %q, want %q", created.Status, models.GroupStatusOpen)
	}
	if len(created.Members) != 1 || created.Members[0] != leader {
		t.Errorf("members: got %v, want just the leader", created.Members)
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Name != "Team Rocket" || got.HackathonName != "HackTheNorth" {
		t.Errorf("got %+v", got)
	}
}

func TestAddMemberClassification(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)
	store := groupstore.New(db)

	leader := fx.CreateUser(ctx, "Lead One")
	group := fx.CreateGroup(ctx, "Small Group", leader.ID, 2)

	joiner := primitive.NewObjectID()
	if err := store.AddMember(ctx, group.ID, joiner); err != nil {
		t.Fatalf("first join: %v", err)
	}

	if err := store.AddMember(ctx, group.ID, joiner); !errors.Is(err, groupstore.ErrAlreadyMember) {
		t.Errorf("rejoin: got %v, want ErrAlreadyMember", err)
	}

	// limit 2, both slots taken
	if err := store.AddMember(ctx, group.ID, primitive.NewObjectID()); !errors.Is(err, groupstore.ErrFull) {
		t.Errorf("join full group: got %v, want ErrFull", err)
	}

	if err := store.MarkDisbanded(ctx, group.ID); err != nil {
		t.Fatalf("MarkDisbanded: %v", err)
	}
	if err := store.AddMember(ctx, group.ID, primitive.NewObjectID()); !errors.Is(err, groupstore.ErrNotOpen) {
		t.Errorf("join disbanded group: got %v, want ErrNotOpen", err)
	}
}

// TestAddMemberConcurrent races many joins at a group with limited slots
// and verifies the conditional update never oversubscribes.
func TestAddMemberConcurrent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)
	store := groupstore.New(db)

	leader := fx.CreateUser(ctx, "Race Lead")
	group := fx.CreateGroup(ctx, "Race Group", leader.ID, 5) // 4 free slots

	const contenders = 20
	var wg sync.WaitGroup
	var mu sync.Mutex
	admitted := 0

	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := store.AddMember(ctx, group.ID, primitive.NewObjectID()); err == nil {
				mu.Lock()
				admitted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if admitted != 4 {
		t.Errorf("admitted: got %d, want 4", admitted)
	}

	final, err := store.GetByID(ctx, group.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(final.Members) != 5 {
		t.Errorf("final members: got %d, want 5", len(final.Members))
	}
	seen := make(map[primitive.ObjectID]bool)
	for _, m := range final.Members {
		if seen[m] {
			t.Errorf("duplicate member %s", m.Hex())
		}
		seen[m] = true
	}
}

func TestRemoveMember(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)
	store := groupstore.New(db)

	leader := fx.CreateUser(ctx, "Leave Lead")
	member := fx.CreateUser(ctx, "Leave Member")
	group := fx.CreateGroup(ctx, "Leave Group", leader.ID, 4)
	fx.AddGroupMember(ctx, group.ID, member.ID)

	if err := store.RemoveMember(ctx, group.ID, leader.ID); !errors.Is(err, groupstore.ErrLeaderLeave) {
		t.Errorf("leader leave: got %v, want ErrLeaderLeave", err)
	}

	if err := store.RemoveMember(ctx, group.ID, member.ID); err != nil {
		t.Fatalf("member leave: %v", err)
	}
	if err := store.RemoveMember(ctx, group.ID, member.ID); !errors.Is(err, groupstore.ErrNotMember) {
		t.Errorf("second leave: got %v, want ErrNotMember", err)
	}

	final, err := store.GetByID(ctx, group.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(final.Members) != 1 {
		t.Errorf("members after leave: got %d, want 1", len(final.Members))
	}
}

func TestMarkDisbandedOneShot(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)
	store := groupstore.New(db)

	leader := fx.CreateUser(ctx, "Disband Lead")
	group := fx.CreateGroup(ctx, "Disband Group", leader.ID, 3)

	if err := store.MarkDisbanded(ctx, group.ID); err != nil {
		t.Fatalf("first disband: %v", err)
	}
	if err := store.MarkDisbanded(ctx, group.ID); !errors.Is(err, groupstore.ErrAlreadyDisbanded) {
		t.Errorf("second disband: got %v, want ErrAlreadyDisbanded", err)
	}
}

func TestListFiltersAndPaging(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)
	store := groupstore.New(db)

	leader := fx.CreateUser(ctx, "List Lead")
	for i := 0; i < 3; i++ {
		if _, err := store.Create(ctx, models.Group{
			Name:          "Listed Group",
			HackathonName: "HackTheNorth",
			LeaderID:      leader.ID,
			MemberLimit:   4,
			Tags:          []string{"backend"},
		}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	disbanded, err := store.Create(ctx, models.Group{
		Name:          "Gone Group",
		HackathonName: "HackTheNorth",
		LeaderID:      leader.ID,
		MemberLimit:   3,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := store.MarkDisbanded(ctx, disbanded.ID); err != nil {
		t.Fatalf("MarkDisbanded: %v", err)
	}

	groups, total, err := store.List(ctx, groupstore.Filter{HackathonName: "hackthe"}, 0, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 3 {
		t.Errorf("total: got %d, want 3 (disbanded groups excluded)", total)
	}
	if len(groups) != 2 {
		t.Errorf("page size: got %d, want 2", len(groups))
	}

	_, total, err = store.List(ctx, groupstore.Filter{Tags: []string{"frontend"}}, 0, 10)
	if err != nil {
		t.Fatalf("List by tag: %v", err)
	}
	if total != 0 {
		t.Errorf("tag miss total: got %d, want 0", total)
	}
}
