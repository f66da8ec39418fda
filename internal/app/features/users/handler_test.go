package users_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hackmatehq/hackmate/internal/app/features/users"
	"github.com/hackmatehq/hackmate/internal/app/system/identity"
	"github.com/hackmatehq/hackmate/internal/domain/models"
	"github.com/hackmatehq/hackmate/internal/testutil"
	"go.uber.org/zap"
)

func TestHandleSync(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := users.NewHandler(db, zap.NewNop())
	verifier := identity.Static{"sync-token": "subject-sync"}
	sync := handler.HandleSync(verifier)

	post := func(token string, body map[string]any) *httptest.ResponseRecorder {
		req := testutil.NewRequest(t, "POST", "/users/sync", body)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		sync(rec, req)
		return rec
	}

	if rec := post("", map[string]any{"name": "A", "email": "a@test.com"}); rec.Code != http.StatusUnauthorized {
		t.Errorf("no token: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if rec := post("wrong", map[string]any{"name": "A", "email": "a@test.com"}); rec.Code != http.StatusUnauthorized {
		t.Errorf("bad token: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if rec := post("sync-token", map[string]any{"name": "", "email": "not-an-email"}); rec.Code != http.StatusBadRequest {
		t.Errorf("invalid profile: got %d, want %d", rec.Code, http.StatusBadRequest)
	}

	rec := post("sync-token", map[string]any{
		"name":   "Sync User",
		"email":  "Sync@Test.com",
		"skills": []string{"Go", ""},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("sync: got %d; body %s", rec.Code, rec.Body.String())
	}

	var created models.User
	testutil.DecodeJSON(t, rec, &created)
	if created.Email != "sync@test.com" {
		t.Errorf("email: got %q, want lowercased", created.Email)
	}
	if len(created.Skills) != 1 || created.Skills[0] != "Go" {
		t.Errorf("skills: got %v", created.Skills)
	}

	// a second sync for the same subject updates in place
	rec = post("sync-token", map[string]any{"name": "Renamed User", "email": "sync@test.com"})
	if rec.Code != http.StatusOK {
		t.Fatalf("resync: got %d; body %s", rec.Code, rec.Body.String())
	}
	var updated models.User
	testutil.DecodeJSON(t, rec, &updated)
	if updated.ID != created.ID {
		t.Errorf("resync created a new record: %s vs %s", updated.ID.Hex(), created.ID.Hex())
	}
	if updated.Name != "Renamed User" {
		t.Errorf("name: got %q", updated.Name)
	}
}
