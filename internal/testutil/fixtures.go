package testutil

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/hackmatehq/hackmate/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test user with the given name. The subject id is
// derived from the name so it stays stable within a test.
func (f *Fixtures) CreateUser(ctx context.Context, name string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	slug := strings.ToLower(strings.ReplaceAll(name, " ", "-"))
	user := models.User{
		ID:        primitive.NewObjectID(),
		SubjectID: "subject-" + slug,
		Name:      name,
		Email:     fmt.Sprintf("%s@test.com", slug),
		Skills:    []string{"Go", "MongoDB"},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateGroup creates an open test group led by leaderID with the given
// member limit. The leader is the sole starting member.
func (f *Fixtures) CreateGroup(ctx context.Context, name string, leaderID primitive.ObjectID, memberLimit int) models.Group {
	f.t.Helper()

	now := time.Now().UTC()
	group := models.Group{
		ID:            primitive.NewObjectID(),
		Name:          name,
		NameCI:        strings.ToLower(name),
		HackathonName: "Test Hackathon",
		Description:   "Test group description",
		LeaderID:      leaderID,
		Members:       []primitive.ObjectID{leaderID},
		MemberLimit:   memberLimit,
		Status:        models.GroupStatusOpen,
		Visibility:    models.VisibilityPublic,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if _, err := f.db.Collection("groups").InsertOne(ctx, group); err != nil {
		f.t.Fatalf("failed to create test group: %v", err)
	}
	return group
}

// AddGroupMember appends a member directly, bypassing the conditional
// admission path. For arranging state only.
func (f *Fixtures) AddGroupMember(ctx context.Context, groupID, userID primitive.ObjectID) {
	f.t.Helper()

	_, err := f.db.Collection("groups").UpdateByID(ctx, groupID,
		map[string]any{"$addToSet": map[string]any{"members": userID}})
	if err != nil {
		f.t.Fatalf("failed to add test group member: %v", err)
	}
}

// CreateApplication creates a pending application from applicantID to
// groupID.
func (f *Fixtures) CreateApplication(ctx context.Context, groupID, applicantID primitive.ObjectID) models.Application {
	f.t.Helper()

	now := time.Now().UTC()
	app := models.Application{
		ID:          primitive.NewObjectID(),
		GroupID:     groupID,
		ApplicantID: applicantID,
		Answers:     []models.Answer{{Question: "Why?", Answer: "Because."}},
		Status:      models.ApplicationStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := f.db.Collection("applications").InsertOne(ctx, app); err != nil {
		f.t.Fatalf("failed to create test application: %v", err)
	}
	return app
}

// CreateMessage creates a chat message in the group from senderID.
func (f *Fixtures) CreateMessage(ctx context.Context, groupID, senderID primitive.ObjectID, content string) models.Message {
	f.t.Helper()

	msg := models.Message{
		ID:          primitive.NewObjectID(),
		SenderID:    senderID,
		GroupID:     groupID,
		Content:     content,
		ContentType: models.ContentTypeText,
		CreatedAt:   time.Now().UTC(),
	}

	if _, err := f.db.Collection("messages").InsertOne(ctx, msg); err != nil {
		f.t.Fatalf("failed to create test message: %v", err)
	}
	return msg
}
