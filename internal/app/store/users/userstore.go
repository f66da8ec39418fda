// internal/app/store/users/userstore.go
package userstore

// Terminology: User Identifiers
//   - UserID / user_id: the MongoDB ObjectID (_id) of a user record
//   - SubjectID / subject_id: the external identity provider's stable
//     subject, carried on bearer tokens

import (
	"context"
	"time"

	"github.com/hackmatehq/hackmate/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// GetBySubject looks a user up by the identity provider's subject id. Used
// on every authenticated request and on the websocket handshake.
func (s *Store) GetBySubject(ctx context.Context, subjectID string) (models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"subject_id": subjectID}).Decode(&u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// Summaries resolves public display identities for a set of users,
// returned keyed by id. Missing ids are simply absent from the map.
func (s *Store) Summaries(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.UserSummary, error) {
	out := make(map[primitive.ObjectID]models.UserSummary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	opts := options.Find().SetProjection(bson.M{
		"name":            1,
		"profile_picture": 1,
		"email":           1,
		"skills":          1,
	})
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []models.UserSummary
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.ID] = r
	}
	return out, nil
}

// PushHistory appends one HistoryEntry to every listed user. Runs inside
// the disband transaction so the appends and the group's status flip are
// indivisible.
func (s *Store) PushHistory(ctx context.Context, ids []primitive.ObjectID, entry models.HistoryEntry) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := s.c.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		bson.M{
			"$push": bson.M{"hackathon_history": entry},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
	)
	return err
}

// Upsert inserts or refreshes a user record keyed by subject id. The
// identity provider owns the canonical profile; this keeps the local copy
// current. Used by the provisioning endpoint and by test fixtures.
func (s *Store) Upsert(ctx context.Context, u models.User) (models.User, error) {
	now := time.Now().UTC()
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
		u.CreatedAt = now
	}
	u.UpdatedAt = now

	_, err := s.c.UpdateOne(ctx,
		bson.M{"subject_id": u.SubjectID},
		bson.M{
			"$setOnInsert": bson.M{"_id": u.ID, "created_at": u.CreatedAt},
			"$set": bson.M{
				"name":            u.Name,
				"email":           u.Email,
				"profile_picture": u.ProfilePicture,
				"bio":             u.Bio,
				"year":            u.Year,
				"skills":          u.Skills,
				"updated_at":      u.UpdatedAt,
			},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return models.User{}, err
	}
	return s.GetBySubject(ctx, u.SubjectID)
}
