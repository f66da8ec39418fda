// internal/app/store/applications/applicationstore.go
package applicationstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/hackmatehq/hackmate/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrDuplicate is the (group, applicant) uniqueness violation. The
	// index has no status scope: one application per pair, ever.
	ErrDuplicate = errors.New("an application for this group already exists")

	// ErrNotPending means a decision already landed; decisions are final.
	ErrNotPending = errors.New("application is not pending")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("applications")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Application, error) {
	var a models.Application
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		return models.Application{}, err
	}
	return a, nil
}

// Create persists a pending application. The unique index arbitrates
// concurrent duplicate submissions: exactly one insert wins.
func (s *Store) Create(ctx context.Context, a models.Application) (models.Application, error) {
	now := time.Now().UTC()
	a.ID = primitive.NewObjectID()
	a.Status = models.ApplicationStatusPending
	a.CreatedAt = now
	a.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, a); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Application{}, ErrDuplicate
		}
		return models.Application{}, err
	}
	return a, nil
}

// MarkDecided flips a pending application to the given terminal status.
// The pending filter makes the transition one-shot: a second decision on
// the same application matches nothing.
func (s *Store) MarkDecided(ctx context.Context, id primitive.ObjectID, status string) (models.Application, error) {
	res := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": models.ApplicationStatusPending},
		bson.M{"$set": bson.M{
			"status":     status,
			"updated_at": time.Now().UTC(),
		}},
	)
	var a models.Application
	if err := res.Decode(&a); err != nil {
		if err == mongo.ErrNoDocuments {
			// Either absent or already decided; the caller has already
			// loaded the application, so absence here means decided.
			return models.Application{}, ErrNotPending
		}
		return models.Application{}, err
	}
	a.Status = status
	return a, nil
}
