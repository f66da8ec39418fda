// internal/app/store/groups/groupstore.go
package groupstore

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/hackmatehq/hackmate/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Sentinel errors for membership preconditions. All of them describe state
// at the instant of the write, not at some earlier read.
var (
	ErrNotOpen          = errors.New("group is not accepting new members")
	ErrAlreadyMember    = errors.New("user is already a member of this group")
	ErrFull             = errors.New("group has reached its member limit")
	ErrNotMember        = errors.New("user is not a member of this group")
	ErrLeaderLeave      = errors.New("group leader cannot leave")
	ErrAlreadyDisbanded = errors.New("group is already disbanded")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("groups")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Group, error) {
	var g models.Group
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&g); err != nil {
		return models.Group{}, err
	}
	return g, nil
}

// Create persists a new group with the creator as leader and sole member.
func (s *Store) Create(ctx context.Context, g models.Group) (models.Group, error) {
	now := time.Now().UTC()
	g.ID = primitive.NewObjectID()
	g.NameCI = strings.ToLower(g.Name)
	if g.Status == "" {
		g.Status = models.GroupStatusOpen
	}
	if g.Visibility == "" {
		g.Visibility = models.VisibilityPublic
	}
	g.Members = []primitive.ObjectID{g.LeaderID}
	if g.Tags == nil {
		g.Tags = []string{}
	}
	if g.ApplicationForm == nil {
		g.ApplicationForm = []models.FormQuestion{}
	}
	g.CreatedAt = now
	g.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, g); err != nil {
		return models.Group{}, err
	}
	return g, nil
}

// Filter narrows the open-group listing.
type Filter struct {
	HackathonName string   // case-insensitive substring
	Tags          []string // any-of match
}

// List returns a page of open groups, newest first, with the total count
// matching the filter.
func (s *Store) List(ctx context.Context, f Filter, skip, limit int64) ([]models.Group, int64, error) {
	filter := bson.M{"status": models.GroupStatusOpen}
	if f.HackathonName != "" {
		filter["hackathon_name"] = bson.M{
			"$regex":   regexp.QuoteMeta(f.HackathonName),
			"$options": "i",
		}
	}
	if len(f.Tags) > 0 {
		filter["tags"] = bson.M{"$in": f.Tags}
	}

	total, err := s.c.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var groups []models.Group
	if err := cur.All(ctx, &groups); err != nil {
		return nil, 0, err
	}
	return groups, total, nil
}

// ListByMember returns the groups a user belongs to with the given status,
// newest first.
func (s *Store) ListByMember(ctx context.Context, userID primitive.ObjectID, status string) ([]models.Group, error) {
	filter := bson.M{"members": userID}
	if status != "" {
		filter["status"] = status
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var groups []models.Group
	if err := cur.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// UpdateInfo applies leader-editable fields. Capacity and the member set
// are never touched here.
func (s *Store) UpdateInfo(ctx context.Context, id primitive.ObjectID, name, desc string, tags []string) (models.Group, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if strings.TrimSpace(name) != "" {
		set["name"] = name
		set["name_ci"] = strings.ToLower(name)
	}
	if desc != "" {
		set["description"] = desc
	}
	if tags != nil {
		set["tags"] = tags
	}

	var g models.Group
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&g)
	if err != nil {
		return models.Group{}, err
	}
	return g, nil
}

// AddMember admits userID into the group as a single conditional update:
// the group must be open, the user absent from the member set, and the set
// under capacity — all evaluated server-side at the instant of the write.
// Two concurrent admissions racing for the last slot cannot both pass; the
// loser is classified against the current document.
func (s *Store) AddMember(ctx context.Context, groupID, userID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{
			"_id":     groupID,
			"status":  models.GroupStatusOpen,
			"members": bson.M{"$ne": userID},
			"$expr":   bson.M{"$lt": bson.A{bson.M{"$size": "$members"}, "$member_limit"}},
		},
		bson.M{
			"$addToSet": bson.M{"members": userID},
			"$set":      bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return s.classifyAdmitFailure(ctx, groupID, userID)
	}
	return nil
}

// classifyAdmitFailure explains why a conditional admission matched
// nothing. The answer is advisory (the state may have moved again); the
// admission itself already failed atomically.
func (s *Store) classifyAdmitFailure(ctx context.Context, groupID, userID primitive.ObjectID) error {
	g, err := s.GetByID(ctx, groupID)
	if err != nil {
		return err
	}
	switch {
	case g.HasMember(userID):
		return ErrAlreadyMember
	case g.Status != models.GroupStatusOpen:
		return ErrNotOpen
	case g.IsFull():
		return ErrFull
	default:
		return ErrFull
	}
}

// RemoveMember takes userID out of the member set. The leader is excluded
// by the filter itself, so a leader can never leave their own group.
func (s *Store) RemoveMember(ctx context.Context, groupID, userID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{
			"_id":       groupID,
			"leader_id": bson.M{"$ne": userID},
			"members":   userID,
		},
		bson.M{
			"$pull": bson.M{"members": userID},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		g, err := s.GetByID(ctx, groupID)
		if err != nil {
			return err
		}
		if g.LeaderID == userID {
			return ErrLeaderLeave
		}
		return ErrNotMember
	}
	return nil
}

// MarkDisbanded flips status to disbanded; it only matches groups that are
// not already disbanded, making the terminal transition one-shot. Runs
// inside the disband transaction.
func (s *Store) MarkDisbanded(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "status": bson.M{"$ne": models.GroupStatusDisbanded}},
		bson.M{"$set": bson.M{
			"status":     models.GroupStatusDisbanded,
			"updated_at": time.Now().UTC(),
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrAlreadyDisbanded
	}
	return nil
}
