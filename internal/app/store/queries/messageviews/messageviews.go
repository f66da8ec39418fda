// Package messageviews resolves chat history with sender display
// identities attached, oldest first — the exact shape delivered to
// clients.
package messageviews

import (
	"context"

	"github.com/hackmatehq/hackmate/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// HistoryForGroup returns every message in the group in creation order
// with the sender resolved.
func HistoryForGroup(ctx context.Context, db *mongo.Database, groupID primitive.ObjectID) ([]models.MessageView, error) {
	pipe := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"group_id": groupID}}},
		bson.D{{Key: "$sort", Value: bson.D{
			{Key: "created_at", Value: 1},
			{Key: "_id", Value: 1},
		}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "sender_id",
			"foreignField": "_id",
			"as":           "sender",
		}}},
		bson.D{{Key: "$unwind", Value: "$sender"}},
		bson.D{{Key: "$project", Value: bson.M{
			"sender_id":    1,
			"group_id":     1,
			"content":      1,
			"content_type": 1,
			"created_at":   1,
			"sender": bson.M{
				"_id":             "$sender._id",
				"name":            "$sender.name",
				"profile_picture": "$sender.profile_picture",
			},
		}}},
	}

	cur, err := db.Collection("messages").Aggregate(ctx, pipe)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []models.MessageView
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
