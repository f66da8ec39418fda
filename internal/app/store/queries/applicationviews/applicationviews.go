// Package applicationviews resolves pending applications together with
// their applicants' identity and skill summaries, the shape the group
// leader reviews. The join is an explicit $lookup returning typed rows,
// never an in-place enrichment of a loose document.
package applicationviews

import (
	"context"

	"github.com/hackmatehq/hackmate/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ListPendingForGroup returns the group's pending applications, newest
// first, each with the applicant resolved.
func ListPendingForGroup(ctx context.Context, db *mongo.Database, groupID primitive.ObjectID) ([]models.ApplicationView, error) {
	pipe := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"group_id": groupID,
			"status":   models.ApplicationStatusPending,
		}}},
		bson.D{{Key: "$sort", Value: bson.D{
			{Key: "created_at", Value: -1},
			{Key: "_id", Value: -1},
		}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "applicant_id",
			"foreignField": "_id",
			"as":           "applicant",
		}}},
		bson.D{{Key: "$unwind", Value: "$applicant"}},
		bson.D{{Key: "$project", Value: bson.M{
			"group_id":     1,
			"applicant_id": 1,
			"answers":      1,
			"status":       1,
			"created_at":   1,
			"updated_at":   1,
			"applicant": bson.M{
				"_id":             "$applicant._id",
				"name":            "$applicant.name",
				"profile_picture": "$applicant.profile_picture",
				"skills":          "$applicant.skills",
			},
		}}},
	}

	cur, err := db.Collection("applications").Aggregate(ctx, pipe)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []models.ApplicationView
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
