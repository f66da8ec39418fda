// Package indexes creates the MongoDB indexes the engine depends on for
// correctness and query performance. EnsureAll runs at startup; every
// ensure function is idempotent, and problems are aggregated so startup
// can fail fast with the full picture.
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// EnsureAll reconciles the index set for every collection.
func EnsureAll(ctx context.Context, db *mongo.Database, log *zap.Logger) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureGroups(ctx, db); err != nil {
		problems = append(problems, "groups: "+err.Error())
	}
	if err := ensureApplications(ctx, db); err != nil {
		problems = append(problems, "applications: "+err.Error())
	}
	if err := ensureMessages(ctx, db); err != nil {
		problems = append(problems, "messages: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	if log != nil {
		log.Info("indexes ensured",
			zap.Strings("collections", []string{"users", "groups", "applications", "messages"}))
	}
	return nil
}

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "subject_id", Value: 1}},
			Options: options.Index().SetName("uniq_subject_id").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("uniq_email").SetUnique(true),
		},
	})
	return ignoreExisting(err)
}

func ensureGroups(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("groups").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			// listing: open groups newest first
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("status_created"),
		},
		{
			// my-groups: multikey over the member array
			Keys:    bson.D{{Key: "members", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("members_status"),
		},
		{
			Keys:    bson.D{{Key: "tags", Value: 1}},
			Options: options.Index().SetName("tags"),
		},
	})
	return ignoreExisting(err)
}

func ensureApplications(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("applications").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			// one application per (group, applicant), ever. The uniqueness
			// is deliberately not scoped to pending applications.
			Keys:    bson.D{{Key: "group_id", Value: 1}, {Key: "applicant_id", Value: 1}},
			Options: options.Index().SetName("uniq_group_applicant").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "group_id", Value: 1}, {Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("group_status_created"),
		},
	})
	return ignoreExisting(err)
}

func ensureMessages(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("messages").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			// history reads: all messages for a group in time order
			Keys:    bson.D{{Key: "group_id", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("group_created"),
		},
		{
			Keys:    bson.D{{Key: "sender_id", Value: 1}},
			Options: options.Index().SetName("sender"),
		},
	})
	return ignoreExisting(err)
}

// ignoreExisting treats "index already exists" responses as success so
// repeated startups stay quiet. Mongo and DocumentDB phrase this
// differently, hence the string checks.
func ignoreExisting(err error) error {
	if err == nil {
		return nil
	}
	s := err.Error()
	if strings.Contains(s, "IndexOptionsConflict") || strings.Contains(s, "already exists") {
		return nil
	}
	return err
}
