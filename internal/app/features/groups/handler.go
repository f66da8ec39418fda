// internal/app/features/groups/handler.go
package groups

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the groups feature. The
// Mongo client rides along with the database because disbandment runs a
// multi-document transaction and needs a session.
type Handler struct {
	DB     *mongo.Database
	Client *mongo.Client
	Log    *zap.Logger
}

// NewHandler constructs a groups Handler. Called from bootstrap's
// BuildHandler with the app's shared DB and logger.
func NewHandler(db *mongo.Database, client *mongo.Client, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Client: client,
		Log:    logger,
	}
}
