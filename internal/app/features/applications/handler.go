// internal/app/features/applications/handler.go
package applications

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler carries the dependencies for the application endpoints. Client is
// needed because accepting an application is transactional.
type Handler struct {
	DB     *mongo.Database
	Client *mongo.Client
	Log    *zap.Logger
}

func NewHandler(db *mongo.Database, client *mongo.Client, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Client: client, Log: logger}
}
