// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	applicationsfeature "github.com/hackmatehq/hackmate/internal/app/features/applications"
	chatfeature "github.com/hackmatehq/hackmate/internal/app/features/chat"
	groupsfeature "github.com/hackmatehq/hackmate/internal/app/features/groups"
	healthfeature "github.com/hackmatehq/hackmate/internal/app/features/health"
	usersfeature "github.com/hackmatehq/hackmate/internal/app/features/users"
	"github.com/hackmatehq/hackmate/internal/app/realtime"
	groupstore "github.com/hackmatehq/hackmate/internal/app/store/groups"
	messagestore "github.com/hackmatehq/hackmate/internal/app/store/messages"
	userstore "github.com/hackmatehq/hackmate/internal/app/store/users"
	"github.com/hackmatehq/hackmate/internal/app/system/identity"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// Startup have completed. The handler mounts the JSON API (groups,
// applications, chat history, users), the health endpoint, and the
// websocket gateway.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	var verifier identity.Verifier
	if appCfg.AuthVerifyURL != "" {
		verifier = identity.NewHTTPVerifier(appCfg.AuthVerifyURL, appCfg.AuthVerifyTimeout)
	} else {
		// Dev mode: the bearer token is taken as the subject id.
		verifier = identity.TokenAsSubject{}
	}

	users := userstore.New(deps.MongoDatabase)
	requireUser := identity.RequireUser(verifier, users, logger)

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Group lifecycle and membership
	groupsHandler := groupsfeature.NewHandler(deps.MongoDatabase, deps.MongoClient, logger)
	r.Mount("/groups", groupsfeature.Routes(groupsHandler, requireUser))

	// Application queue and decisions
	applicationsHandler := applicationsfeature.NewHandler(deps.MongoDatabase, deps.MongoClient, logger)
	r.Mount("/applications", applicationsfeature.Routes(applicationsHandler, requireUser))

	// Chat history replay
	chatHandler := chatfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/chats", chatfeature.Routes(chatHandler, requireUser))

	// User provisioning from the identity provider
	usersHandler := usersfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/users", usersfeature.Routes(usersHandler, verifier))

	// Live chat over websocket
	registry := realtime.NewRegistry(logger)
	gateway := realtime.NewGateway(
		registry,
		groupstore.New(deps.MongoDatabase),
		messagestore.New(deps.MongoDatabase),
		verifier,
		users,
		realtime.Config{
			SendBuffer:      appCfg.ChatSendBuffer,
			MaxMessageBytes: appCfg.ChatMaxMessageBytes,
		},
		logger,
	)
	r.Get("/ws", gateway.ServeHTTP)

	return r, nil
}
