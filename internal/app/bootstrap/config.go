// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for HackMate. They are
// loadable from config files (mongo_uri, auth_verify_url, ...),
// environment variables (HACKMATE_MONGO_URI, ...), or command-line flags.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "hackmate", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size"},

	// Identity verification
	{Name: "auth_verify_url", Default: "", Desc: "Token verification endpoint (blank enables dev mode: token == subject id)"},
	{Name: "auth_verify_timeout", Default: "5s", Desc: "Timeout for token verification calls"},

	// Realtime chat
	{Name: "chat_send_buffer", Default: 256, Desc: "Per-connection outbound message queue length"},
	{Name: "chat_max_message_bytes", Default: 4096, Desc: "Max inbound websocket message size in bytes"},
}

// LoadConfig loads WAFFLE core config and app-specific config, merging
// flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "HACKMATE", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		AuthVerifyURL:     appValues.String("auth_verify_url"),
		AuthVerifyTimeout: appValues.Duration("auth_verify_timeout", 5*time.Second),

		ChatSendBuffer:      appValues.Int("chat_send_buffer"),
		ChatMaxMessageBytes: int64(appValues.Int("chat_max_message_bytes")),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig enforces config invariants before any connection is
// attempted.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if appCfg.MongoDatabase == "" {
		return fmt.Errorf("mongo_database must not be empty")
	}
	if appCfg.ChatSendBuffer < 1 {
		return fmt.Errorf("chat_send_buffer must be at least 1")
	}
	if appCfg.ChatMaxMessageBytes < 1 {
		return fmt.Errorf("chat_max_message_bytes must be at least 1")
	}
	if appCfg.AuthVerifyURL == "" && coreCfg.Env == "prod" {
		return fmt.Errorf("auth_verify_url is required in prod")
	}
	return nil
}
