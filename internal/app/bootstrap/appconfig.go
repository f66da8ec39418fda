// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS,
// logging, CORS, body limits); AppConfig is everything specific to
// HackMate itself.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Identity verification. When AuthVerifyURL is blank the app runs in
	// dev mode and treats the bearer token itself as the subject id.
	AuthVerifyURL     string        // Endpoint that maps bearer tokens to subject ids
	AuthVerifyTimeout time.Duration // Per-verification HTTP timeout

	// Realtime chat tuning
	ChatSendBuffer      int   // Per-connection outbound queue length
	ChatMaxMessageBytes int64 // Max inbound websocket frame size
}
