// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration. WAFFLE's CoreConfig handles
// ports, TLS, logging level and the environment name.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session management configuration
	SessionKey    string        // Secret key for signing session cookies (must be strong in production)
	SessionName   string        // Cookie name for sessions (default: mentorhub-session)
	SessionDomain string        // Cookie domain (blank means current host)
	SessionMaxAge time.Duration // Cookie lifetime

	// CSRFKey authenticates CSRF tokens. Must be 32 bytes.
	CSRFKey string

	// Base URL for OAuth callbacks, e.g. "https://mentorhub.example.org"
	BaseURL string

	// Audit logging: "all", "db", "log" or "off" per category
	AuditLogAuth  string
	AuditLogAdmin string

	// Google OAuth; sign-in with Google is offered only when both are set
	GoogleClientID     string
	GoogleClientSecret string

	// Error reporting
	SentryDSN string
	Release   string

	MetricsEnabled bool

	// Bootstrap mentor account, created on startup when missing
	BootstrapLoginID  string
	BootstrapPassword string
}

// GoogleEnabled reports whether Google sign-in is configured.
func (c AppConfig) GoogleEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}
