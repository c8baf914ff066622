// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/mentorhub/internal/app/system/authutil"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

const (
	devSessionKey = "dev-only-change-me-please-0123456789ABCDEF"
	devCSRFKey    = "dev-only-csrf-key-32-bytes-long!"
)

// appConfigKeys defines the configuration keys for MentorHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: MENTORHUB_MONGO_URI, MENTORHUB_SESSION_NAME, etc.
//   - Command-line flags: --mongo_uri, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "mentorhub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},
	{Name: "session_key", Default: devSessionKey, Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "mentorhub-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "2h", Desc: "Session lifetime (e.g., 2h, 90m)"},
	{Name: "csrf_key", Default: devCSRFKey, Desc: "32-byte CSRF authentication key"},

	{Name: "base_url", Default: "http://localhost:8080", Desc: "Public base URL, used for OAuth callbacks"},

	// Audit logging settings
	{Name: "audit_log_auth", Default: "all", Desc: "Auth event logging: 'all' (db+log), 'db', 'log', or 'off'"},
	{Name: "audit_log_admin", Default: "all", Desc: "Record change logging: 'all' (db+log), 'db', 'log', or 'off'"},

	// Google OAuth configuration
	{Name: "google_client_id", Default: "", Desc: "Google OAuth2 client ID"},
	{Name: "google_client_secret", Default: "", Desc: "Google OAuth2 client secret"},

	{Name: "sentry_dsn", Default: "", Desc: "Sentry DSN (blank disables error reporting)"},
	{Name: "release", Default: "dev", Desc: "Release name reported to Sentry and /health"},
	{Name: "metrics_enabled", Default: true, Desc: "Serve Prometheus metrics at /metrics"},

	// Bootstrap account
	{Name: "bootstrap_login_id", Default: "", Desc: "Login ID of a mentor account ensured on startup"},
	{Name: "bootstrap_password", Default: "", Desc: "Password for the bootstrap account"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig merges flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "MENTORHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),
		SessionKey:       appValues.String("session_key"),
		SessionName:      appValues.String("session_name"),
		SessionDomain:    appValues.String("session_domain"),
		SessionMaxAge:    appValues.Duration("session_max_age", 2*time.Hour),
		CSRFKey:          appValues.String("csrf_key"),

		BaseURL: appValues.String("base_url"),

		AuditLogAuth:  appValues.String("audit_log_auth"),
		AuditLogAdmin: appValues.String("audit_log_admin"),

		GoogleClientID:     appValues.String("google_client_id"),
		GoogleClientSecret: appValues.String("google_client_secret"),

		SentryDSN:      appValues.String("sentry_dsn"),
		Release:        appValues.String("release"),
		MetricsEnabled: appValues.Bool("metrics_enabled"),

		BootstrapLoginID:  appValues.String("bootstrap_login_id"),
		BootstrapPassword: appValues.String("bootstrap_password"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if len(appCfg.CSRFKey) != 32 {
		return errors.New("csrf_key must be exactly 32 bytes")
	}
	if appCfg.SessionMaxAge <= 0 {
		return errors.New("session_max_age must be positive")
	}

	if coreCfg != nil && coreCfg.Env == "prod" {
		if appCfg.SessionKey == devSessionKey || len(appCfg.SessionKey) < 32 {
			return errors.New("session_key must be set to a strong value (32+ characters) in prod")
		}
		if appCfg.CSRFKey == devCSRFKey {
			return errors.New("csrf_key must be changed in prod")
		}
	}

	if (appCfg.BootstrapLoginID == "") != (appCfg.BootstrapPassword == "") {
		return errors.New("bootstrap_login_id and bootstrap_password must be set together")
	}
	if appCfg.BootstrapPassword != "" {
		if err := authutil.ValidatePassword(appCfg.BootstrapPassword); err != nil {
			return fmt.Errorf("bootstrap_password: %w", err)
		}
	}

	return nil
}
