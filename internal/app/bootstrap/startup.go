// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/dalemusser/mentorhub/internal/app/resources"
	"github.com/dalemusser/mentorhub/internal/app/store/oauthstate"
	userstore "github.com/dalemusser/mentorhub/internal/app/store/users"
	"github.com/dalemusser/mentorhub/internal/app/system/authutil"
	"github.com/dalemusser/mentorhub/internal/app/system/observability"
	"github.com/dalemusser/mentorhub/internal/app/system/timeouts"
	"github.com/dalemusser/mentorhub/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// flushSentry is replaced by Startup once Sentry is initialised.
var flushSentry = func() {}

// stateSweeper purges expired OAuth state tokens while Google sign-in is on.
var stateSweeper *workers.Sweeper

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	flush, err := observability.InitSentry(appCfg.SentryDSN, coreCfg.Env, appCfg.Release)
	if err != nil {
		// Error reporting is optional; run without it.
		logger.Warn("sentry init failed", zap.Error(err))
	}
	flushSentry = flush

	resources.LoadSharedTemplates()

	if appCfg.GoogleEnabled() {
		store := oauthstate.New(deps.MentorHubMongoDatabase)
		stateSweeper = workers.NewSweeper("oauth_states", store.CleanupExpired, logger, 15*time.Minute, timeouts.Short())
		stateSweeper.Start()
	}

	if appCfg.BootstrapLoginID != "" {
		ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
		defer cancel()
		if err := ensureBootstrapUser(ctx, deps, appCfg.BootstrapLoginID, appCfg.BootstrapPassword, logger); err != nil {
			return err
		}
	}
	return nil
}

// ensureBootstrapUser creates the configured mentor account when no
// password user with that login exists. An existing account is left as is.
func ensureBootstrapUser(ctx context.Context, deps DBDeps, loginID, password string, logger *zap.Logger) error {
	hash, err := authutil.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash bootstrap password: %w", err)
	}
	created, err := userstore.New(deps.MentorHubMongoDatabase).EnsureBootstrap(ctx, loginID, "Administrator", hash)
	if err != nil {
		return fmt.Errorf("ensure bootstrap user: %w", err)
	}
	if created {
		logger.Info("bootstrap mentor account created", zap.String("login_id", loginID))
	}
	return nil
}
