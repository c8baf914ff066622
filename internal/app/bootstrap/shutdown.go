// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Shutdown stops background workers, flushes error reporting and
// disconnects MongoDB.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if stateSweeper != nil {
		stateSweeper.Stop()
	}
	flushSentry()

	if deps.MentorHubMongoClient != nil {
		logger.Info("disconnecting MentorHub MongoDB client")
		if err := deps.MentorHubMongoClient.Disconnect(ctx); err != nil {
			logger.Error("MongoDB disconnect failed", zap.Error(err))
			return err
		}
	}
	return nil
}
