// Command mentorhubctl performs operator tasks against the MentorHub
// database: managing sign-in accounts, recounting mentors and exporting
// records.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dalemusser/mentorhub/internal/app/system/timeouts"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	mongoURI string
	dbName   string
	verbose  bool
	timeout  time.Duration

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "mentorhubctl",
	Short: "Operator tools for MentorHub",
	Long: `mentorhubctl works directly against the MentorHub MongoDB database.

Connection settings come from flags, then MENTORHUB_MONGO_URI and
MENTORHUB_MONGO_DATABASE (a .env file in the working directory is read
first).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		applyTimeouts(cmd.Flags().Changed("timeout"))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// applyTimeouts loads MENTORHUB_TIMEOUT_* and lets an explicit --timeout
// override the batch deadline.
func applyTimeouts(flagSet bool) {
	timeouts.ConfigureFromEnv()
	if flagSet {
		timeouts.Configure(timeouts.Config{Batch: timeout})
	}
}

// withDB connects, runs fn under the batch deadline, and disconnects.
func withDB(ctx context.Context, fn func(ctx context.Context, db *mongo.Database) error) error {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Batch())
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	pingCtx, pingCancel := context.WithTimeout(ctx, timeouts.Ping())
	defer pingCancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return fmt.Errorf("ping %s: %w", mongoURI, err)
	}
	logger.Debug("connected", zap.String("database", dbName))
	return fn(ctx, client.Database(dbName))
}

func init() {
	// A missing .env is normal; the environment may already be set.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().StringVar(&mongoURI, "mongo-uri", envOr("MENTORHUB_MONGO_URI", "mongodb://localhost:27017"), "MongoDB connection URI")
	rootCmd.PersistentFlags().StringVar(&dbName, "db", envOr("MENTORHUB_MONGO_DATABASE", "mentorhub"), "MongoDB database name")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", timeouts.DefaultBatch, "Overall deadline for the command (overrides MENTORHUB_TIMEOUT_BATCH)")

	rootCmd.AddCommand(userCmd, mentorsCmd, exportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
