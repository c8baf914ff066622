package bootstrap

import (
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/mentorhub/internal/app/system/authutil"
	"github.com/dalemusser/mentorhub/internal/domain/models"
	"github.com/dalemusser/mentorhub/internal/domain/roles"
	"github.com/dalemusser/mentorhub/internal/testutil"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func validConfig() AppConfig {
	return AppConfig{
		MongoURI:      "mongodb://localhost:27017",
		MongoDatabase: "mentorhub",
		SessionKey:    devSessionKey,
		SessionMaxAge: 2 * time.Hour,
		CSRFKey:       devCSRFKey,
	}
}

func TestEnsureBootstrapUser_CreatesMentor(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	deps := DBDeps{MentorHubMongoDatabase: db}
	if err := ensureBootstrapUser(ctx, deps, "admin", "correct-horse-battery", testLogger()); err != nil {
		t.Fatalf("ensureBootstrapUser failed: %v", err)
	}

	var user models.User
	if err := db.Collection("users").FindOne(ctx, bson.M{"login_id": "admin"}).Decode(&user); err != nil {
		t.Fatalf("failed to find created user: %v", err)
	}
	if !roles.Allow(user.Roles, roles.Mentor) {
		t.Errorf("roles = %v, want mentor", user.Roles)
	}
	if user.Status != models.StatusActive {
		t.Errorf("status = %q, want active", user.Status)
	}
	if !authutil.CheckPassword("correct-horse-battery", user.PasswordHash) {
		t.Error("stored hash does not match the bootstrap password")
	}
}

func TestEnsureBootstrapUser_LeavesExistingAlone(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures := testutil.NewFixtures(t, db)
	existing := fixtures.CreateConsultantUser(ctx, "Existing User", "admin")

	deps := DBDeps{MentorHubMongoDatabase: db}
	if err := ensureBootstrapUser(ctx, deps, "admin", "correct-horse-battery", testLogger()); err != nil {
		t.Fatalf("ensureBootstrapUser failed: %v", err)
	}

	n, err := db.Collection("users").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if n != 1 {
		t.Errorf("users = %d, want 1", n)
	}
	var user models.User
	if err := db.Collection("users").FindOne(ctx, bson.M{"_id": existing.ID}).Decode(&user); err != nil {
		t.Fatalf("find existing: %v", err)
	}
	if roles.Allow(user.Roles, roles.Mentor) {
		t.Error("existing user was promoted")
	}
}

func TestValidateConfig(t *testing.T) {
	dev := &config.CoreConfig{Env: "dev"}
	prod := &config.CoreConfig{Env: "prod"}

	tests := []struct {
		name    string
		core    *config.CoreConfig
		mutate  func(*AppConfig)
		wantErr string
	}{
		{"defaults in dev", dev, func(*AppConfig) {}, ""},
		{"short csrf key", dev, func(c *AppConfig) { c.CSRFKey = "short" }, "csrf_key"},
		{"zero session age", dev, func(c *AppConfig) { c.SessionMaxAge = 0 }, "session_max_age"},
		{"dev session key in prod", prod, func(*AppConfig) {}, "session_key"},
		{"dev csrf key in prod", prod, func(c *AppConfig) {
			c.SessionKey = strings.Repeat("k", 40)
		}, "csrf_key"},
		{"strong prod", prod, func(c *AppConfig) {
			c.SessionKey = strings.Repeat("k", 40)
			c.CSRFKey = strings.Repeat("c", 32)
		}, ""},
		{"bootstrap login without password", dev, func(c *AppConfig) { c.BootstrapLoginID = "admin" }, "set together"},
		{"bootstrap password too short", dev, func(c *AppConfig) {
			c.BootstrapLoginID = "admin"
			c.BootstrapPassword = "x"
		}, "bootstrap_password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := ValidateConfig(tt.core, cfg, testLogger())
			switch {
			case tt.wantErr == "" && err != nil:
				t.Fatalf("unexpected error: %v", err)
			case tt.wantErr != "" && err == nil:
				t.Fatalf("expected error containing %q", tt.wantErr)
			case tt.wantErr != "" && !strings.Contains(err.Error(), tt.wantErr):
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestAppConfig_GoogleEnabled(t *testing.T) {
	cfg := validConfig()
	if cfg.GoogleEnabled() {
		t.Error("GoogleEnabled() true without credentials")
	}
	cfg.GoogleClientID, cfg.GoogleClientSecret = "id", "secret"
	if !cfg.GoogleEnabled() {
		t.Error("GoogleEnabled() false with credentials")
	}
}
