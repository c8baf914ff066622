package workers_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dalemusser/mentorhub/internal/app/store/oauthstate"
	"github.com/dalemusser/mentorhub/internal/app/system/workers"
	"github.com/dalemusser/mentorhub/internal/testutil"
	"go.uber.org/zap"
)

func TestSweeper_RunsUntilStopped(t *testing.T) {
	var calls atomic.Int32
	sweep := func(ctx context.Context) (int64, error) {
		calls.Add(1)
		return 1, nil
	}

	w := workers.NewSweeper("test", sweep, zap.NewNop(), 5*time.Millisecond, time.Second)
	w.Start()

	deadline := time.Now().Add(2 * time.Second)
	for calls.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	w.Stop()
	w.Stop()

	if calls.Load() < 2 {
		t.Fatalf("sweep ran %d times, want at least 2", calls.Load())
	}
	after := calls.Load()
	time.Sleep(20 * time.Millisecond)
	if calls.Load() != after {
		t.Error("sweep kept running after Stop")
	}
}

func TestSweeper_RunOnceToleratesErrors(t *testing.T) {
	w := workers.NewSweeper("failing", func(context.Context) (int64, error) {
		return 0, errors.New("boom")
	}, zap.NewNop(), time.Hour, time.Second)

	w.RunOnce()
}

func TestSweeper_PurgesExpiredOAuthStates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := oauthstate.New(db)
	if err := store.Save(ctx, "old", "", time.Now().UTC().Add(-time.Minute)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Save(ctx, "fresh", "", time.Now().UTC().Add(time.Minute)); err != nil {
		t.Fatalf("save: %v", err)
	}

	workers.NewSweeper("oauth_states", store.CleanupExpired, zap.NewNop(), time.Hour, time.Second).RunOnce()

	n, err := db.Collection("oauth_states").CountDocuments(ctx, map[string]any{})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("states remaining = %d, want 1", n)
	}
}
