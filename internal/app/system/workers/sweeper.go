// internal/app/system/workers/sweeper.go
package workers

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// SweepFunc deletes stale records and reports how many it removed.
type SweepFunc func(ctx context.Context) (int64, error)

// Sweeper is a background worker that runs a SweepFunc on a fixed
// interval, e.g. to purge expired OAuth state tokens.
type Sweeper struct {
	name     string
	sweep    SweepFunc
	log      *zap.Logger
	interval time.Duration
	timeout  time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewSweeper creates a sweeper. Each run gets its own timeout.
func NewSweeper(name string, sweep SweepFunc, logger *zap.Logger, interval, timeout time.Duration) *Sweeper {
	return &Sweeper{
		name:     name,
		sweep:    sweep,
		log:      logger,
		interval: interval,
		timeout:  timeout,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the background loop.
func (w *Sweeper) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("sweeper started", zap.String("name", w.name), zap.Duration("interval", w.interval))
}

// Stop signals the worker to stop and waits for it to finish. It is safe
// to call more than once.
func (w *Sweeper) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
	w.wg.Wait()
	w.log.Info("sweeper stopped", zap.String("name", w.name))
}

func (w *Sweeper) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.RunOnce()
		}
	}
}

// RunOnce performs a single sweep.
func (w *Sweeper) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	count, err := w.sweep(ctx)
	if err != nil {
		w.log.Error("sweep failed", zap.String("name", w.name), zap.Error(err))
		return
	}
	if count > 0 {
		w.log.Info("swept stale records", zap.String("name", w.name), zap.Int64("count", count))
	}
}
