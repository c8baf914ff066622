// Package timeouts provides centralized timeout values for handler operations.
//
// Guidelines for choosing a timeout:
//   - Ping: health checks
//   - Short: single-record reads, rendering a form
//   - Medium: list pages, single-record writes (including the mentor recount)
//   - Long: deletes that cascade across collections, summary aggregations
//   - Batch: XLSX exports and RecountAll
package timeouts

import (
	"context"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Default timeout values (used if Configure is not called).
const (
	DefaultPing   = 2 * time.Second
	DefaultShort  = 5 * time.Second
	DefaultMedium = 10 * time.Second
	DefaultLong   = 30 * time.Second
	DefaultBatch  = 2 * time.Minute
)

// EnvPrefix prefixes the environment variables read by ConfigureFromEnv.
const EnvPrefix = "MENTORHUB_TIMEOUT_"

var (
	mu      sync.RWMutex
	current = defaults()
)

func defaults() Config {
	return Config{
		Ping:   DefaultPing,
		Short:  DefaultShort,
		Medium: DefaultMedium,
		Long:   DefaultLong,
		Batch:  DefaultBatch,
	}
}

func get(pick func(Config) time.Duration) time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return pick(current)
}

// Ping returns the timeout for health checks.
func Ping() time.Duration { return get(func(c Config) time.Duration { return c.Ping }) }

// Short returns the timeout for single-record reads.
func Short() time.Duration { return get(func(c Config) time.Duration { return c.Short }) }

// Medium returns the timeout for lists and single-record writes.
func Medium() time.Duration { return get(func(c Config) time.Duration { return c.Medium }) }

// Long returns the timeout for cascading deletes and aggregations.
func Long() time.Duration { return get(func(c Config) time.Duration { return c.Long }) }

// Batch returns the timeout for exports and bulk recounts.
func Batch() time.Duration { return get(func(c Config) time.Duration { return c.Batch }) }

// Config holds timeout configuration values.
// Zero values are ignored (current values are kept).
type Config struct {
	Ping   time.Duration
	Short  time.Duration
	Medium time.Duration
	Long   time.Duration
	Batch  time.Duration
}

func (c *Config) fields() []struct {
	name string
	ptr  *time.Duration
} {
	return []struct {
		name string
		ptr  *time.Duration
	}{
		{"PING", &c.Ping},
		{"SHORT", &c.Short},
		{"MEDIUM", &c.Medium},
		{"LONG", &c.Long},
		{"BATCH", &c.Batch},
	}
}

// Configure overrides timeouts. Call it during startup before handlers run.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	dst := current.fields()
	for i, f := range cfg.fields() {
		if *f.ptr > 0 {
			*dst[i].ptr = *f.ptr
		}
	}
}

// Reset restores all timeouts to their default values.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	current = defaults()
}

// ConfigureFromEnv reads MENTORHUB_TIMEOUT_{PING,SHORT,MEDIUM,LONG,BATCH}
// as Go durations ("2s", "90s", "2m"). Invalid or non-positive values are
// skipped. It returns how many timeouts were set.
func ConfigureFromEnv() int {
	var cfg Config
	configured := 0
	for _, f := range cfg.fields() {
		v := os.Getenv(EnvPrefix + f.name)
		if v == "" {
			continue
		}
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			*f.ptr = d
			configured++
		}
	}
	Configure(cfg)
	return configured
}

// Current returns the current timeout configuration.
func Current() Config {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// WithTimeout creates a context with timeout and returns a cancel function that
// logs a warning if the deadline was exceeded.
//
//	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Batch(), h.Log, "export companies")
//	defer cancel()
func WithTimeout(parent context.Context, timeout time.Duration, log *zap.Logger, operation string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	return ctx, func() {
		if ctx.Err() == context.DeadlineExceeded && log != nil {
			log.Warn("operation timed out",
				zap.String("operation", operation),
				zap.Duration("timeout", timeout),
			)
		}
		cancel()
	}
}
