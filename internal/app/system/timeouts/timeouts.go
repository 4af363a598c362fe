// Package timeouts provides centralized timeout values for handler
// operations.
//
// Guidelines for choosing a timeout:
//   - Medium: a single outbound call, such as one model request
//   - Generate: full newsletter generation, covering several
//     sequential model calls
package timeouts

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Default timeout values (used if Configure is not called).
const (
	DefaultMedium   = 15 * time.Second
	DefaultGenerate = 90 * time.Second
)

// mu protects the timeout values from concurrent access.
var mu sync.RWMutex

var (
	medium   = DefaultMedium
	generate = DefaultGenerate
)

// Medium returns the timeout for one outbound call.
func Medium() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return medium
}

// Generate returns the timeout for a full newsletter generation pass.
// It has to cover several sequential model calls, so it is much longer
// than the others.
func Generate() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return generate
}

// Config holds timeout configuration values. Zero values are ignored
// (defaults are kept).
type Config struct {
	Medium   time.Duration
	Generate time.Duration
}

// Configure sets custom timeout values during startup, before handlers
// are registered.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	if cfg.Medium > 0 {
		medium = cfg.Medium
	}
	if cfg.Generate > 0 {
		generate = cfg.Generate
	}
}

// WithTimeout creates a context with timeout and returns a cancel
// function that logs a warning if the deadline was exceeded.
//
//	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Generate(), h.Log, "newsletter generation")
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
