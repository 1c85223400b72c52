package utils

import (
	"context"
	"time"
)

const (
	DefaultDBTimeout = 5 * time.Second

	// Gemini calls are slower than database round trips.
	DefaultUpstreamTimeout = 15 * time.Second
)

// WithDBTimeout bounds a single repository call.
func WithDBTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, DefaultDBTimeout)
}

// WithUpstreamTimeout bounds a third-party API call.
func WithUpstreamTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, DefaultUpstreamTimeout)
}
