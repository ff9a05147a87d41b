// Package appctx carries per-start values on a context.Context.
package appctx

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const launchIDKey contextKey = "launch_id"

// WithLaunchID returns a copy of parent tagged with a fresh launch ID.
// One launch ID is minted per application start so every log line from the
// same start can be correlated.
func WithLaunchID(parent context.Context) context.Context {
	return context.WithValue(parent, launchIDKey, uuid.NewString())
}

// LaunchID returns the launch ID stored in ctx, or "" if none was set.
func LaunchID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(launchIDKey).(string)
	return id
}
