package utils

import (
	"context"
	"time"
)

// DBTimeout bounds a single repository call. A shorter deadline already on
// the context wins.
const DBTimeout = 5 * time.Second

func WithDBTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, DBTimeout)
}
