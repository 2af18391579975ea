package ports

import (
	"context"
	"time"
)

// HomeCache stores the rendered accounts summary per user so repeated home
// loads skip the aggregator. Linking a new account invalidates the entry.
type HomeCache interface {
	Get(ctx context.Context, userID string) (*AccountsSummary, error)
	Set(ctx context.Context, userID string, summary *AccountsSummary, ttl time.Duration) error
	Invalidate(ctx context.Context, userID string) error
}
