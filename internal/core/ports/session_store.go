package ports

import (
	"context"
	"time"

	"github.com/horizonbank/banking-api/internal/core/domain"
)

// SessionStore holds the authoritative server-side session records. The
// cookie carries only a signed secret referencing a record here, so removing
// the record invalidates the cookie immediately.
type SessionStore interface {
	Create(ctx context.Context, session *domain.Session, ttl time.Duration) error
	Get(ctx context.Context, sessionID string) (*domain.Session, error)
	Delete(ctx context.Context, sessionID string) error
}
