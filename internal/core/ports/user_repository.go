package ports

import (
	"context"

	"github.com/horizonbank/banking-api/internal/core/domain"
)

// UserRepository persists user profile documents.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByAccountID looks a user up by the owning identity-account ID.
	FindByAccountID(ctx context.Context, accountID string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// Delete removes the user document. Used as a compensating action only.
	Delete(ctx context.Context, id string) error
}
