package ports

import (
	"context"

	"github.com/horizonbank/banking-api/internal/core/domain"
)

// IdentityRepository persists identity accounts (credential records).
type IdentityRepository interface {
	// Create inserts a new account. A duplicate email yields
	// domain.ErrEmailTaken.
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	// Delete removes the account. Used as the compensating action when a
	// later sign-up step fails.
	Delete(ctx context.Context, accountID string) error
}
