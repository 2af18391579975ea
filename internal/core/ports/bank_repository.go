package ports

import (
	"context"

	"github.com/horizonbank/banking-api/internal/core/domain"
)

// BankRepository persists linked bank-account documents. No dedup or merge
// logic lives here: repeating the link flow for the same external account
// inserts a second record.
type BankRepository interface {
	Create(ctx context.Context, bank *domain.BankAccount) (*domain.BankAccount, error)
	FindByID(ctx context.Context, documentID string) (*domain.BankAccount, error)
	ListByUserID(ctx context.Context, userID string) ([]*domain.BankAccount, error)
	// ListByAccountID returns every record matching the aggregator account
	// ID. The service layer enforces the single-match rule on top.
	ListByAccountID(ctx context.Context, accountID string) ([]*domain.BankAccount, error)
}
