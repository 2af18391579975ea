package ports

import (
	"context"

	"github.com/horizonbank/banking-api/internal/core/domain"
)

// ExchangeResult confirms a completed public-token exchange.
type ExchangeResult struct {
	PublicTokenExchange string `json:"publicTokenExchange"`
}

// LinkService drives the bank-link flow: consent token issuance and the
// linear exchange pipeline that ends with a persisted BankAccount.
type LinkService interface {
	// CreateLinkToken issues a short-lived token the client uses to open the
	// aggregator's consent widget.
	CreateLinkToken(ctx context.Context, user *domain.User) (string, error)
	// ExchangePublicToken runs the full linking pipeline. Any step's failure
	// aborts the steps after it; no partial BankAccount is written.
	ExchangePublicToken(ctx context.Context, publicToken string, user *domain.User) (*ExchangeResult, error)
}
