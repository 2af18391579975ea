package ports

import "context"

// LinkTokenParams are the fields the aggregator needs to open its consent
// widget for a specific end user.
type LinkTokenParams struct {
	ClientUserID string
	ClientName   string
	Products     []string
	Language     string
	CountryCodes []string
}

// ExchangedToken is the result of trading a public token for a long-lived
// access token.
type ExchangedToken struct {
	AccessToken string
	ItemID      string
}

// AggregatorAccount is one bank account as reported by the aggregator.
type AggregatorAccount struct {
	AccountID        string
	Name             string
	OfficialName     string
	Mask             string
	Type             string
	Subtype          string
	CurrentBalance   float64
	AvailableBalance float64
}

// AggregatorTransaction is one transaction as reported by the aggregator.
type AggregatorTransaction struct {
	TransactionID  string
	Name           string
	Amount         float64
	Date           string
	Category       string
	PaymentChannel string
	Pending        bool
}

// Aggregator is the bank-data aggregation provider: end users authorise
// access to their bank accounts through it and it issues the tokens used to
// read account data.
type Aggregator interface {
	CreateLinkToken(ctx context.Context, params LinkTokenParams) (string, error)
	ExchangePublicToken(ctx context.Context, publicToken string) (*ExchangedToken, error)
	GetAccounts(ctx context.Context, accessToken string) ([]AggregatorAccount, error)
	GetTransactions(ctx context.Context, accessToken string) ([]AggregatorTransaction, error)
	// CreateProcessorToken mints a token scoped for handoff to the payment
	// processor identified by processor (e.g. "dwolla").
	CreateProcessorToken(ctx context.Context, accessToken, accountID, processor string) (string, error)
}
