package ports

import (
	"context"

	"github.com/horizonbank/banking-api/internal/core/domain"
)

// AccountView is an aggregator-backed view of one linked account, used by
// the dashboard home screen.
type AccountView struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	OfficialName     string  `json:"officialName"`
	Mask             string  `json:"mask"`
	Type             string  `json:"type"`
	Subtype          string  `json:"subtype"`
	CurrentBalance   float64 `json:"currentBalance"`
	AvailableBalance float64 `json:"availableBalance"`
	// BankDocumentID references the BankAccount document backing this view.
	BankDocumentID string `json:"appwriteItemId"`
	ShareableID    string `json:"shareableId"`
}

// AccountsSummary aggregates all linked accounts for a user.
type AccountsSummary struct {
	Accounts            []AccountView `json:"accounts"`
	TotalBanks          int           `json:"totalBanks"`
	TotalCurrentBalance float64       `json:"totalCurrentBalance"`
}

// TransactionView is one aggregator transaction rendered for the dashboard.
type TransactionView struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	Date     string  `json:"date"`
	Category string  `json:"category"`
	Channel  string  `json:"paymentChannel"`
	Pending  bool    `json:"pending"`
	Type     string  `json:"type"`
}

// AccountDetail is a single account view plus its recent transactions.
type AccountDetail struct {
	Account      AccountView       `json:"account"`
	Transactions []TransactionView `json:"transactions"`
}

// BankService exposes the record-store accessors plus the aggregator-backed
// account views consumed by the dashboard.
type BankService interface {
	GetUserInfo(ctx context.Context, userID string) (*domain.User, error)
	GetBanks(ctx context.Context, userID string) ([]*domain.BankAccount, error)
	GetBank(ctx context.Context, documentID string) (*domain.BankAccount, error)
	// GetBankByAccountID returns the single record matching accountID.
	// Zero matches or more than one are both treated as not found.
	GetBankByAccountID(ctx context.Context, accountID string) (*domain.BankAccount, error)
	GetAccounts(ctx context.Context, userID string) (*AccountsSummary, error)
	GetAccount(ctx context.Context, userID, bankDocumentID string) (*AccountDetail, error)
}
