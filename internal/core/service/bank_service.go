package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/horizonbank/banking-api/internal/core/domain"
	"github.com/horizonbank/banking-api/internal/core/ports"
)

const homeCacheTTL = 5 * time.Minute

// BankService implements the record-store accessors and the aggregator-backed
// account views.
type BankService struct {
	users      ports.UserRepository
	banks      ports.BankRepository
	aggregator ports.Aggregator
	homeCache  ports.HomeCache
	log        zerolog.Logger
}

func NewBankService(
	users ports.UserRepository,
	banks ports.BankRepository,
	aggregator ports.Aggregator,
	homeCache ports.HomeCache,
	log zerolog.Logger,
) *BankService {
	return &BankService{
		users:      users,
		banks:      banks,
		aggregator: aggregator,
		homeCache:  homeCache,
		log:        log,
	}
}

func (s *BankService) GetUserInfo(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *BankService) GetBanks(ctx context.Context, userID string) ([]*domain.BankAccount, error) {
	return s.banks.ListByUserID(ctx, userID)
}

func (s *BankService) GetBank(ctx context.Context, documentID string) (*domain.BankAccount, error) {
	return s.banks.FindByID(ctx, documentID)
}

// GetBankByAccountID enforces the uniqueness expectation: anything other
// than exactly one match is treated as not found rather than ambiguous.
func (s *BankService) GetBankByAccountID(ctx context.Context, accountID string) (*domain.BankAccount, error) {
	matches, err := s.banks.ListByAccountID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if len(matches) != 1 {
		return nil, domain.ErrBankNotFound
	}
	return matches[0], nil
}

// GetAccounts assembles the home summary across every linked bank, serving
// from the cache when a fresh entry exists.
func (s *BankService) GetAccounts(ctx context.Context, userID string) (*ports.AccountsSummary, error) {
	if cached, err := s.homeCache.Get(ctx, userID); err == nil && cached != nil {
		return cached, nil
	}

	banks, err := s.banks.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := &ports.AccountsSummary{Accounts: []ports.AccountView{}}
	for _, bank := range banks {
		accounts, err := s.aggregator.GetAccounts(ctx, bank.AccessToken)
		if err != nil {
			return nil, fmt.Errorf("fetch accounts for bank %s: %w", bank.ID, err)
		}
		if len(accounts) == 0 {
			continue
		}
		view := accountView(accounts[0], bank)
		summary.Accounts = append(summary.Accounts, view)
		summary.TotalCurrentBalance += view.CurrentBalance
	}
	summary.TotalBanks = len(summary.Accounts)

	if err := s.homeCache.Set(ctx, userID, summary, homeCacheTTL); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("failed to cache accounts summary")
	}
	return summary, nil
}

// GetAccount returns one linked account with its recent transactions.
func (s *BankService) GetAccount(ctx context.Context, userID, bankDocumentID string) (*ports.AccountDetail, error) {
	bank, err := s.banks.FindByID(ctx, bankDocumentID)
	if err != nil {
		return nil, err
	}
	if bank.UserID != userID {
		return nil, domain.ErrBankNotFound
	}

	accounts, err := s.aggregator.GetAccounts(ctx, bank.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("fetch account: %w", err)
	}
	if len(accounts) == 0 {
		return nil, domain.ErrBankNotFound
	}

	txns, err := s.aggregator.GetTransactions(ctx, bank.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("fetch transactions: %w", err)
	}

	detail := &ports.AccountDetail{
		Account:      accountView(accounts[0], bank),
		Transactions: make([]ports.TransactionView, 0, len(txns)),
	}
	for _, t := range txns {
		txType := "credit"
		if t.Amount > 0 {
			txType = "debit"
		}
		detail.Transactions = append(detail.Transactions, ports.TransactionView{
			ID:       t.TransactionID,
			Name:     t.Name,
			Amount:   t.Amount,
			Date:     t.Date,
			Category: t.Category,
			Channel:  t.PaymentChannel,
			Pending:  t.Pending,
			Type:     txType,
		})
	}
	return detail, nil
}

func accountView(a ports.AggregatorAccount, bank *domain.BankAccount) ports.AccountView {
	return ports.AccountView{
		ID:               a.AccountID,
		Name:             a.Name,
		OfficialName:     a.OfficialName,
		Mask:             a.Mask,
		Type:             a.Type,
		Subtype:          a.Subtype,
		CurrentBalance:   a.CurrentBalance,
		AvailableBalance: a.AvailableBalance,
		BankDocumentID:   bank.ID,
		ShareableID:      bank.ShareableID,
	}
}
