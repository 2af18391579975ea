package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/horizonbank/banking-api/internal/core/domain"
	"github.com/horizonbank/banking-api/internal/core/ports"
)

// processorName identifies the payment processor the aggregator mints
// handoff tokens for.
const processorName = "dwolla"

// LinkService implements the bank-link orchestration: a linear flow with no
// persisted intermediate state. A failure anywhere aborts the whole
// invocation and the caller retries from the start.
type LinkService struct {
	aggregator ports.Aggregator
	payments   ports.PaymentNetwork
	banks      ports.BankRepository
	encryptor  ports.Encryptor
	homeCache  ports.HomeCache
	log        zerolog.Logger
}

func NewLinkService(
	aggregator ports.Aggregator,
	payments ports.PaymentNetwork,
	banks ports.BankRepository,
	encryptor ports.Encryptor,
	homeCache ports.HomeCache,
	log zerolog.Logger,
) *LinkService {
	return &LinkService{
		aggregator: aggregator,
		payments:   payments,
		banks:      banks,
		encryptor:  encryptor,
		homeCache:  homeCache,
		log:        log,
	}
}

// CreateLinkToken issues the consent-widget token for the given user.
func (s *LinkService) CreateLinkToken(ctx context.Context, user *domain.User) (string, error) {
	token, err := s.aggregator.CreateLinkToken(ctx, ports.LinkTokenParams{
		ClientUserID: user.ID,
		ClientName:   user.FullName(),
		Products:     []string{"auth", "transactions"},
		Language:     "en",
		CountryCodes: []string{"US"},
	})
	if err != nil {
		return "", fmt.Errorf("create link token: %w", err)
	}
	return token, nil
}

// ExchangePublicToken runs the linking pipeline:
//
//	exchange → account fetch → processor token → funding source → persist → invalidate cache
//
// No BankAccount is written unless every earlier step succeeded.
func (s *LinkService) ExchangePublicToken(ctx context.Context, publicToken string, user *domain.User) (*ports.ExchangeResult, error) {
	if user == nil || user.ID == "" {
		return nil, domain.ErrMissingUserID
	}

	exchanged, err := s.aggregator.ExchangePublicToken(ctx, publicToken)
	if err != nil {
		return nil, fmt.Errorf("exchange public token: %w", err)
	}

	accounts, err := s.aggregator.GetAccounts(ctx, exchanged.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("fetch linked accounts: %w", err)
	}
	if len(accounts) == 0 {
		return nil, fmt.Errorf("fetch linked accounts: %w", domain.ErrBankNotFound)
	}
	account := accounts[0]

	processorToken, err := s.aggregator.CreateProcessorToken(ctx, exchanged.AccessToken, account.AccountID, processorName)
	if err != nil {
		return nil, fmt.Errorf("create processor token: %w", err)
	}

	fundingSourceURL, err := s.payments.CreateFundingSource(ctx, ports.FundingSourceParams{
		CustomerID:     user.DwollaCustomerID,
		ProcessorToken: processorToken,
		BankName:       account.Name,
	})
	if err != nil {
		return nil, fmt.Errorf("create funding source: %w", err)
	}
	// An empty URL without a vendor error is its own hard failure.
	if fundingSourceURL == "" {
		return nil, domain.ErrNoFundingSource
	}

	shareableID, err := s.encryptor.EncryptID(account.AccountID)
	if err != nil {
		return nil, fmt.Errorf("encrypt shareable ID: %w", err)
	}

	if _, err := s.banks.Create(ctx, &domain.BankAccount{
		ID:               uuid.NewString(),
		UserID:           user.ID,
		BankID:           exchanged.ItemID,
		AccountID:        account.AccountID,
		AccessToken:      exchanged.AccessToken,
		FundingSourceURL: fundingSourceURL,
		ShareableID:      shareableID,
		CreatedAt:        time.Now().UTC(),
	}); err != nil {
		return nil, fmt.Errorf("persist bank account: %w", err)
	}

	if err := s.homeCache.Invalidate(ctx, user.ID); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to invalidate home cache")
	}

	s.log.Info().
		Str("user_id", user.ID).
		Str("item_id", exchanged.ItemID).
		Str("bank_name", account.Name).
		Msg("bank account linked")

	return &ports.ExchangeResult{PublicTokenExchange: "complete"}, nil
}
