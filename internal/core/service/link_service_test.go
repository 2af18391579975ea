package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/horizonbank/banking-api/internal/core/domain"
	"github.com/horizonbank/banking-api/internal/core/ports"
)

type stubAggregator struct {
	linkToken         string
	linkTokenErr      error
	exchanged         *ports.ExchangedToken
	exchangeErr       error
	accounts          []ports.AggregatorAccount
	accountsErr       error
	transactions      []ports.AggregatorTransaction
	transactionsErr   error
	processorToken    string
	processorTokenErr error
	accountsCalls     int
}

func (a *stubAggregator) CreateLinkToken(_ context.Context, _ ports.LinkTokenParams) (string, error) {
	return a.linkToken, a.linkTokenErr
}

func (a *stubAggregator) ExchangePublicToken(_ context.Context, _ string) (*ports.ExchangedToken, error) {
	return a.exchanged, a.exchangeErr
}

func (a *stubAggregator) GetAccounts(_ context.Context, _ string) ([]ports.AggregatorAccount, error) {
	a.accountsCalls++
	return a.accounts, a.accountsErr
}

func (a *stubAggregator) GetTransactions(_ context.Context, _ string) ([]ports.AggregatorTransaction, error) {
	return a.transactions, a.transactionsErr
}

func (a *stubAggregator) CreateProcessorToken(_ context.Context, _, _, _ string) (string, error) {
	return a.processorToken, a.processorTokenErr
}

type stubBankRepo struct {
	banks     []*domain.BankAccount
	createErr error
}

func (r *stubBankRepo) Create(_ context.Context, bank *domain.BankAccount) (*domain.BankAccount, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	clone := *bank
	r.banks = append(r.banks, &clone)
	return &clone, nil
}

func (r *stubBankRepo) FindByID(_ context.Context, documentID string) (*domain.BankAccount, error) {
	for _, b := range r.banks {
		if b.ID == documentID {
			clone := *b
			return &clone, nil
		}
	}
	return nil, domain.ErrBankNotFound
}

func (r *stubBankRepo) ListByUserID(_ context.Context, userID string) ([]*domain.BankAccount, error) {
	var out []*domain.BankAccount
	for _, b := range r.banks {
		if b.UserID == userID {
			clone := *b
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubBankRepo) ListByAccountID(_ context.Context, accountID string) ([]*domain.BankAccount, error) {
	var out []*domain.BankAccount
	for _, b := range r.banks {
		if b.AccountID == accountID {
			clone := *b
			out = append(out, &clone)
		}
	}
	return out, nil
}

type stubEncryptor struct{}

func (stubEncryptor) EncryptID(id string) (string, error) { return "enc:" + id, nil }

func (stubEncryptor) DecryptID(payload string) (string, error) {
	return payload[len("enc:"):], nil
}

type stubHomeCache struct {
	entries     map[string]*ports.AccountsSummary
	invalidated []string
}

func newStubHomeCache() *stubHomeCache {
	return &stubHomeCache{entries: make(map[string]*ports.AccountsSummary)}
}

func (c *stubHomeCache) Get(_ context.Context, userID string) (*ports.AccountsSummary, error) {
	return c.entries[userID], nil
}

func (c *stubHomeCache) Set(_ context.Context, userID string, summary *ports.AccountsSummary, _ time.Duration) error {
	c.entries[userID] = summary
	return nil
}

func (c *stubHomeCache) Invalidate(_ context.Context, userID string) error {
	delete(c.entries, userID)
	c.invalidated = append(c.invalidated, userID)
	return nil
}

func linkUser() *domain.User {
	return &domain.User{
		ID:               "user_1",
		AccountID:        "acct_1",
		Email:            "a@b.com",
		FirstName:        "A",
		LastName:         "B",
		DwollaCustomerID: "cust_42",
	}
}

func newLinkFixture() (*LinkService, *stubAggregator, *stubPayments, *stubBankRepo, *stubHomeCache) {
	agg := &stubAggregator{
		linkToken: "link-token-1",
		exchanged: &ports.ExchangedToken{AccessToken: "access-1", ItemID: "item-1"},
		accounts: []ports.AggregatorAccount{
			{AccountID: "plaid_acc_1", Name: "Checking", CurrentBalance: 100},
			{AccountID: "plaid_acc_2", Name: "Savings", CurrentBalance: 900},
		},
		processorToken: "processor-1",
	}
	payments := &stubPayments{fundingSourceURL: "https://pay.example.com/funding-sources/fs_1"}
	banks := &stubBankRepo{}
	cache := newStubHomeCache()
	svc := NewLinkService(agg, payments, banks, stubEncryptor{}, cache, zerolog.Nop())
	return svc, agg, payments, banks, cache
}

func TestLinkService_CreateLinkToken(t *testing.T) {
	svc, _, _, _, _ := newLinkFixture()

	token, err := svc.CreateLinkToken(context.Background(), linkUser())
	if err != nil {
		t.Fatalf("CreateLinkToken returned error: %v", err)
	}
	if token != "link-token-1" {
		t.Fatalf("unexpected token %q", token)
	}
}

func TestLinkService_ExchangePublicToken_Success(t *testing.T) {
	svc, _, payments, banks, cache := newLinkFixture()

	result, err := svc.ExchangePublicToken(context.Background(), "public-1", linkUser())
	if err != nil {
		t.Fatalf("exchange failed: %v", err)
	}
	if result.PublicTokenExchange != "complete" {
		t.Fatalf("unexpected result %q", result.PublicTokenExchange)
	}

	if len(banks.banks) != 1 {
		t.Fatalf("expected exactly one bank record, got %d", len(banks.banks))
	}
	bank := banks.banks[0]
	if bank.UserID != "user_1" || bank.BankID != "item-1" || bank.AccountID != "plaid_acc_1" {
		t.Fatalf("unexpected bank record: %+v", bank)
	}
	if bank.AccessToken != "access-1" {
		t.Fatalf("access token not persisted")
	}
	if bank.FundingSourceURL != "https://pay.example.com/funding-sources/fs_1" {
		t.Fatalf("unexpected funding source URL %q", bank.FundingSourceURL)
	}
	if bank.ShareableID != "enc:plaid_acc_1" {
		t.Fatalf("shareable ID must encrypt the first account's ID, got %q", bank.ShareableID)
	}

	if len(payments.fundingParams) != 1 {
		t.Fatalf("expected one funding-source call, got %d", len(payments.fundingParams))
	}
	fp := payments.fundingParams[0]
	if fp.CustomerID != "cust_42" || fp.ProcessorToken != "processor-1" || fp.BankName != "Checking" {
		t.Fatalf("unexpected funding-source params: %+v", fp)
	}

	if len(cache.invalidated) != 1 || cache.invalidated[0] != "user_1" {
		t.Fatalf("home cache must be invalidated for user_1, got %v", cache.invalidated)
	}
}

func TestLinkService_ExchangePublicToken_MissingUser(t *testing.T) {
	svc, _, _, banks, _ := newLinkFixture()

	for _, user := range []*domain.User{nil, {ID: ""}} {
		if _, err := svc.ExchangePublicToken(context.Background(), "public-1", user); !errors.Is(err, domain.ErrMissingUserID) {
			t.Fatalf("expected ErrMissingUserID, got %v", err)
		}
	}
	if len(banks.banks) != 0 {
		t.Fatalf("no bank may be written")
	}
}

func TestLinkService_ExchangePublicToken_StepFailuresAbort(t *testing.T) {
	cases := []struct {
		name  string
		setup func(agg *stubAggregator, payments *stubPayments, banks *stubBankRepo)
		want  error
	}{
		{
			name:  "exchange fails",
			setup: func(agg *stubAggregator, _ *stubPayments, _ *stubBankRepo) { agg.exchangeErr = errors.New("boom") },
		},
		{
			name:  "account fetch fails",
			setup: func(agg *stubAggregator, _ *stubPayments, _ *stubBankRepo) { agg.accountsErr = errors.New("boom") },
		},
		{
			name:  "no accounts returned",
			setup: func(agg *stubAggregator, _ *stubPayments, _ *stubBankRepo) { agg.accounts = nil },
			want:  domain.ErrBankNotFound,
		},
		{
			name:  "processor token fails",
			setup: func(agg *stubAggregator, _ *stubPayments, _ *stubBankRepo) { agg.processorTokenErr = errors.New("boom") },
		},
		{
			name:  "funding source fails",
			setup: func(_ *stubAggregator, payments *stubPayments, _ *stubBankRepo) { payments.fundingSourceErr = errors.New("boom") },
		},
		{
			name:  "funding source URL empty",
			setup: func(_ *stubAggregator, payments *stubPayments, _ *stubBankRepo) { payments.fundingSourceURL = "" },
			want:  domain.ErrNoFundingSource,
		},
		{
			name:  "persist fails",
			setup: func(_ *stubAggregator, _ *stubPayments, banks *stubBankRepo) { banks.createErr = errors.New("boom") },
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, agg, payments, banks, cache := newLinkFixture()
			tc.setup(agg, payments, banks)

			_, err := svc.ExchangePublicToken(context.Background(), "public-1", linkUser())
			if err == nil {
				t.Fatalf("expected error")
			}
			if tc.want != nil && !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if len(banks.banks) != 0 {
				t.Fatalf("failed pipeline must not persist a bank record")
			}
			if len(cache.invalidated) != 0 {
				t.Fatalf("failed pipeline must not touch the cache")
			}
		})
	}
}
