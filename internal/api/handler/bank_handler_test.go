package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/horizonbank/banking-api/internal/core/domain"
	"github.com/horizonbank/banking-api/internal/core/ports"
)

type stubBankService struct {
	banks   []*domain.BankAccount
	bank    *domain.BankAccount
	bankErr error
	summary *ports.AccountsSummary
	detail  *ports.AccountDetail
}

func (s *stubBankService) GetUserInfo(_ context.Context, _ string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (s *stubBankService) GetBanks(_ context.Context, _ string) ([]*domain.BankAccount, error) {
	return s.banks, nil
}

func (s *stubBankService) GetBank(_ context.Context, _ string) (*domain.BankAccount, error) {
	return s.bank, s.bankErr
}

func (s *stubBankService) GetBankByAccountID(_ context.Context, _ string) (*domain.BankAccount, error) {
	return s.bank, s.bankErr
}

func (s *stubBankService) GetAccounts(_ context.Context, _ string) (*ports.AccountsSummary, error) {
	return s.summary, nil
}

func (s *stubBankService) GetAccount(_ context.Context, _, _ string) (*ports.AccountDetail, error) {
	return s.detail, nil
}

func newSignedInContext(t *testing.T, target string, user *domain.User) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		c.Set("user", user)
	}
	return c, rec
}

func TestBankHandler_ListBanks_EmptyIsArray(t *testing.T) {
	svc := &stubBankService{}
	c, rec := newSignedInContext(t, "/v1/banks", &domain.User{ID: "user_1"})

	if err := NewBankHandler(svc).ListBanks(c); err != nil {
		t.Fatalf("ListBanks returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if string(resp["banks"]) != "[]" {
		t.Fatalf("empty list must render as [], got %s", resp["banks"])
	}
}

func TestBankHandler_ListBanks_NotSignedIn(t *testing.T) {
	svc := &stubBankService{}
	c, _ := newSignedInContext(t, "/v1/banks", nil)

	err := NewBankHandler(svc).ListBanks(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestBankHandler_GetBank_ForeignBankIsNotFound(t *testing.T) {
	svc := &stubBankService{bank: &domain.BankAccount{ID: "doc_1", UserID: "someone_else"}}
	c, rec := newSignedInContext(t, "/v1/banks/doc_1", &domain.User{ID: "user_1"})
	c.SetParamNames("id")
	c.SetParamValues("doc_1")

	if err := NewBankHandler(svc).GetBank(c); err != nil {
		t.Fatalf("GetBank returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestBankHandler_GetBank_HidesAccessToken(t *testing.T) {
	svc := &stubBankService{bank: &domain.BankAccount{
		ID:          "doc_1",
		UserID:      "user_1",
		AccessToken: "access-secret",
	}}
	c, rec := newSignedInContext(t, "/v1/banks/doc_1", &domain.User{ID: "user_1"})
	c.SetParamNames("id")
	c.SetParamValues("doc_1")

	if err := NewBankHandler(svc).GetBank(c); err != nil {
		t.Fatalf("GetBank returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "access-secret") {
		t.Fatalf("access token must never be serialized")
	}
}

func TestBankHandler_ListAccounts(t *testing.T) {
	svc := &stubBankService{summary: &ports.AccountsSummary{
		Accounts:            []ports.AccountView{{ID: "plaid_acc_1", BankDocumentID: "doc_1"}},
		TotalBanks:          1,
		TotalCurrentBalance: 100,
	}}
	c, rec := newSignedInContext(t, "/v1/accounts", &domain.User{ID: "user_1"})

	if err := NewBankHandler(svc).ListAccounts(c); err != nil {
		t.Fatalf("ListAccounts returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp ports.AccountsSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.TotalBanks != 1 || len(resp.Accounts) != 1 {
		t.Fatalf("unexpected summary: %+v", resp)
	}
}
