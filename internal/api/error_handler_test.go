package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/horizonbank/banking-api/internal/core/domain"
)

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{
			name:     "email taken",
			err:      domain.ErrEmailTaken,
			wantCode: http.StatusConflict,
			wantMsg:  "The email address is already associated with an existing account.",
		},
		{
			name:     "invalid credentials",
			err:      domain.ErrInvalidCredentials,
			wantCode: http.StatusUnauthorized,
			wantMsg:  "invalid credentials",
		},
		{
			name:     "user not found",
			err:      fmt.Errorf("%s: %w", domain.MsgNoSuchUser, domain.ErrUserNotFound),
			wantCode: http.StatusNotFound,
			wantMsg:  domain.MsgNoSuchUser,
		},
		{
			name:     "bank not found",
			err:      fmt.Errorf("resolve recipient bank: %w", domain.ErrBankNotFound),
			wantCode: http.StatusNotFound,
			wantMsg:  "bank account not found",
		},
		{
			name:     "session expired",
			err:      domain.ErrSessionExpired,
			wantCode: http.StatusUnauthorized,
			wantMsg:  "not signed in",
		},
		{
			name:     "no funding source",
			err:      domain.ErrNoFundingSource,
			wantCode: http.StatusBadGateway,
			wantMsg:  "could not create a funding source for this account",
		},
		{
			name:     "missing user ID",
			err:      domain.ErrMissingUserID,
			wantCode: http.StatusBadRequest,
			wantMsg:  "Invalid userId. Cannot create bank account.",
		},
		{
			name: "vendor error surfaces its message",
			err: &domain.VendorError{
				Kind:    domain.VendorUpstream,
				Message: "provided public token is invalid",
			},
			wantCode: http.StatusBadGateway,
			wantMsg:  "provided public token is invalid",
		},
		{
			name:     "echo error passthrough",
			err:      echo.NewHTTPError(http.StatusUnauthorized, "not signed in"),
			wantCode: http.StatusUnauthorized,
			wantMsg:  "not signed in",
		},
		{
			name:     "unknown error is generic",
			err:      errors.New("mongo: connection reset"),
			wantCode: http.StatusInternalServerError,
			wantMsg:  "An unexpected error occurred.",
		},
	}

	handler := NewHTTPErrorHandler(zerolog.Nop())
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/v1/banks", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handler(tc.err, c)

			if rec.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d", tc.wantCode, rec.Code)
			}
			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid response body: %v", err)
			}
			if resp.Error != tc.wantMsg {
				t.Fatalf("expected %q, got %q", tc.wantMsg, resp.Error)
			}
		})
	}
}

func TestHTTPErrorHandler_CommittedResponse(t *testing.T) {
	handler := NewHTTPErrorHandler(zerolog.Nop())
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := c.NoContent(http.StatusNoContent); err != nil {
		t.Fatalf("commit response: %v", err)
	}
	handler(errors.New("late failure"), c)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("committed response must not be rewritten, got %d", rec.Code)
	}
}
