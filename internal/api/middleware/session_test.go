package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/horizonbank/banking-api/internal/core/domain"
	"github.com/horizonbank/banking-api/internal/core/ports"
)

type stubAuth struct {
	users map[string]*domain.User // keyed by session secret
}

func (s *stubAuth) SignUp(_ context.Context, _ ports.SignUpInput) (*ports.AuthResult, error) {
	return nil, nil
}

func (s *stubAuth) SignIn(_ context.Context, _, _ string) (*ports.AuthResult, error) {
	return nil, nil
}

func (s *stubAuth) CurrentUser(_ context.Context, secret string) (*domain.User, error) {
	return s.users[secret], nil
}

func (s *stubAuth) Logout(_ context.Context, _ string) {}

func TestSession_ValidCookie(t *testing.T) {
	auth := &stubAuth{users: map[string]*domain.User{
		"good-secret": {ID: "user_1", Email: "a@b.com"},
	}}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/banks", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "good-secret"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var injected *domain.User
	next := func(c echo.Context) error {
		injected, _ = UserFromContext(c)
		return nil
	}
	if err := Session(auth)(next)(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	if injected == nil || injected.ID != "user_1" {
		t.Fatalf("user not injected into context: %+v", injected)
	}
}

func TestSession_MissingOrInvalidCookie(t *testing.T) {
	auth := &stubAuth{users: map[string]*domain.User{}}
	next := func(c echo.Context) error { return nil }

	cases := []struct {
		name   string
		cookie *http.Cookie
	}{
		{name: "no cookie"},
		{name: "unknown secret", cookie: &http.Cookie{Name: SessionCookieName, Value: "stale"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/v1/banks", nil)
			if tc.cookie != nil {
				req.AddCookie(tc.cookie)
			}
			c := e.NewContext(req, httptest.NewRecorder())

			err := Session(auth)(next)(c)
			he, ok := err.(*echo.HTTPError)
			if !ok || he.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401 HTTPError, got %v", err)
			}
		})
	}
}

func TestSessionSecret_NoCookie(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	if got := SessionSecret(c); got != "" {
		t.Fatalf("expected empty secret, got %q", got)
	}
}
