package ports

import (
	"context"

	"github.com/horizonbank/banking-api/internal/core/domain"
)

// SignUpInput carries all data collected on the sign-up form.
type SignUpInput struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	Address1    string
	City        string
	State       string
	PostalCode  string
	DateOfBirth string
	SSN         string
}

// AuthResult is returned by SignUp and SignIn. SessionSecret is the opaque
// value placed in the session cookie; it never appears in response bodies.
type AuthResult struct {
	User          *domain.User
	SessionSecret string
}

// AuthService is the session/identity gateway: it wraps identity-account
// creation, credential sessions, and current-user resolution.
type AuthService interface {
	SignUp(ctx context.Context, input SignUpInput) (*AuthResult, error)
	SignIn(ctx context.Context, email, password string) (*AuthResult, error)
	// CurrentUser resolves the session secret from the cookie. A missing or
	// invalid session yields (nil, nil), not an error.
	CurrentUser(ctx context.Context, sessionSecret string) (*domain.User, error)
	// Logout invalidates the remote session. Best effort: failures are
	// logged, never returned.
	Logout(ctx context.Context, sessionSecret string)
}
