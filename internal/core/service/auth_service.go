package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/horizonbank/banking-api/internal/core/domain"
	"github.com/horizonbank/banking-api/internal/core/ports"
)

const defaultSessionTTL = 24 * time.Hour

// compensation is one undo step recorded while a multi-step flow makes
// progress. On failure the recorded steps run in reverse; errors are logged
// and do not stop the remaining compensations.
type compensation struct {
	name string
	fn   func(ctx context.Context) error
}

// AuthService implements the session/identity gateway.
type AuthService struct {
	identities ports.IdentityRepository
	users      ports.UserRepository
	sessions   ports.SessionStore
	payments   ports.PaymentNetwork
	jwtSecret  string
	sessionTTL time.Duration
	log        zerolog.Logger
}

func NewAuthService(
	identities ports.IdentityRepository,
	users ports.UserRepository,
	sessions ports.SessionStore,
	payments ports.PaymentNetwork,
	jwtSecret string,
	sessionTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = defaultSessionTTL
	}
	return &AuthService{
		identities: identities,
		users:      users,
		sessions:   sessions,
		payments:   payments,
		jwtSecret:  jwtSecret,
		sessionTTL: sessionTTL,
		log:        log,
	}
}

// SignUp creates the identity account, the payment-network customer, and the
// user document, then opens a session. Each completed step records a
// compensating action; the first failure rolls everything back in reverse
// before the error is surfaced.
func (s *AuthService) SignUp(ctx context.Context, input ports.SignUpInput) (*ports.AuthResult, error) {
	var undo []compensation
	rollback := func(ctx context.Context) {
		for i := len(undo) - 1; i >= 0; i-- {
			if err := undo[i].fn(ctx); err != nil {
				s.log.Error().Err(err).Str("step", undo[i].name).Msg("sign-up compensation failed")
			}
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account, err := s.identities.Create(ctx, &domain.Account{
		ID:           uuid.NewString(),
		Email:        input.Email,
		Name:         input.FirstName + " " + input.LastName,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	undo = append(undo, compensation{
		name: "delete identity account",
		fn:   func(ctx context.Context) error { return s.identities.Delete(ctx, account.ID) },
	})

	customerURL, err := s.payments.CreateCustomer(ctx, ports.NewCustomerParams{
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Email:       input.Email,
		Type:        "personal",
		Address1:    input.Address1,
		City:        input.City,
		State:       input.State,
		PostalCode:  input.PostalCode,
		DateOfBirth: input.DateOfBirth,
		SSN:         input.SSN,
	})
	if err != nil {
		rollback(ctx)
		return nil, err
	}

	user, err := s.users.Create(ctx, &domain.User{
		ID:                uuid.NewString(),
		AccountID:         account.ID,
		Email:             input.Email,
		FirstName:         input.FirstName,
		LastName:          input.LastName,
		Address1:          input.Address1,
		City:              input.City,
		State:             input.State,
		PostalCode:        input.PostalCode,
		DateOfBirth:       input.DateOfBirth,
		SSN:               input.SSN,
		DwollaCustomerID:  extractCustomerID(customerURL),
		DwollaCustomerURL: customerURL,
		CreatedAt:         time.Now().UTC(),
	})
	if err != nil {
		rollback(ctx)
		return nil, err
	}
	undo = append(undo, compensation{
		name: "delete user document",
		fn:   func(ctx context.Context) error { return s.users.Delete(ctx, user.ID) },
	})

	secret, err := s.openSession(ctx, user)
	if err != nil {
		rollback(ctx)
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("user signed up")
	return &ports.AuthResult{User: user, SessionSecret: secret}, nil
}

// SignIn verifies credentials, opens a session, and loads the user profile.
// A verified credential with no matching user document is an inconsistent
// state surfaced as its own message rather than the gateway error.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	account, err := s.identities.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByAccountID(ctx, account.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", domain.MsgNoSuchUser, domain.ErrUserNotFound)
	}

	secret, err := s.openSession(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("user signed in")
	return &ports.AuthResult{User: user, SessionSecret: secret}, nil
}

// CurrentUser resolves the cookie secret to a user. Absent or invalid
// sessions yield (nil, nil): the caller renders the logged-out state.
func (s *AuthService) CurrentUser(ctx context.Context, sessionSecret string) (*domain.User, error) {
	session, err := s.resolveSession(ctx, sessionSecret)
	if err != nil {
		return nil, nil
	}
	user, err := s.users.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, nil
	}
	return user, nil
}

// Logout deletes the server-side session record. Best effort only.
func (s *AuthService) Logout(ctx context.Context, sessionSecret string) {
	session, err := s.resolveSession(ctx, sessionSecret)
	if err != nil {
		s.log.Debug().Err(err).Msg("logout with no valid session")
		return
	}
	if err := s.sessions.Delete(ctx, session.ID); err != nil {
		s.log.Warn().Err(err).Str("session_id", session.ID).Msg("failed to delete session")
	}
}

func (s *AuthService) openSession(ctx context.Context, user *domain.User) (string, error) {
	now := time.Now().UTC()
	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		AccountID: user.AccountID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := s.sessions.Create(ctx, session, s.sessionTTL); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}

	claims := jwt.MapClaims{
		"sid": session.ID,
		"uid": user.ID,
		"exp": session.ExpiresAt.Unix(),
	}
	secret, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("sign session secret: %w", err)
	}
	return secret, nil
}

func (s *AuthService) resolveSession(ctx context.Context, sessionSecret string) (*domain.Session, error) {
	if sessionSecret == "" {
		return nil, domain.ErrSessionNotFound
	}
	sid, err := ParseSessionSecret(sessionSecret, s.jwtSecret)
	if err != nil {
		return nil, err
	}
	return s.sessions.Get(ctx, sid)
}

// ParseSessionSecret validates the signed cookie value and returns the
// session ID it references. The server-side record stays authoritative:
// a parseable secret whose record was deleted is still invalid.
func ParseSessionSecret(secret, jwtSecret string) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(secret, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return "", jwt.ErrTokenSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return "", domain.ErrSessionNotFound
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", domain.ErrSessionNotFound
	}
	return sid, nil
}

// extractCustomerID pulls the trailing path segment out of a payment-network
// customer URL.
func extractCustomerID(customerURL string) string {
	idx := strings.LastIndex(customerURL, "/")
	if idx < 0 || idx == len(customerURL)-1 {
		return customerURL
	}
	return customerURL[idx+1:]
}
