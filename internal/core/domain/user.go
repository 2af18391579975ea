package domain

import (
	"errors"
	"time"
)

var ErrEmailTaken = errors.New("email already registered")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrAccountNotFound = errors.New("identity account not found")

// MsgNoSuchUser is returned on sign-in when the credential check succeeds
// but no matching user document exists (inconsistent state).
const MsgNoSuchUser = "There is no such user. Please sign up first"

// Account is an identity account: the credential record a user signs in with.
// It is created first during sign-up and deleted again if a later
// provisioning step fails.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// User is the persisted profile document. One User owns zero or more
// BankAccount records. Immutable after sign-up except for linked accounts.
type User struct {
	ID                string    `json:"id"`
	AccountID         string    `json:"userId"`
	Email             string    `json:"email"`
	FirstName         string    `json:"firstName"`
	LastName          string    `json:"lastName"`
	Address1          string    `json:"address1"`
	City              string    `json:"city"`
	State             string    `json:"state"`
	PostalCode        string    `json:"postalCode"`
	DateOfBirth       string    `json:"dateOfBirth"`
	SSN               string    `json:"-"`
	DwollaCustomerID  string    `json:"dwollaCustomerId"`
	DwollaCustomerURL string    `json:"dwollaCustomerUrl"`
	CreatedAt         time.Time `json:"created_at"`
}

// FullName is the display name used when creating aggregator link tokens.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
