package domain

import (
	"errors"
	"time"
)

var ErrBankNotFound = errors.New("bank account not found")

// ErrNoFundingSource marks the hard failure where the payment network
// accepted the processor token but returned no funding-source URL. It is
// deliberately distinct from vendor errors: the link flow must abort and
// no BankAccount record may be written.
var ErrNoFundingSource = errors.New("funding source URL missing")

// ErrMissingUserID guards the final persistence step of the link flow.
var ErrMissingUserID = errors.New("user ID missing, cannot create bank account")

// BankAccount records one linked external bank account. One document per
// linked account; duplicates for the same external account are possible and
// not prevented at this layer.
type BankAccount struct {
	ID string `json:"id"`
	// UserID references the owning User document.
	UserID string `json:"userId"`
	// BankID is the aggregator item identifier for the institution link.
	BankID string `json:"bankId"`
	// AccountID is the aggregator account identifier.
	AccountID string `json:"accountId"`
	// AccessToken is the long-lived aggregator access token. Secret.
	AccessToken string `json:"-"`
	// FundingSourceURL points at the payment-network funding source.
	FundingSourceURL string `json:"fundingSourceUrl"`
	// ShareableID is the encrypted account identifier used in shareable links.
	ShareableID string `json:"shareableId"`
	CreatedAt   time.Time `json:"created_at"`
}
