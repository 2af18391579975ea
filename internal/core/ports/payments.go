package ports

import "context"

// NewCustomerParams describe a personal payment-network customer profile.
type NewCustomerParams struct {
	FirstName   string
	LastName    string
	Email       string
	Type        string
	Address1    string
	City        string
	State       string
	PostalCode  string
	DateOfBirth string
	SSN         string
}

// FundingSourceParams bind a processor token and display name to a customer
// profile.
type FundingSourceParams struct {
	CustomerID     string
	ProcessorToken string
	BankName       string
}

// TransferParams describe a payment between two funding sources.
type TransferParams struct {
	SourceFundingSourceURL      string
	DestinationFundingSourceURL string
	Amount                      string
}

// PaymentNetwork manages customer profiles and funding sources used to move
// money between linked accounts. Vendor failures come back as
// *domain.VendorError.
type PaymentNetwork interface {
	// CreateCustomer provisions a customer profile and returns its URL.
	CreateCustomer(ctx context.Context, params NewCustomerParams) (string, error)
	// CreateFundingSource registers a funding source and returns its URL.
	CreateFundingSource(ctx context.Context, params FundingSourceParams) (string, error)
	// CreateTransfer initiates a transfer and returns the transfer URL.
	CreateTransfer(ctx context.Context, params TransferParams) (string, error)
}
