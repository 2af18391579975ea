package ports

import "context"

// TransferInput describes a payment between two linked accounts. The
// recipient is addressed by the encrypted shareable ID from their bank
// account's shareable link.
type TransferInput struct {
	SenderBankDocumentID string
	RecipientShareableID string
	Amount               string
}

// TransferResult reports the created payment-network transfer.
type TransferResult struct {
	TransferURL string `json:"transferUrl"`
}

// TransferService moves money between funding sources over the payment
// network.
type TransferService interface {
	Transfer(ctx context.Context, input TransferInput) (*TransferResult, error)
}
