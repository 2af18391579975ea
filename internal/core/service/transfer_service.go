package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/horizonbank/banking-api/internal/core/ports"
)

// TransferService moves money between two linked accounts. The recipient is
// addressed by the encrypted shareable ID, which decrypts to an aggregator
// account ID and resolves through the single-match bank lookup.
type TransferService struct {
	banks     ports.BankService
	payments  ports.PaymentNetwork
	encryptor ports.Encryptor
	log       zerolog.Logger
}

func NewTransferService(banks ports.BankService, payments ports.PaymentNetwork, encryptor ports.Encryptor, log zerolog.Logger) *TransferService {
	return &TransferService{banks: banks, payments: payments, encryptor: encryptor, log: log}
}

func (s *TransferService) Transfer(ctx context.Context, input ports.TransferInput) (*ports.TransferResult, error) {
	sender, err := s.banks.GetBank(ctx, input.SenderBankDocumentID)
	if err != nil {
		return nil, fmt.Errorf("resolve sender bank: %w", err)
	}

	accountID, err := s.encryptor.DecryptID(input.RecipientShareableID)
	if err != nil {
		return nil, fmt.Errorf("decrypt shareable ID: %w", err)
	}

	recipient, err := s.banks.GetBankByAccountID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("resolve recipient bank: %w", err)
	}

	transferURL, err := s.payments.CreateTransfer(ctx, ports.TransferParams{
		SourceFundingSourceURL:      sender.FundingSourceURL,
		DestinationFundingSourceURL: recipient.FundingSourceURL,
		Amount:                      input.Amount,
	})
	if err != nil {
		return nil, fmt.Errorf("create transfer: %w", err)
	}

	s.log.Info().
		Str("sender_bank", sender.ID).
		Str("recipient_bank", recipient.ID).
		Str("amount", input.Amount).
		Msg("transfer created")

	return &ports.TransferResult{TransferURL: transferURL}, nil
}
