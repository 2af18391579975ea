package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/horizonbank/banking-api/internal/core/domain"
	"github.com/horizonbank/banking-api/internal/core/ports"
)

func newTransferFixture() (*TransferService, *stubBankRepo, *stubPayments) {
	banks := &stubBankRepo{}
	bankSvc := NewBankService(newStubUserRepo(), banks, &stubAggregator{}, newStubHomeCache(), zerolog.Nop())
	payments := &stubPayments{transferURL: "https://pay.example.com/transfers/tr_1"}
	svc := NewTransferService(bankSvc, payments, stubEncryptor{}, zerolog.Nop())
	return svc, banks, payments
}

func TestTransferService_Transfer_Success(t *testing.T) {
	svc, banks, payments := newTransferFixture()
	sender := seedBank(banks, "doc_sender", "user_1", "plaid_acc_1")
	sender.FundingSourceURL = "https://pay.example.com/funding-sources/fs_sender"
	recipient := seedBank(banks, "doc_recipient", "user_2", "plaid_acc_2")
	recipient.FundingSourceURL = "https://pay.example.com/funding-sources/fs_recipient"

	result, err := svc.Transfer(context.Background(), ports.TransferInput{
		SenderBankDocumentID: "doc_sender",
		RecipientShareableID: "enc:plaid_acc_2",
		Amount:               "12.50",
	})
	if err != nil {
		t.Fatalf("Transfer failed: %v", err)
	}
	if result.TransferURL != "https://pay.example.com/transfers/tr_1" {
		t.Fatalf("unexpected transfer URL %q", result.TransferURL)
	}

	if len(payments.transferParams) != 1 {
		t.Fatalf("expected one transfer call, got %d", len(payments.transferParams))
	}
	params := payments.transferParams[0]
	if params.SourceFundingSourceURL != sender.FundingSourceURL {
		t.Fatalf("unexpected source %q", params.SourceFundingSourceURL)
	}
	if params.DestinationFundingSourceURL != recipient.FundingSourceURL {
		t.Fatalf("unexpected destination %q", params.DestinationFundingSourceURL)
	}
	if params.Amount != "12.50" {
		t.Fatalf("unexpected amount %q", params.Amount)
	}
}

func TestTransferService_Transfer_UnknownSender(t *testing.T) {
	svc, banks, _ := newTransferFixture()
	seedBank(banks, "doc_recipient", "user_2", "plaid_acc_2")

	_, err := svc.Transfer(context.Background(), ports.TransferInput{
		SenderBankDocumentID: "doc_missing",
		RecipientShareableID: "enc:plaid_acc_2",
		Amount:               "1.00",
	})
	if !errors.Is(err, domain.ErrBankNotFound) {
		t.Fatalf("expected ErrBankNotFound, got %v", err)
	}
}

func TestTransferService_Transfer_AmbiguousRecipient(t *testing.T) {
	svc, banks, payments := newTransferFixture()
	seedBank(banks, "doc_sender", "user_1", "plaid_acc_1")
	seedBank(banks, "doc_a", "user_2", "plaid_acc_2")
	seedBank(banks, "doc_b", "user_3", "plaid_acc_2")

	_, err := svc.Transfer(context.Background(), ports.TransferInput{
		SenderBankDocumentID: "doc_sender",
		RecipientShareableID: "enc:plaid_acc_2",
		Amount:               "1.00",
	})
	if !errors.Is(err, domain.ErrBankNotFound) {
		t.Fatalf("ambiguous recipient must read as not found, got %v", err)
	}
	if len(payments.transferParams) != 0 {
		t.Fatalf("no transfer may be created")
	}
}
