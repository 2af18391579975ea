// Package aggregator implements the HTTP client for the bank-data
// aggregation provider. All requests authenticate with the client ID and
// secret in the JSON body, following the provider's wire contract.
package aggregator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/horizonbank/banking-api/internal/core/domain"
	"github.com/horizonbank/banking-api/internal/core/ports"
)

const (
	defaultTimeout     = 30 * time.Second
	linkTokenPath      = "/link/token/create"
	exchangeTokenPath  = "/item/public_token/exchange"
	accountsPath       = "/accounts/get"
	transactionsPath   = "/transactions/get"
	processorTokenPath = "/processor/token/create"
)

// Config captures the aggregator credentials and environment base URL.
type Config struct {
	BaseURL  string
	ClientID string
	Secret   string
	Timeout  time.Duration
}

// Client talks to the aggregator over HTTP.
type Client struct {
	httpClient *http.Client
	cfg        Config
	log        zerolog.Logger
}

var _ ports.Aggregator = (*Client)(nil)

func NewClient(cfg Config, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		cfg:        cfg,
		log:        log.With().Str("component", "aggregator").Logger(),
	}
}

type linkTokenRequest struct {
	ClientID     string        `json:"client_id"`
	Secret       string        `json:"secret"`
	User         linkTokenUser `json:"user"`
	ClientName   string        `json:"client_name"`
	Products     []string      `json:"products"`
	Language     string        `json:"language"`
	CountryCodes []string      `json:"country_codes"`
}

type linkTokenUser struct {
	ClientUserID string `json:"client_user_id"`
}

type linkTokenResponse struct {
	LinkToken string `json:"link_token"`
}

func (c *Client) CreateLinkToken(ctx context.Context, params ports.LinkTokenParams) (string, error) {
	req := linkTokenRequest{
		ClientID:     c.cfg.ClientID,
		Secret:       c.cfg.Secret,
		User:         linkTokenUser{ClientUserID: params.ClientUserID},
		ClientName:   params.ClientName,
		Products:     params.Products,
		Language:     params.Language,
		CountryCodes: params.CountryCodes,
	}
	var resp linkTokenResponse
	if err := c.post(ctx, linkTokenPath, req, &resp); err != nil {
		return "", err
	}
	return resp.LinkToken, nil
}

type exchangeRequest struct {
	ClientID    string `json:"client_id"`
	Secret      string `json:"secret"`
	PublicToken string `json:"public_token"`
}

type exchangeResponse struct {
	AccessToken string `json:"access_token"`
	ItemID      string `json:"item_id"`
}

func (c *Client) ExchangePublicToken(ctx context.Context, publicToken string) (*ports.ExchangedToken, error) {
	req := exchangeRequest{ClientID: c.cfg.ClientID, Secret: c.cfg.Secret, PublicToken: publicToken}
	var resp exchangeResponse
	if err := c.post(ctx, exchangeTokenPath, req, &resp); err != nil {
		return nil, err
	}
	return &ports.ExchangedToken{AccessToken: resp.AccessToken, ItemID: resp.ItemID}, nil
}

type accessTokenRequest struct {
	ClientID    string `json:"client_id"`
	Secret      string `json:"secret"`
	AccessToken string `json:"access_token"`
}

type accountsResponse struct {
	Accounts []accountPayload `json:"accounts"`
}

type accountPayload struct {
	AccountID    string          `json:"account_id"`
	Name         string          `json:"name"`
	OfficialName string          `json:"official_name"`
	Mask         string          `json:"mask"`
	Type         string          `json:"type"`
	Subtype      string          `json:"subtype"`
	Balances     balancesPayload `json:"balances"`
}

type balancesPayload struct {
	Current   float64 `json:"current"`
	Available float64 `json:"available"`
}

func (c *Client) GetAccounts(ctx context.Context, accessToken string) ([]ports.AggregatorAccount, error) {
	req := accessTokenRequest{ClientID: c.cfg.ClientID, Secret: c.cfg.Secret, AccessToken: accessToken}
	var resp accountsResponse
	if err := c.post(ctx, accountsPath, req, &resp); err != nil {
		return nil, err
	}

	accounts := make([]ports.AggregatorAccount, 0, len(resp.Accounts))
	for _, a := range resp.Accounts {
		accounts = append(accounts, ports.AggregatorAccount{
			AccountID:        a.AccountID,
			Name:             a.Name,
			OfficialName:     a.OfficialName,
			Mask:             a.Mask,
			Type:             a.Type,
			Subtype:          a.Subtype,
			CurrentBalance:   a.Balances.Current,
			AvailableBalance: a.Balances.Available,
		})
	}
	return accounts, nil
}

type transactionsResponse struct {
	Transactions []transactionPayload `json:"transactions"`
}

type transactionPayload struct {
	TransactionID  string   `json:"transaction_id"`
	Name           string   `json:"name"`
	Amount         float64  `json:"amount"`
	Date           string   `json:"date"`
	Category       []string `json:"category"`
	PaymentChannel string   `json:"payment_channel"`
	Pending        bool     `json:"pending"`
}

func (c *Client) GetTransactions(ctx context.Context, accessToken string) ([]ports.AggregatorTransaction, error) {
	req := accessTokenRequest{ClientID: c.cfg.ClientID, Secret: c.cfg.Secret, AccessToken: accessToken}
	var resp transactionsResponse
	if err := c.post(ctx, transactionsPath, req, &resp); err != nil {
		return nil, err
	}

	txns := make([]ports.AggregatorTransaction, 0, len(resp.Transactions))
	for _, t := range resp.Transactions {
		category := ""
		if len(t.Category) > 0 {
			category = t.Category[0]
		}
		txns = append(txns, ports.AggregatorTransaction{
			TransactionID:  t.TransactionID,
			Name:           t.Name,
			Amount:         t.Amount,
			Date:           t.Date,
			Category:       category,
			PaymentChannel: t.PaymentChannel,
			Pending:        t.Pending,
		})
	}
	return txns, nil
}

type processorTokenRequest struct {
	ClientID    string `json:"client_id"`
	Secret      string `json:"secret"`
	AccessToken string `json:"access_token"`
	AccountID   string `json:"account_id"`
	Processor   string `json:"processor"`
}

type processorTokenResponse struct {
	ProcessorToken string `json:"processor_token"`
}

func (c *Client) CreateProcessorToken(ctx context.Context, accessToken, accountID, processor string) (string, error) {
	req := processorTokenRequest{
		ClientID:    c.cfg.ClientID,
		Secret:      c.cfg.Secret,
		AccessToken: accessToken,
		AccountID:   accountID,
		Processor:   processor,
	}
	var resp processorTokenResponse
	if err := c.post(ctx, processorTokenPath, req, &resp); err != nil {
		return "", err
	}
	return resp.ProcessorToken, nil
}

// errorResponse is the aggregator's error envelope.
type errorResponse struct {
	ErrorType    string `json:"error_type"`
	ErrorCode    string `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}

// post sends a JSON request and decodes either the expected payload or the
// aggregator's error envelope, normalised to a domain.VendorError.
func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &domain.VendorError{Kind: domain.VendorUpstream, Message: "An unexpected error occurred."}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if jsonErr := json.Unmarshal(raw, &errResp); jsonErr == nil && errResp.ErrorMessage != "" {
			c.log.Warn().
				Str("path", path).
				Str("error_code", errResp.ErrorCode).
				Msg("aggregator request rejected")
			return &domain.VendorError{Kind: domain.VendorUpstream, Message: errResp.ErrorMessage}
		}
		return &domain.VendorError{
			Kind:    domain.VendorUpstream,
			Message: fmt.Sprintf("aggregator request failed with status %d", resp.StatusCode),
		}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
