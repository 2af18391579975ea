// Package payments implements the HTTP client for the payment-transfer
// network. Created resources are addressed by the Location header of the
// 201 response, per the network's API convention.
package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/horizonbank/banking-api/internal/core/domain"
	"github.com/horizonbank/banking-api/internal/core/ports"
)

const defaultTimeout = 30 * time.Second

// Config captures the payment-network credentials and environment base URL.
type Config struct {
	BaseURL string
	Key     string
	Secret  string
	Timeout time.Duration
}

// Client talks to the payment network over HTTP.
type Client struct {
	httpClient *http.Client
	cfg        Config
	log        zerolog.Logger
}

var _ ports.PaymentNetwork = (*Client)(nil)

func NewClient(cfg Config, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		cfg:        cfg,
		log:        log.With().Str("component", "payments").Logger(),
	}
}

type customerRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Type        string `json:"type"`
	Address1    string `json:"address1"`
	City        string `json:"city"`
	State       string `json:"state"`
	PostalCode  string `json:"postalCode"`
	DateOfBirth string `json:"dateOfBirth"`
	SSN         string `json:"ssn"`
}

func (c *Client) CreateCustomer(ctx context.Context, params ports.NewCustomerParams) (string, error) {
	req := customerRequest{
		FirstName:   params.FirstName,
		LastName:    params.LastName,
		Email:       params.Email,
		Type:        params.Type,
		Address1:    params.Address1,
		City:        params.City,
		State:       params.State,
		PostalCode:  params.PostalCode,
		DateOfBirth: params.DateOfBirth,
		SSN:         params.SSN,
	}
	return c.postForLocation(ctx, "/customers", req)
}

type fundingSourceRequest struct {
	PlaidToken string `json:"plaidToken"`
	Name       string `json:"name"`
}

func (c *Client) CreateFundingSource(ctx context.Context, params ports.FundingSourceParams) (string, error) {
	path := "/customers/" + params.CustomerID + "/funding-sources"
	return c.postForLocation(ctx, path, fundingSourceRequest{
		PlaidToken: params.ProcessorToken,
		Name:       params.BankName,
	})
}

type transferRequest struct {
	Links  transferLinks  `json:"_links"`
	Amount transferAmount `json:"amount"`
}

type transferLinks struct {
	Source      hrefLink `json:"source"`
	Destination hrefLink `json:"destination"`
}

type hrefLink struct {
	Href string `json:"href"`
}

type transferAmount struct {
	Currency string `json:"currency"`
	Value    string `json:"value"`
}

func (c *Client) CreateTransfer(ctx context.Context, params ports.TransferParams) (string, error) {
	req := transferRequest{
		Links: transferLinks{
			Source:      hrefLink{Href: params.SourceFundingSourceURL},
			Destination: hrefLink{Href: params.DestinationFundingSourceURL},
		},
		Amount: transferAmount{Currency: "USD", Value: params.Amount},
	}
	return c.postForLocation(ctx, "/transfers", req)
}

// vendorErrorBody is the network's embedded-errors envelope.
type vendorErrorBody struct {
	Embedded struct {
		Errors []vendorFieldError `json:"errors"`
	} `json:"_embedded"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type vendorFieldError struct {
	Code    string `json:"code"`
	Path    string `json:"path"`
	Message string `json:"message"`
}

// postForLocation sends a JSON request and returns the Location header of
// the created resource. Error bodies are normalised to domain.VendorError
// with the human-readable messages surfaced to the dashboard.
func (c *Client) postForLocation(ctx context.Context, path string, payload any) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/vnd.dwolla.v1.hal+json")
	req.Header.Set("Accept", "application/vnd.dwolla.v1.hal+json")
	req.SetBasicAuth(c.cfg.Key, c.cfg.Secret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &domain.VendorError{Kind: domain.VendorUpstream, Message: "An unexpected error occurred."}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusCreated {
		return resp.Header.Get("Location"), nil
	}

	raw, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return "", fmt.Errorf("read response: %w", readErr)
	}

	vendorErr := normalizeError(raw, resp.StatusCode)
	c.log.Warn().
		Str("path", path).
		Int("status", resp.StatusCode).
		Str("kind", string(vendorErr.Kind)).
		Msg("payment network request rejected")
	return "", vendorErr
}

// normalizeError maps the vendor's raw error codes onto the tagged variant
// with the messages the dashboard shows verbatim.
func normalizeError(raw []byte, status int) *domain.VendorError {
	var body vendorErrorBody
	if err := json.Unmarshal(raw, &body); err != nil || len(body.Embedded.Errors) == 0 {
		if body.Message != "" {
			return &domain.VendorError{Kind: domain.VendorUpstream, Message: body.Message}
		}
		return &domain.VendorError{
			Kind:    domain.VendorUpstream,
			Message: fmt.Sprintf("payment network request failed with status %d", status),
		}
	}

	first := body.Embedded.Errors[0]
	field := strings.TrimPrefix(first.Path, "/")
	switch first.Code {
	case "Duplicate":
		return &domain.VendorError{
			Kind:    domain.VendorDuplicate,
			Field:   field,
			Message: "The email address is already associated with an existing account.",
		}
	case "InvalidFormat":
		return &domain.VendorError{
			Kind:    domain.VendorInvalidFormat,
			Field:   field,
			Message: fmt.Sprintf("The %s format is invalid.", field),
		}
	case "MissingField", "Required":
		return &domain.VendorError{
			Kind:    domain.VendorMissingField,
			Field:   field,
			Message: "Please fill in all required fields.",
		}
	default:
		return &domain.VendorError{
			Kind:    domain.VendorUpstream,
			Field:   field,
			Message: "There was an issue with your input.",
		}
	}
}
