package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"librarian-backend/internal/domain"
	"librarian-backend/internal/logger"
)

// Client talks to the external payments API. Declines come back as regular
// confirmations; transport problems and non-2xx answers are errors, which
// the payment service reports as processing errors.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type paymentRequest struct {
	PatronID    string `json:"patron_id"`
	AmountCents int32  `json:"amount_cents"`
	Description string `json:"description"`
}

type refundRequest struct {
	TransactionID string `json:"transaction_id"`
	AmountCents   int32  `json:"amount_cents"`
}

type gatewayResponse struct {
	Approved      bool   `json:"approved"`
	TransactionID string `json:"transaction_id"`
	Message       string `json:"message"`
}

func (c *Client) ProcessPayment(ctx context.Context, patronID string, amountCents int32, description string) (*domain.PaymentConfirmation, error) {
	req := paymentRequest{
		PatronID:    patronID,
		AmountCents: amountCents,
		Description: description,
	}
	return c.post(ctx, "/payments", "ProcessPayment", req)
}

func (c *Client) RefundPayment(ctx context.Context, transactionID string, amountCents int32) (*domain.PaymentConfirmation, error) {
	req := refundRequest{
		TransactionID: transactionID,
		AmountCents:   amountCents,
	}
	return c.post(ctx, "/refunds", "RefundPayment", req)
}

func (c *Client) post(ctx context.Context, path, operation string, payload any) (*domain.PaymentConfirmation, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s request: %w", operation, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build %s request: %w", operation, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	// A fresh key per call; the gateway deduplicates retried requests.
	httpReq.Header.Set("Idempotency-Key", uuid.NewString())

	logger.ExternalServiceCall("payment-gateway", operation, "path", path)
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		logger.ExternalServiceResult("payment-gateway", operation, err)
		return nil, fmt.Errorf("payment gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := fmt.Errorf("payment gateway returned status %d", resp.StatusCode)
		logger.ExternalServiceResult("payment-gateway", operation, err)
		return nil, err
	}

	var gw gatewayResponse
	if err := json.NewDecoder(resp.Body).Decode(&gw); err != nil {
		logger.ExternalServiceResult("payment-gateway", operation, err)
		return nil, fmt.Errorf("failed to decode %s response: %w", operation, err)
	}

	logger.ExternalServiceResult("payment-gateway", operation, nil, "approved", gw.Approved)
	return &domain.PaymentConfirmation{
		Approved:      gw.Approved,
		TransactionID: gw.TransactionID,
		Message:       gw.Message,
	}, nil
}
