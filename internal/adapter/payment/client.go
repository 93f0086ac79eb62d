package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/bitenow/bitenow/internal/domain/model"
)

// ErrNotConfigured indicates no payment provider was configured; card
// checkout is unavailable.
var ErrNotConfigured = errors.New("payment provider not configured")

// ProviderError represents a failed call to the payment provider.
type ProviderError struct {
	StatusCode int
	Message    string
}

func (e ProviderError) Error() string {
	return fmt.Sprintf("payment provider error: %d %s", e.StatusCode, e.Message)
}

// Session is a checkout session created at the provider. The customer is
// redirected to RedirectURL to pay.
type Session struct {
	RedirectURL string
	OrderID     string
}

// Client exposes checkout-session creation at the payment provider.
type Client interface {
	CreateSession(ctx context.Context, order model.Order) (*Session, error)
}

// HTTPClient implements Client via the provider's HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	successURL string
	cancelURL  string
	logger     *slog.Logger
}

type lineItem struct {
	Name       string `json:"name"`
	UnitAmount int64  `json:"unitAmount"`
	Quantity   int    `json:"quantity"`
}

type sessionRequest struct {
	OrderID    string     `json:"orderId"`
	Currency   string     `json:"currency"`
	LineItems  []lineItem `json:"lineItems"`
	SuccessURL string     `json:"successUrl"`
	CancelURL  string     `json:"cancelUrl"`
}

type sessionResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// NewHTTPClient creates a payment client with default timeout.
func NewHTTPClient(baseURL, successURL, cancelURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse payment url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("payment url must be absolute")
	}
	return &HTTPClient{
		baseURL:    parsed,
		successURL: successURL,
		cancelURL:  cancelURL,
		logger:     logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// CreateSession registers a checkout session for the order. Amounts are
// submitted in minor currency units.
func (c *HTTPClient) CreateSession(ctx context.Context, order model.Order) (*Session, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/v1/checkout/sessions")

	items := make([]lineItem, 0, len(order.Items))
	for _, item := range order.Items {
		name := item.Name
		if name == "" {
			name = item.MenuItemID
		}
		items = append(items, lineItem{
			Name:       name,
			UnitAmount: int64(math.Round(item.UnitPrice * 100)),
			Quantity:   item.Quantity,
		})
	}

	payload, err := json.Marshal(sessionRequest{
		OrderID:    order.ID,
		Currency:   "ghs",
		LineItems:  items,
		SuccessURL: fmt.Sprintf("%s?order=%s", c.successURL, order.ID),
		CancelURL:  c.cancelURL,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		var data sessionResponse
		if err := json.Unmarshal(body, &data); err != nil {
			return nil, err
		}
		if data.URL == "" {
			return nil, ProviderError{StatusCode: resp.StatusCode, Message: "session without redirect url"}
		}
		return &Session{RedirectURL: data.URL, OrderID: order.ID}, nil
	default:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("checkout session request failed",
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)),
		)
		return nil, ProviderError{StatusCode: resp.StatusCode, Message: resp.Status}
	}
}

// Disabled is a Client used when no provider is configured.
type Disabled struct{}

// CreateSession always fails with ErrNotConfigured.
func (Disabled) CreateSession(context.Context, model.Order) (*Session, error) {
	return nil, ErrNotConfigured
}

// Event is an inbound webhook notification from the provider.
type Event struct {
	Type      string `json:"type"`
	OrderID   string `json:"orderId"`
	SessionID string `json:"sessionId"`
}

// EventCheckoutCompleted marks a paid checkout session.
const EventCheckoutCompleted = "checkout.completed"

// Sign computes the hex HMAC-SHA256 webhook signature for a payload.
func Sign(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks a webhook payload against its signature header.
// An empty secret disables verification.
func VerifySignature(payload []byte, signature, secret string) bool {
	if secret == "" {
		return true
	}
	expected := Sign(payload, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}
