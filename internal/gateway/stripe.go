package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spec-kit/complaint-service/internal/config"
)

// CheckoutSession is the gateway-neutral view of a hosted checkout session.
type CheckoutSession struct {
	ID            string
	URL           string
	PaymentStatus string
	AmountTotal   int64
	Currency      string
	TransactionID string
	CustomerEmail string
}

// Paid reports whether the gateway confirmed the charge.
func (s *CheckoutSession) Paid() bool {
	return s.PaymentStatus == "paid"
}

// CreateSessionInput describes a charge to collect.
type CreateSessionInput struct {
	ComplaintID string
	ProductName string
	Amount      float64
}

// CheckoutGateway is the opaque payment provider contract: create a redirect
// session, then confirm it server-side by id.
type CheckoutGateway interface {
	CreateSession(ctx context.Context, input CreateSessionInput) (*CheckoutSession, error)
	RetrieveSession(ctx context.Context, sessionID string) (*CheckoutSession, error)
}

// StripeGateway implements CheckoutGateway against the Stripe Checkout REST API.
type StripeGateway struct {
	cfg        config.StripeConfig
	httpClient *http.Client
}

// NewStripeGateway constructs the client.
func NewStripeGateway(cfg config.StripeConfig) *StripeGateway {
	return &StripeGateway{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type stripeSessionResponse struct {
	ID              string `json:"id"`
	URL             string `json:"url"`
	PaymentStatus   string `json:"payment_status"`
	AmountTotal     int64  `json:"amount_total"`
	Currency        string `json:"currency"`
	PaymentIntent   string `json:"payment_intent"`
	CustomerDetails struct {
		Email string `json:"email"`
	} `json:"customer_details"`
}

type stripeErrorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// CreateSession creates a hosted checkout session and returns its redirect URL.
func (g *StripeGateway) CreateSession(ctx context.Context, input CreateSessionInput) (*CheckoutSession, error) {
	// Stripe expects the smallest currency unit.
	unitAmount := int64(input.Amount*100 + 0.5)

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("payment_method_types[0]", "card")
	form.Set("line_items[0][price_data][currency]", g.cfg.Currency)
	form.Set("line_items[0][price_data][product_data][name]", input.ProductName)
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(unitAmount, 10))
	form.Set("line_items[0][quantity]", "1")
	form.Set("metadata[complaintId]", input.ComplaintID)
	form.Set("success_url", strings.ReplaceAll(g.cfg.SuccessURL, "{COMPLAINT_ID}", input.ComplaintID))
	form.Set("cancel_url", g.cfg.CancelURL)

	endpoint := g.cfg.BaseURL + "/v1/checkout/sessions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+g.cfg.SecretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return g.doSessionRequest(req)
}

// RetrieveSession fetches a session for server-side confirmation.
func (g *StripeGateway) RetrieveSession(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	endpoint := g.cfg.BaseURL + "/v1/checkout/sessions/" + url.PathEscape(sessionID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+g.cfg.SecretKey)

	return g.doSessionRequest(req)
}

func (g *StripeGateway) doSessionRequest(req *http.Request) (*CheckoutSession, error) {
	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		var errResp stripeErrorResponse
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
			return nil, fmt.Errorf("stripe: %s (%s)", errResp.Error.Message, errResp.Error.Type)
		}
		return nil, fmt.Errorf("stripe: unexpected status %d", resp.StatusCode)
	}

	var session stripeSessionResponse
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("stripe: parse response: %w", err)
	}

	return &CheckoutSession{
		ID:            session.ID,
		URL:           session.URL,
		PaymentStatus: session.PaymentStatus,
		AmountTotal:   session.AmountTotal,
		Currency:      session.Currency,
		TransactionID: session.PaymentIntent,
		CustomerEmail: session.CustomerDetails.Email,
	}, nil
}
