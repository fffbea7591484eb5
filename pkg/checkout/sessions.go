package checkout

import (
	"context"
	"fmt"
	"net/http"
)

type SessionRequest struct {
	// Amount is a decimal string in major units, e.g. "150.00".
	Amount         string            `json:"amount"`
	Currency       string            `json:"currency"`
	Description    string            `json:"description,omitempty"`
	SuccessURL     string            `json:"success_url"`
	CancelURL      string            `json:"cancel_url"`
	IdempotencyKey string            `json:"idempotency_key,omitempty"`
	Metadata       map[string]string `json:"metadata,omitempty"`
}

type Session struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	Status      string `json:"status"`
	PaymentID   string `json:"payment_id,omitempty"`
	AmountMinor int64  `json:"amount_minor,omitempty"`
}

type sessionEnvelope struct {
	Session Session `json:"session"`
}

// CreateSession creates a hosted checkout session and returns its id and the
// URL the browser should be redirected to.
func (c Client) CreateSession(ctx context.Context, req SessionRequest) (*Session, error) {
	if req.Amount == "" || req.Currency == "" {
		return nil, fmt.Errorf("missing amount or currency")
	}

	var resp sessionEnvelope
	if _, err := c.doJSON(ctx, http.MethodPost, "/v1/checkout/sessions", req, &resp); err != nil {
		return nil, err
	}
	if resp.Session.ID == "" || resp.Session.URL == "" {
		return nil, fmt.Errorf("gateway returned empty session")
	}
	return &resp.Session, nil
}

// GetSession fetches a session's current state, used to confirm payment on
// the success callback before trusting the client.
func (c Client) GetSession(ctx context.Context, sessionID string) (*Session, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("missing session id")
	}

	var resp sessionEnvelope
	if _, err := c.doJSON(ctx, http.MethodGet, "/v1/checkout/sessions/"+sessionID, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Session.ID == "" {
		return nil, fmt.Errorf("gateway returned empty session")
	}
	return &resp.Session, nil
}
