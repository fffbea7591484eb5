package payment

import (
	"fmt"
	"time"
)

// Status tracks one checkout attempt, not the booking's overall payment state.
type Status string

const (
	StatusCreated   Status = "created"
	StatusSucceeded Status = "succeeded"
	StatusExpired   Status = "expired"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusCreated, StatusSucceeded, StatusExpired:
		return Status(s), nil
	default:
		return "", fmt.Errorf("unknown payment status: %s", s)
	}
}

type Payment struct {
	ID             string    `json:"id"`
	BookingID      string    `json:"bookingId"`
	SessionID      string    `json:"sessionId"`
	CheckoutURL    string    `json:"checkoutUrl,omitempty"`
	Amount         string    `json:"amount"`
	Currency       string    `json:"currency"`
	Status         Status    `json:"status"`
	IdempotencyKey string    `json:"-"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
