package payment

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"decormarket/internal/api"
	"decormarket/internal/booking"
	"decormarket/internal/events"
	"decormarket/internal/user"
	"decormarket/pkg/checkout"
	"decormarket/pkg/db"
)

type Handlers struct {
	DB       *pgxpool.Pool
	Repo     *Repository
	Bookings *booking.Repository
	Gateway  checkout.Client

	SuccessURL string
	CancelURL  string

	Log *zap.Logger
}

type CheckoutRequest struct {
	BookingID string `json:"bookingId"`
}

// openLookupFailed separates "no open session" (fine, create one) from a real
// database error (must not create one).
func openLookupFailed(err error) bool {
	return err != nil && !errors.Is(err, pgx.ErrNoRows)
}

// CreateCheckout opens a hosted checkout session for a booking's payable
// amount. Repeated calls while a session is open return the same session.
func (h Handlers) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	u := api.UserFromContext(r.Context())
	if u == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing user identity")
		return
	}

	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.BookingID) == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "bookingId is required")
		return
	}

	b, err := h.Bookings.GetByID(r.Context(), req.BookingID)
	if err != nil {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "booking not found")
		return
	}
	if b.UserEmail != u.Email {
		api.WriteError(w, http.StatusForbidden, "FORBIDDEN", "not your booking")
		return
	}
	if b.Status == booking.StatusCancelled {
		api.WriteError(w, http.StatusConflict, "BOOKING_CANCELLED", "cancelled bookings cannot be paid")
		return
	}
	switch b.PaymentStatus {
	case booking.PaymentPaid, booking.PaymentFree:
		api.WriteError(w, http.StatusConflict, "NOTHING_TO_PAY", "booking does not owe a payment")
		return
	}

	open, err := h.Repo.OpenForBooking(r.Context(), b.ID)
	switch {
	case err == nil:
		api.WriteJSON(w, http.StatusOK, map[string]any{"payment": open})
		return
	case openLookupFailed(err):
		// A flaky lookup must not mint a second gateway session.
		h.Log.Error("look up open payment", zap.String("booking_id", b.ID), zap.Error(err))
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to look up existing payment")
		return
	}

	sess, err := h.Gateway.CreateSession(r.Context(), checkout.SessionRequest{
		Amount:         b.PayableAmount,
		Currency:       b.Currency,
		Description:    "Booking " + b.Reference,
		SuccessURL:     h.SuccessURL,
		CancelURL:      h.CancelURL,
		IdempotencyKey: uuid.NewString(),
		Metadata:       map[string]string{"booking_id": b.ID},
	})
	if err != nil {
		h.Log.Error("create checkout session", zap.String("booking_id", b.ID), zap.Error(err))
		api.WriteError(w, http.StatusBadGateway, "GATEWAY_ERROR", "payment gateway rejected the session")
		return
	}

	p := &Payment{
		BookingID:      b.ID,
		SessionID:      sess.ID,
		CheckoutURL:    sess.URL,
		Amount:         b.PayableAmount,
		Currency:       b.Currency,
		Status:         StatusCreated,
		IdempotencyKey: uuid.NewString(),
	}
	err = db.WithTx(r.Context(), h.DB, func(tx pgx.Tx) error {
		if err := InsertTx(r.Context(), tx, p); err != nil {
			return err
		}
		if err := booking.SetPaymentStatusTx(r.Context(), tx, b.ID, booking.PaymentPending); err != nil {
			return err
		}
		return events.Insert(r.Context(), tx, b.ID, "PAYMENT_STARTED", "Checkout session opened", u.Email, time.Now(), map[string]any{
			"sessionId": sess.ID,
			"amount":    b.PayableAmount,
		})
	})
	if err != nil {
		h.Log.Error("record checkout session", zap.String("booking_id", b.ID), zap.Error(err))
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to record payment")
		return
	}

	api.WriteJSON(w, http.StatusCreated, map[string]any{"payment": p})
}

type ConfirmRequest struct {
	SessionID string `json:"sessionId"`
}

// ConfirmSuccess settles a booking after the browser returns from checkout.
// The session's state is re-read from the gateway; the client's word alone
// never marks anything paid.
func (h Handlers) ConfirmSuccess(w http.ResponseWriter, r *http.Request) {
	u := api.UserFromContext(r.Context())
	if u == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing user identity")
		return
	}

	var req ConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.SessionID) == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "sessionId is required")
		return
	}

	sess, err := h.Gateway.GetSession(r.Context(), req.SessionID)
	if err != nil {
		h.Log.Error("fetch checkout session", zap.String("session_id", req.SessionID), zap.Error(err))
		api.WriteError(w, http.StatusBadGateway, "GATEWAY_ERROR", "could not verify session with gateway")
		return
	}
	if sess.Status != "complete" {
		api.WriteError(w, http.StatusConflict, "PAYMENT_NOT_SETTLED", "session is not complete")
		return
	}

	var out *Payment
	err = db.WithTx(r.Context(), h.DB, func(tx pgx.Tx) error {
		p, err := GetBySessionForUpdate(r.Context(), tx, req.SessionID)
		if err != nil {
			return err
		}
		b, err := booking.GetForUpdate(r.Context(), tx, p.BookingID)
		if err != nil {
			return err
		}
		if b.UserEmail != u.Email && u.Role != user.RoleAdmin {
			api.WriteError(w, http.StatusForbidden, "FORBIDDEN", "not your booking")
			return pgx.ErrTxCommitRollback
		}
		if p.Status == StatusSucceeded {
			out = p
			return nil
		}

		if err := UpdateStatusTx(r.Context(), tx, p.ID, StatusSucceeded); err != nil {
			return err
		}
		if err := booking.SetPaymentStatusTx(r.Context(), tx, b.ID, booking.PaymentPaid); err != nil {
			return err
		}
		if err := events.Insert(r.Context(), tx, b.ID, "PAYMENT_CONFIRMED", "Payment received", u.Email, time.Now(), map[string]any{
			"sessionId": p.SessionID,
		}); err != nil {
			return err
		}

		p.Status = StatusSucceeded
		out = p
		return nil
	})
	if err != nil {
		if err == pgx.ErrTxCommitRollback {
			return
		}
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "no payment for this session")
		return
	}

	api.WriteJSON(w, http.StatusOK, map[string]any{"payment": out})
}

func (h Handlers) AdminList(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.ListAll(r.Context())
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	if items == nil {
		items = []Payment{}
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}
