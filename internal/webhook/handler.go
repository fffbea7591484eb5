package webhook

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"decormarket/internal/booking"
	"decormarket/internal/events"
	"decormarket/internal/metrics"
	"decormarket/internal/payment"
	"decormarket/pkg/checkout"
	"decormarket/pkg/db"
)

const signatureHeader = "X-Gateway-Signature"

type Handler struct {
	DB     *pgxpool.Pool
	Secret string
	Log    *zap.Logger
}

type gatewayEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Session checkout.Session `json:"session"`
	} `json:"data"`
}

// ServeHTTP ingests gateway webhooks. Bad signatures get 400; everything else
// gets 200 so the gateway stops retrying, with the outcome recorded in logs
// and metrics.
func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if !checkout.VerifyWebhookSignature(body, r.Header.Get(signatureHeader), h.Secret) {
		h.Log.Warn("webhook signature verification failed")
		metrics.WebhookEvents.WithLabelValues("unknown", "bad_signature").Inc()
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var ev gatewayEvent
	if err := json.Unmarshal(body, &ev); err != nil || ev.ID == "" || ev.Type == "" {
		metrics.WebhookEvents.WithLabelValues("unknown", "malformed").Inc()
		w.WriteHeader(http.StatusOK)
		return
	}

	outcome := h.process(r, ev)
	metrics.WebhookEvents.WithLabelValues(ev.Type, outcome).Inc()
	w.WriteHeader(http.StatusOK)
}

func (h Handler) process(r *http.Request, ev gatewayEvent) string {
	outcome := "ignored"
	err := db.WithTx(r.Context(), h.DB, func(tx pgx.Tx) error {
		// The event id is the idempotency key: a replay inserts nothing and we
		// skip processing.
		ct, err := tx.Exec(r.Context(),
			`INSERT INTO webhook_events (event_id, event_type) VALUES ($1, $2) ON CONFLICT (event_id) DO NOTHING`,
			ev.ID, ev.Type)
		if err != nil {
			return err
		}
		if ct.RowsAffected() == 0 {
			outcome = "duplicate"
			return nil
		}

		switch ev.Type {
		case "checkout.session.completed":
			return h.settleSession(r, tx, ev, &outcome)
		case "checkout.session.expired":
			return h.expireSession(r, tx, ev, &outcome)
		default:
			return nil
		}
	})
	if err != nil {
		h.Log.Error("process webhook", zap.String("event_id", ev.ID), zap.String("event_type", ev.Type), zap.Error(err))
		return "error"
	}
	return outcome
}

func (h Handler) settleSession(r *http.Request, tx pgx.Tx, ev gatewayEvent, outcome *string) error {
	p, err := payment.GetBySessionForUpdate(r.Context(), tx, ev.Data.Session.ID)
	if err != nil {
		if err == pgx.ErrNoRows {
			*outcome = "unmatched"
			return nil
		}
		return err
	}
	if p.Status == payment.StatusSucceeded {
		*outcome = "already_settled"
		return nil
	}

	if err := payment.UpdateStatusTx(r.Context(), tx, p.ID, payment.StatusSucceeded); err != nil {
		return err
	}
	if err := booking.SetPaymentStatusTx(r.Context(), tx, p.BookingID, booking.PaymentPaid); err != nil {
		return err
	}
	if err := events.Insert(r.Context(), tx, p.BookingID, "PAYMENT_CONFIRMED", "Payment received", "gateway", time.Now(), map[string]any{
		"sessionId": p.SessionID,
		"eventId":   ev.ID,
	}); err != nil {
		return err
	}
	*outcome = "settled"
	return nil
}

func (h Handler) expireSession(r *http.Request, tx pgx.Tx, ev gatewayEvent, outcome *string) error {
	p, err := payment.GetBySessionForUpdate(r.Context(), tx, ev.Data.Session.ID)
	if err != nil {
		if err == pgx.ErrNoRows {
			*outcome = "unmatched"
			return nil
		}
		return err
	}
	if p.Status != payment.StatusCreated {
		*outcome = "already_settled"
		return nil
	}

	if err := payment.UpdateStatusTx(r.Context(), tx, p.ID, payment.StatusExpired); err != nil {
		return err
	}
	// The booking owes the money again; the user can start a fresh session.
	if err := booking.SetPaymentStatusTx(r.Context(), tx, p.BookingID, booking.PaymentUnpaid); err != nil {
		return err
	}
	*outcome = "expired"
	return nil
}
