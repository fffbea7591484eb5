package payment

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const paymentColumns = `
id, booking_id, session_id, COALESCE(checkout_url,''), amount::text, currency,
status, idempotency_key, created_at, updated_at`

func scanPayment(row pgx.Row) (*Payment, error) {
	var p Payment
	var status string
	if err := row.Scan(
		&p.ID, &p.BookingID, &p.SessionID, &p.CheckoutURL, &p.Amount, &p.Currency,
		&status, &p.IdempotencyKey, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	p.Status = Status(status)
	return &p, nil
}

func InsertTx(ctx context.Context, tx pgx.Tx, p *Payment) error {
	const q = `
INSERT INTO payments (booking_id, session_id, checkout_url, amount, currency, status, idempotency_key)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, created_at, updated_at
`
	return tx.QueryRow(ctx, q,
		p.BookingID, p.SessionID, p.CheckoutURL, p.Amount, p.Currency, string(p.Status), p.IdempotencyKey,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// OpenForBooking returns the latest still-open checkout attempt so repeated
// pay clicks reuse one session instead of minting a new one each time.
func (r *Repository) OpenForBooking(ctx context.Context, bookingID string) (*Payment, error) {
	const q = `
SELECT` + paymentColumns + `
FROM payments
WHERE booking_id = $1 AND status = 'created'
ORDER BY created_at DESC
LIMIT 1
`
	return scanPayment(r.db.QueryRow(ctx, q, bookingID))
}

func (r *Repository) GetBySessionID(ctx context.Context, sessionID string) (*Payment, error) {
	const q = `
SELECT` + paymentColumns + `
FROM payments
WHERE session_id = $1
`
	return scanPayment(r.db.QueryRow(ctx, q, sessionID))
}

func GetBySessionForUpdate(ctx context.Context, tx pgx.Tx, sessionID string) (*Payment, error) {
	const q = `
SELECT` + paymentColumns + `
FROM payments
WHERE session_id = $1
FOR UPDATE
`
	return scanPayment(tx.QueryRow(ctx, q, sessionID))
}

func UpdateStatusTx(ctx context.Context, tx pgx.Tx, id string, status Status) error {
	const q = `UPDATE payments SET status = $2, updated_at = now() WHERE id = $1`
	_, err := tx.Exec(ctx, q, id, string(status))
	return err
}

func (r *Repository) ListAll(ctx context.Context) ([]Payment, error) {
	const q = `
SELECT` + paymentColumns + `
FROM payments
ORDER BY created_at DESC
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}
