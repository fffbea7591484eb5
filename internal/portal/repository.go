package portal

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const tokenTTL = 30 * 24 * time.Hour

// CreateToken mints a share token for a booking. Existing tokens keep working
// until they expire.
func (r *Repository) CreateToken(ctx context.Context, bookingID string) (string, time.Time, error) {
	token := strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
	expiresAt := time.Now().Add(tokenTTL)

	const q = `
INSERT INTO tracking_tokens (token, booking_id, expires_at)
VALUES ($1, $2, $3)
`
	if _, err := r.db.Exec(ctx, q, token, bookingID, expiresAt); err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// Resolve returns the booking id behind a live token. Expired and revoked
// tokens resolve to nothing.
func (r *Repository) Resolve(ctx context.Context, token string) (string, error) {
	const q = `
SELECT booking_id
FROM tracking_tokens
WHERE token = $1 AND expires_at > now() AND revoked_at IS NULL
`
	var bookingID string
	err := r.db.QueryRow(ctx, q, token).Scan(&bookingID)
	return bookingID, err
}

// RevokeForBooking kills every live tracking link for a booking. Returns the
// number of tokens revoked.
func (r *Repository) RevokeForBooking(ctx context.Context, bookingID string) (int64, error) {
	const q = `
UPDATE tracking_tokens
SET revoked_at = now()
WHERE booking_id = $1 AND revoked_at IS NULL
`
	ct, err := r.db.Exec(ctx, q, bookingID)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}
