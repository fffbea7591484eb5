package audit

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
)

// Insert records a privileged mutation inside the caller's transaction so the
// audit row commits or rolls back together with the change it describes.
func Insert(ctx context.Context, tx pgx.Tx, actor string, bookingID *string, action string, metadata any) error {
	var s *string
	if metadata != nil {
		b, _ := json.Marshal(metadata)
		str := string(b)
		s = &str
	}
	const q = `
INSERT INTO audit_logs (actor, booking_id, action, metadata)
VALUES ($1, $2, $3, CAST($4 AS jsonb))
`
	_, err := tx.Exec(ctx, q, actor, bookingID, action, s)
	return err
}
