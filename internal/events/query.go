package events

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Event is one row of a booking's timeline, shown on tracking and admin views.
type Event struct {
	ID         string `json:"id"`
	BookingID  string `json:"bookingId"`
	EventType  string `json:"eventType"`
	Summary    string `json:"summary"`
	Actor      string `json:"actor"`
	OccurredAt string `json:"occurredAt"`
	Data       any    `json:"data,omitempty"`
}

func ListByBooking(ctx context.Context, db *pgxpool.Pool, bookingID string) ([]Event, error) {
	const q = `
SELECT id, booking_id, event_type, summary, actor, occurred_at::text, COALESCE(data, '{}'::jsonb)
FROM booking_events
WHERE booking_id = $1
ORDER BY occurred_at ASC, created_at ASC
`
	rows, err := db.Query(ctx, q, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.BookingID, &e.EventType, &e.Summary, &e.Actor, &e.OccurredAt, &e.Data); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
