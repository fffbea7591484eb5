package booking

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const bookingColumns = `
b.id, b.reference, b.user_email, b.service_id, COALESCE(s.name,''), b.booking_type,
b.schedule_at, b.status, b.payment_status, b.payable_amount::text, b.currency,
COALESCE(b.address_line,''), COALESCE(b.address_city,''), COALESCE(b.address_area,''),
COALESCE(b.quantity,0), COALESCE(b.decorator_id::text,''), b.created_at, b.updated_at`

const bookingFrom = `
FROM bookings b
LEFT JOIN services s ON s.id = b.service_id`

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	var status, bookingType, paymentStatus string
	if err := row.Scan(
		&b.ID, &b.Reference, &b.UserEmail, &b.ServiceID, &b.ServiceName, &bookingType,
		&b.ScheduleAt, &status, &paymentStatus, &b.PayableAmount, &b.Currency,
		&b.Address.Line, &b.Address.City, &b.Address.Area,
		&b.Quantity, &b.DecoratorID, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}
	b.BookingType = Type(bookingType)
	b.Status = Status(status)
	b.PaymentStatus = PaymentStatus(paymentStatus)
	b.StatusBadge = Badge(b.Status)
	return &b, nil
}

// NewReference mints a short customer-facing booking reference.
func NewReference() string {
	return "BK-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
}

type CreateParams struct {
	UserEmail     string
	ServiceID     string
	BookingType   Type
	ScheduleAt    time.Time
	Address       Address
	Quantity      int
	PayableAmount decimal.Decimal
	PaymentStatus PaymentStatus
	Currency      string
}

func (r *Repository) Create(ctx context.Context, p CreateParams) (*Booking, error) {
	const q = `
INSERT INTO bookings
  (reference, user_email, service_id, booking_type, schedule_at, status, payment_status,
   payable_amount, currency, address_line, address_city, address_area, quantity)
VALUES ($1, $2, $3, $4, $5, 'pending', $6, $7, $8, $9, $10, $11, $12)
RETURNING id, created_at, updated_at
`
	b := &Booking{
		Reference:     NewReference(),
		UserEmail:     p.UserEmail,
		ServiceID:     p.ServiceID,
		BookingType:   p.BookingType,
		ScheduleAt:    p.ScheduleAt,
		Status:        StatusPending,
		StatusBadge:   Badge(StatusPending),
		PaymentStatus: p.PaymentStatus,
		PayableAmount: p.PayableAmount.StringFixed(2),
		Currency:      p.Currency,
		Address:       p.Address,
		Quantity:      p.Quantity,
	}
	err := r.db.QueryRow(ctx, q,
		b.Reference, p.UserEmail, p.ServiceID, string(p.BookingType), p.ScheduleAt,
		string(p.PaymentStatus), b.PayableAmount, p.Currency,
		p.Address.Line, p.Address.City, p.Address.Area, p.Quantity,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Booking, error) {
	q := `SELECT ` + bookingColumns + bookingFrom + ` WHERE b.id = $1`
	return scanBooking(r.db.QueryRow(ctx, q, id))
}

func (r *Repository) list(ctx context.Context, q string, args ...any) ([]Booking, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

func (r *Repository) ListByUserEmail(ctx context.Context, email string) ([]Booking, error) {
	q := `SELECT ` + bookingColumns + bookingFrom + `
WHERE b.user_email = $1
ORDER BY b.created_at DESC`
	return r.list(ctx, q, email)
}

func (r *Repository) ListByDecorator(ctx context.Context, decoratorID string) ([]Booking, error) {
	q := `SELECT ` + bookingColumns + bookingFrom + `
WHERE b.decorator_id = $1
ORDER BY b.schedule_at ASC`
	return r.list(ctx, q, decoratorID)
}

// ListAll powers the admin dashboard. An empty status lists everything.
func (r *Repository) ListAll(ctx context.Context, status string) ([]Booking, error) {
	q := `SELECT ` + bookingColumns + bookingFrom + `
WHERE ($1 = '' OR b.status = $1)
ORDER BY b.created_at DESC`
	return r.list(ctx, q, status)
}

// UpdatePendingDetails rewrites the schedule and address of a booking that has
// not been assigned yet. Returns pgx.ErrNoRows once the booking has moved on.
func (r *Repository) UpdatePendingDetails(ctx context.Context, id, ownerEmail string, scheduleAt time.Time, addr Address) (*Booking, error) {
	const q = `
UPDATE bookings
SET schedule_at = $3, address_line = $4, address_city = $5, address_area = $6, updated_at = now()
WHERE id = $1 AND user_email = $2 AND status = 'pending'
`
	ct, err := r.db.Exec(ctx, q, id, ownerEmail, scheduleAt, addr.Line, addr.City, addr.Area)
	if err != nil {
		return nil, err
	}
	if ct.RowsAffected() == 0 {
		return nil, pgx.ErrNoRows
	}
	return r.GetByID(ctx, id)
}

// GetForUpdate locks a booking row for the duration of the caller's
// transaction so concurrent transitions serialize.
func GetForUpdate(ctx context.Context, tx pgx.Tx, id string) (*Booking, error) {
	const q = `
SELECT id, reference, user_email, service_id, booking_type, schedule_at, status,
       payment_status, payable_amount::text, currency,
       COALESCE(address_line,''), COALESCE(address_city,''), COALESCE(address_area,''),
       COALESCE(quantity,0), COALESCE(decorator_id::text,''), created_at, updated_at
FROM bookings
WHERE id = $1
FOR UPDATE
`
	var b Booking
	var status, bookingType, paymentStatus string
	if err := tx.QueryRow(ctx, q, id).Scan(
		&b.ID, &b.Reference, &b.UserEmail, &b.ServiceID, &bookingType, &b.ScheduleAt, &status,
		&paymentStatus, &b.PayableAmount, &b.Currency,
		&b.Address.Line, &b.Address.City, &b.Address.Area,
		&b.Quantity, &b.DecoratorID, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}
	b.BookingType = Type(bookingType)
	b.Status = Status(status)
	b.PaymentStatus = PaymentStatus(paymentStatus)
	b.StatusBadge = Badge(b.Status)
	return &b, nil
}

func UpdateStatusTx(ctx context.Context, tx pgx.Tx, id string, status Status) error {
	const q = `UPDATE bookings SET status = $2, updated_at = now() WHERE id = $1`
	_, err := tx.Exec(ctx, q, id, string(status))
	return err
}

func AssignDecoratorTx(ctx context.Context, tx pgx.Tx, id, decoratorID string) error {
	const q = `
UPDATE bookings
SET decorator_id = $2, status = 'assigned', updated_at = now()
WHERE id = $1
`
	_, err := tx.Exec(ctx, q, id, decoratorID)
	return err
}

func SetPaymentStatusTx(ctx context.Context, tx pgx.Tx, id string, status PaymentStatus) error {
	const q = `UPDATE bookings SET payment_status = $2, updated_at = now() WHERE id = $1`
	_, err := tx.Exec(ctx, q, id, string(status))
	return err
}
