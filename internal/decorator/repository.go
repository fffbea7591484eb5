package decorator

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

const decoratorColumns = `
d.id, d.user_email, COALESCE(u.name,''), COALESCE(u.photo_url,''), d.specializations,
COALESCE(d.service_location,''), d.available, d.verified, d.rating, d.review_count,
d.experience_years, d.application_status, d.applied_at`

const decoratorFrom = `
FROM decorators d
JOIN users u ON u.email = d.user_email`

func scanDecorator(row pgx.Row) (*Decorator, error) {
	var d Decorator
	var status string
	if err := row.Scan(
		&d.ID, &d.UserEmail, &d.Name, &d.PhotoURL, &d.Specializations,
		&d.ServiceLocation, &d.Available, &d.Verified, &d.Rating, &d.ReviewCount,
		&d.ExperienceYears, &status, &d.AppliedAt,
	); err != nil {
		return nil, err
	}
	d.ApplicationStatus = ApplicationStatus(status)
	if d.Specializations == nil {
		d.Specializations = []string{}
	}
	return &d, nil
}

// Apply inserts a new application. The partial unique index on live
// applications makes a second pending/approved application a conflict.
func (r *Repository) Apply(ctx context.Context, userEmail, serviceLocation string, specializations []string, experienceYears int) (*Decorator, error) {
	const q = `
INSERT INTO decorators (user_email, service_location, specializations, experience_years, application_status)
VALUES ($1, $2, $3, $4, 'pending')
RETURNING id, applied_at
`
	d := &Decorator{
		UserEmail:         userEmail,
		ServiceLocation:   serviceLocation,
		Specializations:   specializations,
		ExperienceYears:   experienceYears,
		ApplicationStatus: ApplicationPending,
	}
	if err := r.db.QueryRow(ctx, q, userEmail, serviceLocation, specializations, experienceYears).Scan(&d.ID, &d.AppliedAt); err != nil {
		return nil, err
	}
	return d, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Decorator, error) {
	q := `SELECT ` + decoratorColumns + decoratorFrom + ` WHERE d.id = $1`
	return scanDecorator(r.db.QueryRow(ctx, q, id))
}

func (r *Repository) FindByEmail(ctx context.Context, email string) (*Decorator, error) {
	q := `SELECT ` + decoratorColumns + decoratorFrom + `
WHERE d.user_email = $1 AND d.application_status <> 'rejected'
ORDER BY d.applied_at DESC
LIMIT 1`
	return scanDecorator(r.db.QueryRow(ctx, q, email))
}

func (r *Repository) list(ctx context.Context, q string, args ...any) ([]Decorator, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Decorator
	for rows.Next() {
		d, err := scanDecorator(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

// ListApproved is the public directory.
func (r *Repository) ListApproved(ctx context.Context) ([]Decorator, error) {
	q := `SELECT ` + decoratorColumns + decoratorFrom + `
WHERE d.application_status = 'approved'
ORDER BY d.rating DESC, d.review_count DESC`
	return r.list(ctx, q)
}

// ListAvailable returns approved decorators currently accepting work.
func (r *Repository) ListAvailable(ctx context.Context) ([]Decorator, error) {
	q := `SELECT ` + decoratorColumns + decoratorFrom + `
WHERE d.application_status = 'approved' AND d.available
ORDER BY d.rating DESC, d.review_count DESC`
	return r.list(ctx, q)
}

// ListByStatus powers the admin application queue. An empty status lists all.
func (r *Repository) ListByStatus(ctx context.Context, status string) ([]Decorator, error) {
	q := `SELECT ` + decoratorColumns + decoratorFrom + `
WHERE ($1 = '' OR d.application_status = $1)
ORDER BY d.applied_at DESC`
	return r.list(ctx, q, status)
}

// TopRated returns the highest rated approved decorators.
func (r *Repository) TopRated(ctx context.Context, limit int) ([]Decorator, error) {
	if limit <= 0 {
		limit = 6
	}
	q := `SELECT ` + decoratorColumns + decoratorFrom + `
WHERE d.application_status = 'approved'
ORDER BY d.rating DESC, d.review_count DESC
LIMIT $1`
	return r.list(ctx, q, limit)
}

func (r *Repository) SetAvailability(ctx context.Context, id string, available bool) error {
	const q = `UPDATE decorators SET available = $2 WHERE id = $1 AND application_status = 'approved'`
	ct, err := r.db.Exec(ctx, q, id, available)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func GetForUpdate(ctx context.Context, tx pgx.Tx, id string) (*Decorator, error) {
	const q = `
SELECT id, user_email, specializations, COALESCE(service_location,''), available, verified,
       rating, review_count, experience_years, application_status, applied_at
FROM decorators
WHERE id = $1
FOR UPDATE
`
	var d Decorator
	var status string
	if err := tx.QueryRow(ctx, q, id).Scan(
		&d.ID, &d.UserEmail, &d.Specializations, &d.ServiceLocation, &d.Available, &d.Verified,
		&d.Rating, &d.ReviewCount, &d.ExperienceYears, &status, &d.AppliedAt,
	); err != nil {
		return nil, err
	}
	d.ApplicationStatus = ApplicationStatus(status)
	return &d, nil
}

// UpdateApplicationTx moves an application to approved or rejected. Approval
// also marks the decorator verified.
func UpdateApplicationTx(ctx context.Context, tx pgx.Tx, id string, status ApplicationStatus) error {
	const q = `
UPDATE decorators
SET application_status = $2,
    verified = ($2 = 'approved'),
    available = CASE WHEN $2 = 'approved' THEN TRUE ELSE available END
WHERE id = $1
`
	_, err := tx.Exec(ctx, q, id, string(status))
	return err
}
