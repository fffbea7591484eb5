package catalog

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

type ListFilter struct {
	Category string
	// Sort is one of "", "cost_asc", "cost_desc", "newest".
	Sort string
}

const serviceColumns = `
id, name, category, cost::text, COALESCE(unit,''), rate_type, COALESCE(description,''),
COALESCE(photo_url,''), creator_email, created_at`

func (r *Repository) List(ctx context.Context, f ListFilter) ([]Service, error) {
	q := `SELECT ` + serviceColumns + ` FROM services WHERE ($1 = '' OR category = $1)`
	switch f.Sort {
	case "cost_asc":
		q += ` ORDER BY cost ASC`
	case "cost_desc":
		q += ` ORDER BY cost DESC`
	default:
		q += ` ORDER BY created_at DESC`
	}

	rows, err := r.db.Query(ctx, q, f.Category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Service
	for rows.Next() {
		var s Service
		if err := rows.Scan(
			&s.ID, &s.Name, &s.Category, &s.Cost, &s.Unit, &s.RateType, &s.Description,
			&s.PhotoURL, &s.CreatorEmail, &s.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Service, error) {
	q := `SELECT ` + serviceColumns + ` FROM services WHERE id = $1`
	var s Service
	if err := r.db.QueryRow(ctx, q, id).Scan(
		&s.ID, &s.Name, &s.Category, &s.Cost, &s.Unit, &s.RateType, &s.Description,
		&s.PhotoURL, &s.CreatorEmail, &s.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *Repository) Create(ctx context.Context, s *Service) (*Service, error) {
	const q = `
INSERT INTO services (name, category, cost, unit, rate_type, description, photo_url, creator_email)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, created_at
`
	if err := r.db.QueryRow(ctx, q,
		s.Name, s.Category, s.Cost, s.Unit, string(s.RateType), s.Description, s.PhotoURL, s.CreatorEmail,
	).Scan(&s.ID, &s.CreatedAt); err != nil {
		return nil, err
	}
	return s, nil
}

// Search matches service name and category, case-insensitively.
func (r *Repository) Search(ctx context.Context, query string) ([]Service, error) {
	q := `SELECT ` + serviceColumns + `
FROM services
WHERE name ILIKE '%' || $1 || '%' OR category ILIKE '%' || $1 || '%'
ORDER BY created_at DESC
LIMIT 50`

	rows, err := r.db.Query(ctx, q, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Service
	for rows.Next() {
		var s Service
		if err := rows.Scan(
			&s.ID, &s.Name, &s.Category, &s.Cost, &s.Unit, &s.RateType, &s.Description,
			&s.PhotoURL, &s.CreatorEmail, &s.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
