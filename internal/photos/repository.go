package photos

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

// Insert adds a photo. A new cover replaces the previous one so a service
// never carries two.
func (r *Repository) Insert(ctx context.Context, serviceID string, kind Kind, url, caption string) (*Photo, error) {
	if kind == KindCover {
		if _, err := r.db.Exec(ctx,
			`DELETE FROM service_photos WHERE service_id = $1 AND kind = 'cover'`, serviceID); err != nil {
			return nil, err
		}
	}

	const q = `
INSERT INTO service_photos (service_id, kind, url, caption)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at
`
	p := &Photo{ServiceID: serviceID, Kind: kind, URL: url, Caption: caption}
	if err := r.db.QueryRow(ctx, q, serviceID, string(kind), url, caption).Scan(&p.ID, &p.CreatedAt); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *Repository) ListByService(ctx context.Context, serviceID string) ([]Photo, error) {
	const q = `
SELECT id, service_id, kind, url, COALESCE(caption,''), created_at
FROM service_photos
WHERE service_id = $1
ORDER BY kind = 'cover' DESC, created_at ASC
`
	rows, err := r.db.Query(ctx, q, serviceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Photo
	for rows.Next() {
		var p Photo
		var kind string
		if err := rows.Scan(&p.ID, &p.ServiceID, &kind, &p.URL, &p.Caption, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.Kind = Kind(kind)
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM service_photos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
