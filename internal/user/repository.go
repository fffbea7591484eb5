package user

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

// Upsert registers a user on first authenticated request and keeps the
// provider profile (name, photo) in sync afterwards. Role is never touched
// here; promotions go through UpdateRole.
func (r *Repository) Upsert(ctx context.Context, email, name, photoURL string) (*User, error) {
	const q = `
INSERT INTO users (email, name, photo_url, role, status)
VALUES ($1, $2, $3, 'user', 'active')
ON CONFLICT (email) DO UPDATE SET
  name = CASE WHEN EXCLUDED.name <> '' THEN EXCLUDED.name ELSE users.name END,
  photo_url = CASE WHEN EXCLUDED.photo_url <> '' THEN EXCLUDED.photo_url ELSE users.photo_url END
RETURNING id, email, COALESCE(name,''), COALESCE(photo_url,''), role, COALESCE(status,'active'), created_at
`
	u := &User{}
	var role string
	if err := r.db.QueryRow(ctx, q, email, name, photoURL).Scan(
		&u.ID, &u.Email, &u.Name, &u.PhotoURL, &role, &u.Status, &u.CreatedAt,
	); err != nil {
		return nil, err
	}
	u.Role = ParseRole(role)
	return u, nil
}

func (r *Repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	const q = `
SELECT id, email, COALESCE(name,''), COALESCE(photo_url,''), role, COALESCE(status,'active'), created_at
FROM users
WHERE email = $1
`
	u := &User{}
	var role string
	if err := r.db.QueryRow(ctx, q, email).Scan(
		&u.ID, &u.Email, &u.Name, &u.PhotoURL, &role, &u.Status, &u.CreatedAt,
	); err != nil {
		return nil, err
	}
	u.Role = ParseRole(role)
	return u, nil
}

func (r *Repository) List(ctx context.Context) ([]User, error) {
	const q = `
SELECT id, email, COALESCE(name,''), COALESCE(photo_url,''), role, COALESCE(status,'active'), created_at
FROM users
ORDER BY created_at DESC
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		var u User
		var role string
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.PhotoURL, &role, &u.Status, &u.CreatedAt); err != nil {
			return nil, err
		}
		u.Role = ParseRole(role)
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *Repository) UpdateRole(ctx context.Context, id string, role Role) error {
	const q = `UPDATE users SET role = $2 WHERE id = $1`
	_, err := r.db.Exec(ctx, q, id, string(role))
	return err
}

// UpdateRoleByEmailTx is used by decorator application approval, which flips
// the applicant's role inside the approval transaction.
func UpdateRoleByEmailTx(ctx context.Context, tx pgx.Tx, email string, role Role) error {
	const q = `UPDATE users SET role = $2 WHERE email = $1`
	_, err := tx.Exec(ctx, q, email, string(role))
	return err
}
