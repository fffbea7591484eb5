package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"decormarket/pkg/config"
	"decormarket/pkg/db"
	"decormarket/pkg/logger"
)

// Seeds a local database with enough data to click through the flows: an
// admin, a customer, an approved decorator, and a handful of services.
func main() {
	cfg := config.Load()
	log := logger.New(cfg.Log)
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.Open(ctx, cfg)
	if err != nil {
		log.Fatal("open database", zap.Error(err))
	}
	defer pool.Close()

	if err := seed(ctx, pool); err != nil {
		log.Fatal("seed", zap.Error(err))
	}
	log.Info("seed complete")
}

func seed(ctx context.Context, pool *pgxpool.Pool) error {
	users := []struct {
		email, name, role string
	}{
		{"admin@decormarket.test", "Admin", "admin"},
		{"mira@decormarket.test", "Mira Rahman", "user"},
		{"tanvir@decormarket.test", "Tanvir Ahmed", "decorator"},
	}
	for _, u := range users {
		if _, err := pool.Exec(ctx, `
INSERT INTO users (email, name, role, status)
VALUES ($1, $2, $3, 'active')
ON CONFLICT (email) DO UPDATE SET role = EXCLUDED.role
`, u.email, u.name, u.role); err != nil {
			return err
		}
	}

	if _, err := pool.Exec(ctx, `
INSERT INTO decorators (user_email, service_location, specializations, experience_years, application_status, verified, available, rating, review_count)
SELECT 'tanvir@decormarket.test', 'Dhaka', ARRAY['wedding','birthday'], 6, 'approved', TRUE, TRUE, 4.8, 27
WHERE NOT EXISTS (SELECT 1 FROM decorators WHERE user_email = 'tanvir@decormarket.test')
`); err != nil {
		return err
	}

	services := []struct {
		name, category, cost, unit, rateType, description string
	}{
		{"Wedding Stage Decoration", "wedding", "45000.00", "", "flat", "Full stage with floral backdrop and lighting."},
		{"Birthday Balloon Arch", "birthday", "350.00", "metre", "per-unit", "Custom balloon arch, priced per metre."},
		{"Home Makeover Consultation", "consultation", "0.00", "", "flat", "One-hour on-site consultation with a designer."},
		{"Corporate Event Styling", "corporate", "30000.00", "", "flat", "Branded backdrops, table styling, and entrance decor."},
	}
	for _, s := range services {
		if _, err := pool.Exec(ctx, `
INSERT INTO services (name, category, cost, unit, rate_type, description, creator_email)
SELECT $1, $2, $3, $4, $5, $6, 'admin@decormarket.test'
WHERE NOT EXISTS (SELECT 1 FROM services WHERE name = $1)
`, s.name, s.category, s.cost, s.unit, s.rateType, s.description); err != nil {
			return err
		}
	}

	return nil
}
