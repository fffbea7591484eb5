package main

import (
	"go.uber.org/zap"

	"decormarket/pkg/config"
	"decormarket/pkg/db"
	"decormarket/pkg/logger"
)

// Applies pending migrations and exits. The API server also migrates on boot
// when MIGRATIONS_PATH is set; this tool exists for running them separately.
func main() {
	cfg := config.Load()
	log := logger.New(cfg.Log)
	defer func() { _ = log.Sync() }()

	path := cfg.MigrationsPath
	if path == "" {
		path = "file://migrations"
	}

	if err := db.Migrate(path, cfg); err != nil {
		log.Fatal("run migrations", zap.String("path", path), zap.Error(err))
	}
	log.Info("migrations applied", zap.String("path", path))
}
