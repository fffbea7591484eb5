package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"decormarket/internal/cache"
	"decormarket/internal/httpapi"
	"decormarket/pkg/config"
	"decormarket/pkg/db"
	"decormarket/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.New(cfg.Log)
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.MigrationsPath != "" {
		if err := db.Migrate(cfg.MigrationsPath, cfg); err != nil {
			log.Fatal("run migrations", zap.Error(err))
		}
		log.Info("migrations applied", zap.String("path", cfg.MigrationsPath))
	}

	pool, err := db.Open(ctx, cfg)
	if err != nil {
		log.Fatal("open database", zap.Error(err))
	}
	defer pool.Close()

	rc, err := cache.New(cfg.Redis)
	if err != nil {
		log.Fatal("connect redis", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
	}
	defer func() { _ = rc.Close() }()
	if rc == nil {
		log.Info("redis cache disabled")
	}

	handler := httpapi.New(httpapi.Dependencies{
		Cfg:   cfg,
		DB:    pool,
		Log:   log,
		Cache: rc,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", zap.String("addr", cfg.HTTPAddr), zap.String("env", cfg.AppEnv))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server", zap.Error(err))
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown", zap.Error(err))
	}
}
