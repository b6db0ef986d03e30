package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"apluscharge_backend/internal/server"
	"apluscharge_backend/pkg/config"
	"apluscharge_backend/pkg/cron"
	"apluscharge_backend/pkg/database"
	"apluscharge_backend/pkg/email"
	"apluscharge_backend/pkg/logger"
	"apluscharge_backend/pkg/metrics"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer log.Sync()

	m := metrics.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The service keeps serving without a store; lead creation reports 500.
	var store database.Store
	if s, err := database.Open(ctx, cfg.Database, log); err != nil {
		log.Warn("database not initialized", zap.Error(err))
	} else {
		store = s
		log.Info("database initialized")
	}

	dispatcher := email.NewDispatcher(cfg.Email, log, m)
	if p := dispatcher.Provider(); p != nil {
		log.Info("email provider configured", zap.String("provider", p.Name()))
	} else {
		log.Warn("no email provider configured, emails will be skipped")
	}

	if cfg.Digest.Schedule != "" && cfg.Email.NotifyEmail != "" {
		digest := cron.NewLeadDigest(store, dispatcher, cfg.Email.NotifyEmail, log)
		scheduler, err := cron.Start(cfg.Digest.Schedule, digest)
		if err != nil {
			log.Error("lead digest disabled", zap.Error(err))
		} else {
			defer scheduler.Stop()
		}
	}

	app := server.New(server.Deps{
		Config:   cfg,
		Store:    store,
		Notifier: dispatcher,
		Log:      log,
		Metrics:  m,
	})

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error("shutdown failed", zap.Error(err))
		}
	}()

	log.Info("server is running", zap.String("port", cfg.Server.Port))
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		log.Error("server stopped", zap.Error(err))
	}

	if store != nil {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			log.Warn("could not close database", zap.Error(err))
		}
	}
}
