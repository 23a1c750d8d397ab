package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nicu-progress/internal/adapters/auth/jwtauth"
	pg "nicu-progress/internal/adapters/storage/postgres"
	"nicu-progress/internal/config"
	"nicu-progress/internal/platform/logger"
	"nicu-progress/internal/platform/metrics"
	"nicu-progress/internal/router"
)

// @title NICU Progress API
// @version 1.0
// @description Registro diario de neonatos y series de progreso (daily, weekly, monthly).
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewFromEnv().Error("config error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
		File:   cfg.LogFile,
	})

	opts := router.Options{
		Logger:  log,
		Metrics: metrics.New(),
	}

	if cfg.DBDSN != "" {
		db, err := pg.Open(cfg.DBDSN)
		if err != nil {
			log.Error("postgres connect failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err = pg.Migrate(ctx, db)
		cancel()
		if err != nil {
			log.Error("postgres migrate failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		opts.DB = db
		log.Info("storage: postgres", nil)
	} else {
		log.Warn("storage: in-memory (DB_DSN not set), data is lost on restart", nil)
	}

	if cfg.DevMode() {
		// sin verifier: X-Debug-User-ID
		log.Warn("auth: dev mode (JWT_SECRET not set), X-Debug-User-ID is trusted", nil)
	} else {
		iss, err := jwtauth.NewIssuer(jwtauth.Config{
			Secret:     cfg.JWTSecret,
			AccessTTL:  cfg.AccessTokenTTL,
			RefreshTTL: cfg.RefreshTokenTTL,
			Issuer:     cfg.AppName,
		})
		if err != nil {
			log.Error("jwt issuer", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		hashes, err := cfg.ClinicianHashes()
		if err != nil {
			log.Error("clinicians config", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		opts.AuthVerifier = iss
		opts.Tokens = iss
		opts.Credentials = jwtauth.NewCredentials(hashes)
		log.Info("auth: jwt", map[string]any{"clinicians": len(hashes)})
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router.NewRouter(opts),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": cfg.Addr()})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("server error", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
	case <-ctx.Done():
		log.Info("shutting down", nil)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", map[string]any{"error": err.Error()})
		}
	}
}
