// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Yamdb HTTP API server.
//
// # Startup Sequence
//
//  1. Load configuration from environment variables (and an optional .env).
//  2. Initialize structured logger.
//  3. Connect to PostgreSQL (pgxpool) and Redis.
//  4. Run database migrations (idempotent).
//  5. Wire services and HTTP handlers.
//  6. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/yamdb/internal/api"
	"github.com/taibuivan/yamdb/internal/core/reference"
	"github.com/taibuivan/yamdb/internal/core/review"
	"github.com/taibuivan/yamdb/internal/core/title"
	"github.com/taibuivan/yamdb/internal/platform/config"
	"github.com/taibuivan/yamdb/internal/platform/constants"
	"github.com/taibuivan/yamdb/internal/platform/logging"
	"github.com/taibuivan/yamdb/internal/platform/mailer"
	"github.com/taibuivan/yamdb/internal/platform/migration"
	pgstore "github.com/taibuivan/yamdb/internal/platform/postgres"
	redisstore "github.com/taibuivan/yamdb/internal/platform/redis"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/users/account"
	"github.com/taibuivan/yamdb/internal/users/auth"
)

func main() {
	// ── 1. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		slog.Error("startup failure", slog.String("context", "load configuration"), slog.Any("error", err))
		os.Exit(1)
	}

	// ── 2. Logger ─────────────────────────────────────────────────────────
	level := cfg.LogLevel
	if cfg.Debug {
		level = "debug"
	}
	log := logging.Init(logging.Options{Level: level, Format: cfg.LogFormat})

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Startup deadline so misconfiguration fails fast instead of hanging.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL & Redis ─────────────────────────────────────────────
	// Both connections are dialed concurrently; the first failure cancels the other.
	var (
		pool *pgxpool.Pool
		rdb  *redis.Client
	)
	connect, connectCtx := errgroup.WithContext(startupCtx)
	connect.Go(func() error {
		var err error
		pool, err = pgstore.NewPool(connectCtx, cfg.DatabaseURL, log)
		return err
	})
	connect.Go(func() error {
		var err error
		rdb, err = redisstore.NewClient(connectCtx, cfg.RedisURL, log)
		return err
	})
	if err := connect.Wait(); err != nil {
		if pool != nil {
			pool.Close()
		}
		if rdb != nil {
			_ = rdb.Close()
		}
		must(log, err, "connect to datastores")
	}
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 4. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 5. Token Service & Mail ───────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	var sender auth.CodeSender = mailer.NewLogMailer(cfg.MailFrom, log)
	if cfg.SMTPAddr != "" {
		sender = mailer.NewSMTPMailer(cfg.SMTPAddr, cfg.MailFrom, cfg.SMTPUsername, cfg.SMTPPassword)
	}

	// ── 6. Health handlers ────────────────────────────────────────────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error {
			return pgstore.Ping(ctx, pool)
		},
		CheckCache: func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		},
	}, log)

	// ── 7. Domain Wiring ──────────────────────────────────────────────────
	userRepository := auth.NewUserRepository(pool)
	authService := auth.NewService(
		userRepository,
		auth.NewConfirmationStore(rdb),
		jwtSvc,
		sender,
		auth.Settings{AccessTokenTTL: cfg.AccessTokenTTL, ConfirmationCodeTTL: cfg.ConfirmationCodeTTL},
		log,
	)

	categoryService := reference.NewService(reference.NewCategoryRepository(pool), reference.KindCategory, log)
	genreService := reference.NewService(reference.NewGenreRepository(pool), reference.KindGenre, log)
	titleService := title.NewService(title.NewPostgresRepository(pool), log)
	reviewService := review.NewService(review.NewPostgresRepository(pool), log)

	// ── 8. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		Auth:       auth.NewHandler(authService),
		Users:      account.NewHandler(account.NewService(userRepository, log)),
		Categories: reference.NewHandler(categoryService),
		Genres:     reference.NewHandler(genreService),
		Titles:     title.NewHandler(titleService),
		Reviews:    review.NewHandler(reviewService),
	}

	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, api.Identity{Verifier: jwtSvc, Loader: authService}, handlers)

	// ── 9. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
// Only for startup wiring.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
