// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pgtest runs repository tests against a disposable PostgreSQL container
migrated with data/migrations.

Tests using it are skipped in -short mode and when no Docker provider is
reachable.
*/
package pgtest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/taibuivan/yamdb/internal/platform/database/schema"
	"github.com/taibuivan/yamdb/internal/platform/migration"
	"github.com/taibuivan/yamdb/internal/platform/postgres"
	"github.com/taibuivan/yamdb/internal/platform/sec"
)

const image = "postgres:16-alpine"

// Start launches a container, applies the migrations and returns a pool that
// is closed, together with the container, when the test ends.
func Start(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("postgres container tests are skipped in -short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx, image,
		tcpostgres.WithDatabase("yamdb"),
		tcpostgres.WithUsername("yamdb"),
		tcpostgres.WithPassword("yamdb"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		),
	)
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, migration.RunUp(dsn, migrationsDir(), logger))

	pool, err := postgres.NewPool(ctx, dsn, logger)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return pool
}

// Reset empties every table and restarts the identity sequences.
func Reset(t *testing.T, db postgres.DB) {
	t.Helper()
	tables := []string{
		schema.Comment.Table, schema.Review.Table, schema.TitleGenre.Table, schema.Title.Table,
		schema.Genre.Table, schema.Category.Table, schema.User.Table, schema.ImportRecord.Table,
	}
	_, err := db.Exec(context.Background(),
		fmt.Sprintf(`TRUNCATE %s RESTART IDENTITY CASCADE`, strings.Join(tables, ", ")))
	require.NoError(t, err)
}

// SeedUser inserts a user with the given role and returns its id.
func SeedUser(t *testing.T, db postgres.DB, username string, role sec.Role) int64 {
	t.Helper()
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3) RETURNING %s`,
		schema.User.Table, schema.User.Username, schema.User.Email, schema.User.Role, schema.User.ID)

	var id int64
	err := db.QueryRow(context.Background(), query, username, username+"@yamdb.test", string(role)).Scan(&id)
	require.NoError(t, err)
	return id
}

func migrationsDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "..", "data", "migrations")
}
