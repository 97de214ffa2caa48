// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package importer

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/yamdb/internal/platform/postgres"
)

// PostgresStore runs imports against PostgreSQL.
type PostgresStore struct {
	db postgres.DB
}

// NewPostgresStore wraps db.
func NewPostgresStore(db postgres.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// RunInTx implements [Store].
func (store *PostgresStore) RunInTx(ctx context.Context, fn func(Executor) error) error {
	return postgres.WithTx(ctx, store.db, func(tx pgx.Tx) error {
		return fn(txExecutor{tx: tx})
	})
}

type txExecutor struct {
	tx pgx.Tx
}

func (executor txExecutor) Exec(ctx context.Context, sql string, args ...any) error {
	_, err := executor.tx.Exec(ctx, sql, args...)
	return err
}
