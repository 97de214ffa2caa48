// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command importer loads CSV fixtures into the Yamdb database.
//
// # Usage
//
//	importer -models category,genre,title -paths category.csv,genre.csv,titles.csv
//	importer -tables users -paths users.csv
//	importer -manifest imports.yaml
//
// Files are applied in the order given and the run stops at the first failure.
// Each file is imported in its own transaction.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/taibuivan/yamdb/internal/importer"
	"github.com/taibuivan/yamdb/internal/platform/config"
	"github.com/taibuivan/yamdb/internal/platform/logging"
	"github.com/taibuivan/yamdb/internal/platform/migration"
	"github.com/taibuivan/yamdb/internal/platform/objectstore"
	pgstore "github.com/taibuivan/yamdb/internal/platform/postgres"
	"github.com/taibuivan/yamdb/pkg/query"
)

func main() {
	var (
		models   = flag.String("models", "", "comma-separated entity names: category, genre, title, review, comment")
		tables   = flag.String("tables", "", "comma-separated table names")
		paths    = flag.String("paths", "", "comma-separated CSV paths, one per model or table")
		manifest = flag.String("manifest", "", "YAML manifest listing the imports (overrides the other flags)")
	)
	flag.Parse()

	if err := run(*models, *tables, *paths, *manifest); err != nil {
		fmt.Fprintln(os.Stderr, "importer:", err)
		os.Exit(1)
	}
}

func run(models, tables, paths, manifest string) error {
	jobs, err := plan(models, tables, paths, manifest)
	if err != nil {
		return err
	}

	cfg, err := config.LoadImport()
	if err != nil {
		return err
	}
	log := logging.Init(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log); err != nil {
		return err
	}

	var archive importer.Archive
	if cfg.ObjectStorage.Enabled() {
		store, err := objectstore.NewMinioStore(ctx, objectstore.Options{
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Bucket:    cfg.S3Bucket,
			UseSSL:    cfg.S3UseSSL,
		}, log)
		if err != nil {
			return err
		}
		archive = store
	}

	results, err := importer.New(importer.NewPostgresStore(pool), archive, log).Run(ctx, jobs)
	for _, result := range results {
		target := result.Entity
		if target == "" {
			target = result.Table
		}
		log.Info("import_file_done", slog.String("target", target), slog.Int("rows", result.Rows))
	}
	if err != nil {
		return err
	}

	log.Info("import_finished", slog.Int("files", len(results)))
	return nil
}

func plan(models, tables, paths, manifest string) ([]importer.Job, error) {
	if manifest != "" {
		return importer.LoadManifest(manifest)
	}
	return importer.PlanFromFlags(query.StringSlice(models), query.StringSlice(tables), query.StringSlice(paths))
}
