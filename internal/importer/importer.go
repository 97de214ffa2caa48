// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package importer bulk-loads CSV files into the catalogue.

Two modes exist:

  - Entity import: the file must carry the exact header of a known entity
    (category, genre, title, review, comment). Rows are upserted by id and an
    import record is written alongside them.
  - Table import: the file is inserted into an allow-listed table, using its
    header row as the column list.

Each file is parsed completely before the database is touched and is then
applied in a single transaction, so a file is imported entirely or not at all.
After explicit ids are written the table's identity sequence is moved past the
highest id.
*/
package importer

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/yamdb/internal/platform/constants"
	"github.com/taibuivan/yamdb/internal/platform/database/schema"
	"github.com/taibuivan/yamdb/pkg/uuidv7"
)

var (
	// ErrImportFormat is returned when a file does not carry the expected header.
	ErrImportFormat = errors.New("importer: invalid file headers")

	// ErrInvalidRow is returned when a row cannot be converted to the column types.
	ErrInvalidRow = errors.New("importer: invalid row")

	// ErrUnknownEntity is returned for an entity name outside the supported set.
	ErrUnknownEntity = errors.New("importer: unknown entity")

	// ErrTableNotAllowed is returned for a table outside the import allow-list.
	ErrTableNotAllowed = errors.New("importer: table not allowed")
)

// Executor runs a statement inside the current transaction.
type Executor interface {
	Exec(ctx context.Context, sql string, args ...any) error
}

// Store opens transactions for an import.
type Store interface {
	// RunInTx commits when fn returns nil and rolls back otherwise.
	RunInTx(ctx context.Context, fn func(Executor) error) error
}

// Archive keeps a copy of every imported file.
type Archive interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
}

// Result summarises one imported file.
type Result struct {
	Entity  string
	Table   string
	Rows    int
	FileKey string
}

// allowedTables are the only targets of a table import.
var allowedTables = []string{
	schema.User.Table,
	schema.Category.Table,
	schema.Genre.Table,
	schema.Title.Table,
	schema.TitleGenre.Table,
	schema.Review.Table,
	schema.Comment.Table,
}

// AllowedTables returns the tables a table import may target.
func AllowedTables() []string {
	return slices.Clone(allowedTables)
}

var columnName = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Importer applies CSV files to the database.
type Importer struct {
	store   Store
	archive Archive
	logger  *slog.Logger
}

// New constructs an [Importer]. A nil archive disables archiving; the import
// record then names the source path.
func New(store Store, archive Archive, logger *slog.Logger) *Importer {
	return &Importer{store: store, archive: archive, logger: logger}
}

// # Entry Points

// Run executes jobs in order and stops at the first failure.
func (importer *Importer) Run(ctx context.Context, jobs []Job) ([]*Result, error) {
	results := make([]*Result, 0, len(jobs))
	for _, job := range jobs {
		data, err := os.ReadFile(job.Path)
		if err != nil {
			return results, fmt.Errorf("importer: read %s: %w", job.Path, err)
		}

		var result *Result
		if job.Model != "" {
			result, err = importer.ImportEntity(ctx, job.Model, job.Path, data)
		} else {
			result, err = importer.ImportTable(ctx, job.Table, job.Path, data)
		}
		if err != nil {
			return results, fmt.Errorf("%s: %w", job.Path, err)
		}
		results = append(results, result)
	}
	return results, nil
}

/*
ImportEntity upserts the rows of an entity file by id.

Parameters:
  - entityName: category, genre, title, review or comment
  - source: where the data came from, used in logs and the import record
  - data: the raw CSV bytes

Returns:
  - *Result: What was written
  - error: ErrImportFormat on a header mismatch (nothing is written),
    ErrInvalidRow, or a storage error
*/
func (importer *Importer) ImportEntity(ctx context.Context, entityName, source string, data []byte) (*Result, error) {
	entity, err := LookupEntity(entityName)
	if err != nil {
		return nil, err
	}

	header, records, err := readCSV(data)
	if err != nil {
		return nil, err
	}
	if !slices.Equal(header, entity.Header()) {
		importer.logger.Warn("import_invalid_header",
			slog.String("entity", entity.Name),
			slog.String("source", source),
			slog.Any("expected", entity.Header()),
			slog.Any("got", header),
		)
		return nil, fmt.Errorf("%w: %s expects %s", ErrImportFormat, entity.Name, strings.Join(entity.Header(), ","))
	}

	rows, err := entity.parseRows(records)
	if err != nil {
		return nil, err
	}

	fileKey, archived, err := importer.archiveFile(ctx, entity.Name, source, data)
	if err != nil {
		return nil, err
	}

	upsert := upsertSQL(entity.Table, header)
	err = importer.store.RunInTx(ctx, func(exec Executor) error {
		for i, row := range rows {
			if err := exec.Exec(ctx, upsert, row...); err != nil {
				return fmt.Errorf("line %d: %w", i+2, err)
			}
		}
		if err := exec.Exec(ctx, resetSequenceSQL(entity.Table)); err != nil {
			return err
		}
		return exec.Exec(ctx, importRecordSQL, entity.Name, fileKey, len(rows))
	})
	if err != nil {
		importer.discardArchive(ctx, fileKey, archived)
		return nil, fmt.Errorf("importer: %s: %w", entity.Name, err)
	}

	importer.logger.Info("import_completed",
		slog.String("entity", entity.Name),
		slog.String("source", source),
		slog.String("file_key", fileKey),
		slog.Int("rows", len(rows)),
	)
	return &Result{Entity: entity.Name, Table: entity.Table, Rows: len(rows), FileKey: fileKey}, nil
}

/*
ImportTable inserts the rows of a file into an allow-listed table, binding each
row positionally to the header columns. Empty cells are written as NULL.
*/
func (importer *Importer) ImportTable(ctx context.Context, table, source string, data []byte) (*Result, error) {
	table = strings.ToLower(strings.TrimSpace(table))
	if !slices.Contains(allowedTables, table) {
		return nil, fmt.Errorf("%w: %q", ErrTableNotAllowed, table)
	}

	header, records, err := readCSV(data)
	if err != nil {
		return nil, err
	}
	for _, name := range header {
		if !columnName.MatchString(name) {
			importer.logger.Warn("import_invalid_header",
				slog.String("table", table),
				slog.String("source", source),
				slog.String("column", name),
			)
			return nil, fmt.Errorf("%w: invalid column %q", ErrImportFormat, name)
		}
	}

	insert := insertSQL(table, header)
	err = importer.store.RunInTx(ctx, func(exec Executor) error {
		for i, record := range records {
			if err := exec.Exec(ctx, insert, nullable(record)...); err != nil {
				return fmt.Errorf("line %d: %w", i+2, err)
			}
		}
		if slices.Contains(header, "id") {
			return exec.Exec(ctx, resetSequenceSQL(table))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("importer: %s: %w", table, err)
	}

	importer.logger.Info("import_completed",
		slog.String("table", table),
		slog.String("source", source),
		slog.Int("rows", len(records)),
	)
	return &Result{Table: table, Rows: len(records), FileKey: source}, nil
}

// # Archive

func (importer *Importer) archiveFile(ctx context.Context, entity, source string, data []byte) (string, bool, error) {
	if importer.archive == nil {
		return source, false, nil
	}

	key := fmt.Sprintf("%s%s/%s-%s", constants.ObjectPrefixImports, entity, uuidv7.New(), filepath.Base(source))
	if err := importer.archive.Put(ctx, key, bytes.NewReader(data), int64(len(data)), "text/csv"); err != nil {
		return "", false, fmt.Errorf("importer: archive %s: %w", source, err)
	}
	return key, true, nil
}

func (importer *Importer) discardArchive(ctx context.Context, key string, archived bool) {
	if !archived {
		return
	}
	if err := importer.archive.Delete(ctx, key); err != nil {
		importer.logger.Error("import_archive_cleanup_failed",
			slog.String("file_key", key),
			slog.Any("error", err),
		)
	}
}

// # SQL

var importRecordSQL = fmt.Sprintf(`INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)`,
	schema.ImportRecord.Table, schema.ImportRecord.Entity, schema.ImportRecord.FileKey, schema.ImportRecord.RowCount)

func quoteColumns(columns []string) []string {
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = pgx.Identifier{c}.Sanitize()
	}
	return quoted
}

func placeholders(n int) string {
	marks := make([]string, n)
	for i := range marks {
		marks[i] = fmt.Sprintf("$%d", i+1)
	}
	return strings.Join(marks, ", ")
}

func insertSQL(table string, columns []string) string {
	return fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		pgx.Identifier{table}.Sanitize(), strings.Join(quoteColumns(columns), ", "), placeholders(len(columns)))
}

func upsertSQL(table string, columns []string) string {
	quoted := quoteColumns(columns)
	updates := make([]string, 0, len(quoted)-1)
	for _, c := range quoted[1:] {
		updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", c, c))
	}
	return fmt.Sprintf(`%s ON CONFLICT (%s) DO UPDATE SET %s`,
		insertSQL(table, columns), quoted[0], strings.Join(updates, ", "))
}

func resetSequenceSQL(table string) string {
	return fmt.Sprintf(
		`SELECT setval(pg_get_serial_sequence('%[1]s', 'id'), COALESCE((SELECT MAX(id) FROM %[1]s), 0) + 1, false)`,
		table)
}

// # CSV

func readCSV(data []byte) ([]string, [][]string, error) {
	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))))

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidRow, err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("%w: empty file", ErrImportFormat)
	}

	header := make([]string, len(records[0]))
	for i, name := range records[0] {
		header[i] = strings.TrimSpace(name)
	}
	return header, records[1:], nil
}

func nullable(record []string) []any {
	args := make([]any, len(record))
	for i, value := range record {
		if value != "" {
			args[i] = value
		}
	}
	return args
}
