// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package importer_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yamdb/internal/importer"
)

type statement struct {
	sql  string
	args []any
}

// recordingStore captures the statements of committed transactions only.
type recordingStore struct {
	mu        sync.Mutex
	committed []statement
	failOn    string
	txCount   int
}

type recordingExecutor struct {
	store   *recordingStore
	pending []statement
}

func (executor *recordingExecutor) Exec(_ context.Context, sql string, args ...any) error {
	if executor.store.failOn != "" && strings.Contains(sql, executor.store.failOn) {
		return errors.New("boom")
	}
	executor.pending = append(executor.pending, statement{sql: sql, args: args})
	return nil
}

func (store *recordingStore) RunInTx(ctx context.Context, fn func(importer.Executor) error) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.txCount++

	executor := &recordingExecutor{store: store}
	if err := fn(executor); err != nil {
		return err
	}
	store.committed = append(store.committed, executor.pending...)
	return nil
}

type memoryArchive struct {
	objects map[string]string
	deleted []string
}

func (archive *memoryArchive) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	archive.objects[key] = string(data)
	return nil
}

func (archive *memoryArchive) Delete(_ context.Context, key string) error {
	delete(archive.objects, key)
	archive.deleted = append(archive.deleted, key)
	return nil
}

func newImporter(store importer.Store, archive importer.Archive) *importer.Importer {
	return importer.New(store, archive, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

const categoryCSV = "id,name,slug\n1,Фильм,movie\n2,Книга,book\n"

func TestImportEntity_UpsertsRows(t *testing.T) {
	store := &recordingStore{}
	archive := &memoryArchive{objects: map[string]string{}}

	result, err := newImporter(store, archive).ImportEntity(context.Background(), "Category", "data/category.csv", []byte(categoryCSV))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Rows)
	assert.True(t, strings.HasPrefix(result.FileKey, "imports/category/"))
	assert.True(t, strings.HasSuffix(result.FileKey, "-category.csv"))
	assert.Equal(t, categoryCSV, archive.objects[result.FileKey])

	require.Len(t, store.committed, 4)
	assert.Contains(t, store.committed[0].sql, `INSERT INTO "categories" ("id", "name", "slug")`)
	assert.Contains(t, store.committed[0].sql, `ON CONFLICT ("id") DO UPDATE SET "name" = EXCLUDED."name", "slug" = EXCLUDED."slug"`)
	assert.Equal(t, []any{int64(1), "Фильм", "movie"}, store.committed[0].args)
	assert.Contains(t, store.committed[2].sql, "setval")
	assert.Equal(t, []any{"category", result.FileKey, 2}, store.committed[3].args)
}

func TestImportEntity_TypedColumns(t *testing.T) {
	store := &recordingStore{}
	data := "id,text,pub_date,score,author_id,title_id\n" +
		"1,Great,2019-09-24T21:08:21.567Z,10,100,1\n"

	_, err := newImporter(store, nil).ImportEntity(context.Background(), "review", "review.csv", []byte(data))
	require.NoError(t, err)

	args := store.committed[0].args
	assert.Equal(t, int64(1), args[0])
	assert.Equal(t, time.Date(2019, 9, 24, 21, 8, 21, 567000000, time.UTC), args[2])
	assert.Equal(t, int64(10), args[3])

	// Without an archive the record names the source path.
	assert.Equal(t, "review.csv", store.committed[len(store.committed)-1].args[1])

	store = &recordingStore{}
	_, err = newImporter(store, nil).ImportEntity(context.Background(), "title", "titles.csv",
		[]byte("id,name,year,description,category_id\n5,Solaris,1972,,\n"))
	require.NoError(t, err)
	assert.Equal(t, []any{int64(5), "Solaris", int64(1972), "", nil}, store.committed[0].args)
}

/*
TestImportEntity_HeaderMismatch verifies that a wrong header aborts the import
without touching storage or the archive.
*/
func TestImportEntity_HeaderMismatch(t *testing.T) {
	store := &recordingStore{}
	archive := &memoryArchive{objects: map[string]string{}}

	_, err := newImporter(store, archive).ImportEntity(context.Background(), "genre", "genre.csv",
		[]byte("id,slug,name\n1,drama,Drama\n"))
	require.ErrorIs(t, err, importer.ErrImportFormat)
	assert.Zero(t, store.txCount)
	assert.Empty(t, archive.objects)
}

func TestImportEntity_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := newImporter(&recordingStore{}, nil).ImportEntity(ctx, "studio", "x.csv", []byte(categoryCSV))
	assert.ErrorIs(t, err, importer.ErrUnknownEntity)

	_, err = newImporter(&recordingStore{}, nil).ImportEntity(ctx, "category", "x.csv", []byte("id,name,slug\nx,Film,film\n"))
	assert.ErrorIs(t, err, importer.ErrInvalidRow)

	_, err = newImporter(&recordingStore{}, nil).ImportEntity(ctx, "category", "x.csv", []byte("id,name,slug\n1,Film\n"))
	assert.ErrorIs(t, err, importer.ErrInvalidRow)

	_, err = newImporter(&recordingStore{}, nil).ImportEntity(ctx, "category", "x.csv", nil)
	assert.ErrorIs(t, err, importer.ErrImportFormat)
}

func TestImportEntity_FailedTransactionDropsArchive(t *testing.T) {
	store := &recordingStore{failOn: "import_records"}
	archive := &memoryArchive{objects: map[string]string{}}

	_, err := newImporter(store, archive).ImportEntity(context.Background(), "category", "category.csv", []byte(categoryCSV))
	require.Error(t, err)
	assert.Empty(t, store.committed)
	assert.Empty(t, archive.objects)
	assert.Len(t, archive.deleted, 1)
}

func TestImportTable(t *testing.T) {
	store := &recordingStore{}
	data := "id,title_id,genre_id\n1,1,2\n2,1,\n"

	result, err := newImporter(store, nil).ImportTable(context.Background(), "title_genres", "genre_title.csv", []byte(data))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Rows)
	require.Len(t, store.committed, 3)
	assert.Equal(t, `INSERT INTO "title_genres" ("id", "title_id", "genre_id") VALUES ($1, $2, $3)`, store.committed[0].sql)
	assert.Equal(t, []any{"2", "1", nil}, store.committed[1].args)
	assert.Contains(t, store.committed[2].sql, "setval")

	_, err = newImporter(store, nil).ImportTable(context.Background(), "pg_authid", "x.csv", []byte(data))
	assert.ErrorIs(t, err, importer.ErrTableNotAllowed)

	_, err = newImporter(store, nil).ImportTable(context.Background(), "genres", "x.csv", []byte("id,\"name; DROP\"\n1,x\n"))
	assert.ErrorIs(t, err, importer.ErrImportFormat)
}

func TestRun_StopsAtFirstFailure(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "category.csv")
	bad := filepath.Join(dir, "genre.csv")
	require.NoError(t, os.WriteFile(good, []byte(categoryCSV), 0o600))
	require.NoError(t, os.WriteFile(bad, []byte("wrong,header\n"), 0o600))

	store := &recordingStore{}
	results, err := newImporter(store, nil).Run(context.Background(), []importer.Job{
		{Model: "category", Path: good},
		{Model: "genre", Path: bad},
		{Model: "category", Path: good},
	})
	require.ErrorIs(t, err, importer.ErrImportFormat)
	assert.Len(t, results, 1)
	assert.Equal(t, 1, store.txCount)
}
