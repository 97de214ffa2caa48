// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"context"

	"github.com/taibuivan/yamdb/internal/core/reference"
)

// Repository persists titles and their genre links.
type Repository interface {
	// List returns titles in insertion order with their rating projected.
	List(context context.Context, filter Filter, limit, offset int) ([]*Title, int, error)
	FindByID(context context.Context, id int64) (*Title, error)

	// ResolveCategory looks a category up by slug.
	ResolveCategory(context context.Context, slug string) (*reference.Entry, error)

	// ResolveGenres returns the genres matching slugs. Unknown slugs are skipped.
	ResolveGenres(context context.Context, slugs []string) ([]reference.Entry, error)

	Create(context context.Context, record *Record) (int64, error)

	// Update overwrites the row and replaces its genre set.
	Update(context context.Context, id int64, record *Record) error
	Delete(context context.Context, id int64) error
}
