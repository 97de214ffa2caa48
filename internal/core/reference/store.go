// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import "context"

// Repository persists entries of a single [Kind].
type Repository interface {
	// List returns entries in insertion order. A non-empty name filters by exact match.
	List(context context.Context, name string, limit, offset int) ([]*Entry, int, error)

	FindBySlug(context context.Context, slug string) (*Entry, error)
	Create(context context.Context, entry *Entry) error
	DeleteBySlug(context context.Context, slug string) error
}
