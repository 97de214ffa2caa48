// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package reference manages the two flat taxonomies titles are filed under:
categories and genres.

Both share one shape {name, slug} and one lifecycle: anyone may list them, only
administrators may create or delete them. Entries are addressed by slug.

# Kinds

  - Category: slug is mandatory.
  - Genre: slug may be omitted; it is then derived from the name.
*/
package reference

// Kind tells a category from a genre.
type Kind string

const (
	KindCategory Kind = "category"
	KindGenre    Kind = "genre"
)

// Resource returns the name used in error messages.
func (kind Kind) Resource() string {
	if kind == KindGenre {
		return "Genre"
	}
	return "Category"
}

// Entry is a category or a genre.
type Entry struct {
	ID   int64  `json:"-"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CreateInput is the payload accepted by POST.
type CreateInput struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Field names and limits.
const (
	FieldName = "name"
	FieldSlug = "slug"

	NameMaxLen = 256
	SlugMaxLen = 50
)
