// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package title manages the works that users review.

A title belongs to at most one category and to any number of genres. Its rating
is the mean of the scores of its reviews, computed on every read and never
stored. Titles without reviews have no rating (JSON null).

Writes reference the category and genres by slug; reads nest them as
{name, slug} objects.
*/
package title

import "github.com/taibuivan/yamdb/internal/core/reference"

// Title is the read representation of a work.
type Title struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Year        int               `json:"year"`
	Rating      *float64          `json:"rating"`
	Description string            `json:"description"`
	Genres      []reference.Entry `json:"genre"`
	Category    *reference.Entry  `json:"category"`
}

// WriteInput is the payload of POST and PATCH. Nil fields were not supplied.
type WriteInput struct {
	Name        *string   `json:"name"`
	Year        *int      `json:"year"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Genres      *[]string `json:"genre"`
}

// Filter narrows title listings. Zero values do not filter.
type Filter struct {
	// GenreSlugs matches titles filed under any of the genres.
	GenreSlugs []string

	CategorySlug string

	// Name matches case-insensitively by substring.
	Name string

	Year *int
}

// Record is the persisted shape of a title.
type Record struct {
	Name        string
	Year        int
	Description string
	CategoryID  *int64
	GenreIDs    []int64
}

// Field names and limits.
const (
	FieldName        = "name"
	FieldYear        = "year"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldGenre       = "genre"

	NameMaxLen = 256
)
