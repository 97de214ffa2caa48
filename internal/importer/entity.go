// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package importer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/taibuivan/yamdb/internal/platform/database/schema"
)

type columnKind int

const (
	kindInt columnKind = iota
	kindNullableInt
	kindText
	kindNullableText
	kindTime
)

type column struct {
	name string
	kind columnKind
}

// Entity describes how one CSV layout maps onto a table. The header of the
// file must equal the column names, in order.
type Entity struct {
	Name    string
	Table   string
	columns []column
}

// Header returns the expected header row.
func (entity Entity) Header() []string {
	header := make([]string, len(entity.columns))
	for i, c := range entity.columns {
		header[i] = c.name
	}
	return header
}

var entities = map[string]Entity{
	"category": {
		Name:  "category",
		Table: schema.Category.Table,
		columns: []column{
			{schema.Category.ID, kindInt},
			{schema.Category.Name, kindText},
			{schema.Category.Slug, kindText},
		},
	},
	"genre": {
		Name:  "genre",
		Table: schema.Genre.Table,
		columns: []column{
			{schema.Genre.ID, kindInt},
			{schema.Genre.Name, kindText},
			{schema.Genre.Slug, kindNullableText},
		},
	},
	"title": {
		Name:  "title",
		Table: schema.Title.Table,
		columns: []column{
			{schema.Title.ID, kindInt},
			{schema.Title.Name, kindText},
			{schema.Title.Year, kindInt},
			{schema.Title.Description, kindText},
			{schema.Title.CategoryID, kindNullableInt},
		},
	},
	"review": {
		Name:  "review",
		Table: schema.Review.Table,
		columns: []column{
			{schema.Review.ID, kindInt},
			{schema.Review.Text, kindText},
			{schema.Review.PubDate, kindTime},
			{schema.Review.Score, kindInt},
			{schema.Review.AuthorID, kindInt},
			{schema.Review.TitleID, kindInt},
		},
	},
	"comment": {
		Name:  "comment",
		Table: schema.Comment.Table,
		columns: []column{
			{schema.Comment.ID, kindInt},
			{schema.Comment.Text, kindText},
			{schema.Comment.PubDate, kindTime},
			{schema.Comment.AuthorID, kindInt},
			{schema.Comment.ReviewID, kindInt},
		},
	},
}

// LookupEntity resolves an entity by name, case-insensitively.
func LookupEntity(name string) (Entity, error) {
	entity, ok := entities[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Entity{}, fmt.Errorf("%w: %q", ErrUnknownEntity, name)
	}
	return entity, nil
}

// timeLayouts are tried in order for timestamp columns.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTime(value string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", value)
}

func (c column) parse(raw string) (any, error) {
	value := strings.TrimSpace(raw)

	switch c.kind {
	case kindInt:
		return strconv.ParseInt(value, 10, 64)
	case kindNullableInt:
		if value == "" {
			return nil, nil
		}
		return strconv.ParseInt(value, 10, 64)
	case kindNullableText:
		if value == "" {
			return nil, nil
		}
		return raw, nil
	case kindTime:
		return parseTime(value)
	default:
		return raw, nil
	}
}

// parseRows converts every record up front so a bad line aborts the import
// before anything is written. Line numbers count the header as line 1.
func (entity Entity) parseRows(records [][]string) ([][]any, error) {
	rows := make([][]any, 0, len(records))
	for i, record := range records {
		row := make([]any, len(entity.columns))
		for j, c := range entity.columns {
			value, err := c.parse(record[j])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d column %s: %v", ErrInvalidRow, i+2, c.name, err)
			}
			row[j] = value
		}
		rows = append(rows, row)
	}
	return rows, nil
}
