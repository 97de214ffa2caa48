// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/yamdb/internal/platform/validate"
	"github.com/taibuivan/yamdb/pkg/slug"
)

// Service implements the business rules for one [Kind].
type Service struct {
	repo   Repository
	kind   Kind
	logger *slog.Logger
}

// NewService constructs a reference [Service] for kind.
func NewService(repo Repository, kind Kind, logger *slog.Logger) *Service {
	return &Service{repo: repo, kind: kind, logger: logger}
}

// Kind reports which taxonomy the service manages.
func (service *Service) Kind() Kind {
	return service.kind
}

// List returns a page of entries, optionally restricted to an exact name.
func (service *Service) List(context context.Context, name string, limit, offset int) ([]*Entry, int, error) {
	return service.repo.List(context, strings.TrimSpace(name), limit, offset)
}

/*
Create validates and stores a new entry.

A genre created without a slug gets one derived from its name; if nothing
survives the derivation the genre is stored without a slug.

Returns:
  - *Entry: The created entry
  - error: ValidationError, Conflict on a duplicate slug
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Entry, error) {
	entry := &Entry{
		Name: strings.TrimSpace(input.Name),
		Slug: strings.TrimSpace(input.Slug),
	}

	if entry.Slug == "" && service.kind == KindGenre {
		entry.Slug = deriveSlug(entry.Name)
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, entry.Name).MaxLen(FieldName, entry.Name, NameMaxLen)
	switch {
	case entry.Slug != "":
		validator.Slug(FieldSlug, entry.Slug).MaxLen(FieldSlug, entry.Slug, SlugMaxLen)
	case service.kind == KindCategory:
		validator.Required(FieldSlug, entry.Slug)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repo.Create(context, entry); err != nil {
		return nil, err
	}

	service.logger.Info("reference_created",
		slog.String("kind", string(service.kind)),
		slog.String("slug", entry.Slug),
	)
	return entry, nil
}

// Delete removes the entry addressed by slug.
func (service *Service) Delete(context context.Context, slugValue string) error {
	if err := service.repo.DeleteBySlug(context, slugValue); err != nil {
		return err
	}

	service.logger.Info("reference_deleted",
		slog.String("kind", string(service.kind)),
		slog.String("slug", slugValue),
	)
	return nil
}

func deriveSlug(name string) string {
	derived := slug.From(name)
	if len(derived) > SlugMaxLen {
		derived = strings.TrimRight(derived[:SlugMaxLen], "-")
	}
	return derived
}
