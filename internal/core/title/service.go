// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/yamdb/internal/core/reference"
	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/validate"
	"github.com/taibuivan/yamdb/pkg/pointer"
	"github.com/taibuivan/yamdb/pkg/slice"
)

// Service implements the business logic for titles.
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// Option customises a [Service].
type Option func(*Service)

// WithClock replaces the clock used for the year bound.
func WithClock(now func() time.Time) Option {
	return func(service *Service) { service.now = now }
}

// NewService constructs a title [Service].
func NewService(repo Repository, logger *slog.Logger, options ...Option) *Service {
	service := &Service{repo: repo, logger: logger, now: time.Now}
	for _, option := range options {
		option(service)
	}
	return service
}

// List returns a page of titles matching filter.
func (service *Service) List(context context.Context, filter Filter, limit, offset int) ([]*Title, int, error) {
	return service.repo.List(context, filter, limit, offset)
}

// Get returns a single title with its rating.
func (service *Service) Get(context context.Context, id int64) (*Title, error) {
	return service.repo.FindByID(context, id)
}

/*
Create validates and stores a new title.

Name, year, category and genre must all be supplied; genre may be an empty list.

Returns:
  - *Title: The stored title in its read representation
  - error: ValidationError for bad input or unknown slugs
*/
func (service *Service) Create(context context.Context, input WriteInput) (*Title, error) {
	validator := &validate.Validator{}
	validator.
		Present(FieldName, input.Name != nil).
		Present(FieldYear, input.Year != nil).
		Present(FieldCategory, input.Category != nil).
		Present(FieldGenre, input.Genres != nil)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	record := &Record{}
	if err := service.apply(context, record, input); err != nil {
		return nil, err
	}

	id, err := service.repo.Create(context, record)
	if err != nil {
		return nil, err
	}

	service.logger.Info("title_created", slog.Int64("title_id", id), slog.String("name", record.Name))
	return service.repo.FindByID(context, id)
}

/*
Update applies a partial update to the title.

Returns:
  - *Title: The updated title in its read representation
  - error: NotFound, ValidationError
*/
func (service *Service) Update(context context.Context, id int64, input WriteInput) (*Title, error) {
	current, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	record := &Record{
		Name:        current.Name,
		Year:        current.Year,
		Description: current.Description,
		GenreIDs:    slice.Map(current.Genres, entryID),
	}
	if current.Category != nil {
		record.CategoryID = pointer.To(current.Category.ID)
	}

	if err := service.apply(context, record, input); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, id, record); err != nil {
		return nil, err
	}

	service.logger.Info("title_updated", slog.Int64("title_id", id))
	return service.repo.FindByID(context, id)
}

// Delete removes the title together with its reviews and comments.
func (service *Service) Delete(context context.Context, id int64) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("title_deleted", slog.Int64("title_id", id))
	return nil
}

// apply validates the supplied fields of input and copies them onto record,
// resolving category and genre slugs to ids.
func (service *Service) apply(context context.Context, record *Record, input WriteInput) error {
	validator := &validate.Validator{}

	if input.Name != nil {
		record.Name = strings.TrimSpace(*input.Name)
		validator.Required(FieldName, record.Name).MaxLen(FieldName, record.Name, NameMaxLen)
	}
	if input.Year != nil {
		record.Year = *input.Year
		currentYear := service.now().Year()
		validator.Custom(FieldYear, record.Year > currentYear, "Year cannot be later than the current year")
	}
	record.Description = pointer.Fallback(input.Description, record.Description)
	if err := validator.Err(); err != nil {
		return err
	}

	if input.Category != nil {
		category, err := service.repo.ResolveCategory(context, strings.TrimSpace(*input.Category))
		if err != nil {
			return unknownSlug(err, FieldCategory, *input.Category)
		}
		record.CategoryID = pointer.To(category.ID)
	}

	if input.Genres != nil {
		slugs := uniqueSlugs(*input.Genres)
		genres, err := service.repo.ResolveGenres(context, slugs)
		if err != nil {
			return err
		}
		if missing := missingSlug(slugs, genres); missing != "" {
			return validate.FieldError(FieldGenre, "Unknown genre slug \""+missing+"\"")
		}

		record.GenreIDs = slice.Map(genres, entryID)
	}

	return nil
}

func unknownSlug(err error, field, value string) error {
	if apperr.HasCode(err, "NOT_FOUND") {
		return validate.FieldError(field, "Unknown "+field+" slug \""+value+"\"")
	}
	return err
}

func uniqueSlugs(slugs []string) []string {
	return slice.Unique(slice.Map(slugs, strings.TrimSpace))
}

func entryID(entry reference.Entry) int64 { return entry.ID }

func missingSlug(slugs []string, found []reference.Entry) string {
	known := make(map[string]struct{}, len(found))
	for _, genre := range found {
		known[genre.Slug] = struct{}{}
	}
	for _, slug := range slugs {
		if _, ok := known[slug]; !ok {
			return slug
		}
	}
	return ""
}
