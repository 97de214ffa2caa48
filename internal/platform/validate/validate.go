// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError].
//
// # Architecture
//
// This package is used in the service layer. It ensures that business logic
// only operates on semantically valid data.
package validate

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
)

// Username rules shared by signup, user administration and profile edits.
const (
	UsernameMaxLen = 150

	// ReservedUsername collides with the self-service route and is never assignable.
	ReservedUsername = "me"
)

var (
	// slugRegex matches letters, digits, underscores and hyphens.
	slugRegex = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

	// usernameRegex matches Unicode word characters plus . @ + -
	usernameRegex = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]+$`)

	// ErrInvalidJSON is returned when the request body cannot be decoded.
	ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")
)

// Validator collects field-level validation errors via a fluent, chainable API.
//
// # Concurrency
//
// Validator is not safe for concurrent use. A new instance must be created
// for every request/operation.
type Validator struct {
	errs []apperr.FieldError
}

// Required fails if the trimmed value is empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, "This field is required")
	}
	return v
}

// Present fails if an optional payload field was not supplied at all.
func (v *Validator) Present(field string, supplied bool) *Validator {
	if !supplied {
		v.add(field, "This field is required")
	}
	return v
}

// MaxLen fails if the Unicode character count exceeds max.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	if utf8.RuneCountInString(value) > max {
		v.add(field, fmt.Sprintf("Maximum %d characters", max))
	}
	return v
}

// MinLen fails if the Unicode character count is below min.
func (v *Validator) MinLen(field, value string, min int) *Validator {
	if utf8.RuneCountInString(value) < min {
		v.add(field, fmt.Sprintf("Minimum %d characters", min))
	}
	return v
}

// Range fails if the value is outside the [min, max] range (inclusive).
func (v *Validator) Range(field string, value, min, max int) *Validator {
	if value < min || value > max {
		v.add(field, fmt.Sprintf("Must be between %d and %d", min, max))
	}
	return v
}

// Email fails if the value is not a bare RFC 5322 address.
func (v *Validator) Email(field, value string) *Validator {
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		v.add(field, "Must be a valid email address")
	}
	return v
}

// Slug fails if the value contains anything but letters, digits, underscores or hyphens.
func (v *Validator) Slug(field, value string) *Validator {
	if !slugRegex.MatchString(value) {
		v.add(field, "Must be a valid slug (letters, digits, underscores, hyphens only)")
	}
	return v
}

// Username applies the account name policy: required, at most 150 characters,
// word characters plus . @ + - only, and never the reserved name "me".
func (v *Validator) Username(field, value string) *Validator {
	switch {
	case strings.TrimSpace(value) == "":
		v.add(field, "This field is required")
	case utf8.RuneCountInString(value) > UsernameMaxLen:
		v.add(field, fmt.Sprintf("Maximum %d characters", UsernameMaxLen))
	case !usernameRegex.MatchString(value):
		v.add(field, "Only letters, digits and @/./+/-/_ are allowed")
	case value == ReservedUsername:
		v.add(field, fmt.Sprintf("The username %q is reserved", ReservedUsername))
	}
	return v
}

// OneOf fails if the value is not in the allowed set of strings.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.add(field, fmt.Sprintf("Must be one of: %s", strings.Join(allowed, ", ")))
	return v
}

// Custom adds a failure with a custom message if the condition is true.
//
//	v.Custom("year", year > now.Year(), "Year cannot be in the future")
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.add(field, message)
	}
	return v
}

// Err returns a [apperr.AppError] (VALIDATION_ERROR) if any rules failed,
// or nil if all rules passed.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.errs...)
}

// HasErrors reports whether any validation rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

func (v *Validator) add(field, message string) {
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
}

// FieldError is a shortcut to create a single-field validation error.
func FieldError(field, message string) *apperr.AppError {
	return apperr.ValidationError("Validation failed", apperr.FieldError{
		Field:   field,
		Message: message,
	})
}
