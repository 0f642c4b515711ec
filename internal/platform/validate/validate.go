// Copyright (c) 2026 YaMDb. All rights reserved.
// Author: serg350.dev@gmail.com

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError].
//
// # Architecture
//
// This package is used in the handler and service layers — never in storage.
// It ensures that business logic only operates on semantically valid data.
// All validation runs before any mutation; a failing chain leaves no partial
// state behind.
package validate

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/serg350/yamdb-final/internal/platform/apperr"
)

var (
	// usernameRegex matches the allowed username alphabet: word characters
	// plus the @ . + - punctuation set. Full match only.
	usernameRegex = regexp.MustCompile(`^[\w.@+-]+$`)
	// usernameAllowed is used to report which characters of a rejected
	// username fell outside the alphabet.
	usernameAllowed = regexp.MustCompile(`[\w.@+-]`)
	// slugRegex matches slug format: lowercase letters, digits, hyphens.
	slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

	// ErrInvalidJSON is returned when the request body cannot be decoded.
	ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")
)

// reservedUsernames can never be registered; "me" collides with the
// self-service profile route.
var reservedUsernames = map[string]struct{}{
	"me": {},
}

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

// MaxLen fails if the Unicode character count exceeds max.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	if utf8.RuneCountInString(value) > max {
		v.add(field, fmt.Sprintf("Maximum %d characters", max))
	}
	return v
}

// Range fails if the value is outside the [min, max] range (inclusive),
// naming the violated bound.
func (v *Validator) Range(field string, value, min, max int) *Validator {
	if value < min {
		v.add(field, fmt.Sprintf("Must be greater than or equal to %d", min))
	} else if value > max {
		v.add(field, fmt.Sprintf("Must be less than or equal to %d", max))
	}
	return v
}

// Email fails if the value is not a valid RFC 5322 email address.
func (v *Validator) Email(field, value string) *Validator {
	if _, err := mail.ParseAddress(value); err != nil {
		v.add(field, "Must be a valid email address")
	}
	return v
}

// Username fails if the value does not full-match the username alphabet or
// is a reserved name.
//
// # Format
//
// Usernames may contain letters, digits, underscores, and the @ . + -
// characters. The rejection message lists the offending characters so the
// caller can correct the input.
func (v *Validator) Username(field, value string) *Validator {
	if !usernameRegex.MatchString(value) {
		unmatched := usernameAllowed.ReplaceAllString(value, "")
		v.add(field, fmt.Sprintf("May contain only letters, digits and @/./+/-/_ characters. Invalid characters found: %s", unmatched))
		return v
	}
	if _, reserved := reservedUsernames[value]; reserved {
		v.add(field, fmt.Sprintf("Username %q is reserved", value))
	}
	return v
}

// Year fails unless 0 < value <= the current year.
func (v *Validator) Year(field string, value int) *Validator {
	currentYear := time.Now().Year()
	if value <= 0 || value > currentYear {
		v.add(field, fmt.Sprintf("Must be between 1 and %d", currentYear))
	}
	return v
}

// Slug fails if the value is not a valid URL slug.
//
// # Format
//
// Slugs must consist only of lowercase letters, digits, and hyphens,
// with no leading or trailing hyphens.
func (v *Validator) Slug(field, value string) *Validator {
	if !slugRegex.MatchString(value) {
		v.add(field, "Must be a valid URL slug (lowercase letters, digits, hyphens only)")
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
// # Example
//
//	v.Custom("score", score == nil, "This field is required")
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.add(field, message)
	}
	return v
}

// Err returns an [apperr.AppError] (VALIDATION_ERROR) if any rules failed,
// or nil if all rules passed.
//
// This is the only output method — call it at the end of the chain.
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

// add appends an [apperr.FieldError] to the internal slice.
func (v *Validator) add(field, message string) {
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
}

// RequiredError is a shortcut to create a single-field validation error.
func RequiredError(field, message string) *apperr.AppError {
	return apperr.ValidationError("Validation failed", apperr.FieldError{
		Field:   field,
		Message: message,
	})
}
