// Copyright (c) 2026 Paras Comic. All rights reserved.
// Author: Troon Technologies LLC

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError].
//
// # Architecture
//
// This package is used in the service layer, never in handlers or storage.
// Publishing and commenting only operate on inputs that passed every rule.
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/apperr"
)

var (
	// accountRegex matches ledger account names such as "afiq.testnet".
	accountRegex = regexp.MustCompile(`^(([a-z\d]+[\-_])*[a-z\d]+\.)*([a-z\d]+[\-_])*[a-z\d]+$`)

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

// MaxLen fails if the Unicode character count exceeds max.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	if utf8.RuneCountInString(value) > max {
		v.add(field, fmt.Sprintf("Maximum %d characters", max))
	}
	return v
}

// Positive fails if value is zero or negative.
func (v *Validator) Positive(field string, value int) *Validator {
	if value <= 0 {
		v.add(field, "Must be a positive number")
	}
	return v
}

// NonNegative fails if value is below zero.
func (v *Validator) NonNegative(field string, value int) *Validator {
	if value < 0 {
		v.add(field, "Must not be negative")
	}
	return v
}

// Between fails if the value is outside the [min, max] range (inclusive).
func (v *Validator) Between(field string, value, min, max float64) *Validator {
	if value < min || value > max {
		v.add(field, fmt.Sprintf("Must be between %g and %g", min, max))
	}
	return v
}

// Account fails if the value is not a well-formed ledger account name.
func (v *Validator) Account(field, value string) *Validator {
	if len(value) < 2 || len(value) > 64 || !accountRegex.MatchString(value) {
		v.add(field, "Must be a valid account id")
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
//	v.Custom("page_count", len(pages) != pageCount, "Must match page_contents")
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

// RequiredError is a shortcut to create a single-field validation error.
func RequiredError(field, message string) *apperr.AppError {
	return apperr.ValidationError("Validation failed", apperr.FieldError{
		Field:   field,
		Message: message,
	})
}
