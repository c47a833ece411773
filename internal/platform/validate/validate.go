// Copyright (c) 2026 Palmares. All rights reserved.

/*
Package validate provides a fluent, chainable input validator for API handlers.

It accumulates per-field failures and converts them into a single
[apperr.ValidationError] carrying structured details, so a client sees every
problem with its request at once instead of one at a time.
*/
package validate

import (
	"fmt"
	"strings"

	"github.com/openscreen/palmares/internal/platform/apperr"
)

// ErrInvalidJSON is returned when a request body cannot be decoded.
var ErrInvalidJSON = apperr.ValidationError("Request body is not valid JSON")

// Validator accumulates field-level validation failures.
//
// The zero value is ready to use:
//
//	v := &validate.Validator{}
//	v.Required("year", year).IntRange("year", year, 1920, 2100)
//	if err := v.Err(); err != nil { ... }
type Validator struct {
	details []apperr.FieldError
}

// Required records a failure when value is empty or whitespace-only.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, "is required")
	}
	return v
}

// MaxLen records a failure when value exceeds max characters.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	if len(value) > max {
		v.add(field, fmt.Sprintf("must be at most %d characters", max))
	}
	return v
}

// OneOf records a failure when value is non-empty and not one of allowed.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	if value == "" {
		return v
	}
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.add(field, "must be one of: "+strings.Join(allowed, ", "))
	return v
}

// IntRange records a failure when value falls outside [min, max].
func (v *Validator) IntRange(field string, value, min, max int) *Validator {
	if value < min || value > max {
		v.add(field, fmt.Sprintf("must be between %d and %d", min, max))
	}
	return v
}

// Fail records an explicit failure for cases the built-in rules cannot
// express, such as unparseable query parameters.
func (v *Validator) Fail(field, message string) *Validator {
	v.add(field, message)
	return v
}

// HasErrors reports whether any rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.details) > 0
}

// Err returns the accumulated failures as an [apperr.AppError], or nil if
// every rule passed.
func (v *Validator) Err() error {
	if !v.HasErrors() {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.details...)
}

func (v *Validator) add(field, message string) {
	v.details = append(v.details, apperr.FieldError{Field: field, Message: message})
}
