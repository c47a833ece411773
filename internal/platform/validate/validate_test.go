// Copyright (c) 2026 Palmares. All rights reserved.

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openscreen/palmares/internal/platform/apperr"
	"github.com/openscreen/palmares/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "name", "Palmares", false},
		{"empty_string", "name", "", true},
		{"whitespace_only", "name", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_IntRange checks numeric bound validation.
*/
func TestValidator_IntRange(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		isValid bool
	}{
		{"in_range", 1972, true},
		{"lower_bound", 1920, true},
		{"upper_bound", 2100, true},
		{"below", 1850, false},
		{"above", 2200, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.IntRange("year", tt.value, 1920, 2100)

			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_OneOf checks the enumeration rule, including the skip on empty input.
*/
func TestValidator_OneOf(t *testing.T) {
	v := &validate.Validator{}
	v.OneOf("scope", "day", "day", "week", "month")
	assert.False(t, v.HasErrors())

	v.OneOf("scope", "decade", "day", "week", "month")
	assert.True(t, v.HasErrors())

	empty := &validate.Validator{}
	empty.OneOf("scope", "", "day", "week", "month")
	assert.False(t, empty.HasErrors())
}

/*
TestValidator_AccumulatesDetails verifies multiple failures surface together.
*/
func TestValidator_AccumulatesDetails(t *testing.T) {
	v := &validate.Validator{}
	v.Required("title", "").MaxLen("slug", "way-too-long", 5)

	err := v.Err()
	require.NotNil(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Len(t, ae.Details, 2)
}
