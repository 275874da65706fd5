// Copyright (c) 2026 Partitura. All rights reserved.
// Author: dev@clefworks.io

package validate_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clefworks/partitura/internal/platform/apperr"
	"github.com/clefworks/partitura/internal/platform/validate"
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
		{"valid_string", "name", "Partitura", false},
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
TestValidator_PhoneNumber checks the dashed phone number format rule.
*/
func TestValidator_PhoneNumber(t *testing.T) {
	tests := []struct {
		name    string
		number  string
		isValid bool
	}{
		{"mobile", "010-1234-5678", true},
		{"landline", "02-345-6789", true},
		{"no_dashes", "01012345678", false},
		{"letters", "010-abcd-5678", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.PhoneNumber("contact_number", tt.number)

			if tt.isValid {
				assert.False(t, v.HasErrors())
			} else {
				assert.True(t, v.HasErrors())
			}
		})
	}
}

/*
TestValidator_Percentage checks the [0, 100] decimal range rule.
*/
func TestValidator_Percentage(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		isValid bool
	}{
		{"zero", "0", true},
		{"fractional", "12.5", true},
		{"full", "100", true},
		{"negative", "-1", false},
		{"over_hundred", "100.01", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Percentage("royalty_percentage", decimal.RequireFromString(tt.value))

			if tt.isValid {
				assert.False(t, v.HasErrors())
			} else {
				assert.True(t, v.HasErrors())
			}
		})
	}
}

/*
TestValidator_Chain tests the fluent API (chaining multiple rules).
*/
func TestValidator_Chain(t *testing.T) {
	v := &validate.Validator{}

	// Multi-rule validation
	err := v.
		Required("title", "Nocturnes").
		MinLen("title", "Nocturnes", 3).
		MaxLen("title", "Nocturnes", 200).
		Positive("category_id", 4).
		NonNegativeDecimal("price", decimal.NewFromInt(1500)).
		Err()

	assert.NoError(t, err)
	assert.False(t, v.HasErrors())
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("title", "").                                   // Fails
		Positive("category_id", 0).                              // Fails
		NonNegativeDecimal("price", decimal.NewFromInt(-1500)).  // Fails
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)

	// Should accumulate all 3 errors
	assert.Len(t, ae.Details, 3)
}
