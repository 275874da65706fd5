// Copyright (c) 2026 Partitura. All rights reserved.
// Author: dev@clefworks.io

package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/clefworks/partitura/internal/pricing"
)

/*
TestAdjusted_Percent tests percentage adjustments, including the half-up
rounding of fractional results.
*/
func TestAdjusted_Percent(t *testing.T) {
	tests := []struct {
		name    string
		current int64
		value   string
		want    int64
	}{
		{"ten_percent_up_rounds_half_up", 1005, "10", 1106}, // 1105.5 -> 1106
		{"ten_percent_down", 1000, "-10", 900},
		{"exact_result_unrounded", 1000, "10", 1100},
		{"rounds_down_below_half", 1004, "10", 1104}, // 1104.4 -> 1104
		{"full_discount_hits_zero", 500, "-100", 0},
		{"overshoot_clamps_at_zero", 500, "-150", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pricing.Adjusted(
				decimal.NewFromInt(tt.current),
				pricing.ModePercent,
				decimal.RequireFromString(tt.value),
			)
			assert.True(t, got.Equal(decimal.NewFromInt(tt.want)), "got %s want %d", got, tt.want)
		})
	}
}

/*
TestAdjusted_Amount tests flat adjustments and the zero floor.
*/
func TestAdjusted_Amount(t *testing.T) {
	tests := []struct {
		name    string
		current int64
		value   int64
		want    int64
	}{
		{"increase", 1000, 500, 1500},
		{"decrease", 1000, -300, 700},
		{"decrease_to_zero", 300, -300, 0},
		{"decrease_past_zero_clamps", 300, -500, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pricing.Adjusted(
				decimal.NewFromInt(tt.current),
				pricing.ModeAmount,
				decimal.NewFromInt(tt.value),
			)
			assert.True(t, got.Equal(decimal.NewFromInt(tt.want)), "got %s want %d", got, tt.want)
		})
	}
}

/*
TestBatchMode_Valid checks mode recognition.
*/
func TestBatchMode_Valid(t *testing.T) {
	assert.True(t, pricing.ModeAmount.Valid())
	assert.True(t, pricing.ModePercent.Valid())
	assert.False(t, pricing.BatchMode("ratio").Valid())
	assert.False(t, pricing.BatchMode("").Valid())
}
