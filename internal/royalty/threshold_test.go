// Copyright (c) 2026 Partitura. All rights reserved.
// Author: dev@clefworks.io

package royalty_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/clefworks/partitura/internal/royalty"
)

/*
TestNewMultiples walks the threshold ladder for various sales totals and
already-paid positions.
*/
func TestNewMultiples(t *testing.T) {
	tests := []struct {
		name     string
		units    int64
		lastPaid int
		want     []int
	}{
		{"zero_sales", 0, 0, nil},
		{"below_first_threshold", 999, 0, nil},
		{"exactly_first_threshold", 1000, 0, []int{1}},
		{"between_thresholds", 1500, 0, []int{1}},
		{"first_already_paid", 2500, 1, []int{2}},
		{"multiple_new_crossings", 3200, 0, []int{1, 2, 3}},
		{"all_paid", 2500, 2, nil},
		{"paid_ahead_of_sales", 500, 3, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := royalty.NewMultiples(tt.units, tt.lastPaid)
			assert.Equal(t, tt.want, got)
		})
	}
}

/*
TestEstimatedAmount verifies the payout formula: cumulative revenue scaled by
the eligible share of units, times the composer's percentage, rounded half-up
to 2 decimal places.
*/
func TestEstimatedAmount(t *testing.T) {
	tests := []struct {
		name          string
		revenue       string
		totalUnits    int64
		lastPaidUnits int64
		multiple      int
		percentage    string
		want          string
	}{
		// 150000 * (1000/2000) * 10% = 7500
		{"second_threshold_after_first_paid", "150000", 2000, 1000, 2, "10", "7500"},
		// 2000000 * (1000/2000) * 10% = 100000
		{"first_threshold", "2000000", 2000, 0, 1, "10", "100000"},
		// 1001 * (1000/2000) * 5% = 25.025 -> 25.03 half-up
		{"rounds_half_up", "1001", 2000, 0, 1, "5", "25.03"},
		// 100 * (1000/3000) * 10% = 3.3333... -> 3.33
		{"rounds_down_below_half", "100", 3000, 0, 1, "10", "3.33"},
		{"zero_sales_never_divides", "150000", 0, 0, 1, "10", "0"},
		{"zero_revenue", "0", 2000, 0, 1, "10", "0"},
		{"zero_percentage", "150000", 2000, 0, 1, "0", "0"},
		{"paid_past_multiple", "150000", 2000, 2000, 2, "10", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := royalty.EstimatedAmount(
				decimal.RequireFromString(tt.revenue),
				tt.totalUnits,
				tt.lastPaidUnits,
				tt.multiple,
				decimal.RequireFromString(tt.percentage),
			)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}
