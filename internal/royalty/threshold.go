// Copyright (c) 2026 Partitura. All rights reserved.
// Author: dev@clefworks.io

package royalty

import (
	"github.com/shopspring/decimal"

	"github.com/clefworks/partitura/internal/platform/constants"
)

// NewMultiples returns the threshold multiples a book has newly crossed,
// given its cumulative unit sales and the highest multiple already paid.
// A book at 2,500 units with multiple 1 paid has newly crossed [2].
func NewMultiples(cumulativeUnits int64, lastPaid int) []int {
	reached := int(cumulativeUnits / constants.RoyaltyThresholdUnits)
	if reached <= lastPaid {
		return nil
	}

	multiples := make([]int, 0, reached-lastPaid)
	for multiple := lastPaid + 1; multiple <= reached; multiple++ {
		multiples = append(multiples, multiple)
	}
	return multiples
}

// EstimatedAmount is the payout for one crossed threshold: the share of
// cumulative revenue covered by the units between the last paid threshold and
// this multiple, times the composer's percentage. Rounds half-up to 2
// decimal places. A book with no sales yields zero; there is never a
// division by zero.
func EstimatedAmount(totalRevenue decimal.Decimal, totalUnits, lastPaidUnits int64, multiple int, royaltyPercentage decimal.Decimal) decimal.Decimal {
	if totalUnits == 0 {
		return decimal.Zero
	}

	eligibleUnits := int64(multiple)*constants.RoyaltyThresholdUnits - lastPaidUnits
	if eligibleUnits <= 0 {
		return decimal.Zero
	}

	return totalRevenue.
		Mul(decimal.NewFromInt(eligibleUnits)).
		Div(decimal.NewFromInt(totalUnits)).
		Mul(royaltyPercentage).
		Div(decimal.NewFromInt(100)).
		Round(2)
}
