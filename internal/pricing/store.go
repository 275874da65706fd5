// Copyright (c) 2026 Partitura. All rights reserved.
// Author: dev@clefworks.io

package pricing

import (
	"context"

	"github.com/shopspring/decimal"
)

type Repository interface {
	CurrentPrice(context context.Context, bookID int64) (*PriceRecord, error)
	History(context context.Context, bookID int64) ([]*PriceRecord, error)

	// SetPrice flips the previous latest record and appends the new one in a
	// single transaction.
	SetPrice(context context.Context, bookID int64, price decimal.Decimal) (*PriceRecord, error)

	// BatchAdjust applies the adjustment to every targeted book atomically and
	// returns the ids whose price actually changed.
	BatchAdjust(context context.Context, adjustment BatchAdjustment) ([]int64, error)
}
