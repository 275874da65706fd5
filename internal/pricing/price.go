// Copyright (c) 2026 Partitura. All rights reserved.
// Author: dev@clefworks.io

package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceRecord is one entry in a book's append-only price ledger. Exactly one
// record per book carries IsLatest; changing a price never mutates history,
// it flips the old latest flag and appends a new row.
type PriceRecord struct {
	ID         int64           `json:"id"`
	BookID     int64           `json:"book_id"`
	Price      decimal.Decimal `json:"price"`
	IsLatest   bool            `json:"is_latest"`
	RecordedAt time.Time       `json:"recorded_at"`
}

// BatchMode selects how a batch adjustment derives the new price.
type BatchMode string

const (
	ModeAmount  BatchMode = "amount"  // new = old + value
	ModePercent BatchMode = "percent" // new = old * (1 + value/100)
)

func (m BatchMode) Valid() bool {
	return m == ModeAmount || m == ModePercent
}

// BatchAdjustment describes a bulk price mutation over an explicit, non-empty
// set of books. Books in the set without a current price are skipped.
type BatchAdjustment struct {
	Mode    BatchMode       `json:"mode"`
	Value   decimal.Decimal `json:"value"`
	BookIDs []int64         `json:"book_ids"`
}

// BatchResult reports which books actually moved.
type BatchResult struct {
	Adjusted int     `json:"adjusted"`
	BookIDs  []int64 `json:"book_ids"`
}

// Adjusted computes the new price for one book under a batch adjustment.
// Results round half-up to whole currency units and never go below zero.
func Adjusted(current decimal.Decimal, mode BatchMode, value decimal.Decimal) decimal.Decimal {
	var next decimal.Decimal
	switch mode {
	case ModeAmount:
		next = current.Add(value)
	case ModePercent:
		factor := decimal.NewFromInt(1).Add(value.Div(decimal.NewFromInt(100)))
		next = current.Mul(factor)
	default:
		return current
	}

	next = next.Round(0)
	if next.IsNegative() {
		return decimal.Zero
	}
	return next
}

// Global field names for validation
const (
	FieldPrice   = "price"
	FieldMode    = "mode"
	FieldValue   = "value"
	FieldBookIDs = "book_ids"
)
