// Copyright (c) 2026 Partitura. All rights reserved.
// Author: dev@clefworks.io

package sales

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleRecord is the daily sales ledger: one row per (book, sale date) whose
// quantity and revenue only ever grow. Order aggregation and manual recording
// both land here through the same upsert.
type SaleRecord struct {
	ID        int64           `json:"id"`
	BookID    int64           `json:"book_id"`
	SaleDate  time.Time       `json:"sale_date"`
	Quantity  int64           `json:"quantity"`
	Revenue   decimal.Decimal `json:"revenue"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// SaleRecordFilter bounds a ledger listing to one book and an optional date
// window.
type SaleRecordFilter struct {
	BookID int64
	From   *time.Time
	To     *time.Time
}
