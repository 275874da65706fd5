// Copyright (c) 2026 Partitura. All rights reserved.
// Author: dev@clefworks.io

package schema

// RefPriceRecordTable represents the 'pricing.pricerecord' table
type RefPriceRecordTable struct {
	Table      string
	ID         string
	BookID     string
	Price      string
	IsLatest   string
	RecordedAt string
}

// RefPriceRecord is the schema definition for pricing.pricerecord
var RefPriceRecord = RefPriceRecordTable{
	Table:      "pricing.pricerecord",
	ID:         "id",
	BookID:     "bookid",
	Price:      "price",
	IsLatest:   "islatest",
	RecordedAt: "recordedat",
}

func (t RefPriceRecordTable) Columns() []string {
	return []string{t.ID, t.BookID, t.Price, t.IsLatest, t.RecordedAt}
}
