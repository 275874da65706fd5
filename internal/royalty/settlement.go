// Copyright (c) 2026 Partitura. All rights reserved.
// Author: dev@clefworks.io

package royalty

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settlement is one royalty milestone owed to a composer: book X crossed its
// Nth thousand-unit threshold in year Y. A milestone exists at most once per
// (book, composer, year, multiple) and is paid at most once.
type Settlement struct {
	ID                int64           `json:"id"`
	BookID            int64           `json:"book_id"`
	ComposerID        int64           `json:"composer_id"`
	ThresholdYear     int             `json:"threshold_year"`
	ThresholdMultiple int             `json:"threshold_multiple"`
	CumulativeSales   int64           `json:"cumulative_sales"`
	EstimatedAmount   decimal.Decimal `json:"estimated_amount"`
	Paid              bool            `json:"paid"`
	PaidAt            *time.Time      `json:"paid_at"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`

	// Joined in for read endpoints.
	BookTitle    string `json:"book_title,omitempty"`
	ComposerName string `json:"composer_name,omitempty"`
}

// Filter holds the parameters for a paginated settlement listing.
type Filter struct {
	ComposerID int64
	BookID     int64
	Year       int
	UnpaidOnly bool
}

// BearingWork is a (composer, book) royalty share the detector fans out over.
type BearingWork struct {
	BookID            int64
	ComposerID        int64
	RoyaltyPercentage decimal.Decimal
}

// DetectionReport summarizes one detector run.
type DetectionReport struct {
	Year        int           `json:"year"`
	Created     int           `json:"created"`
	Settlements []*Settlement `json:"settlements"`
}

// Global field names for validation
const (
	FieldYear = "year"
)
