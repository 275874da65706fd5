// Copyright (c) 2026 Partitura. All rights reserved.
// Author: dev@clefworks.io

package composer

import (
	"time"

	"github.com/shopspring/decimal"
)

// Composer represents a composer entitled to royalty payouts.
type Composer struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	ContactNumber *string    `json:"contact_number"`
	DateOfBirth   *time.Time `json:"date_of_birth"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	DeletedAt     *time.Time `json:"-"` // soft-delete tracker
}

// Work links a composer to a book with their song count and revenue share.
//
// A composer has at most one work record per book; the royalty percentage is
// the slice of that book's revenue the composer is entitled to.
type Work struct {
	ID                int64           `json:"id"`
	ComposerID        int64           `json:"composer_id"`
	BookID            int64           `json:"book_id"`
	NumberOfSongs     int             `json:"number_of_songs"`
	RoyaltyPercentage decimal.Decimal `json:"royalty_percentage"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`

	// ComposerName is joined in for read endpoints.
	ComposerName string `json:"composer_name,omitempty"`
}

// Filter holds the parameters for a paginated composer search.
type Filter struct {
	Query string // ILIKE search against name
}

// Global field names for validation
const (
	FieldName              = "name"
	FieldContactNumber     = "contact_number"
	FieldNumberOfSongs     = "number_of_songs"
	FieldRoyaltyPercentage = "royalty_percentage"
	FieldBookID            = "book_id"
	FieldComposerID        = "composer_id"
)
