// Copyright (c) 2026 Partitura. All rights reserved.
// Author: dev@clefworks.io

package author

import "time"

// Author represents a lyricist or arranger credited on a book.
type Author struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	ContactNumber *string    `json:"contact_number"`
	DateOfBirth   *time.Time `json:"date_of_birth"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	DeletedAt     *time.Time `json:"-"` // soft-delete tracker
}

// Filter holds the parameters for a paginated author search.
type Filter struct {
	Query string // ILIKE search against name
}

// Global field names for validation
const (
	FieldName          = "name"
	FieldContactNumber = "contact_number"
)
