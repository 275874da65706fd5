// Copyright (c) 2026 Partitura. All rights reserved.
// Author: dev@clefworks.io

package category

import "time"

// Category is a two-level classification for books, e.g. "Piano / Etude".
type Category struct {
	ID        int64     `json:"id"`
	Major     string    `json:"major"`
	Minor     string    `json:"minor"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Global field names for validation
const (
	FieldMajor = "major"
	FieldMinor = "minor"
)
