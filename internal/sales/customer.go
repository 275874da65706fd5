// Copyright (c) 2026 Partitura. All rights reserved.
// Author: dev@clefworks.io

package sales

import "time"

// Customer is an ordering party. The contact number doubles as the natural
// key for repeat-order address lookups.
type Customer struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	ContactNumber string    `json:"contact_number"`
	Address       *string   `json:"address"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CustomerFilter holds the parameters for a paginated customer search.
type CustomerFilter struct {
	Query string // ILIKE search against name and contactnumber
}
