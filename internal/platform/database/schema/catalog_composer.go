// Copyright (c) 2026 Partitura. All rights reserved.
// Author: dev@clefworks.io

package schema

// RefComposerTable represents the 'catalog.composer' table
type RefComposerTable struct {
	Table         string
	ID            string
	Name          string
	ContactNumber string
	DateOfBirth   string
	CreatedAt     string
	UpdatedAt     string
	DeletedAt     string
}

// RefComposer is the schema definition for catalog.composer
var RefComposer = RefComposerTable{
	Table:         "catalog.composer",
	ID:            "id",
	Name:          "name",
	ContactNumber: "contactnumber",
	DateOfBirth:   "dateofbirth",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
	DeletedAt:     "deletedat",
}

func (t RefComposerTable) Columns() []string {
	return []string{t.ID, t.Name, t.ContactNumber, t.DateOfBirth, t.CreatedAt, t.UpdatedAt, t.DeletedAt}
}
