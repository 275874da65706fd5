// Copyright (c) 2026 Partitura. All rights reserved.
// Author: dev@clefworks.io

package schema

// RefAuthorTable represents the 'catalog.author' table
type RefAuthorTable struct {
	Table         string
	ID            string
	Name          string
	ContactNumber string
	DateOfBirth   string
	CreatedAt     string
	UpdatedAt     string
	DeletedAt     string
}

// RefAuthor is the schema definition for catalog.author
var RefAuthor = RefAuthorTable{
	Table:         "catalog.author",
	ID:            "id",
	Name:          "name",
	ContactNumber: "contactnumber",
	DateOfBirth:   "dateofbirth",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
	DeletedAt:     "deletedat",
}

func (t RefAuthorTable) Columns() []string {
	return []string{t.ID, t.Name, t.ContactNumber, t.DateOfBirth, t.CreatedAt, t.UpdatedAt, t.DeletedAt}
}
