// Copyright (c) 2026 Partitura. All rights reserved.
// Author: dev@clefworks.io

package schema

// RefComposerWorkTable represents the 'catalog.composerwork' table
type RefComposerWorkTable struct {
	Table             string
	ID                string
	ComposerID        string
	BookID            string
	NumberOfSongs     string
	RoyaltyPercentage string
	CreatedAt         string
	UpdatedAt         string
}

// RefComposerWork is the schema definition for catalog.composerwork
var RefComposerWork = RefComposerWorkTable{
	Table:             "catalog.composerwork",
	ID:                "id",
	ComposerID:        "composerid",
	BookID:            "bookid",
	NumberOfSongs:     "numberofsongs",
	RoyaltyPercentage: "royaltypercentage",
	CreatedAt:         "createdat",
	UpdatedAt:         "updatedat",
}

func (t RefComposerWorkTable) Columns() []string {
	return []string{t.ID, t.ComposerID, t.BookID, t.NumberOfSongs, t.RoyaltyPercentage, t.CreatedAt, t.UpdatedAt}
}
