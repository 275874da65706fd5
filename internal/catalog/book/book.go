// Copyright (c) 2026 Partitura. All rights reserved.
// Author: dev@clefworks.io

package book

import "time"

// BookType partitions the catalog by publication format.
type BookType string

const (
	TypeGeneral BookType = "general" // collection volumes
	TypePiece   BookType = "piece"   // single-piece sheet
	TypeScore   BookType = "score"   // full scores
)

func (t BookType) Valid() bool {
	switch t {
	case TypeGeneral, TypePiece, TypeScore:
		return true
	}
	return false
}

// Book is a published title in the catalog. Every priced and sold unit hangs
// off a book row; deleting one only soft-deletes so ledger history stays
// resolvable.
type Book struct {
	ID              int64      `json:"id"`
	Title           string     `json:"title"`
	TitleOriginal   *string    `json:"title_original"`
	Subtitle        *string    `json:"subtitle"`
	Slug            string     `json:"slug"`
	BookType        BookType   `json:"book_type"`
	CategoryID      int64      `json:"category_id"`
	PublicationDate *time.Time `json:"publication_date"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	DeletedAt       *time.Time `json:"-"`

	// Joined in for read endpoints.
	CategoryMajor string  `json:"category_major,omitempty"`
	CategoryMinor string  `json:"category_minor,omitempty"`
	AuthorIDs     []int64 `json:"author_ids,omitempty"`
}

// Filter holds the parameters for a paginated book search.
type Filter struct {
	Query      string // ILIKE search against title and titleoriginal
	BookType   BookType
	CategoryID int64
}

// Global field names for validation
const (
	FieldTitle      = "title"
	FieldBookType   = "book_type"
	FieldCategoryID = "category_id"
	FieldAuthorIDs  = "author_ids"
)
