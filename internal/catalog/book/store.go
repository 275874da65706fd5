// Copyright (c) 2026 Partitura. All rights reserved.
// Author: dev@clefworks.io

package book

import "context"

type Repository interface {
	ListBooks(context context.Context, f Filter, limit, offset int) ([]*Book, int, error)
	GetBook(context context.Context, id int64) (*Book, error)
	GetBookBySlug(context context.Context, slug string) (*Book, error)
	CreateBook(context context.Context, b *Book) error
	UpdateBook(context context.Context, b *Book) error
	DeleteBook(context context.Context, id int64) error
}
