// Copyright (c) 2026 Partitura. All rights reserved.
// Author: dev@clefworks.io

package author

import "context"

type Repository interface {
	ListAuthors(context context.Context, f Filter, limit, offset int) ([]*Author, int, error)
	GetAuthor(context context.Context, id int64) (*Author, error)
	CreateAuthor(context context.Context, a *Author) error
	UpdateAuthor(context context.Context, a *Author) error
	DeleteAuthor(context context.Context, id int64) error
}
