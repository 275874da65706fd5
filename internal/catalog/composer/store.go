// Copyright (c) 2026 Partitura. All rights reserved.
// Author: dev@clefworks.io

package composer

import "context"

type Repository interface {
	ListComposers(context context.Context, f Filter, limit, offset int) ([]*Composer, int, error)
	GetComposer(context context.Context, id int64) (*Composer, error)
	CreateComposer(context context.Context, c *Composer) error
	UpdateComposer(context context.Context, c *Composer) error
	DeleteComposer(context context.Context, id int64) error

	ListWorksForBook(context context.Context, bookID int64) ([]*Work, error)
	GetWork(context context.Context, id int64) (*Work, error)
	CreateWork(context context.Context, w *Work) error
	UpdateWork(context context.Context, w *Work) error
	DeleteWork(context context.Context, id int64) error
}
