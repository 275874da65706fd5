// Copyright (c) 2026 Partitura. All rights reserved.
// Author: dev@clefworks.io

package category

import "context"

type Repository interface {
	ListCategories(context context.Context) ([]*Category, error)
	GetCategory(context context.Context, id int64) (*Category, error)
	CreateCategory(context context.Context, c *Category) error
	UpdateCategory(context context.Context, c *Category) error
	DeleteCategory(context context.Context, id int64) error
}
