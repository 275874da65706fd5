// Copyright (c) 2026 Partitura. All rights reserved.
// Author: dev@clefworks.io

package category

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clefworks/partitura/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListCategories(context context.Context) ([]*Category, error) {
	query := `
		SELECT id, major, minor, createdat, updatedat
		FROM catalog.category
		ORDER BY major ASC, minor ASC
	`

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_categories")
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		c := &Category{}
		if err := rows.Scan(&c.ID, &c.Major, &c.Minor, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_category")
		}
		categories = append(categories, c)
	}

	return categories, nil
}

func (repository *PostgresRepository) GetCategory(context context.Context, id int64) (*Category, error) {
	query := `
		SELECT id, major, minor, createdat, updatedat
		FROM catalog.category
		WHERE id = $1
	`
	c := &Category{}

	err := repository.db.QueryRow(context, query, id).Scan(&c.ID, &c.Major, &c.Minor, &c.CreatedAt, &c.UpdatedAt)

	return c, dberr.Wrap(err, "get_category")
}

func (repository *PostgresRepository) CreateCategory(context context.Context, c *Category) error {
	query := `
		INSERT INTO catalog.category (major, minor, createdat, updatedat)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING id, createdat, updatedat
	`

	err := repository.db.QueryRow(context, query, c.Major, c.Minor).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	return dberr.Wrap(err, "create_category")
}

func (repository *PostgresRepository) UpdateCategory(context context.Context, c *Category) error {
	query := `
		UPDATE catalog.category
		SET major = $2, minor = $3, updatedat = NOW()
		WHERE id = $1
		RETURNING updatedat
	`

	err := repository.db.QueryRow(context, query, c.ID, c.Major, c.Minor).Scan(&c.UpdatedAt)
	return dberr.Wrap(err, "update_category")
}

func (repository *PostgresRepository) DeleteCategory(context context.Context, id int64) error {
	// Books keep a FK to category; a category still in use surfaces as a
	// validation error from the FK violation.
	query := `DELETE FROM catalog.category WHERE id = $1`

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_category")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
