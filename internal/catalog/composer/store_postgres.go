// Copyright (c) 2026 Partitura. All rights reserved.
// Author: dev@clefworks.io

package composer

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clefworks/partitura/internal/platform/database/schema"
	"github.com/clefworks/partitura/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// # Composers

func (repository *PostgresRepository) ListComposers(context context.Context, f Filter, limit, offset int) ([]*Composer, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, COUNT(*) OVER() AS total
		FROM %s
		WHERE %s IS NULL
	`,
		schema.RefComposer.ID, schema.RefComposer.Name, schema.RefComposer.ContactNumber,
		schema.RefComposer.DateOfBirth, schema.RefComposer.CreatedAt, schema.RefComposer.UpdatedAt,
		schema.RefComposer.Table, schema.RefComposer.DeletedAt,
	)

	args := []any{}
	argID := 1

	if f.Query != "" {
		query += fmt.Sprintf(" AND name ILIKE $%d", argID)
		args = append(args, "%"+f.Query+"%")
		argID++
	}

	query += fmt.Sprintf(" ORDER BY %s ASC LIMIT $%d OFFSET $%d", schema.RefComposer.Name, argID, argID+1)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_composers")
	}
	defer rows.Close()

	var composers []*Composer
	var total int
	for rows.Next() {
		c := &Composer{}
		if err := rows.Scan(&c.ID, &c.Name, &c.ContactNumber, &c.DateOfBirth, &c.CreatedAt, &c.UpdatedAt, &total); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_composer")
		}
		composers = append(composers, c)
	}

	return composers, total, nil
}

func (repository *PostgresRepository) GetComposer(context context.Context, id int64) (*Composer, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s IS NULL
	`,
		schema.RefComposer.ID, schema.RefComposer.Name, schema.RefComposer.ContactNumber,
		schema.RefComposer.DateOfBirth, schema.RefComposer.CreatedAt, schema.RefComposer.UpdatedAt,
		schema.RefComposer.Table, schema.RefComposer.ID, schema.RefComposer.DeletedAt,
	)
	c := &Composer{}

	err := repository.db.QueryRow(context, query, id).Scan(
		&c.ID, &c.Name, &c.ContactNumber, &c.DateOfBirth, &c.CreatedAt, &c.UpdatedAt,
	)

	return c, dberr.Wrap(err, "get_composer")
}

func (repository *PostgresRepository) CreateComposer(context context.Context, c *Composer) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING %s, %s, %s
	`,
		schema.RefComposer.Table, schema.RefComposer.Name, schema.RefComposer.ContactNumber,
		schema.RefComposer.DateOfBirth, schema.RefComposer.CreatedAt, schema.RefComposer.UpdatedAt,
		schema.RefComposer.ID, schema.RefComposer.CreatedAt, schema.RefComposer.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, c.Name, c.ContactNumber, c.DateOfBirth).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	return dberr.Wrap(err, "create_composer")
}

func (repository *PostgresRepository) UpdateComposer(context context.Context, c *Composer) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = NOW()
		WHERE %s = $1 AND %s IS NULL
		RETURNING %s
	`,
		schema.RefComposer.Table, schema.RefComposer.Name, schema.RefComposer.ContactNumber,
		schema.RefComposer.DateOfBirth, schema.RefComposer.UpdatedAt, schema.RefComposer.ID,
		schema.RefComposer.DeletedAt, schema.RefComposer.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, c.ID, c.Name, c.ContactNumber, c.DateOfBirth).Scan(&c.UpdatedAt)
	return dberr.Wrap(err, "update_composer")
}

func (repository *PostgresRepository) DeleteComposer(context context.Context, id int64) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1 AND %s IS NULL`,
		schema.RefComposer.Table, schema.RefComposer.DeletedAt, schema.RefComposer.ID, schema.RefComposer.DeletedAt,
	)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_composer")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// # Works

func (repository *PostgresRepository) ListWorksForBook(context context.Context, bookID int64) ([]*Work, error) {
	query := fmt.Sprintf(`
		SELECT w.%s, w.%s, w.%s, w.%s, w.%s, w.%s, w.%s, c.%s
		FROM %s w
		JOIN %s c ON c.%s = w.%s
		WHERE w.%s = $1 AND c.%s IS NULL
		ORDER BY c.%s ASC
	`,
		schema.RefComposerWork.ID, schema.RefComposerWork.ComposerID, schema.RefComposerWork.BookID,
		schema.RefComposerWork.NumberOfSongs, schema.RefComposerWork.RoyaltyPercentage,
		schema.RefComposerWork.CreatedAt, schema.RefComposerWork.UpdatedAt, schema.RefComposer.Name,
		schema.RefComposerWork.Table,
		schema.RefComposer.Table, schema.RefComposer.ID, schema.RefComposerWork.ComposerID,
		schema.RefComposerWork.BookID, schema.RefComposer.DeletedAt,
		schema.RefComposer.Name,
	)

	rows, err := repository.db.Query(context, query, bookID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_works")
	}
	defer rows.Close()

	var works []*Work
	for rows.Next() {
		w := &Work{}
		err := rows.Scan(
			&w.ID, &w.ComposerID, &w.BookID, &w.NumberOfSongs, &w.RoyaltyPercentage,
			&w.CreatedAt, &w.UpdatedAt, &w.ComposerName,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_work")
		}
		works = append(works, w)
	}

	return works, nil
}

func (repository *PostgresRepository) GetWork(context context.Context, id int64) (*Work, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.RefComposerWork.ID, schema.RefComposerWork.ComposerID, schema.RefComposerWork.BookID,
		schema.RefComposerWork.NumberOfSongs, schema.RefComposerWork.RoyaltyPercentage,
		schema.RefComposerWork.CreatedAt, schema.RefComposerWork.UpdatedAt,
		schema.RefComposerWork.Table, schema.RefComposerWork.ID,
	)
	w := &Work{}

	err := repository.db.QueryRow(context, query, id).Scan(
		&w.ID, &w.ComposerID, &w.BookID, &w.NumberOfSongs, &w.RoyaltyPercentage, &w.CreatedAt, &w.UpdatedAt,
	)

	return w, dberr.Wrap(err, "get_work")
}

func (repository *PostgresRepository) CreateWork(context context.Context, w *Work) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING %s, %s, %s
	`,
		schema.RefComposerWork.Table, schema.RefComposerWork.ComposerID, schema.RefComposerWork.BookID,
		schema.RefComposerWork.NumberOfSongs, schema.RefComposerWork.RoyaltyPercentage,
		schema.RefComposerWork.CreatedAt, schema.RefComposerWork.UpdatedAt,
		schema.RefComposerWork.ID, schema.RefComposerWork.CreatedAt, schema.RefComposerWork.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, w.ComposerID, w.BookID, w.NumberOfSongs, w.RoyaltyPercentage).
		Scan(&w.ID, &w.CreatedAt, &w.UpdatedAt)
	return dberr.Wrap(err, "create_work")
}

func (repository *PostgresRepository) UpdateWork(context context.Context, w *Work) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = NOW()
		WHERE %s = $1
		RETURNING %s, %s, %s
	`,
		schema.RefComposerWork.Table, schema.RefComposerWork.NumberOfSongs,
		schema.RefComposerWork.RoyaltyPercentage, schema.RefComposerWork.UpdatedAt,
		schema.RefComposerWork.ID,
		schema.RefComposerWork.ComposerID, schema.RefComposerWork.BookID, schema.RefComposerWork.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, w.ID, w.NumberOfSongs, w.RoyaltyPercentage).
		Scan(&w.ComposerID, &w.BookID, &w.UpdatedAt)
	return dberr.Wrap(err, "update_work")
}

func (repository *PostgresRepository) DeleteWork(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.RefComposerWork.Table, schema.RefComposerWork.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_work")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
