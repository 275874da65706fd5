// Copyright (c) 2026 Partitura. All rights reserved.
// Author: dev@clefworks.io

package book

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clefworks/partitura/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const bookColumns = `
	b.id, b.title, b.titleoriginal, b.subtitle, b.slug, b.booktype,
	b.categoryid, b.publicationdate, b.createdat, b.updatedat,
	c.major, c.minor
`

func (repository *PostgresRepository) ListBooks(context context.Context, f Filter, limit, offset int) ([]*Book, int, error) {
	var query strings.Builder
	query.WriteString(`
		SELECT ` + bookColumns + `, COUNT(*) OVER() AS total
		FROM catalog.book b
		JOIN catalog.category c ON c.id = b.categoryid
		WHERE b.deletedat IS NULL
	`)

	args := []any{}
	argID := 1

	if f.Query != "" {
		query.WriteString(fmt.Sprintf(" AND (b.title ILIKE $%d OR b.titleoriginal ILIKE $%d)", argID, argID))
		args = append(args, "%"+f.Query+"%")
		argID++
	}
	if f.BookType != "" {
		query.WriteString(fmt.Sprintf(" AND b.booktype = $%d", argID))
		args = append(args, f.BookType)
		argID++
	}
	if f.CategoryID > 0 {
		query.WriteString(fmt.Sprintf(" AND b.categoryid = $%d", argID))
		args = append(args, f.CategoryID)
		argID++
	}

	query.WriteString(fmt.Sprintf(" ORDER BY b.title ASC LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_books")
	}
	defer rows.Close()

	var books []*Book
	var total int
	for rows.Next() {
		b := &Book{}
		err := rows.Scan(
			&b.ID, &b.Title, &b.TitleOriginal, &b.Subtitle, &b.Slug, &b.BookType,
			&b.CategoryID, &b.PublicationDate, &b.CreatedAt, &b.UpdatedAt,
			&b.CategoryMajor, &b.CategoryMinor, &total,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_book")
		}
		books = append(books, b)
	}

	return books, total, nil
}

func (repository *PostgresRepository) GetBook(context context.Context, id int64) (*Book, error) {
	return repository.getBook(context, "b.id = $1", id)
}

func (repository *PostgresRepository) GetBookBySlug(context context.Context, slug string) (*Book, error) {
	return repository.getBook(context, "b.slug = $1", slug)
}

func (repository *PostgresRepository) getBook(context context.Context, where string, arg any) (*Book, error) {
	query := `
		SELECT ` + bookColumns + `,
			COALESCE(ARRAY_REMOVE(ARRAY_AGG(ba.authorid), NULL), '{}') AS authorids
		FROM catalog.book b
		JOIN catalog.category c ON c.id = b.categoryid
		LEFT JOIN catalog.bookauthor ba ON ba.bookid = b.id
		WHERE ` + where + ` AND b.deletedat IS NULL
		GROUP BY b.id, c.major, c.minor
	`
	b := &Book{}

	err := repository.db.QueryRow(context, query, arg).Scan(
		&b.ID, &b.Title, &b.TitleOriginal, &b.Subtitle, &b.Slug, &b.BookType,
		&b.CategoryID, &b.PublicationDate, &b.CreatedAt, &b.UpdatedAt,
		&b.CategoryMajor, &b.CategoryMinor, &b.AuthorIDs,
	)

	return b, dberr.Wrap(err, "get_book")
}

func (repository *PostgresRepository) CreateBook(context context.Context, b *Book) error {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_tx")
	}
	defer tx.Rollback(context)

	query := `
		INSERT INTO catalog.book
			(title, titleoriginal, subtitle, slug, booktype, categoryid, publicationdate, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, createdat, updatedat
	`
	err = tx.QueryRow(context, query,
		b.Title, b.TitleOriginal, b.Subtitle, b.Slug, b.BookType, b.CategoryID, b.PublicationDate,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_book")
	}

	if err := insertBookAuthors(context, tx, b.ID, b.AuthorIDs); err != nil {
		return err
	}

	return dberr.Wrap(tx.Commit(context), "commit_tx")
}

func (repository *PostgresRepository) UpdateBook(context context.Context, b *Book) error {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_tx")
	}
	defer tx.Rollback(context)

	query := `
		UPDATE catalog.book
		SET title = $2, titleoriginal = $3, subtitle = $4, slug = $5, booktype = $6,
			categoryid = $7, publicationdate = $8, updatedat = NOW()
		WHERE id = $1 AND deletedat IS NULL
		RETURNING updatedat
	`
	err = tx.QueryRow(context, query,
		b.ID, b.Title, b.TitleOriginal, b.Subtitle, b.Slug, b.BookType, b.CategoryID, b.PublicationDate,
	).Scan(&b.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update_book")
	}

	// Author links are replaced wholesale on every update.
	if _, err := tx.Exec(context, `DELETE FROM catalog.bookauthor WHERE bookid = $1`, b.ID); err != nil {
		return dberr.Wrap(err, "clear_book_authors")
	}
	if err := insertBookAuthors(context, tx, b.ID, b.AuthorIDs); err != nil {
		return err
	}

	return dberr.Wrap(tx.Commit(context), "commit_tx")
}

func (repository *PostgresRepository) DeleteBook(context context.Context, id int64) error {
	query := `UPDATE catalog.book SET deletedat = NOW() WHERE id = $1 AND deletedat IS NULL`

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_book")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func insertBookAuthors(context context.Context, tx pgx.Tx, bookID int64, authorIDs []int64) error {
	for _, authorID := range authorIDs {
		_, err := tx.Exec(context,
			`INSERT INTO catalog.bookauthor (bookid, authorid, createdat) VALUES ($1, $2, NOW())`,
			bookID, authorID,
		)
		if err != nil {
			return dberr.Wrap(err, "link_book_author")
		}
	}
	return nil
}
