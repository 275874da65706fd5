// Copyright (c) 2026 Partitura. All rights reserved.
// Author: dev@clefworks.io

package pricing

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/clefworks/partitura/internal/platform/database/schema"
	"github.com/clefworks/partitura/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) CurrentPrice(context context.Context, bookID int64) (*PriceRecord, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = TRUE
	`,
		schema.RefPriceRecord.ID, schema.RefPriceRecord.BookID, schema.RefPriceRecord.Price,
		schema.RefPriceRecord.IsLatest, schema.RefPriceRecord.RecordedAt,
		schema.RefPriceRecord.Table,
		schema.RefPriceRecord.BookID, schema.RefPriceRecord.IsLatest,
	)
	record := &PriceRecord{}

	err := repository.db.QueryRow(context, query, bookID).Scan(
		&record.ID, &record.BookID, &record.Price, &record.IsLatest, &record.RecordedAt,
	)

	return record, dberr.Wrap(err, "current_price")
}

func (repository *PostgresRepository) History(context context.Context, bookID int64) ([]*PriceRecord, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s DESC, %s DESC
	`,
		schema.RefPriceRecord.ID, schema.RefPriceRecord.BookID, schema.RefPriceRecord.Price,
		schema.RefPriceRecord.IsLatest, schema.RefPriceRecord.RecordedAt,
		schema.RefPriceRecord.Table,
		schema.RefPriceRecord.BookID,
		schema.RefPriceRecord.RecordedAt, schema.RefPriceRecord.ID,
	)

	rows, err := repository.db.Query(context, query, bookID)
	if err != nil {
		return nil, dberr.Wrap(err, "price_history")
	}
	defer rows.Close()

	var records []*PriceRecord
	for rows.Next() {
		record := &PriceRecord{}
		if err := rows.Scan(&record.ID, &record.BookID, &record.Price, &record.IsLatest, &record.RecordedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_price_record")
		}
		records = append(records, record)
	}

	return records, nil
}

func (repository *PostgresRepository) SetPrice(context context.Context, bookID int64, price decimal.Decimal) (*PriceRecord, error) {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return nil, dberr.Wrap(err, "begin_tx")
	}
	defer tx.Rollback(context)

	flip := fmt.Sprintf(`UPDATE %s SET %s = FALSE WHERE %s = $1 AND %s = TRUE`,
		schema.RefPriceRecord.Table, schema.RefPriceRecord.IsLatest,
		schema.RefPriceRecord.BookID, schema.RefPriceRecord.IsLatest,
	)
	if _, err := tx.Exec(context, flip, bookID); err != nil {
		return nil, dberr.Wrap(err, "flip_latest")
	}

	insert := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, TRUE, NOW())
		RETURNING %s, %s
	`,
		schema.RefPriceRecord.Table, schema.RefPriceRecord.BookID, schema.RefPriceRecord.Price,
		schema.RefPriceRecord.IsLatest, schema.RefPriceRecord.RecordedAt,
		schema.RefPriceRecord.ID, schema.RefPriceRecord.RecordedAt,
	)
	record := &PriceRecord{BookID: bookID, Price: price, IsLatest: true}
	if err := tx.QueryRow(context, insert, bookID, price).Scan(&record.ID, &record.RecordedAt); err != nil {
		return nil, dberr.Wrap(err, "insert_price_record")
	}

	return record, dberr.Wrap(tx.Commit(context), "commit_tx")
}

func (repository *PostgresRepository) BatchAdjust(context context.Context, adjustment BatchAdjustment) ([]int64, error) {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return nil, dberr.Wrap(err, "begin_tx")
	}
	defer tx.Rollback(context)

	// Lock the latest rows so a concurrent SetPrice cannot interleave with the
	// flip below.
	selectLatest := fmt.Sprintf(`
		SELECT %s, %s, %s
		FROM %s
		WHERE %s = TRUE
	`,
		schema.RefPriceRecord.ID, schema.RefPriceRecord.BookID, schema.RefPriceRecord.Price,
		schema.RefPriceRecord.Table, schema.RefPriceRecord.IsLatest,
	)
	selectLatest += fmt.Sprintf(" AND %s = ANY($1) ORDER BY %s FOR UPDATE",
		schema.RefPriceRecord.BookID, schema.RefPriceRecord.BookID,
	)

	rows, err := tx.Query(context, selectLatest, adjustment.BookIDs)
	if err != nil {
		return nil, dberr.Wrap(err, "select_latest_prices")
	}

	type latestRow struct {
		id     int64
		bookID int64
		price  decimal.Decimal
	}
	var latest []latestRow
	for rows.Next() {
		var row latestRow
		if err := rows.Scan(&row.id, &row.bookID, &row.price); err != nil {
			rows.Close()
			return nil, dberr.Wrap(err, "scan_latest_price")
		}
		latest = append(latest, row)
	}
	rows.Close()

	flip := fmt.Sprintf(`UPDATE %s SET %s = FALSE WHERE %s = $1`,
		schema.RefPriceRecord.Table, schema.RefPriceRecord.IsLatest, schema.RefPriceRecord.ID,
	)
	insert := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, TRUE, NOW())`,
		schema.RefPriceRecord.Table, schema.RefPriceRecord.BookID, schema.RefPriceRecord.Price,
		schema.RefPriceRecord.IsLatest, schema.RefPriceRecord.RecordedAt,
	)

	var adjusted []int64
	for _, row := range latest {
		next := Adjusted(row.price, adjustment.Mode, adjustment.Value)
		if next.Equal(row.price) {
			continue
		}

		if _, err := tx.Exec(context, flip, row.id); err != nil {
			return nil, dberr.Wrap(err, "flip_latest")
		}
		if _, err := tx.Exec(context, insert, row.bookID, next); err != nil {
			return nil, dberr.Wrap(err, "insert_price_record")
		}
		adjusted = append(adjusted, row.bookID)
	}

	return adjusted, dberr.Wrap(tx.Commit(context), "commit_tx")
}
