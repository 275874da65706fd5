// Copyright (c) 2026 Partitura. All rights reserved.
// Author: dev@clefworks.io

package royalty

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clefworks/partitura/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const settlementColumns = `
	s.id, s.bookid, s.composerid, s.thresholdyear, s.thresholdmultiple,
	s.cumulativesales, s.estimatedamount, s.paid, s.paidat, s.createdat, s.updatedat,
	b.title, c.name
`

const settlementJoins = `
	FROM royalty.settlement s
	JOIN catalog.book b ON b.id = s.bookid
	JOIN catalog.composer c ON c.id = s.composerid
`

func (repository *PostgresRepository) ListSettlements(context context.Context, f Filter, limit, offset int) ([]*Settlement, int, error) {
	var query strings.Builder
	query.WriteString(`SELECT ` + settlementColumns + `, COUNT(*) OVER() AS total ` + settlementJoins + ` WHERE TRUE`)

	args := []any{}
	argID := 1

	if f.ComposerID > 0 {
		query.WriteString(fmt.Sprintf(" AND s.composerid = $%d", argID))
		args = append(args, f.ComposerID)
		argID++
	}
	if f.BookID > 0 {
		query.WriteString(fmt.Sprintf(" AND s.bookid = $%d", argID))
		args = append(args, f.BookID)
		argID++
	}
	if f.Year > 0 {
		query.WriteString(fmt.Sprintf(" AND s.thresholdyear = $%d", argID))
		args = append(args, f.Year)
		argID++
	}
	if f.UnpaidOnly {
		query.WriteString(" AND s.paid = FALSE")
	}

	query.WriteString(fmt.Sprintf(" ORDER BY s.id DESC LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_settlements")
	}
	defer rows.Close()

	var settlements []*Settlement
	var total int
	for rows.Next() {
		s := &Settlement{}
		err := rows.Scan(
			&s.ID, &s.BookID, &s.ComposerID, &s.ThresholdYear, &s.ThresholdMultiple,
			&s.CumulativeSales, &s.EstimatedAmount, &s.Paid, &s.PaidAt, &s.CreatedAt, &s.UpdatedAt,
			&s.BookTitle, &s.ComposerName, &total,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_settlement")
		}
		settlements = append(settlements, s)
	}

	return settlements, total, nil
}

func (repository *PostgresRepository) GetSettlement(context context.Context, id int64) (*Settlement, error) {
	query := `SELECT ` + settlementColumns + settlementJoins + ` WHERE s.id = $1`
	s := &Settlement{}

	err := repository.db.QueryRow(context, query, id).Scan(
		&s.ID, &s.BookID, &s.ComposerID, &s.ThresholdYear, &s.ThresholdMultiple,
		&s.CumulativeSales, &s.EstimatedAmount, &s.Paid, &s.PaidAt, &s.CreatedAt, &s.UpdatedAt,
		&s.BookTitle, &s.ComposerName,
	)

	return s, dberr.Wrap(err, "get_settlement")
}

func (repository *PostgresRepository) CreateSettlement(context context.Context, s *Settlement) error {
	query := `
		INSERT INTO royalty.settlement
			(bookid, composerid, thresholdyear, thresholdmultiple, cumulativesales, estimatedamount, paid, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE, NOW(), NOW())
		RETURNING id, createdat, updatedat
	`

	err := repository.db.QueryRow(context, query,
		s.BookID, s.ComposerID, s.ThresholdYear, s.ThresholdMultiple, s.CumulativeSales, s.EstimatedAmount,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	return dberr.Wrap(err, "create_settlement")
}

func (repository *PostgresRepository) MarkPaid(context context.Context, id int64) (*Settlement, error) {
	query := `
		UPDATE royalty.settlement
		SET paid = TRUE, paidat = NOW(), updatedat = NOW()
		WHERE id = $1 AND paid = FALSE
		RETURNING id
	`

	var paidID int64
	if err := repository.db.QueryRow(context, query, id).Scan(&paidID); err != nil {
		return nil, dberr.Wrap(err, "mark_paid")
	}

	return repository.GetSettlement(context, paidID)
}

func (repository *PostgresRepository) ListBearingWorks(context context.Context) ([]*BearingWork, error) {
	query := `
		SELECT w.bookid, w.composerid, w.royaltypercentage
		FROM catalog.composerwork w
		JOIN catalog.book b ON b.id = w.bookid AND b.deletedat IS NULL
		JOIN catalog.composer c ON c.id = w.composerid AND c.deletedat IS NULL
		ORDER BY w.bookid ASC, w.composerid ASC
	`

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_bearing_works")
	}
	defer rows.Close()

	var works []*BearingWork
	for rows.Next() {
		w := &BearingWork{}
		if err := rows.Scan(&w.BookID, &w.ComposerID, &w.RoyaltyPercentage); err != nil {
			return nil, dberr.Wrap(err, "scan_bearing_work")
		}
		works = append(works, w)
	}

	return works, nil
}

func (repository *PostgresRepository) MaxPaidMultiple(context context.Context, bookID, composerID int64) (int, error) {
	query := `
		SELECT COALESCE(MAX(thresholdmultiple), 0)
		FROM royalty.settlement
		WHERE bookid = $1 AND composerid = $2 AND paid = TRUE
	`

	var max int
	err := repository.db.QueryRow(context, query, bookID, composerID).Scan(&max)
	return max, dberr.Wrap(err, "max_paid_multiple")
}

func (repository *PostgresRepository) RecordedMultiples(context context.Context, bookID, composerID int64) (map[int]bool, error) {
	query := `
		SELECT DISTINCT thresholdmultiple
		FROM royalty.settlement
		WHERE bookid = $1 AND composerid = $2
	`

	rows, err := repository.db.Query(context, query, bookID, composerID)
	if err != nil {
		return nil, dberr.Wrap(err, "recorded_multiples")
	}
	defer rows.Close()

	recorded := map[int]bool{}
	for rows.Next() {
		var multiple int
		if err := rows.Scan(&multiple); err != nil {
			return nil, dberr.Wrap(err, "scan_recorded_multiple")
		}
		recorded[multiple] = true
	}

	return recorded, nil
}
