// Copyright (c) 2026 Partitura. All rights reserved.
// Author: dev@clefworks.io

package royalty

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/clefworks/partitura/internal/platform/apperr"
	"github.com/clefworks/partitura/internal/platform/constants"
	"github.com/clefworks/partitura/internal/platform/validate"
)

// SalesReader supplies cumulative unit counts and revenue. Satisfied by the
// sales service.
type SalesReader interface {
	CumulativeSalesThroughYear(ctx context.Context, bookID int64, year int) (int64, error)
	CumulativeRevenueThroughYear(ctx context.Context, bookID int64, year int) (decimal.Decimal, error)
}

type Service struct {
	repo   Repository
	sales  SalesReader
	logger *slog.Logger
}

func NewService(repo Repository, sales SalesReader, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		sales:  sales,
		logger: logger,
	}
}

func (service *Service) ListSettlements(context context.Context, filter Filter, limit, offset int) ([]*Settlement, int, error) {
	return service.repo.ListSettlements(context, filter, limit, offset)
}

func (service *Service) GetSettlement(context context.Context, id int64) (*Settlement, error) {
	return service.repo.GetSettlement(context, id)
}

// DetectThresholds scans every royalty-bearing work and creates a settlement
// for each thousand-unit threshold newly crossed as of the given year.
// Running it twice for the same year creates nothing new, so it is safe to
// invoke after every aggregation batch.
func (service *Service) DetectThresholds(context context.Context, year int) (*DetectionReport, error) {
	validator := &validate.Validator{}
	validator.Range(FieldYear, year, 2000, 2100)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	works, err := service.repo.ListBearingWorks(context)
	if err != nil {
		return nil, err
	}

	report := &DetectionReport{Year: year}
	totalsByBook := map[int64]bookTotals{}

	for _, work := range works {
		totals, ok := totalsByBook[work.BookID]
		if !ok {
			totals.units, err = service.sales.CumulativeSalesThroughYear(context, work.BookID, year)
			if err != nil {
				return nil, err
			}
			totals.revenue, err = service.sales.CumulativeRevenueThroughYear(context, work.BookID, year)
			if err != nil {
				return nil, err
			}
			totalsByBook[work.BookID] = totals
		}

		lastPaid, err := service.repo.MaxPaidMultiple(context, work.BookID, work.ComposerID)
		if err != nil {
			return nil, err
		}

		multiples := NewMultiples(totals.units, lastPaid)
		if len(multiples) == 0 {
			continue
		}

		// Milestones recorded but unpaid sit above the paid watermark; they
		// must not be re-created under a later year.
		recorded, err := service.repo.RecordedMultiples(context, work.BookID, work.ComposerID)
		if err != nil {
			return nil, err
		}

		lastPaidUnits := int64(lastPaid) * constants.RoyaltyThresholdUnits
		for _, multiple := range multiples {
			if recorded[multiple] {
				continue
			}

			settlement := &Settlement{
				BookID:            work.BookID,
				ComposerID:        work.ComposerID,
				ThresholdYear:     year,
				ThresholdMultiple: multiple,
				CumulativeSales:   totals.units,
				EstimatedAmount:   EstimatedAmount(totals.revenue, totals.units, lastPaidUnits, multiple, work.RoyaltyPercentage),
			}

			if err := service.repo.CreateSettlement(context, settlement); err != nil {
				// A concurrent detector run already recorded this milestone.
				if ae := apperr.As(err); ae != nil && ae.Code == "CONFLICT" {
					continue
				}
				return nil, err
			}

			report.Created++
			report.Settlements = append(report.Settlements, settlement)
		}
	}

	service.logger.Info("thresholds_detected",
		slog.Int("year", year),
		slog.Int("works", len(works)),
		slog.Int("created", report.Created),
	)
	return report, nil
}

// MarkPaid settles a milestone. Paying twice is a conflict.
func (service *Service) MarkPaid(context context.Context, id int64) (*Settlement, error) {
	settlement, err := service.repo.GetSettlement(context, id)
	if err != nil {
		return nil, err
	}
	if settlement.Paid {
		return nil, apperr.Conflict("Settlement is already paid")
	}

	paid, err := service.repo.MarkPaid(context, id)
	if err != nil {
		return nil, err
	}

	service.logger.Info("settlement_paid",
		slog.Int64("settlement_id", paid.ID),
		slog.Int64("composer_id", paid.ComposerID),
		slog.String("amount", paid.EstimatedAmount.String()),
	)
	return paid, nil
}

// yearOrDefault falls back to the current calendar year.
func yearOrDefault(year int) int {
	if year == 0 {
		return time.Now().Year()
	}
	return year
}

// bookTotals memoizes the per-book aggregates one detector run reads.
type bookTotals struct {
	units   int64
	revenue decimal.Decimal
}
