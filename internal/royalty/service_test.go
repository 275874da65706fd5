// Copyright (c) 2026 Partitura. All rights reserved.
// Author: dev@clefworks.io

package royalty_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clefworks/partitura/internal/platform/apperr"
	"github.com/clefworks/partitura/internal/royalty"
)

type pairKey struct {
	bookID     int64
	composerID int64
}

// fakeRepository stores settlements in memory and enforces the milestone
// uniqueness the real table gets from its constraint.
type fakeRepository struct {
	works       []*royalty.BearingWork
	settlements []*royalty.Settlement
	nextID      int64
}

func (r *fakeRepository) ListSettlements(_ context.Context, f royalty.Filter, _, _ int) ([]*royalty.Settlement, int, error) {
	var out []*royalty.Settlement
	for _, s := range r.settlements {
		if f.ComposerID > 0 && s.ComposerID != f.ComposerID {
			continue
		}
		out = append(out, s)
	}
	return out, len(out), nil
}

func (r *fakeRepository) GetSettlement(_ context.Context, id int64) (*royalty.Settlement, error) {
	for _, s := range r.settlements {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, apperr.NotFound("Settlement")
}

func (r *fakeRepository) CreateSettlement(_ context.Context, s *royalty.Settlement) error {
	for _, existing := range r.settlements {
		if existing.BookID == s.BookID && existing.ComposerID == s.ComposerID &&
			existing.ThresholdYear == s.ThresholdYear && existing.ThresholdMultiple == s.ThresholdMultiple {
			return apperr.Conflict("Resource already exists")
		}
	}
	r.nextID++
	s.ID = r.nextID
	r.settlements = append(r.settlements, s)
	return nil
}

func (r *fakeRepository) MarkPaid(ctx context.Context, id int64) (*royalty.Settlement, error) {
	s, err := r.GetSettlement(ctx, id)
	if err != nil {
		return nil, err
	}
	s.Paid = true
	return s, nil
}

func (r *fakeRepository) ListBearingWorks(context.Context) ([]*royalty.BearingWork, error) {
	return r.works, nil
}

func (r *fakeRepository) MaxPaidMultiple(_ context.Context, bookID, composerID int64) (int, error) {
	max := 0
	for _, s := range r.settlements {
		if s.BookID == bookID && s.ComposerID == composerID && s.Paid && s.ThresholdMultiple > max {
			max = s.ThresholdMultiple
		}
	}
	return max, nil
}

func (r *fakeRepository) RecordedMultiples(_ context.Context, bookID, composerID int64) (map[int]bool, error) {
	recorded := map[int]bool{}
	for _, s := range r.settlements {
		if s.BookID == bookID && s.ComposerID == composerID {
			recorded[s.ThresholdMultiple] = true
		}
	}
	return recorded, nil
}

type fakeSales struct {
	units   map[int64]int64
	revenue map[int64]int64
}

func (s *fakeSales) CumulativeSalesThroughYear(_ context.Context, bookID int64, _ int) (int64, error) {
	return s.units[bookID], nil
}

func (s *fakeSales) CumulativeRevenueThroughYear(_ context.Context, bookID int64, _ int) (decimal.Decimal, error) {
	return decimal.NewFromInt(s.revenue[bookID]), nil
}

func newTestService(repo *fakeRepository, sales *fakeSales) *royalty.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return royalty.NewService(repo, sales, logger)
}

/*
TestService_DetectThresholds_CreatesMilestones covers the fan-out: one book,
two composers, both get a settlement per crossed threshold, with amounts
split from the book's cumulative revenue.
*/
func TestService_DetectThresholds_CreatesMilestones(t *testing.T) {
	repo := &fakeRepository{
		works: []*royalty.BearingWork{
			{BookID: 1, ComposerID: 10, RoyaltyPercentage: decimal.RequireFromString("10")},
			{BookID: 1, ComposerID: 20, RoyaltyPercentage: decimal.RequireFromString("5")},
		},
	}
	// 2100 units at an average realized price of 2000 per unit.
	sales := &fakeSales{units: map[int64]int64{1: 2100}, revenue: map[int64]int64{1: 4200000}}
	service := newTestService(repo, sales)

	report, err := service.DetectThresholds(context.Background(), 2026)
	require.NoError(t, err)

	// 2100 units = multiples 1 and 2, for each of the two composers.
	assert.Equal(t, 4, report.Created)

	byPair := map[pairKey][]*royalty.Settlement{}
	for _, s := range report.Settlements {
		key := pairKey{s.BookID, s.ComposerID}
		byPair[key] = append(byPair[key], s)
	}
	require.Len(t, byPair[pairKey{1, 10}], 2)
	require.Len(t, byPair[pairKey{1, 20}], 2)

	// Multiple 1: 4200000 * (1000/2100) * 10% = 200000 for the 10% composer.
	assert.True(t, byPair[pairKey{1, 10}][0].EstimatedAmount.Equal(decimal.NewFromInt(200000)))
	assert.True(t, byPair[pairKey{1, 20}][0].EstimatedAmount.Equal(decimal.NewFromInt(100000)))

	// Multiple 2 covers 2000 units since nothing is paid yet.
	assert.True(t, byPair[pairKey{1, 10}][1].EstimatedAmount.Equal(decimal.NewFromInt(400000)))

	// Every milestone carries the sales count seen at detection time.
	for _, s := range report.Settlements {
		assert.Equal(t, int64(2100), s.CumulativeSales)
	}
}

/*
TestService_DetectThresholds_Idempotent verifies a second run creates nothing.
*/
func TestService_DetectThresholds_Idempotent(t *testing.T) {
	repo := &fakeRepository{
		works: []*royalty.BearingWork{
			{BookID: 1, ComposerID: 10, RoyaltyPercentage: decimal.RequireFromString("10")},
		},
	}
	sales := &fakeSales{units: map[int64]int64{1: 1500}, revenue: map[int64]int64{1: 3000000}}
	service := newTestService(repo, sales)

	first, err := service.DetectThresholds(context.Background(), 2026)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Created)

	second, err := service.DetectThresholds(context.Background(), 2026)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Created)
	assert.Len(t, repo.settlements, 1)
}

/*
TestService_DetectThresholds_ResumesFromPaid verifies detection picks up only
multiples beyond the highest already paid, and that the eligible unit span
starts at the paid watermark.
*/
func TestService_DetectThresholds_ResumesFromPaid(t *testing.T) {
	repo := &fakeRepository{
		works: []*royalty.BearingWork{
			{BookID: 1, ComposerID: 10, RoyaltyPercentage: decimal.RequireFromString("10")},
		},
		settlements: []*royalty.Settlement{
			{ID: 1, BookID: 1, ComposerID: 10, ThresholdYear: 2025, ThresholdMultiple: 1, Paid: true},
		},
		nextID: 1,
	}
	sales := &fakeSales{units: map[int64]int64{1: 2500}, revenue: map[int64]int64{1: 5000000}}
	service := newTestService(repo, sales)

	report, err := service.DetectThresholds(context.Background(), 2026)
	require.NoError(t, err)

	require.Equal(t, 1, report.Created)
	assert.Equal(t, 2, report.Settlements[0].ThresholdMultiple)
	assert.Equal(t, 2026, report.Settlements[0].ThresholdYear)
	assert.Equal(t, int64(2500), report.Settlements[0].CumulativeSales)

	// 5000000 * (1000/2500) * 10% = 200000 for the span above the paid units.
	assert.True(t, report.Settlements[0].EstimatedAmount.Equal(decimal.NewFromInt(200000)))
}

/*
TestService_DetectThresholds_SkipsUnpaidRecordedAcrossYears verifies a
milestone recorded in an earlier year but never paid is not re-created under
the new year.
*/
func TestService_DetectThresholds_SkipsUnpaidRecordedAcrossYears(t *testing.T) {
	repo := &fakeRepository{
		works: []*royalty.BearingWork{
			{BookID: 1, ComposerID: 10, RoyaltyPercentage: decimal.RequireFromString("10")},
		},
		settlements: []*royalty.Settlement{
			{ID: 1, BookID: 1, ComposerID: 10, ThresholdYear: 2024, ThresholdMultiple: 1, Paid: true},
			{ID: 2, BookID: 1, ComposerID: 10, ThresholdYear: 2025, ThresholdMultiple: 2, Paid: false},
		},
		nextID: 2,
	}
	sales := &fakeSales{units: map[int64]int64{1: 2500}, revenue: map[int64]int64{1: 5000000}}
	service := newTestService(repo, sales)

	report, err := service.DetectThresholds(context.Background(), 2026)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Created)
	assert.Len(t, repo.settlements, 2)
}

/*
TestService_DetectThresholds_ZeroRevenueYieldsZeroAmount verifies a book that
crossed a threshold without recorded revenue settles at amount zero rather
than erroring.
*/
func TestService_DetectThresholds_ZeroRevenueYieldsZeroAmount(t *testing.T) {
	repo := &fakeRepository{
		works: []*royalty.BearingWork{
			{BookID: 1, ComposerID: 10, RoyaltyPercentage: decimal.RequireFromString("10")},
		},
	}
	sales := &fakeSales{units: map[int64]int64{1: 1000}, revenue: map[int64]int64{}}
	service := newTestService(repo, sales)

	report, err := service.DetectThresholds(context.Background(), 2026)
	require.NoError(t, err)
	require.Equal(t, 1, report.Created)
	assert.True(t, report.Settlements[0].EstimatedAmount.IsZero())
}

/*
TestService_DetectThresholds_RejectsBadYear checks input validation.
*/
func TestService_DetectThresholds_RejectsBadYear(t *testing.T) {
	service := newTestService(&fakeRepository{}, &fakeSales{})

	_, err := service.DetectThresholds(context.Background(), 1985)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

/*
TestService_MarkPaid pays once and conflicts on the second attempt.
*/
func TestService_MarkPaid(t *testing.T) {
	repo := &fakeRepository{
		settlements: []*royalty.Settlement{
			{ID: 1, BookID: 1, ComposerID: 10, ThresholdYear: 2026, ThresholdMultiple: 1,
				EstimatedAmount: decimal.NewFromInt(200000)},
		},
		nextID: 1,
	}
	service := newTestService(repo, &fakeSales{})

	paid, err := service.MarkPaid(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, paid.Paid)

	_, err = service.MarkPaid(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}
