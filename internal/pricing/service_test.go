// Copyright (c) 2026 Partitura. All rights reserved.
// Author: dev@clefworks.io

package pricing_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clefworks/partitura/internal/platform/apperr"
	"github.com/clefworks/partitura/internal/pricing"
)

// fakeRepository keeps one latest record per book and counts ledger writes.
type fakeRepository struct {
	latest    map[int64]*pricing.PriceRecord
	setCalls  int
	adjusted  []int64
	adjustErr error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{latest: map[int64]*pricing.PriceRecord{}}
}

func (r *fakeRepository) CurrentPrice(_ context.Context, bookID int64) (*pricing.PriceRecord, error) {
	record, ok := r.latest[bookID]
	if !ok {
		return nil, apperr.NotFound("Price")
	}
	return record, nil
}

func (r *fakeRepository) History(_ context.Context, bookID int64) ([]*pricing.PriceRecord, error) {
	if record, ok := r.latest[bookID]; ok {
		return []*pricing.PriceRecord{record}, nil
	}
	return nil, nil
}

func (r *fakeRepository) SetPrice(_ context.Context, bookID int64, price decimal.Decimal) (*pricing.PriceRecord, error) {
	r.setCalls++
	record := &pricing.PriceRecord{
		ID:         int64(r.setCalls),
		BookID:     bookID,
		Price:      price,
		IsLatest:   true,
		RecordedAt: time.Now(),
	}
	r.latest[bookID] = record
	return record, nil
}

func (r *fakeRepository) BatchAdjust(_ context.Context, adjustment pricing.BatchAdjustment) ([]int64, error) {
	if r.adjustErr != nil {
		return nil, r.adjustErr
	}
	for _, bookID := range adjustment.BookIDs {
		record, ok := r.latest[bookID]
		if !ok {
			continue
		}
		next := pricing.Adjusted(record.Price, adjustment.Mode, adjustment.Value)
		if next.Equal(record.Price) {
			continue
		}
		record.Price = next
		r.adjusted = append(r.adjusted, bookID)
	}
	return r.adjusted, nil
}

// noopCache satisfies the cache dependency without Redis.
type noopCache struct{}

func (noopCache) Get(context.Context, int64) (*pricing.PriceRecord, bool) { return nil, false }
func (noopCache) Set(context.Context, *pricing.PriceRecord)              {}
func (noopCache) Invalidate(context.Context, ...int64)                   {}

func newTestService(repo pricing.Repository) *pricing.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return pricing.NewService(repo, noopCache{}, logger)
}

/*
TestService_SetPrice_AppendsRecord covers the base ledger write.
*/
func TestService_SetPrice_AppendsRecord(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	record, err := service.SetPrice(context.Background(), 7, decimal.NewFromInt(1500))
	require.NoError(t, err)

	assert.True(t, record.IsLatest)
	assert.True(t, record.Price.Equal(decimal.NewFromInt(1500)))
	assert.Equal(t, 1, repo.setCalls)
}

/*
TestService_SetPrice_Idempotent verifies that re-setting the current price
does not grow the ledger.
*/
func TestService_SetPrice_Idempotent(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	first, err := service.SetPrice(context.Background(), 7, decimal.NewFromInt(1500))
	require.NoError(t, err)

	second, err := service.SetPrice(context.Background(), 7, decimal.NewFromInt(1500))
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, repo.setCalls, "duplicate price must not append a record")
}

/*
TestService_SetPrice_RejectsNegative checks input validation.
*/
func TestService_SetPrice_RejectsNegative(t *testing.T) {
	service := newTestService(newFakeRepository())

	_, err := service.SetPrice(context.Background(), 7, decimal.NewFromInt(-100))
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
}

/*
TestService_SetPrice_RoundsInput verifies fractional inputs land on whole
currency units.
*/
func TestService_SetPrice_RoundsInput(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	record, err := service.SetPrice(context.Background(), 3, decimal.RequireFromString("999.5"))
	require.NoError(t, err)
	assert.True(t, record.Price.Equal(decimal.NewFromInt(1000)))
}

/*
TestService_BatchAdjust validates mode/value handling and the changed-book
report.
*/
func TestService_BatchAdjust(t *testing.T) {
	t.Run("invalid_mode", func(t *testing.T) {
		service := newTestService(newFakeRepository())

		_, err := service.BatchAdjust(context.Background(), pricing.BatchAdjustment{
			Mode:    "ratio",
			Value:   decimal.NewFromInt(10),
			BookIDs: []int64{1},
		})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})

	t.Run("zero_value", func(t *testing.T) {
		service := newTestService(newFakeRepository())

		_, err := service.BatchAdjust(context.Background(), pricing.BatchAdjustment{
			Mode:    pricing.ModePercent,
			Value:   decimal.Zero,
			BookIDs: []int64{1},
		})
		require.Error(t, err)
	})

	t.Run("empty_book_ids", func(t *testing.T) {
		repo := newFakeRepository()
		repo.latest[1] = &pricing.PriceRecord{ID: 1, BookID: 1, Price: decimal.NewFromInt(1000), IsLatest: true}
		service := newTestService(repo)

		_, err := service.BatchAdjust(context.Background(), pricing.BatchAdjustment{
			Mode:  pricing.ModePercent,
			Value: decimal.NewFromInt(10),
		})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
		assert.Empty(t, repo.adjusted, "an empty id set must not touch any book")
	})

	t.Run("negative_book_id", func(t *testing.T) {
		service := newTestService(newFakeRepository())

		_, err := service.BatchAdjust(context.Background(), pricing.BatchAdjustment{
			Mode:    pricing.ModePercent,
			Value:   decimal.NewFromInt(10),
			BookIDs: []int64{1, -2},
		})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})

	t.Run("reports_adjusted_books", func(t *testing.T) {
		repo := newFakeRepository()
		repo.latest[1] = &pricing.PriceRecord{ID: 1, BookID: 1, Price: decimal.NewFromInt(1000), IsLatest: true}
		repo.latest[2] = &pricing.PriceRecord{ID: 2, BookID: 2, Price: decimal.NewFromInt(2000), IsLatest: true}
		service := newTestService(repo)

		result, err := service.BatchAdjust(context.Background(), pricing.BatchAdjustment{
			Mode:    pricing.ModePercent,
			Value:   decimal.NewFromInt(10),
			BookIDs: []int64{1, 2, 99},
		})
		require.NoError(t, err)
		assert.Equal(t, 2, result.Adjusted)
		assert.ElementsMatch(t, []int64{1, 2}, result.BookIDs)
	})
}
