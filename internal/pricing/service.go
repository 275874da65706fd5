// Copyright (c) 2026 Partitura. All rights reserved.
// Author: dev@clefworks.io

package pricing

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/clefworks/partitura/internal/platform/apperr"
	"github.com/clefworks/partitura/internal/platform/validate"
)

// PriceCache is the read-through cache the service consults before the
// repository. [Cache] is the Redis-backed implementation.
type PriceCache interface {
	Get(ctx context.Context, bookID int64) (*PriceRecord, bool)
	Set(ctx context.Context, record *PriceRecord)
	Invalidate(ctx context.Context, bookIDs ...int64)
}

type Service struct {
	repo   Repository
	cache  PriceCache
	logger *slog.Logger
}

func NewService(repo Repository, cache PriceCache, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// CurrentPrice reads through the Redis cache to the price ledger.
func (service *Service) CurrentPrice(context context.Context, bookID int64) (*PriceRecord, error) {
	if record, ok := service.cache.Get(context, bookID); ok {
		return record, nil
	}

	record, err := service.repo.CurrentPrice(context, bookID)
	if err != nil {
		return nil, err
	}

	service.cache.Set(context, record)
	return record, nil
}

// History returns the full ledger for a book, newest first.
func (service *Service) History(context context.Context, bookID int64) ([]*PriceRecord, error) {
	return service.repo.History(context, bookID)
}

// SetPrice appends a new ledger entry. Setting the price a book already has
// is a no-op that returns the existing latest record; the ledger never grows
// duplicate consecutive entries.
func (service *Service) SetPrice(context context.Context, bookID int64, price decimal.Decimal) (*PriceRecord, error) {
	validator := &validate.Validator{}
	validator.NonNegativeDecimal(FieldPrice, price)
	if err := validator.Err(); err != nil {
		return nil, err
	}
	price = price.Round(0)

	current, err := service.repo.CurrentPrice(context, bookID)
	switch {
	case err == nil:
		if current.Price.Equal(price) {
			return current, nil
		}
	default:
		// A book without any ledger entry yet is fine; anything else is not.
		if ae := apperr.As(err); ae == nil || ae.HTTPStatus != http.StatusNotFound {
			return nil, err
		}
	}

	record, err := service.repo.SetPrice(context, bookID, price)
	if err != nil {
		return nil, err
	}

	service.cache.Set(context, record)
	service.logger.Info("price_set",
		slog.Int64("book_id", bookID),
		slog.String("price", price.String()),
	)
	return record, nil
}

// BatchAdjust moves every targeted book's price by a fixed amount or a
// percentage in one transaction. Books whose derived price equals the current
// one are left untouched.
func (service *Service) BatchAdjust(context context.Context, adjustment BatchAdjustment) (*BatchResult, error) {
	validator := &validate.Validator{}
	validator.OneOf(FieldMode, string(adjustment.Mode), string(ModeAmount), string(ModePercent))
	validator.Custom(FieldValue, adjustment.Value.IsZero(), "Must be non-zero")
	validator.Custom(FieldBookIDs, len(adjustment.BookIDs) == 0, "Must contain at least one book id")
	for _, bookID := range adjustment.BookIDs {
		if bookID <= 0 {
			validator.Custom(FieldBookIDs, true, "All book ids must be positive")
			break
		}
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	adjusted, err := service.repo.BatchAdjust(context, adjustment)
	if err != nil {
		return nil, err
	}

	service.cache.Invalidate(context, adjusted...)
	service.logger.Info("prices_batch_adjusted",
		slog.String("mode", string(adjustment.Mode)),
		slog.String("value", adjustment.Value.String()),
		slog.Int("adjusted", len(adjusted)),
	)

	return &BatchResult{Adjusted: len(adjusted), BookIDs: adjusted}, nil
}
