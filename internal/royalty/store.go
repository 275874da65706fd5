// Copyright (c) 2026 Partitura. All rights reserved.
// Author: dev@clefworks.io

package royalty

import "context"

type Repository interface {
	ListSettlements(context context.Context, f Filter, limit, offset int) ([]*Settlement, int, error)
	GetSettlement(context context.Context, id int64) (*Settlement, error)

	// CreateSettlement inserts one milestone. The (book, composer, year,
	// multiple) unique constraint surfaces a duplicate as a Conflict.
	CreateSettlement(context context.Context, s *Settlement) error

	// MarkPaid stamps a settlement exactly once; a second call matches zero
	// rows and reports a conflict upstream.
	MarkPaid(context context.Context, id int64) (*Settlement, error)

	// ListBearingWorks returns every (composer, live book) royalty share.
	ListBearingWorks(context context.Context) ([]*BearingWork, error)

	// MaxPaidMultiple returns the highest threshold multiple already paid
	// for the pair, across all years. Zero when none exist.
	MaxPaidMultiple(context context.Context, bookID, composerID int64) (int, error)

	// RecordedMultiples returns every threshold multiple on file for the
	// pair, paid or not, across all years. The detector skips these so an
	// unpaid milestone is never re-created under a later year.
	RecordedMultiples(context context.Context, bookID, composerID int64) (map[int]bool, error)
}
