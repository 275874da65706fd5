// Copyright (c) 2026 Partitura. All rights reserved.
// Author: dev@clefworks.io

package sales

import (
	"context"

	"github.com/shopspring/decimal"
)

type Repository interface {
	// Customers
	ListCustomers(context context.Context, f CustomerFilter, limit, offset int) ([]*Customer, int, error)
	GetCustomer(context context.Context, id int64) (*Customer, error)
	FindCustomerByContact(context context.Context, name, contactNumber string) (*Customer, error)
	CreateCustomer(context context.Context, c *Customer) error
	UpdateCustomer(context context.Context, c *Customer) error

	// Orders
	ListOrders(context context.Context, f OrderFilter, limit, offset int) ([]*Order, int, error)
	GetOrder(context context.Context, id int64) (*Order, error)
	CreateOrder(context context.Context, o *Order) error
	SetPaymentDate(context context.Context, o *Order) error

	// AggregateOrder folds a paid order's items into the daily ledger and
	// stamps aggregatedat, all in one transaction. The stamp is guarded in
	// SQL so the same order can never be folded twice.
	AggregateOrder(context context.Context, o *Order) error

	// Sale ledger
	UpsertSaleRecord(context context.Context, r *SaleRecord) error
	ListSaleRecords(context context.Context, f SaleRecordFilter) ([]*SaleRecord, error)
	CumulativeSales(context context.Context, bookID int64) (int64, error)
	CumulativeSalesThroughYear(context context.Context, bookID int64, year int) (int64, error)
	CumulativeRevenue(context context.Context, bookID int64) (decimal.Decimal, error)
	CumulativeRevenueThroughYear(context context.Context, bookID int64, year int) (decimal.Decimal, error)
}
