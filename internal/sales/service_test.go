// Copyright (c) 2026 Partitura. All rights reserved.
// Author: dev@clefworks.io

package sales_test

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
	"github.com/clefworks/partitura/internal/sales"
)

type saleKey struct {
	bookID int64
	date   string
}

type ledgerRow struct {
	quantity int64
	revenue  decimal.Decimal
}

// fakeRepository tracks orders and the daily ledger in memory.
type fakeRepository struct {
	orders     map[int64]*sales.Order
	ledger     map[saleKey]*ledgerRow
	nextID     int64
	aggregated int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		orders: map[int64]*sales.Order{},
		ledger: map[saleKey]*ledgerRow{},
	}
}

func (r *fakeRepository) row(key saleKey) *ledgerRow {
	if _, ok := r.ledger[key]; !ok {
		r.ledger[key] = &ledgerRow{}
	}
	return r.ledger[key]
}

func (r *fakeRepository) ListCustomers(context.Context, sales.CustomerFilter, int, int) ([]*sales.Customer, int, error) {
	return nil, 0, nil
}

func (r *fakeRepository) GetCustomer(context.Context, int64) (*sales.Customer, error) {
	return nil, apperr.NotFound("Customer")
}

func (r *fakeRepository) FindCustomerByContact(context.Context, string, string) (*sales.Customer, error) {
	return nil, apperr.NotFound("Customer")
}

func (r *fakeRepository) CreateCustomer(context.Context, *sales.Customer) error { return nil }
func (r *fakeRepository) UpdateCustomer(context.Context, *sales.Customer) error { return nil }

func (r *fakeRepository) ListOrders(context.Context, sales.OrderFilter, int, int) ([]*sales.Order, int, error) {
	return nil, 0, nil
}

func (r *fakeRepository) GetOrder(_ context.Context, id int64) (*sales.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, apperr.NotFound("Order")
	}
	return order, nil
}

func (r *fakeRepository) CreateOrder(_ context.Context, o *sales.Order) error {
	r.nextID++
	o.ID = r.nextID
	r.orders[o.ID] = o
	return nil
}

func (r *fakeRepository) SetPaymentDate(context.Context, *sales.Order) error { return nil }

func (r *fakeRepository) AggregateOrder(_ context.Context, o *sales.Order) error {
	now := time.Now()
	o.AggregatedAt = &now
	r.aggregated++
	for _, item := range o.Items {
		row := r.row(saleKey{item.BookID, o.PaymentDate.Format("2006-01-02")})
		row.quantity += item.Quantity
		row.revenue = row.revenue.Add(item.LineTotal)
	}
	return nil
}

func (r *fakeRepository) UpsertSaleRecord(_ context.Context, record *sales.SaleRecord) error {
	row := r.row(saleKey{record.BookID, record.SaleDate.Format("2006-01-02")})
	row.quantity += record.Quantity
	row.revenue = row.revenue.Add(record.Revenue)
	record.Quantity = row.quantity
	record.Revenue = row.revenue
	return nil
}

func (r *fakeRepository) ListSaleRecords(context.Context, sales.SaleRecordFilter) ([]*sales.SaleRecord, error) {
	return nil, nil
}

func (r *fakeRepository) CumulativeSales(_ context.Context, bookID int64) (int64, error) {
	var total int64
	for key, row := range r.ledger {
		if key.bookID == bookID {
			total += row.quantity
		}
	}
	return total, nil
}

func (r *fakeRepository) CumulativeSalesThroughYear(ctx context.Context, bookID int64, _ int) (int64, error) {
	return r.CumulativeSales(ctx, bookID)
}

func (r *fakeRepository) CumulativeRevenue(_ context.Context, bookID int64) (decimal.Decimal, error) {
	total := decimal.Zero
	for key, row := range r.ledger {
		if key.bookID == bookID {
			total = total.Add(row.revenue)
		}
	}
	return total, nil
}

func (r *fakeRepository) CumulativeRevenueThroughYear(ctx context.Context, bookID int64, _ int) (decimal.Decimal, error) {
	return r.CumulativeRevenue(ctx, bookID)
}

// fakePrices returns a fixed price per known book.
type fakePrices struct {
	prices map[int64]int64
}

func (p *fakePrices) CurrentPrice(_ context.Context, bookID int64) (*pricing.PriceRecord, error) {
	price, ok := p.prices[bookID]
	if !ok {
		return nil, apperr.NotFound("Price")
	}
	return &pricing.PriceRecord{BookID: bookID, Price: decimal.NewFromInt(price), IsLatest: true}, nil
}

func newTestService(repo sales.Repository, prices sales.PriceLookup) *sales.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return sales.NewService(repo, prices, logger)
}

func date(value string) time.Time {
	d, _ := time.Parse("2006-01-02", value)
	return d
}

/*
TestService_CreateOrder_PricesLinesFromLedger verifies that line totals come
from the current price, not from the client.
*/
func TestService_CreateOrder_PricesLinesFromLedger(t *testing.T) {
	repo := newFakeRepository()
	prices := &fakePrices{prices: map[int64]int64{1: 1000, 2: 2500}}
	service := newTestService(repo, prices)

	order := &sales.Order{
		CustomerID: 9,
		Items: []*sales.OrderItem{
			{BookID: 1, Quantity: 3, UnitPrice: decimal.NewFromInt(1)}, // client value ignored
			{BookID: 2, Quantity: 2},
		},
	}

	require.NoError(t, service.CreateOrder(context.Background(), order))

	assert.True(t, order.Items[0].UnitPrice.Equal(decimal.NewFromInt(1000)))
	assert.True(t, order.Items[0].LineTotal.Equal(decimal.NewFromInt(3000)))
	assert.True(t, order.Items[1].LineTotal.Equal(decimal.NewFromInt(5000)))
	assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(8000)))
}

/*
TestService_CreateOrder_AppliesDiscountAndExtras verifies the discounted unit
price rounds half-up before multiplying, and the extra item's price lands on
top of the line.
*/
func TestService_CreateOrder_AppliesDiscountAndExtras(t *testing.T) {
	repo := newFakeRepository()
	prices := &fakePrices{prices: map[int64]int64{1: 1005}}
	service := newTestService(repo, prices)

	order := &sales.Order{
		CustomerID: 9,
		Items: []*sales.OrderItem{
			// 1005 at 10% off = 904.5, rounds half-up to 905.
			{BookID: 1, Quantity: 2, DiscountRate: decimal.NewFromInt(10)},
			{BookID: 1, Quantity: 1, AdditionalItem: "practice CD", AdditionalPrice: decimal.NewFromInt(50)},
		},
	}

	require.NoError(t, service.CreateOrder(context.Background(), order))

	assert.True(t, order.Items[0].LineTotal.Equal(decimal.NewFromInt(1810)), "got %s", order.Items[0].LineTotal)
	assert.True(t, order.Items[1].LineTotal.Equal(decimal.NewFromInt(1055)), "got %s", order.Items[1].LineTotal)
	assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(2865)))
}

/*
TestService_CreateOrder_RejectsUnpricedBook checks the whole order fails when
any book has no price on file.
*/
func TestService_CreateOrder_RejectsUnpricedBook(t *testing.T) {
	repo := newFakeRepository()
	prices := &fakePrices{prices: map[int64]int64{1: 1000}}
	service := newTestService(repo, prices)

	order := &sales.Order{
		CustomerID: 9,
		Items: []*sales.OrderItem{
			{BookID: 1, Quantity: 1},
			{BookID: 77, Quantity: 1},
		},
	}

	err := service.CreateOrder(context.Background(), order)
	require.Error(t, err)
	assert.Equal(t, "UNPROCESSABLE", apperr.As(err).Code)
	assert.Empty(t, repo.orders)
}

/*
TestService_CreateOrder_Validation covers structural input checks.
*/
func TestService_CreateOrder_Validation(t *testing.T) {
	service := newTestService(newFakeRepository(), &fakePrices{})

	tests := []struct {
		name  string
		order *sales.Order
	}{
		{"no_customer", &sales.Order{Items: []*sales.OrderItem{{BookID: 1, Quantity: 1}}}},
		{"no_items", &sales.Order{CustomerID: 1}},
		{"zero_quantity", &sales.Order{CustomerID: 1, Items: []*sales.OrderItem{{BookID: 1, Quantity: 0}}}},
		{"discount_above_hundred", &sales.Order{CustomerID: 1, Items: []*sales.OrderItem{
			{BookID: 1, Quantity: 1, DiscountRate: decimal.NewFromInt(101)},
		}}},
		{"negative_discount", &sales.Order{CustomerID: 1, Items: []*sales.OrderItem{
			{BookID: 1, Quantity: 1, DiscountRate: decimal.NewFromInt(-5)},
		}}},
		{"negative_additional_price", &sales.Order{CustomerID: 1, Items: []*sales.OrderItem{
			{BookID: 1, Quantity: 1, AdditionalPrice: decimal.NewFromInt(-100)},
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.CreateOrder(context.Background(), tt.order)
			require.Error(t, err)
			assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
		})
	}
}

/*
TestService_IngestOrder_FoldsIntoLedgerOnce verifies aggregation lands in the
daily ledger and a second run conflicts instead of double counting.
*/
func TestService_IngestOrder_FoldsIntoLedgerOnce(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo, &fakePrices{})

	paid := date("2026-03-15")
	repo.orders[1] = &sales.Order{
		ID:          1,
		CustomerID:  9,
		PaymentDate: &paid,
		Items: []*sales.OrderItem{
			{BookID: 5, Quantity: 4, LineTotal: decimal.NewFromInt(4000)},
		},
	}

	_, err := service.IngestOrder(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(4), repo.ledger[saleKey{5, "2026-03-15"}].quantity)
	assert.True(t, repo.ledger[saleKey{5, "2026-03-15"}].revenue.Equal(decimal.NewFromInt(4000)))

	_, err = service.IngestOrder(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	assert.Equal(t, 1, repo.aggregated)
	assert.Equal(t, int64(4), repo.ledger[saleKey{5, "2026-03-15"}].quantity, "quantity must not double count")
	assert.True(t, repo.ledger[saleKey{5, "2026-03-15"}].revenue.Equal(decimal.NewFromInt(4000)), "revenue must not double count")
}

/*
TestService_IngestOrder_RequiresPayment rejects unpaid orders.
*/
func TestService_IngestOrder_RequiresPayment(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo, &fakePrices{})

	repo.orders[1] = &sales.Order{ID: 1, CustomerID: 9, Items: []*sales.OrderItem{{BookID: 5, Quantity: 4}}}

	_, err := service.IngestOrder(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, "UNPROCESSABLE", apperr.As(err).Code)
}

/*
TestService_RecordSale_Accumulates verifies same-day sales add up while other
days stay independent.
*/
func TestService_RecordSale_Accumulates(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo, &fakePrices{})

	require.NoError(t, service.RecordSale(context.Background(), &sales.SaleRecord{
		BookID: 5, SaleDate: date("2026-03-15"), Quantity: 3, Revenue: decimal.NewFromInt(3000),
	}))
	require.NoError(t, service.RecordSale(context.Background(), &sales.SaleRecord{
		BookID: 5, SaleDate: date("2026-03-15"), Quantity: 2, Revenue: decimal.NewFromInt(2000),
	}))
	require.NoError(t, service.RecordSale(context.Background(), &sales.SaleRecord{
		BookID: 5, SaleDate: date("2026-03-16"), Quantity: 1, Revenue: decimal.NewFromInt(1000),
	}))

	assert.Equal(t, int64(5), repo.ledger[saleKey{5, "2026-03-15"}].quantity)
	assert.True(t, repo.ledger[saleKey{5, "2026-03-15"}].revenue.Equal(decimal.NewFromInt(5000)))
	assert.Equal(t, int64(1), repo.ledger[saleKey{5, "2026-03-16"}].quantity)

	total, err := service.CumulativeSales(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(6), total)

	revenue, err := service.CumulativeRevenue(context.Background(), 5)
	require.NoError(t, err)
	assert.True(t, revenue.Equal(decimal.NewFromInt(6000)))
}

/*
TestService_RecordSale_Validation rejects non-positive quantities and missing
dates.
*/
func TestService_RecordSale_Validation(t *testing.T) {
	service := newTestService(newFakeRepository(), &fakePrices{})

	tests := []struct {
		name   string
		record *sales.SaleRecord
	}{
		{"zero_quantity", &sales.SaleRecord{BookID: 5, SaleDate: date("2026-03-15")}},
		{"negative_quantity", &sales.SaleRecord{BookID: 5, SaleDate: date("2026-03-15"), Quantity: -2}},
		{"negative_revenue", &sales.SaleRecord{BookID: 5, SaleDate: date("2026-03-15"), Quantity: 1, Revenue: decimal.NewFromInt(-500)}},
		{"zero_date", &sales.SaleRecord{BookID: 5, Quantity: 1}},
		{"no_book", &sales.SaleRecord{SaleDate: date("2026-03-15"), Quantity: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.RecordSale(context.Background(), tt.record)
			require.Error(t, err)
			assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
		})
	}
}
