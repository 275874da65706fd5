// Copyright (c) 2026 Partitura. All rights reserved.
// Author: dev@clefworks.io

package sales

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/clefworks/partitura/internal/platform/apperr"
	"github.com/clefworks/partitura/internal/platform/validate"
	"github.com/clefworks/partitura/internal/pricing"
)

// PriceLookup resolves a book's current price when an order is created.
// Satisfied by the pricing service.
type PriceLookup interface {
	CurrentPrice(ctx context.Context, bookID int64) (*pricing.PriceRecord, error)
}

type Service struct {
	repo   Repository
	prices PriceLookup
	logger *slog.Logger
}

func NewService(repo Repository, prices PriceLookup, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		prices: prices,
		logger: logger,
	}
}

// # Customers

func (service *Service) ListCustomers(context context.Context, filter CustomerFilter, limit, offset int) ([]*Customer, int, error) {
	return service.repo.ListCustomers(context, filter, limit, offset)
}

func (service *Service) GetCustomer(context context.Context, id int64) (*Customer, error) {
	return service.repo.GetCustomer(context, id)
}

// LookupCustomer finds a returning customer by name and contact number, used
// to prefill the shipping address on repeat orders.
func (service *Service) LookupCustomer(context context.Context, name, contactNumber string) (*Customer, error) {
	validator := &validate.Validator{}
	validator.Required(FieldName, name)
	validator.Required(FieldContactNumber, contactNumber).PhoneNumber(FieldContactNumber, contactNumber)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	return service.repo.FindCustomerByContact(context, name, contactNumber)
}

func (service *Service) CreateCustomer(context context.Context, customer *Customer) error {
	if err := validateCustomer(customer); err != nil {
		return err
	}

	if err := service.repo.CreateCustomer(context, customer); err != nil {
		return err
	}

	service.logger.Info("customer_created", slog.Int64("customer_id", customer.ID))
	return nil
}

func (service *Service) UpdateCustomer(context context.Context, id int64, customer *Customer) error {
	customer.ID = id
	if err := validateCustomer(customer); err != nil {
		return err
	}

	if err := service.repo.UpdateCustomer(context, customer); err != nil {
		return err
	}

	service.logger.Info("customer_updated", slog.Int64("customer_id", customer.ID))
	return nil
}

// # Orders

func (service *Service) ListOrders(context context.Context, filter OrderFilter, limit, offset int) ([]*Order, int, error) {
	return service.repo.ListOrders(context, filter, limit, offset)
}

func (service *Service) GetOrder(context context.Context, id int64) (*Order, error) {
	return service.repo.GetOrder(context, id)
}

// CreateOrder prices every line from the current price ledger and persists
// the order. A book with no price on file rejects the whole order.
func (service *Service) CreateOrder(context context.Context, order *Order) error {
	if err := validateOrder(order); err != nil {
		return err
	}

	if order.OrderDate.IsZero() {
		order.OrderDate = time.Now()
	}

	order.TotalAmount = decimal.Zero
	for _, item := range order.Items {
		record, err := service.prices.CurrentPrice(context, item.BookID)
		if err != nil {
			if ae := apperr.As(err); ae != nil && ae.Code == "NOT_FOUND" {
				return apperr.Unprocessable("One or more books have no price on file")
			}
			return err
		}

		item.UnitPrice = record.Price
		item.LineTotal = lineTotal(record.Price, item.DiscountRate, item.Quantity).Add(item.AdditionalPrice)
		order.TotalAmount = order.TotalAmount.Add(item.LineTotal)
	}

	if err := service.repo.CreateOrder(context, order); err != nil {
		return err
	}

	service.logger.Info("order_created",
		slog.Int64("order_id", order.ID),
		slog.Int64("customer_id", order.CustomerID),
		slog.Int("items", len(order.Items)),
		slog.String("total_amount", order.TotalAmount.String()),
	)
	return nil
}

// MarkOrderPaid stamps the payment date. Re-paying an order is a conflict.
func (service *Service) MarkOrderPaid(context context.Context, id int64, paymentDate time.Time) (*Order, error) {
	order, err := service.repo.GetOrder(context, id)
	if err != nil {
		return nil, err
	}
	if order.PaymentDate != nil {
		return nil, apperr.Conflict("Order is already paid")
	}

	order.PaymentDate = &paymentDate
	if err := service.repo.SetPaymentDate(context, order); err != nil {
		return nil, err
	}

	service.logger.Info("order_paid", slog.Int64("order_id", order.ID))
	return order, nil
}

// IngestOrder folds a paid order into the daily sale ledger exactly once.
// Each line upserts into the (book, payment date) ledger row; the aggregation
// stamp prevents the same order from counting twice.
func (service *Service) IngestOrder(context context.Context, id int64) (*Order, error) {
	order, err := service.repo.GetOrder(context, id)
	if err != nil {
		return nil, err
	}

	if order.AggregatedAt != nil {
		return nil, apperr.Conflict("Order is already aggregated")
	}
	if order.PaymentDate == nil {
		return nil, apperr.Unprocessable("Order has no payment date")
	}

	if err := service.repo.AggregateOrder(context, order); err != nil {
		return nil, err
	}

	service.logger.Info("order_aggregated",
		slog.Int64("order_id", order.ID),
		slog.Int("items", len(order.Items)),
	)
	return order, nil
}

// # Sale ledger

// RecordSale adds units and revenue to a book's daily ledger row, creating it
// on first write. Used for channels that bypass the order flow (fairs, bulk
// invoices).
func (service *Service) RecordSale(context context.Context, record *SaleRecord) error {
	validator := &validate.Validator{}
	validator.Positive(FieldBookID, record.BookID)
	validator.Positive(FieldQuantity, record.Quantity)
	validator.NonNegativeDecimal(FieldRevenue, record.Revenue)
	validator.Custom(FieldSaleDate, record.SaleDate.IsZero(), "Must be a valid date")
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.UpsertSaleRecord(context, record); err != nil {
		return err
	}

	service.logger.Info("sale_recorded",
		slog.Int64("book_id", record.BookID),
		slog.Time("sale_date", record.SaleDate),
		slog.Int64("quantity", record.Quantity),
		slog.String("revenue", record.Revenue.String()),
	)
	return nil
}

func (service *Service) ListSaleRecords(context context.Context, filter SaleRecordFilter) ([]*SaleRecord, error) {
	validator := &validate.Validator{}
	validator.Positive(FieldBookID, filter.BookID)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	return service.repo.ListSaleRecords(context, filter)
}

// CumulativeSales returns the all-time unit count for a book. A book with no
// ledger rows has sold zero units; that is not an error.
func (service *Service) CumulativeSales(context context.Context, bookID int64) (int64, error) {
	return service.repo.CumulativeSales(context, bookID)
}

// CumulativeSalesThroughYear bounds the count to sales dated on or before
// December 31 of the given year. The settlement calculator keys off this.
func (service *Service) CumulativeSalesThroughYear(context context.Context, bookID int64, year int) (int64, error) {
	return service.repo.CumulativeSalesThroughYear(context, bookID, year)
}

// CumulativeRevenue returns the all-time revenue for a book.
func (service *Service) CumulativeRevenue(context context.Context, bookID int64) (decimal.Decimal, error) {
	return service.repo.CumulativeRevenue(context, bookID)
}

// CumulativeRevenueThroughYear is the revenue counterpart of
// [Service.CumulativeSalesThroughYear].
func (service *Service) CumulativeRevenueThroughYear(context context.Context, bookID int64, year int) (decimal.Decimal, error) {
	return service.repo.CumulativeRevenueThroughYear(context, bookID, year)
}

func validateCustomer(customer *Customer) error {
	validator := &validate.Validator{}

	validator.Required(FieldName, customer.Name).MaxLen(FieldName, customer.Name, 100)
	validator.Required(FieldContactNumber, customer.ContactNumber).PhoneNumber(FieldContactNumber, customer.ContactNumber)

	return validator.Err()
}

func validateOrder(order *Order) error {
	validator := &validate.Validator{}

	validator.Positive(FieldCustomerID, order.CustomerID)
	validator.Custom(FieldItems, len(order.Items) == 0, "Must contain at least one item")
	for _, item := range order.Items {
		if item.BookID <= 0 {
			validator.Custom(FieldBookID, true, "All book ids must be positive")
			break
		}
	}
	for _, item := range order.Items {
		if item.Quantity <= 0 {
			validator.Custom(FieldQuantity, true, "All quantities must be positive")
			break
		}
	}
	for _, item := range order.Items {
		if item.DiscountRate.IsNegative() || item.DiscountRate.GreaterThan(decimal.NewFromInt(100)) {
			validator.Custom(FieldDiscountRate, true, "All discount rates must be between 0 and 100")
			break
		}
	}
	for _, item := range order.Items {
		if item.AdditionalPrice.IsNegative() {
			validator.Custom(FieldAdditionalPrice, true, "All additional prices must be non-negative")
			break
		}
	}

	return validator.Err()
}

// lineTotal discounts the unit price, rounds half-up to whole currency
// units, then multiplies by the quantity.
func lineTotal(unitPrice, discountRate decimal.Decimal, quantity int64) decimal.Decimal {
	hundred := decimal.NewFromInt(100)
	discounted := unitPrice.Mul(hundred.Sub(discountRate)).Div(hundred).Round(0)
	return discounted.Mul(decimal.NewFromInt(quantity))
}
