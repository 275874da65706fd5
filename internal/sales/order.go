// Copyright (c) 2026 Partitura. All rights reserved.
// Author: dev@clefworks.io

package sales

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is a customer purchase. Line totals are always derived server-side
// from the book's current price at creation time; client-supplied amounts are
// ignored.
//
// AggregatedAt marks the order as folded into the daily sale ledger. An order
// aggregates at most once, and only after it has a payment date.
type Order struct {
	ID             int64      `json:"id"`
	CustomerID     int64      `json:"customer_id"`
	OrderDate      time.Time  `json:"order_date"`
	DeliveryDate   *time.Time `json:"delivery_date"`
	PaymentDate    *time.Time `json:"payment_date"`
	OrderSource    string     `json:"order_source"`
	DeliveryMethod string     `json:"delivery_method"`
	Requests       string     `json:"requests"`
	AggregatedAt   *time.Time `json:"aggregated_at"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	Items       []*OrderItem    `json:"items,omitempty"`
	TotalAmount decimal.Decimal `json:"total_amount"`

	// CustomerName is joined in for read endpoints.
	CustomerName string `json:"customer_name,omitempty"`
}

// OrderItem is one priced line of an order. The unit price is the ledger
// price at creation time; the line total applies the discount per unit and
// adds the extra item's price on top.
type OrderItem struct {
	ID              int64           `json:"id"`
	OrderID         int64           `json:"order_id"`
	BookID          int64           `json:"book_id"`
	Quantity        int64           `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountRate    decimal.Decimal `json:"discount_rate"`
	AdditionalItem  string          `json:"additional_item,omitempty"`
	AdditionalPrice decimal.Decimal `json:"additional_price"`
	LineTotal       decimal.Decimal `json:"line_total"`

	// BookTitle is joined in for read endpoints.
	BookTitle string `json:"book_title,omitempty"`
}

// OrderFilter holds the parameters for a paginated order search.
type OrderFilter struct {
	CustomerID int64
	// Unaggregated restricts to paid orders not yet folded into the ledger.
	Unaggregated bool
}

// Global field names for validation
const (
	FieldCustomerID      = "customer_id"
	FieldItems           = "items"
	FieldQuantity        = "quantity"
	FieldBookID          = "book_id"
	FieldSaleDate        = "sale_date"
	FieldRevenue         = "revenue"
	FieldDiscountRate    = "discount_rate"
	FieldAdditionalPrice = "additional_price"
	FieldName            = "name"
	FieldContactNumber   = "contact_number"
)
