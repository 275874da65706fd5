// Copyright (c) 2026 Partitura. All rights reserved.
// Author: dev@clefworks.io

package sales

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/clefworks/partitura/internal/platform/apperr"
	"github.com/clefworks/partitura/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// "order" is a reserved word, so the table name stays quoted everywhere.
const orderTable = `sales."order"`

// # Customers

func (repository *PostgresRepository) ListCustomers(context context.Context, f CustomerFilter, limit, offset int) ([]*Customer, int, error) {
	var query strings.Builder
	query.WriteString(`
		SELECT id, name, contactnumber, address, createdat, updatedat, COUNT(*) OVER() AS total
		FROM sales.customer
		WHERE TRUE
	`)

	args := []any{}
	argID := 1

	if f.Query != "" {
		query.WriteString(fmt.Sprintf(" AND (name ILIKE $%d OR contactnumber ILIKE $%d)", argID, argID))
		args = append(args, "%"+f.Query+"%")
		argID++
	}

	query.WriteString(fmt.Sprintf(" ORDER BY name ASC LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_customers")
	}
	defer rows.Close()

	var customers []*Customer
	var total int
	for rows.Next() {
		c := &Customer{}
		if err := rows.Scan(&c.ID, &c.Name, &c.ContactNumber, &c.Address, &c.CreatedAt, &c.UpdatedAt, &total); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_customer")
		}
		customers = append(customers, c)
	}

	return customers, total, nil
}

func (repository *PostgresRepository) GetCustomer(context context.Context, id int64) (*Customer, error) {
	query := `
		SELECT id, name, contactnumber, address, createdat, updatedat
		FROM sales.customer
		WHERE id = $1
	`
	c := &Customer{}

	err := repository.db.QueryRow(context, query, id).Scan(
		&c.ID, &c.Name, &c.ContactNumber, &c.Address, &c.CreatedAt, &c.UpdatedAt,
	)

	return c, dberr.Wrap(err, "get_customer")
}

func (repository *PostgresRepository) FindCustomerByContact(context context.Context, name, contactNumber string) (*Customer, error) {
	query := `
		SELECT id, name, contactnumber, address, createdat, updatedat
		FROM sales.customer
		WHERE name = $1 AND contactnumber = $2
	`
	c := &Customer{}

	err := repository.db.QueryRow(context, query, name, contactNumber).Scan(
		&c.ID, &c.Name, &c.ContactNumber, &c.Address, &c.CreatedAt, &c.UpdatedAt,
	)

	return c, dberr.Wrap(err, "find_customer")
}

func (repository *PostgresRepository) CreateCustomer(context context.Context, c *Customer) error {
	query := `
		INSERT INTO sales.customer (name, contactnumber, address, createdat, updatedat)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, createdat, updatedat
	`

	err := repository.db.QueryRow(context, query, c.Name, c.ContactNumber, c.Address).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	return dberr.Wrap(err, "create_customer")
}

func (repository *PostgresRepository) UpdateCustomer(context context.Context, c *Customer) error {
	query := `
		UPDATE sales.customer
		SET name = $2, contactnumber = $3, address = $4, updatedat = NOW()
		WHERE id = $1
		RETURNING updatedat
	`

	err := repository.db.QueryRow(context, query, c.ID, c.Name, c.ContactNumber, c.Address).Scan(&c.UpdatedAt)
	return dberr.Wrap(err, "update_customer")
}

// # Orders

func (repository *PostgresRepository) ListOrders(context context.Context, f OrderFilter, limit, offset int) ([]*Order, int, error) {
	var query strings.Builder
	query.WriteString(`
		SELECT o.id, o.customerid, o.orderdate, o.deliverydate, o.paymentdate,
			o.ordersource, o.deliverymethod, o.requests, o.aggregatedat, o.totalamount,
			o.createdat, o.updatedat, c.name, COUNT(*) OVER() AS total
		FROM ` + orderTable + ` o
		JOIN sales.customer c ON c.id = o.customerid
		WHERE TRUE
	`)

	args := []any{}
	argID := 1

	if f.CustomerID > 0 {
		query.WriteString(fmt.Sprintf(" AND o.customerid = $%d", argID))
		args = append(args, f.CustomerID)
		argID++
	}
	if f.Unaggregated {
		query.WriteString(" AND o.paymentdate IS NOT NULL AND o.aggregatedat IS NULL")
	}

	query.WriteString(fmt.Sprintf(" ORDER BY o.id DESC LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_orders")
	}
	defer rows.Close()

	var orders []*Order
	var total int
	for rows.Next() {
		o := &Order{}
		err := rows.Scan(
			&o.ID, &o.CustomerID, &o.OrderDate, &o.DeliveryDate, &o.PaymentDate,
			&o.OrderSource, &o.DeliveryMethod, &o.Requests, &o.AggregatedAt, &o.TotalAmount,
			&o.CreatedAt, &o.UpdatedAt, &o.CustomerName, &total,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_order")
		}
		orders = append(orders, o)
	}

	return orders, total, nil
}

func (repository *PostgresRepository) GetOrder(context context.Context, id int64) (*Order, error) {
	query := `
		SELECT o.id, o.customerid, o.orderdate, o.deliverydate, o.paymentdate,
			o.ordersource, o.deliverymethod, o.requests, o.aggregatedat, o.totalamount,
			o.createdat, o.updatedat, c.name
		FROM ` + orderTable + ` o
		JOIN sales.customer c ON c.id = o.customerid
		WHERE o.id = $1
	`
	o := &Order{}

	err := repository.db.QueryRow(context, query, id).Scan(
		&o.ID, &o.CustomerID, &o.OrderDate, &o.DeliveryDate, &o.PaymentDate,
		&o.OrderSource, &o.DeliveryMethod, &o.Requests, &o.AggregatedAt, &o.TotalAmount,
		&o.CreatedAt, &o.UpdatedAt, &o.CustomerName,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_order")
	}

	items, err := repository.listOrderItems(context, id)
	if err != nil {
		return nil, err
	}
	o.Items = items

	return o, nil
}

func (repository *PostgresRepository) listOrderItems(context context.Context, orderID int64) ([]*OrderItem, error) {
	query := `
		SELECT i.id, i.orderid, i.bookid, i.quantity, i.unitprice, i.discountrate,
			i.additionalitem, i.additionalprice, i.linetotal, b.title
		FROM sales.orderitem i
		JOIN catalog.book b ON b.id = i.bookid
		WHERE i.orderid = $1
		ORDER BY i.id ASC
	`

	rows, err := repository.db.Query(context, query, orderID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_order_items")
	}
	defer rows.Close()

	var items []*OrderItem
	for rows.Next() {
		item := &OrderItem{}
		err := rows.Scan(
			&item.ID, &item.OrderID, &item.BookID, &item.Quantity, &item.UnitPrice,
			&item.DiscountRate, &item.AdditionalItem, &item.AdditionalPrice, &item.LineTotal, &item.BookTitle,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_order_item")
		}
		items = append(items, item)
	}

	return items, nil
}

func (repository *PostgresRepository) CreateOrder(context context.Context, o *Order) error {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_tx")
	}
	defer tx.Rollback(context)

	insertOrder := `
		INSERT INTO ` + orderTable + `
			(customerid, orderdate, deliverydate, paymentdate, ordersource, deliverymethod, requests, totalamount, createdat, updatedat)
		VALUES ($1, $2::date, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, createdat, updatedat
	`
	err = tx.QueryRow(context, insertOrder,
		o.CustomerID, o.OrderDate, o.DeliveryDate, o.PaymentDate,
		o.OrderSource, o.DeliveryMethod, o.Requests, o.TotalAmount,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_order")
	}

	insertItem := `
		INSERT INTO sales.orderitem
			(orderid, bookid, quantity, unitprice, discountrate, additionalitem, additionalprice, linetotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	for _, item := range o.Items {
		item.OrderID = o.ID
		err := tx.QueryRow(context, insertItem,
			o.ID, item.BookID, item.Quantity, item.UnitPrice,
			item.DiscountRate, item.AdditionalItem, item.AdditionalPrice, item.LineTotal,
		).Scan(&item.ID)
		if err != nil {
			return dberr.Wrap(err, "create_order_item")
		}
	}

	return dberr.Wrap(tx.Commit(context), "commit_tx")
}

func (repository *PostgresRepository) SetPaymentDate(context context.Context, o *Order) error {
	query := `
		UPDATE ` + orderTable + `
		SET paymentdate = $2, updatedat = NOW()
		WHERE id = $1
		RETURNING updatedat
	`

	err := repository.db.QueryRow(context, query, o.ID, o.PaymentDate).Scan(&o.UpdatedAt)
	return dberr.Wrap(err, "set_payment_date")
}

func (repository *PostgresRepository) AggregateOrder(context context.Context, o *Order) error {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_tx")
	}
	defer tx.Rollback(context)

	// The stamp doubles as the concurrency guard: a second aggregation of the
	// same order matches zero rows and backs off.
	stamp := `
		UPDATE ` + orderTable + `
		SET aggregatedat = NOW(), updatedat = NOW()
		WHERE id = $1 AND aggregatedat IS NULL AND paymentdate IS NOT NULL
		RETURNING aggregatedat
	`
	if err := tx.QueryRow(context, stamp, o.ID).Scan(&o.AggregatedAt); err != nil {
		wrapped := dberr.Wrap(err, "stamp_order")
		if ae := apperr.As(wrapped); ae != nil && ae.Code == "NOT_FOUND" {
			return apperr.Conflict("Order is already aggregated")
		}
		return wrapped
	}

	upsert := `
		INSERT INTO sales.salerecord (bookid, saledate, quantity, revenue, createdat, updatedat)
		VALUES ($1, $2::date, $3, $4, NOW(), NOW())
		ON CONFLICT (bookid, saledate)
		DO UPDATE SET quantity = salerecord.quantity + EXCLUDED.quantity,
			revenue = salerecord.revenue + EXCLUDED.revenue, updatedat = NOW()
	`
	for _, item := range o.Items {
		if _, err := tx.Exec(context, upsert, item.BookID, o.PaymentDate, item.Quantity, item.LineTotal); err != nil {
			return dberr.Wrap(err, "upsert_sale_record")
		}
	}

	return dberr.Wrap(tx.Commit(context), "commit_tx")
}

// # Sale ledger

func (repository *PostgresRepository) UpsertSaleRecord(context context.Context, r *SaleRecord) error {
	query := `
		INSERT INTO sales.salerecord (bookid, saledate, quantity, revenue, createdat, updatedat)
		VALUES ($1, $2::date, $3, $4, NOW(), NOW())
		ON CONFLICT (bookid, saledate)
		DO UPDATE SET quantity = salerecord.quantity + EXCLUDED.quantity,
			revenue = salerecord.revenue + EXCLUDED.revenue, updatedat = NOW()
		RETURNING id, quantity, revenue, createdat, updatedat
	`

	err := repository.db.QueryRow(context, query, r.BookID, r.SaleDate, r.Quantity, r.Revenue).
		Scan(&r.ID, &r.Quantity, &r.Revenue, &r.CreatedAt, &r.UpdatedAt)
	return dberr.Wrap(err, "upsert_sale_record")
}

func (repository *PostgresRepository) ListSaleRecords(context context.Context, f SaleRecordFilter) ([]*SaleRecord, error) {
	var query strings.Builder
	query.WriteString(`
		SELECT id, bookid, saledate, quantity, revenue, createdat, updatedat
		FROM sales.salerecord
		WHERE bookid = $1
	`)

	args := []any{f.BookID}
	argID := 2

	if f.From != nil {
		query.WriteString(fmt.Sprintf(" AND saledate >= $%d", argID))
		args = append(args, *f.From)
		argID++
	}
	if f.To != nil {
		query.WriteString(fmt.Sprintf(" AND saledate <= $%d", argID))
		args = append(args, *f.To)
		argID++
	}

	query.WriteString(" ORDER BY saledate DESC")

	rows, err := repository.db.Query(context, query.String(), args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_sale_records")
	}
	defer rows.Close()

	var records []*SaleRecord
	for rows.Next() {
		r := &SaleRecord{}
		if err := rows.Scan(&r.ID, &r.BookID, &r.SaleDate, &r.Quantity, &r.Revenue, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_sale_record")
		}
		records = append(records, r)
	}

	return records, nil
}

func (repository *PostgresRepository) CumulativeSales(context context.Context, bookID int64) (int64, error) {
	query := `SELECT COALESCE(SUM(quantity), 0) FROM sales.salerecord WHERE bookid = $1`

	var total int64
	err := repository.db.QueryRow(context, query, bookID).Scan(&total)
	return total, dberr.Wrap(err, "cumulative_sales")
}

func (repository *PostgresRepository) CumulativeSalesThroughYear(context context.Context, bookID int64, year int) (int64, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0)
		FROM sales.salerecord
		WHERE bookid = $1 AND saledate <= MAKE_DATE($2, 12, 31)
	`

	var total int64
	err := repository.db.QueryRow(context, query, bookID, year).Scan(&total)
	return total, dberr.Wrap(err, "cumulative_sales_through_year")
}

func (repository *PostgresRepository) CumulativeRevenue(context context.Context, bookID int64) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(revenue), 0) FROM sales.salerecord WHERE bookid = $1`

	var total decimal.Decimal
	err := repository.db.QueryRow(context, query, bookID).Scan(&total)
	return total, dberr.Wrap(err, "cumulative_revenue")
}

func (repository *PostgresRepository) CumulativeRevenueThroughYear(context context.Context, bookID int64, year int) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(revenue), 0)
		FROM sales.salerecord
		WHERE bookid = $1 AND saledate <= MAKE_DATE($2, 12, 31)
	`

	var total decimal.Decimal
	err := repository.db.QueryRow(context, query, bookID, year).Scan(&total)
	return total, dberr.Wrap(err, "cumulative_revenue_through_year")
}
