// Copyright (c) 2026 Partitura. All rights reserved.
// Author: dev@clefworks.io

package sales

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/clefworks/partitura/internal/platform/apperr"
	"github.com/clefworks/partitura/internal/platform/middleware"
	requestutil "github.com/clefworks/partitura/internal/platform/request"
	"github.com/clefworks/partitura/internal/platform/respond"
	"github.com/clefworks/partitura/internal/platform/sec"
	"github.com/clefworks/partitura/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// CustomerRoutes serves /customers. Customer data is staff-only end to end.
func (handler *Handler) CustomerRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireRole(sec.RoleStaff))

	router.Get("/", handler.listCustomers)
	router.Get("/lookup", handler.lookupCustomer)
	router.Get("/{id}", handler.getCustomer)
	router.Post("/", handler.createCustomer)
	router.Patch("/{id}", handler.updateCustomer)

	return router
}

// OrderRoutes serves /orders.
func (handler *Handler) OrderRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireRole(sec.RoleStaff))

	router.Get("/", handler.listOrders)
	router.Get("/{id}", handler.getOrder)
	router.Post("/", handler.createOrder)
	router.Post("/{id}/pay", handler.markOrderPaid)
	router.Post("/{id}/aggregate", handler.aggregateOrder)

	return router
}

// BookSalesRoutes serves /books/{bookID}/sales.
func (handler *Handler) BookSalesRoutes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(readRoute chi.Router) {
		readRoute.Use(middleware.RequireAuth)

		readRoute.Get("/", handler.listSaleRecords)
		readRoute.Get("/cumulative", handler.cumulativeSales)
	})

	router.With(middleware.RequireRole(sec.RoleStaff)).Post("/", handler.recordSale)

	return router
}

// # Customers

func (handler *Handler) listCustomers(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := CustomerFilter{
		Query: request.URL.Query().Get("q"),
	}

	customers, total, err := handler.service.ListCustomers(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, customers, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) lookupCustomer(writer http.ResponseWriter, request *http.Request) {
	queryParams := request.URL.Query()

	customer, err := handler.service.LookupCustomer(request.Context(), queryParams.Get("name"), queryParams.Get("contact_number"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, customer)
}

func (handler *Handler) getCustomer(writer http.ResponseWriter, request *http.Request) {
	customerID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	customer, err := handler.service.GetCustomer(request.Context(), customerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, customer)
}

func (handler *Handler) createCustomer(writer http.ResponseWriter, request *http.Request) {
	var input Customer
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateCustomer(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateCustomer(writer http.ResponseWriter, request *http.Request) {
	customerID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Customer
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateCustomer(request.Context(), customerID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

// # Orders

func (handler *Handler) listOrders(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	queryParams := request.URL.Query()

	customerID, _ := requestutil.QueryInt(request, "customer_id")
	filter := OrderFilter{
		CustomerID:   customerID,
		Unaggregated: queryParams.Get("unaggregated") == "true",
	}

	orders, total, err := handler.service.ListOrders(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, orders, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getOrder(writer http.ResponseWriter, request *http.Request) {
	orderID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	order, err := handler.service.GetOrder(request.Context(), orderID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, order)
}

func (handler *Handler) createOrder(writer http.ResponseWriter, request *http.Request) {
	var input Order
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateOrder(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

type markPaidInput struct {
	PaymentDate *time.Time `json:"payment_date"`
}

func (handler *Handler) markOrderPaid(writer http.ResponseWriter, request *http.Request) {
	orderID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input markPaidInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if input.PaymentDate == nil {
		respond.Error(writer, request, apperr.ValidationError("payment_date is required"))
		return
	}

	order, err := handler.service.MarkOrderPaid(request.Context(), orderID, *input.PaymentDate)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, order)
}

func (handler *Handler) aggregateOrder(writer http.ResponseWriter, request *http.Request) {
	orderID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	order, err := handler.service.IngestOrder(request.Context(), orderID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, order)
}

// # Sale ledger

func (handler *Handler) listSaleRecords(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.IntID(request, "bookID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	filter := SaleRecordFilter{BookID: bookID}
	if from, ok := requestutil.QueryDate(request, "from"); ok {
		filter.From = &from
	}
	if to, ok := requestutil.QueryDate(request, "to"); ok {
		filter.To = &to
	}

	records, err := handler.service.ListSaleRecords(request.Context(), filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, records)
}

func (handler *Handler) cumulativeSales(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.IntID(request, "bookID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	totalUnits, err := handler.service.CumulativeSales(request.Context(), bookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	totalRevenue, err := handler.service.CumulativeRevenue(request.Context(), bookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		"book_id":       bookID,
		"total_units":   totalUnits,
		"total_revenue": totalRevenue,
	})
}

type recordSaleInput struct {
	SaleDate time.Time       `json:"sale_date"`
	Quantity int64           `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

func (handler *Handler) recordSale(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.IntID(request, "bookID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input recordSaleInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	record := &SaleRecord{BookID: bookID, SaleDate: input.SaleDate, Quantity: input.Quantity, Revenue: input.Revenue}
	if err := handler.service.RecordSale(request.Context(), record); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, record)
}
