// Copyright (c) 2026 Partitura. All rights reserved.
// Author: dev@clefworks.io

package pricing

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/clefworks/partitura/internal/platform/middleware"
	requestutil "github.com/clefworks/partitura/internal/platform/request"
	"github.com/clefworks/partitura/internal/platform/respond"
	"github.com/clefworks/partitura/internal/platform/sec"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes serves /pricing (the bulk mutation surface).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.With(middleware.RequireRole(sec.RoleAdmin)).Post("/batch", handler.batchAdjust)

	return router
}

// BookPriceRoutes serves /books/{bookID}/price.
func (handler *Handler) BookPriceRoutes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(readRoute chi.Router) {
		readRoute.Use(middleware.RequireAuth)

		readRoute.Get("/", handler.currentPrice)
		readRoute.Get("/history", handler.priceHistory)
	})

	router.With(middleware.RequireRole(sec.RoleStaff)).Put("/", handler.setPrice)

	return router
}

func (handler *Handler) currentPrice(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.IntID(request, "bookID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	record, err := handler.service.CurrentPrice(request.Context(), bookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, record)
}

func (handler *Handler) priceHistory(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.IntID(request, "bookID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	records, err := handler.service.History(request.Context(), bookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, records)
}

type setPriceInput struct {
	Price decimal.Decimal `json:"price"`
}

func (handler *Handler) setPrice(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.IntID(request, "bookID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input setPriceInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	record, err := handler.service.SetPrice(request.Context(), bookID, input.Price)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, record)
}

func (handler *Handler) batchAdjust(writer http.ResponseWriter, request *http.Request) {
	var input BatchAdjustment
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.BatchAdjust(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}
