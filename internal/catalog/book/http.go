// Copyright (c) 2026 Partitura. All rights reserved.
// Author: dev@clefworks.io

package book

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

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

func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	handler.RegisterRoutes(router)
	return router
}

// RegisterRoutes attaches the book endpoints to an existing router, so the
// composition root can nest sub-resources (works, price, sales) under
// /{bookID} without a second mount.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Authenticated reads
	router.Group(func(readRoute chi.Router) {
		readRoute.Use(middleware.RequireAuth)

		readRoute.Get("/", handler.listBooks)
		readRoute.Get("/{bookID}", handler.getBook)
		readRoute.Get("/slug/{slug}", handler.getBookBySlug)
	})

	// Staff only
	router.Group(func(staffRoute chi.Router) {
		staffRoute.Use(middleware.RequireRole(sec.RoleStaff))

		staffRoute.Post("/", handler.createBook)
		staffRoute.Patch("/{bookID}", handler.updateBook)

		staffRoute.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/{bookID}", handler.deleteBook)
	})
}

func (handler *Handler) listBooks(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	queryParams := request.URL.Query()

	categoryID, _ := strconv.ParseInt(queryParams.Get("category_id"), 10, 64)
	filter := Filter{
		Query:      queryParams.Get("q"),
		BookType:   BookType(queryParams.Get("book_type")),
		CategoryID: categoryID,
	}

	books, total, err := handler.service.ListBooks(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, books, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getBook(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.IntID(request, "bookID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, err := handler.service.GetBook(request.Context(), bookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, book)
}

func (handler *Handler) getBookBySlug(writer http.ResponseWriter, request *http.Request) {
	book, err := handler.service.GetBookBySlug(request.Context(), requestutil.Param(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, book)
}

func (handler *Handler) createBook(writer http.ResponseWriter, request *http.Request) {
	var input Book
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateBook(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateBook(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.IntID(request, "bookID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Book
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateBook(request.Context(), bookID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteBook(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.IntID(request, "bookID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteBook(request.Context(), bookID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
