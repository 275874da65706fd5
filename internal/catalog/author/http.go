// Copyright (c) 2026 Partitura. All rights reserved.
// Author: dev@clefworks.io

package author

import (
	"net/http"

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

	// Authenticated reads
	router.Group(func(readRoute chi.Router) {
		readRoute.Use(middleware.RequireAuth)

		readRoute.Get("/", handler.listAuthors)
		readRoute.Get("/{id}", handler.getAuthor)
	})

	// Staff only
	router.Group(func(staffRoute chi.Router) {
		staffRoute.Use(middleware.RequireRole(sec.RoleStaff))

		staffRoute.Post("/", handler.createAuthor)
		staffRoute.Patch("/{id}", handler.updateAuthor)

		// Admin strict only
		staffRoute.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/{id}", handler.deleteAuthor)
	})

	return router
}

func (handler *Handler) listAuthors(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		Query: request.URL.Query().Get("q"),
	}

	authors, total, err := handler.service.ListAuthors(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, authors, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getAuthor(writer http.ResponseWriter, request *http.Request) {
	authorID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	author, err := handler.service.GetAuthor(request.Context(), authorID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, author)
}

func (handler *Handler) createAuthor(writer http.ResponseWriter, request *http.Request) {
	var input Author
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateAuthor(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateAuthor(writer http.ResponseWriter, request *http.Request) {
	authorID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Author
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateAuthor(request.Context(), authorID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteAuthor(writer http.ResponseWriter, request *http.Request) {
	authorID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteAuthor(request.Context(), authorID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
