// Copyright (c) 2026 Partitura. All rights reserved.
// Author: dev@clefworks.io

package category

import (
	"net/http"

	"github.com/go-chi/chi/v5"

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

func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Authenticated reads
	router.Group(func(readRoute chi.Router) {
		readRoute.Use(middleware.RequireAuth)

		readRoute.Get("/", handler.listCategories)
		readRoute.Get("/{id}", handler.getCategory)
	})

	// Staff only
	router.Group(func(staffRoute chi.Router) {
		staffRoute.Use(middleware.RequireRole(sec.RoleStaff))

		staffRoute.Post("/", handler.createCategory)
		staffRoute.Patch("/{id}", handler.updateCategory)

		staffRoute.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/{id}", handler.deleteCategory)
	})

	return router
}

func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	categories, err := handler.service.ListCategories(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, categories)
}

func (handler *Handler) getCategory(writer http.ResponseWriter, request *http.Request) {
	categoryID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.service.GetCategory(request.Context(), categoryID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, category)
}

func (handler *Handler) createCategory(writer http.ResponseWriter, request *http.Request) {
	var input Category
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateCategory(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateCategory(writer http.ResponseWriter, request *http.Request) {
	categoryID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Category
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateCategory(request.Context(), categoryID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteCategory(writer http.ResponseWriter, request *http.Request) {
	categoryID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteCategory(request.Context(), categoryID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
