// Copyright (c) 2026 Partitura. All rights reserved.
// Author: dev@clefworks.io

package composer

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

// Routes serves /composers.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(readRoute chi.Router) {
		readRoute.Use(middleware.RequireAuth)

		readRoute.Get("/", handler.listComposers)
		readRoute.Get("/{id}", handler.getComposer)
	})

	router.Group(func(staffRoute chi.Router) {
		staffRoute.Use(middleware.RequireRole(sec.RoleStaff))

		staffRoute.Post("/", handler.createComposer)
		staffRoute.Patch("/{id}", handler.updateComposer)

		staffRoute.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/{id}", handler.deleteComposer)
	})

	return router
}

// WorkRoutes serves /works (detach/update a single composer work).
func (handler *Handler) WorkRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireRole(sec.RoleStaff))

	router.Patch("/{id}", handler.updateWork)
	router.Delete("/{id}", handler.deleteWork)

	return router
}

// BookWorkRoutes serves /books/{bookID}/works (list/attach works on a book).
func (handler *Handler) BookWorkRoutes() chi.Router {
	router := chi.NewRouter()

	router.With(middleware.RequireAuth).Get("/", handler.listBookWorks)
	router.With(middleware.RequireRole(sec.RoleStaff)).Post("/", handler.createBookWork)

	return router
}

// # Composer handlers

func (handler *Handler) listComposers(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		Query: request.URL.Query().Get("q"),
	}

	composers, total, err := handler.service.ListComposers(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, composers, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getComposer(writer http.ResponseWriter, request *http.Request) {
	composerID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	composer, err := handler.service.GetComposer(request.Context(), composerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, composer)
}

func (handler *Handler) createComposer(writer http.ResponseWriter, request *http.Request) {
	var input Composer
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateComposer(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateComposer(writer http.ResponseWriter, request *http.Request) {
	composerID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Composer
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateComposer(request.Context(), composerID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteComposer(writer http.ResponseWriter, request *http.Request) {
	composerID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteComposer(request.Context(), composerID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Work handlers

func (handler *Handler) listBookWorks(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.IntID(request, "bookID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	works, err := handler.service.ListWorksForBook(request.Context(), bookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, works)
}

func (handler *Handler) createBookWork(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.IntID(request, "bookID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Work
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	input.BookID = bookID

	if err := handler.service.CreateWork(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateWork(writer http.ResponseWriter, request *http.Request) {
	workID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Work
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateWork(request.Context(), workID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteWork(writer http.ResponseWriter, request *http.Request) {
	workID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteWork(request.Context(), workID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
