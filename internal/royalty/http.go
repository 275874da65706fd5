// Copyright (c) 2026 Partitura. All rights reserved.
// Author: dev@clefworks.io

package royalty

import (
	"net/http"

	"github.com/go-chi/chi/v5"

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

// Routes serves /settlements. Composers see only their own milestones; staff
// see everything.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(readRoute chi.Router) {
		readRoute.Use(middleware.RequireAuth)

		readRoute.Get("/", handler.listSettlements)
		readRoute.Get("/{id}", handler.getSettlement)
	})

	router.With(middleware.RequireRole(sec.RoleStaff)).Post("/detect", handler.detectThresholds)
	router.With(middleware.RequireRole(sec.RoleAdmin)).Post("/{id}/pay", handler.markPaid)

	return router
}

func (handler *Handler) listSettlements(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)

	bookID, _ := requestutil.QueryInt(request, "book_id")
	year, _ := requestutil.QueryInt(request, "year")
	composerID, _ := requestutil.QueryInt(request, "composer_id")

	filter := Filter{
		ComposerID: composerID,
		BookID:     bookID,
		Year:       int(year),
		UnpaidOnly: request.URL.Query().Get("unpaid") == "true",
	}

	// Composer accounts are pinned to their own ledger regardless of the
	// filter they send.
	if sec.Role(claims.Role) == sec.RoleComposer {
		if claims.ComposerID == 0 {
			respond.Error(writer, request, apperr.Forbidden("Account is not linked to a composer"))
			return
		}
		filter.ComposerID = claims.ComposerID
	}

	settlements, total, err := handler.service.ListSettlements(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, settlements, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getSettlement(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	settlementID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	settlement, err := handler.service.GetSettlement(request.Context(), settlementID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if sec.Role(claims.Role) == sec.RoleComposer && settlement.ComposerID != claims.ComposerID {
		respond.Error(writer, request, apperr.Forbidden("Settlement belongs to another composer"))
		return
	}

	respond.OK(writer, settlement)
}

type detectInput struct {
	Year int `json:"year"`
}

func (handler *Handler) detectThresholds(writer http.ResponseWriter, request *http.Request) {
	var input detectInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	report, err := handler.service.DetectThresholds(request.Context(), yearOrDefault(input.Year))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, report)
}

func (handler *Handler) markPaid(writer http.ResponseWriter, request *http.Request) {
	settlementID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	settlement, err := handler.service.MarkPaid(request.Context(), settlementID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, settlement)
}
