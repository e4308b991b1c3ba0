// Copyright (c) 2026 Paras Comic. All rights reserved.
// Author: Troon Technologies LLC

package publish

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/ctxutil"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/middleware"
	requestutil "github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/request"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/respond"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/sec"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/pkg/pagination"
)

// MaxListLimit bounds series and attempt listings.
const MaxListLimit = 100

// # Handler Implementation

// Handler implements the HTTP layer for publishing.
type Handler struct {
	service *Service
}

// NewHandler constructs a new publish [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// SeriesRoutes serves /token-series: public listing and collectible minting.
func (handler *Handler) SeriesRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listSeries)

	router.Group(func(creator chi.Router) {
		creator.Use(middleware.RequireRole(sec.RoleCreator))
		creator.Post("/", handler.createSeries)
	})

	return router
}

// ChapterRoutes serves /chapters.
func (handler *Handler) ChapterRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireRole(sec.RoleCreator))
	router.Post("/", handler.createChapterSeries)
	return router
}

// AttemptRoutes serves /mint-attempts/{status} for reconciliation tooling.
func (handler *Handler) AttemptRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireRole(sec.RoleCreator))
	router.Get("/{status}", handler.listAttempts)
	return router
}

/*
POST /api/v1/token-series.

Request: [SeriesInput]. creator_id defaults to the signed-in account.

Response:
  - 201: Result
  - 400: Validation failure
  - 500: PERSISTENCE_ERROR (minted on chain, not recorded)
  - 502: LEDGER_ERROR
*/
func (handler *Handler) createSeries(writer http.ResponseWriter, request *http.Request) {
	var input SeriesInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if input.CreatorID == "" {
		input.CreatorID = ctxutil.AccountID(request.Context())
	}

	result, err := handler.service.CreateSeries(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, result)
}

/*
POST /api/v1/chapters.

Request: [ChapterInput]. Set force to replace an existing chapter.

Response:
  - 201: Result
  - 404: Comic not found
  - 409: Chapter already exists
  - 502: LEDGER_ERROR
*/
func (handler *Handler) createChapterSeries(writer http.ResponseWriter, request *http.Request) {
	var input ChapterInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if input.CreatorID == "" {
		input.CreatorID = ctxutil.AccountID(request.Context())
	}

	result, err := handler.service.CreateChapterSeries(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, result)
}

/*
GET /api/v1/token-series?comic_id=&token_series_id=&category=.

Response:
  - 200: Paginated list of Record
*/
func (handler *Handler) listSeries(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()
	filter := SeriesFilter{
		ComicID:       query.Get(FieldComicID),
		TokenSeriesID: query.Get("token_series_id"),
		Kind:          Kind(query.Get(FieldCategory)),
	}
	page := pagination.FromRequest(request, MaxListLimit)

	records, err := handler.service.ListSeries(request.Context(), filter, page.Skip, page.Limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, records, pagination.NewMeta(page, len(records)))
}

/*
GET /api/v1/mint-attempts/{status}.

Response:
  - 200: Paginated list of MintAttempt, oldest first
  - 400: status is not pending, minted, failed or orphaned
*/
func (handler *Handler) listAttempts(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request, MaxListLimit)
	status := AttemptStatus(requestutil.Param(request, "status"))

	attempts, err := handler.service.ListAttempts(request.Context(), status, page.Skip, page.Limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, attempts, pagination.NewMeta(page, len(attempts)))
}
