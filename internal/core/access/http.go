// Copyright (c) 2026 Paras Comic. All rights reserved.
// Author: Troon Technologies LLC

package access

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/ctxutil"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/middleware"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/respond"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/pkg/pagination"
)

// MaxListLimit bounds token listings.
const MaxListLimit = 100

// # Handler Implementation

// Handler implements the HTTP layer for holdings.
type Handler struct {
	service *Service
}

// NewHandler constructs a new access [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// TokenRoutes serves /tokens.
func (handler *Handler) TokenRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listTokens)
	router.With(middleware.RequireAuth).Post("/sync", handler.sync)

	return router
}

/*
GET /api/v1/tokens?comic_id=&owner_id=.

Response:
  - 200: Paginated list of Token, lowest chapter first
*/
func (handler *Handler) listTokens(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()
	filter := TokenFilter{
		ComicID: query.Get(FieldComicID),
		OwnerID: query.Get(FieldOwnerID),
	}
	page := pagination.FromRequest(request, MaxListLimit)

	tokens, err := handler.service.ListTokens(request.Context(), filter, page.Skip, page.Limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, tokens, pagination.NewMeta(page, len(tokens)))
}

/*
POST /api/v1/tokens/sync.

Description: Re-reads the signed-in account's holdings from the ledger.

Response:
  - 200: SyncResult
  - 401: Not signed in
  - 502: LEDGER_ERROR
*/
func (handler *Handler) sync(writer http.ResponseWriter, request *http.Request) {
	result, err := handler.service.Sync(request.Context(), ctxutil.AccountID(request.Context()))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}
