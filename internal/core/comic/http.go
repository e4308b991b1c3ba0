// Copyright (c) 2026 Paras Comic. All rights reserved.
// Author: Troon Technologies LLC

package comic

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/ctxutil"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/middleware"
	requestutil "github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/request"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/respond"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/sec"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/validate"
)

// # Handler Implementation

// Handler implements the HTTP layer for catalogue lookups.
type Handler struct {
	service *Service
}

// NewHandler constructs a new comic [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the catalogue endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/{comicID}", handler.getComic)
	router.Get("/{comicID}/chapters/{chapterID}", handler.getChapter)
	router.With(middleware.RequireAuth).Get("/{comicID}/chapters/{chapterID}/pages/{pageID}", handler.getPage)

	router.Group(func(creator chi.Router) {
		creator.Use(middleware.RequireRole(sec.RoleCreator))
		creator.Post("/", handler.createComic)
	})

	return router
}

/*
GET /api/v1/comics/{comicID}.

Response:
  - 200: Comic
  - 404: Comic not found
*/
func (handler *Handler) getComic(writer http.ResponseWriter, request *http.Request) {
	comic, err := handler.service.GetComic(request.Context(), requestutil.Param(request, "comicID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comic)
}

/*
GET /api/v1/comics/{comicID}/chapters/{chapterID}.

Response:
  - 200: Chapter; status and pages depend on the caller
  - 400: chapterID is not a number
  - 404: Chapter not found
*/
func (handler *Handler) getChapter(writer http.ResponseWriter, request *http.Request) {
	chapterID, err := strconv.Atoi(requestutil.Param(request, "chapterID"))
	if err != nil {
		respond.Error(writer, request, validate.RequiredError(FieldChapterID, "Must be an integer"))
		return
	}

	chapter, err := handler.service.GetChapter(request.Context(),
		requestutil.Param(request, "comicID"), chapterID, ctxutil.AccountID(request.Context()),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, chapter)
}

/*
GET /api/v1/comics/{comicID}/chapters/{chapterID}/pages/{pageID}.

Response:
  - 200: Page image, content type sniffed from the bytes
  - 401: Not signed in
  - 403: Caller neither wrote the chapter nor holds its token
  - 404: Chapter or page not found
*/
func (handler *Handler) getPage(writer http.ResponseWriter, request *http.Request) {
	chapterID, err := strconv.Atoi(requestutil.Param(request, "chapterID"))
	if err != nil {
		respond.Error(writer, request, validate.RequiredError(FieldChapterID, "Must be an integer"))
		return
	}
	pageID, err := strconv.Atoi(requestutil.Param(request, "pageID"))
	if err != nil {
		respond.Error(writer, request, validate.RequiredError(FieldPageID, "Must be an integer"))
		return
	}

	data, err := handler.service.PageContent(request.Context(),
		requestutil.Param(request, "comicID"), chapterID, pageID, ctxutil.AccountID(request.Context()),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	writer.Header().Set("Content-Type", http.DetectContentType(data))
	writer.Header().Set("Cache-Control", "private, no-store")
	writer.WriteHeader(http.StatusOK)
	_, _ = writer.Write(data)
}

/*
POST /api/v1/comics.

Request:
  - comic_id: string (optional, derived from title)
  - title, description, media: string
  - author_ids: []string

Response:
  - 201: Comic
  - 409: comic_id already registered
*/
func (handler *Handler) createComic(writer http.ResponseWriter, request *http.Request) {
	var input Comic
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateComic(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, input)
}
