// Copyright (c) 2026 Paras Comic. All rights reserved.
// Author: Troon Technologies LLC

package storage

import (
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"

	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/apperr"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/middleware"
	requestutil "github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/request"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/respond"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/sec"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/validate"
)

// MaxUploadSize bounds a single uploaded file.
const MaxUploadSize = 10 << 20

// # Handler Implementation

// Handler serves stored content and accepts creator uploads.
type Handler struct {
	store Store
}

// NewHandler constructs a content [Handler].
func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// Routes returns a [chi.Router] configured with the content endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/{cid}", handler.get)

	router.Group(func(creator chi.Router) {
		creator.Use(middleware.RequireRole(sec.RoleCreator))
		creator.Post("/", handler.upload)
	})

	return router
}

/*
GET /api/v1/content/{cid}.

Response:
  - 200: Raw payload, content type sniffed from the bytes
  - 400: Malformed CID
  - 404: Unknown CID
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	data, err := handler.store.Get(request.Context(), requestutil.Param(request, "cid"))
	if err != nil {
		respond.Error(writer, request, contentError(err))
		return
	}

	contentType := http.DetectContentType(data)
	if len(data) > 0 && (data[0] == '{' || data[0] == '[') {
		contentType = "application/json"
	}

	writer.Header().Set("Content-Type", contentType)
	writer.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	writer.WriteHeader(http.StatusOK)
	_, _ = writer.Write(data)
}

/*
POST /api/v1/content (multipart, field "file").

Response:
  - 201: {"cid": "Qm..."}
  - 400: Missing or oversized file
*/
func (handler *Handler) upload(writer http.ResponseWriter, request *http.Request) {
	request.Body = http.MaxBytesReader(writer, request.Body, MaxUploadSize+1<<20)

	file, header, err := request.FormFile("file")
	if err != nil {
		respond.Error(writer, request, validate.RequiredError("file", "A file is required"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, MaxUploadSize+1))
	if err != nil {
		respond.Error(writer, request, apperr.Internal(err))
		return
	}
	if len(data) > MaxUploadSize {
		respond.Error(writer, request, validate.RequiredError("file", "File exceeds 10 MiB"))
		return
	}

	cid, err := handler.store.Upload(request.Context(), strings.TrimSpace(header.Filename), data)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, map[string]string{"cid": cid})
}

func contentError(err error) error {
	switch {
	case errors.Is(err, ErrInvalidCID):
		return validate.RequiredError("cid", "Must be a valid content identifier")
	case errors.Is(err, ErrNotFound):
		return apperr.NotFound("Content")
	default:
		return err
	}
}
