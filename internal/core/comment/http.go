// Copyright (c) 2026 Paras Comic. All rights reserved.
// Author: Troon Technologies LLC

package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/constants"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/ctxutil"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/middleware"
	requestutil "github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/request"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/respond"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for comments.
type Handler struct {
	service *Service
}

// NewHandler constructs a new comment [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the comment endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.find)

	router.Group(func(member chi.Router) {
		member.Use(middleware.RequireAuth)
		member.Post("/", handler.create)
		member.Put("/{action}", handler.vote)
		member.Delete("/{commentID}", handler.delete)
	})

	return router
}

/*
GET /api/v1/comments?comic_id=&chapter_id=&__skip=&__limit=.

Description: Anonymous readers are allowed; signed-in readers see their
own comments first and their vote in user_likes. __limit is clamped to 10.
*/
func (handler *Handler) find(writer http.ResponseWriter, request *http.Request) {
	chapterID, err := requestutil.QueryInt(request, FieldChapterID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	filter := Filter{
		ComicID:   request.URL.Query().Get(FieldComicID),
		ChapterID: chapterID,
		ViewerID:  ctxutil.AccountID(request.Context()),
	}
	page := pagination.FromRequest(request, constants.CommentPageLimit)

	comments, err := handler.service.Find(request.Context(), filter, page.Skip, page.Limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, comments, pagination.NewMeta(page, len(comments)))
}

type createRequest struct {
	ComicID   string `json:"comic_id"`
	ChapterID *int   `json:"chapter_id"`
	Body      string `json:"body"`
}

/*
POST /api/v1/comments.

Response:
  - 201: Comment
  - 404: Comic not found
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.RequiredAccountID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.Create(request.Context(), accountID, input.ComicID, input.ChapterID, input.Body)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comment)
}

type voteRequest struct {
	CommentID string `json:"comment_id"`
}

/*
PUT /api/v1/comments/{likes|unlikes|dislikes|undislikes}.

Request:
  - comment_id: string

Response:
  - 200: true
  - 404: Comment not found
*/
func (handler *Handler) vote(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.RequiredAccountID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input voteRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	action := Action(requestutil.Param(request, "action"))
	ok, err := handler.service.Vote(request.Context(), accountID, input.CommentID, action)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, ok)
}

// delete handles DELETE /api/v1/comments/{commentID}.
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.RequiredAccountID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), accountID, requestutil.Param(request, "commentID")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
