// Copyright (c) 2026 Paras Comic. All rights reserved.
// Author: Troon Technologies LLC

package comic

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/apperr"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/validate"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/pkg/slice"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/pkg/slug"
)

// # Service Layer

// AccessChecker reports whether an account holds a token for a chapter.
type AccessChecker interface {
	HasAccess(context context.Context, accountID, comicID string, chapterID int) (bool, error)
}

// ContentReader fetches page images by content id.
type ContentReader interface {
	Get(context context.Context, cid string) ([]byte, error)
}

// Service answers catalogue lookups, gates chapter pages and registers comics.
type Service struct {
	repository Repository
	access     AccessChecker
	content    ContentReader
	logger     *slog.Logger
	now        func() time.Time
}

// NewService constructs a new [Service].
func NewService(repository Repository, access AccessChecker, content ContentReader, logger *slog.Logger) *Service {
	return &Service{repository: repository, access: access, content: content, logger: logger, now: time.Now}
}

// GetComic fetches a comic by id.
func (service *Service) GetComic(context context.Context, comicID string) (*Comic, error) {
	return service.repository.FindByID(context, comicID)
}

// ChapterExists reports whether the chapter slot is taken.
func (service *Service) ChapterExists(context context.Context, comicID string, chapterID int) (bool, error) {
	return service.repository.ChapterExists(context, comicID, chapterID)
}

/*
GetChapter fetches a chapter as seen by viewerID.

Description: Authors and token holders get status "read" and the page
list. Other signed-in viewers get "buy" and no pages. Anonymous viewers
get no status and no pages.
*/
func (service *Service) GetChapter(context context.Context, comicID string, chapterID int, viewerID string) (*Chapter, error) {
	found, err := service.repository.FindChapter(context, comicID, chapterID)
	if err != nil {
		return nil, err
	}

	readable, err := service.canRead(context, found, viewerID)
	if err != nil {
		return nil, err
	}

	chapter := *found
	if viewerID != "" {
		status := StatusBuy
		if readable {
			status = StatusRead
		}
		chapter.Status = &status
	}
	if !readable {
		chapter.Pages = nil
	}

	return &chapter, nil
}

/*
PageContent returns the image bytes of one page to a reader of the chapter.

Returns:
  - []byte: The raw page image
  - error: apperr Unauthorized (anonymous), Forbidden (no token) or NotFound
*/
func (service *Service) PageContent(context context.Context, comicID string, chapterID, pageID int, viewerID string) ([]byte, error) {
	if viewerID == "" {
		return nil, apperr.Unauthorized("Sign in to read this chapter")
	}

	chapter, err := service.repository.FindChapter(context, comicID, chapterID)
	if err != nil {
		return nil, err
	}

	readable, err := service.canRead(context, chapter, viewerID)
	if err != nil {
		return nil, err
	}
	if !readable {
		return nil, apperr.Forbidden("Buy this chapter to read it")
	}

	index := slices.IndexFunc(chapter.Pages, func(page Page) bool { return page.PageID == pageID })
	if index < 0 {
		return nil, apperr.NotFound("Page")
	}

	return service.content.Get(context, chapter.Pages[index].Content)
}

// canRead holds for the chapter's authors and for accounts holding one of its tokens.
func (service *Service) canRead(context context.Context, chapter *Chapter, viewerID string) (bool, error) {
	if viewerID == "" {
		return false, nil
	}
	if slices.Contains(chapter.AuthorIDs, viewerID) {
		return true, nil
	}
	return service.access.HasAccess(context, viewerID, chapter.ComicID, chapter.ChapterID)
}

/*
CreateComic registers a comic that chapters can later be minted under.

Description: Blank author ids are dropped. When no id is given it is
derived from the title ("Ocean Heart" becomes "ocean-heart").

Returns:
  - error: Validation or persistence errors
*/
func (service *Service) CreateComic(context context.Context, comic *Comic) error {

	comic.AuthorIDs = slice.Filter(comic.AuthorIDs, func(id string) bool {
		return strings.TrimSpace(id) != ""
	})

	if comic.ComicID == "" {
		comic.ComicID = slug.From(comic.Title)
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, comic.Title).MaxLen(FieldTitle, comic.Title, 200)
	validator.Required(FieldComicID, comic.ComicID).MaxLen(FieldComicID, comic.ComicID, 100)
	validator.Custom(FieldComicID, comic.ComicID != "" && slug.From(comic.ComicID) != comic.ComicID, "Must be a lowercase slug")
	validator.Custom(FieldAuthorIDs, len(comic.AuthorIDs) == 0, "At least one author is required")
	if err := validator.Err(); err != nil {
		return err
	}

	comic.CreatedAt = service.now().UTC()

	if err := service.repository.Create(context, comic); err != nil {
		return err
	}

	service.logger.InfoContext(context, "comic_created",
		slog.String("comic_id", comic.ComicID),
		slog.String("title", comic.Title),
	)

	return nil
}
