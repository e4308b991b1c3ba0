// Copyright (c) 2026 Paras Comic. All rights reserved.
// Author: Troon Technologies LLC

package comic

import "context"

// # Catalogue Data Access

// Repository defines the data access contract for the catalogue.
type Repository interface {

	/*
		FindByID returns the comic with the given id.

		Returns:
		  - *Comic: The hydrated domain entity
		  - error: apperr NotFound if missing
	*/
	FindByID(context context.Context, comicID string) (*Comic, error)

	/*
		Create persists a new comic.

		Returns:
		  - error: apperr Conflict if the id is taken
	*/
	Create(context context.Context, comic *Comic) error

	// ChapterExists reports whether (comicID, chapterID) already holds a chapter.
	ChapterExists(context context.Context, comicID string, chapterID int) (bool, error)

	/*
		FindChapter returns a chapter together with its pages in order.

		Returns:
		  - *Chapter: The chapter with Pages populated
		  - error: apperr NotFound if missing
	*/
	FindChapter(context context.Context, comicID string, chapterID int) (*Chapter, error)
}
