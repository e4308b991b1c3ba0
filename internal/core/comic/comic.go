// Copyright (c) 2026 Paras Comic. All rights reserved.
// Author: Troon Technologies LLC

/*
Package comic defines the catalogue entities that minted chapters attach to.

A [Comic] is registered once by a publisher. Each [Chapter] row is written by
the publishing pipeline in the same transaction as its token series, together
with its ordered [Page] content ids.

Core Responsibility:

  - Lookup: Parent comic existence and title for chapter naming.
  - Occupancy: Whether (comic_id, chapter_id) already holds a chapter.
  - Persistence: Chapter and page rows inside a caller-owned transaction.
  - Gating: Page content only for the chapter's authors and token holders.
*/
package comic

import "time"

// # Core Entities

// Comic is a serialised publication, identified by a readable id ("paradigm").
type Comic struct {
	ComicID     string    `json:"comic_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Media       string    `json:"media"` // CID of the cover art
	AuthorIDs   []string  `json:"author_ids"`
	CreatedAt   time.Time `json:"created_at"`
}

// # Field Identifiers

const (
	FieldComicID     = "comic_id"
	FieldChapterID   = "chapter_id"
	FieldPageID      = "page_id"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldMedia       = "media"
	FieldAuthorIDs   = "author_ids"
)
