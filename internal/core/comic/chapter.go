// Copyright (c) 2026 Paras Comic. All rights reserved.
// Author: Troon Technologies LLC

package comic

import "time"

// # Chapter Aggregate

// Chapter is one minted episode of a comic. It is keyed by (ComicID, ChapterID).
type Chapter struct {
	ComicID       string    `json:"comic_id"`
	ChapterID     int       `json:"chapter_id"`
	TokenSeriesID string    `json:"token_series_id"`
	Title         string    `json:"title"`
	Subtitle      string    `json:"subtitle,omitempty"`
	Description   string    `json:"description"`
	Media         string    `json:"media"`
	AuthorIDs     []string  `json:"author_ids"`
	Collection    string    `json:"collection"`
	PageCount     int       `json:"page_count"`
	Price         string    `json:"price"` // yoctoNEAR
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Status and Pages depend on who is asking. Pages are only listed to
	// readers; Status is nil for anonymous viewers.
	Status *ReadStatus `json:"status"`
	Pages  []Page      `json:"pages,omitempty"`
}

// ReadStatus tells a signed-in viewer whether a chapter is theirs to read.
type ReadStatus string

const (
	StatusRead ReadStatus = "read"
	StatusBuy  ReadStatus = "buy"
)

// Page is the content id of one page image. PageID starts at 1.
type Page struct {
	PageID  int    `json:"page_id"`
	Content string `json:"content"`
}

// NewPages numbers contents from 1 in the given order.
func NewPages(contents []string) []Page {
	pages := make([]Page, 0, len(contents))
	for index, content := range contents {
		pages = append(pages, Page{PageID: index + 1, Content: content})
	}
	return pages
}
