package schema

// CoreChapterTable represents the 'core.chapter' table
type CoreChapterTable struct {
	Table         string
	ComicID       string
	ChapterID     string
	TokenSeriesID string
	Title         string
	Subtitle      string
	Description   string
	Media         string
	AuthorIDs     string
	Collection    string
	PageCount     string
	Price         string
	CreatedAt     string
	UpdatedAt     string
}

// CoreChapter is the schema definition for core.chapter
var CoreChapter = CoreChapterTable{
	Table:         "core.chapter",
	ComicID:       "comicid",
	ChapterID:     "chapterid",
	TokenSeriesID: "tokenseriesid",
	Title:         "title",
	Subtitle:      "subtitle",
	Description:   "description",
	Media:         "media",
	AuthorIDs:     "authorids",
	Collection:    "collection",
	PageCount:     "pagecount",
	Price:         "price",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
}

func (t CoreChapterTable) Columns() []string {
	return []string{
		t.ComicID, t.ChapterID, t.TokenSeriesID, t.Title, t.Subtitle, t.Description, t.Media,
		t.AuthorIDs, t.Collection, t.PageCount, t.Price, t.CreatedAt, t.UpdatedAt,
	}
}
