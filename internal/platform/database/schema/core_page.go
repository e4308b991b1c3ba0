package schema

// CorePageTable represents the 'core.page' table
type CorePageTable struct {
	Table     string
	ComicID   string
	ChapterID string
	PageID    string
	Content   string
}

// CorePage is the schema definition for core.page
var CorePage = CorePageTable{
	Table:     "core.page",
	ComicID:   "comicid",
	ChapterID: "chapterid",
	PageID:    "pageid",
	Content:   "content",
}

func (t CorePageTable) Columns() []string {
	return []string{t.ComicID, t.ChapterID, t.PageID, t.Content}
}
