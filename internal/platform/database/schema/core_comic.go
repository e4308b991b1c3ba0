package schema

// CoreComicTable represents the 'core.comic' table
type CoreComicTable struct {
	Table       string
	ComicID     string
	Title       string
	Description string
	Media       string
	AuthorIDs   string
	CreatedAt   string
}

// CoreComic is the schema definition for core.comic
var CoreComic = CoreComicTable{
	Table:       "core.comic",
	ComicID:     "comicid",
	Title:       "title",
	Description: "description",
	Media:       "media",
	AuthorIDs:   "authorids",
	CreatedAt:   "createdat",
}

func (t CoreComicTable) Columns() []string {
	return []string{t.ComicID, t.Title, t.Description, t.Media, t.AuthorIDs, t.CreatedAt}
}
