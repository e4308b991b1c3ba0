package schema

// MarketAccessTable represents the 'market.access' table
type MarketAccessTable struct {
	Table     string
	AccountID string
	ComicID   string
	ChapterID string
	TokenIDs  string
	UpdatedAt string
}

// MarketAccess is the schema definition for market.access
var MarketAccess = MarketAccessTable{
	Table:     "market.access",
	AccountID: "accountid",
	ComicID:   "comicid",
	ChapterID: "chapterid",
	TokenIDs:  "tokenids",
	UpdatedAt: "updatedat",
}

func (t MarketAccessTable) Columns() []string {
	return []string{t.AccountID, t.ComicID, t.ChapterID, t.TokenIDs, t.UpdatedAt}
}
