package schema

// MarketTokenTable represents the 'market.token' table
type MarketTokenTable struct {
	Table         string
	TokenID       string
	TokenSeriesID string
	OwnerID       string
	ComicID       string
	ChapterID     string
	Metadata      string
	UpdatedAt     string
}

// MarketToken is the schema definition for market.token
var MarketToken = MarketTokenTable{
	Table:         "market.token",
	TokenID:       "tokenid",
	TokenSeriesID: "tokenseriesid",
	OwnerID:       "ownerid",
	ComicID:       "comicid",
	ChapterID:     "chapterid",
	Metadata:      "metadata",
	UpdatedAt:     "updatedat",
}

func (t MarketTokenTable) Columns() []string {
	return []string{t.TokenID, t.TokenSeriesID, t.OwnerID, t.ComicID, t.ChapterID, t.Metadata, t.UpdatedAt}
}
