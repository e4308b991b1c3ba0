package schema

// MarketTokenSeriesTable represents the 'market.tokenseries' table
type MarketTokenSeriesTable struct {
	Table         string
	TokenSeriesID string
	Metadata      string
	Price         string
	CreatorID     string
	Royalty       string
	ComicID       string
	ChapterID     string
	CreatedAt     string
}

// MarketTokenSeries is the schema definition for market.tokenseries
var MarketTokenSeries = MarketTokenSeriesTable{
	Table:         "market.tokenseries",
	TokenSeriesID: "tokenseriesid",
	Metadata:      "metadata",
	Price:         "price",
	CreatorID:     "creatorid",
	Royalty:       "royalty",
	ComicID:       "comicid",
	ChapterID:     "chapterid",
	CreatedAt:     "createdat",
}

func (t MarketTokenSeriesTable) Columns() []string {
	return []string{t.TokenSeriesID, t.Metadata, t.Price, t.CreatorID, t.Royalty, t.ComicID, t.ChapterID, t.CreatedAt}
}
