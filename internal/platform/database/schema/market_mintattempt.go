package schema

// MarketMintAttemptTable represents the 'market.mintattempt' table
type MarketMintAttemptTable struct {
	Table         string
	ID            string
	Kind          string
	ComicID       string
	ChapterID     string
	Reference     string
	Params        string
	Status        string
	TokenSeriesID string
	Error         string
	CreatedAt     string
	UpdatedAt     string
}

// MarketMintAttempt is the schema definition for market.mintattempt
var MarketMintAttempt = MarketMintAttemptTable{
	Table:         "market.mintattempt",
	ID:            "id",
	Kind:          "kind",
	ComicID:       "comicid",
	ChapterID:     "chapterid",
	Reference:     "reference",
	Params:        "params",
	Status:        "status",
	TokenSeriesID: "tokenseriesid",
	Error:         "error",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
}

func (t MarketMintAttemptTable) Columns() []string {
	return []string{
		t.ID, t.Kind, t.ComicID, t.ChapterID, t.Reference, t.Params,
		t.Status, t.TokenSeriesID, t.Error, t.CreatedAt, t.UpdatedAt,
	}
}
