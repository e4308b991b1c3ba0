package schema

// SocialCommentTable represents the 'social.comment' table
type SocialCommentTable struct {
	Table     string
	ID        string
	AccountID string
	ComicID   string
	ChapterID string
	Body      string
	Likes     string
	Dislikes  string
	Score     string
	IssuedAt  string
}

// SocialComment is the schema definition for social.comment
var SocialComment = SocialCommentTable{
	Table:     "social.comment",
	ID:        "id",
	AccountID: "accountid",
	ComicID:   "comicid",
	ChapterID: "chapterid",
	Body:      "body",
	Likes:     "likes",
	Dislikes:  "dislikes",
	Score:     "score",
	IssuedAt:  "issuedat",
}

func (t SocialCommentTable) Columns() []string {
	return []string{t.ID, t.AccountID, t.ComicID, t.ChapterID, t.Body, t.Likes, t.Dislikes, t.Score, t.IssuedAt}
}
