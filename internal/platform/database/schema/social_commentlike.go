package schema

// SocialCommentLikeTable represents the 'social.commentlike' table
type SocialCommentLikeTable struct {
	Table     string
	AccountID string
	CommentID string
	Type      string
	IssuedAt  string
	UpdatedAt string
}

// SocialCommentLike is the schema definition for social.commentlike
var SocialCommentLike = SocialCommentLikeTable{
	Table:     "social.commentlike",
	AccountID: "accountid",
	CommentID: "commentid",
	Type:      "type",
	IssuedAt:  "issuedat",
	UpdatedAt: "updatedat",
}
