// Copyright (c) 2026 Paras Comic. All rights reserved.
// Author: Troon Technologies LLC

/*
Package comment manages comic comments and their like/dislike votes.

Each (account, comment) pair is in one of three vote states. A vote action
moves it between states and yields a [Delta] that is added to the comment's
counters in the same transaction as the vote row change. Counters are never
recounted from the vote rows.

# Transitions

	action     NONE                LIKED               DISLIKED
	like       LIKED  (+1)         no-op               LIKED  (+2)
	dislike    DISLIKED (-1)       DISLIKED (-2)       no-op
	unlike     no-op               NONE   (-1)         no-op
	undislike  no-op               no-op               NONE   (+1)
*/
package comment

import (
	"time"
)

// # Vote State

// VoteType is the stored vote of one account on one comment. VoteNone means no row.
type VoteType string

const (
	VoteNone     VoteType = ""
	VoteLikes    VoteType = "likes"
	VoteDislikes VoteType = "dislikes"
)

// Action is a vote request. The values double as URL segments.
type Action string

const (
	ActionLike      Action = "likes"
	ActionUnlike    Action = "unlikes"
	ActionDislike   Action = "dislikes"
	ActionUndislike Action = "undislikes"
)

// Actions lists every valid [Action].
var Actions = []Action{ActionLike, ActionUnlike, ActionDislike, ActionUndislike}

// Delta is the change applied to a comment's counters.
type Delta struct {
	Likes    int
	Dislikes int
	Score    int
}

/*
Transition computes the next vote state for action from current.

Returns:
  - VoteType: The state after the action
  - Delta: The counter change (Score is always Likes - Dislikes)
  - bool: false when the action is a no-op and nothing must be written
*/
func Transition(current VoteType, action Action) (VoteType, Delta, bool) {
	switch action {
	case ActionLike:
		switch current {
		case VoteNone:
			return VoteLikes, Delta{Likes: 1, Score: 1}, true
		case VoteDislikes:
			return VoteLikes, Delta{Likes: 1, Dislikes: -1, Score: 2}, true
		}
	case ActionDislike:
		switch current {
		case VoteNone:
			return VoteDislikes, Delta{Dislikes: 1, Score: -1}, true
		case VoteLikes:
			return VoteDislikes, Delta{Likes: -1, Dislikes: 1, Score: -2}, true
		}
	case ActionUnlike:
		if current == VoteLikes {
			return VoteNone, Delta{Likes: -1, Score: -1}, true
		}
	case ActionUndislike:
		if current == VoteDislikes {
			return VoteNone, Delta{Dislikes: -1, Score: 1}, true
		}
	}

	return current, Delta{}, false
}

// # Entities

// Comment is a comment together with its vote counters.
type Comment struct {
	ID        string    `json:"_id"`
	AccountID string    `json:"account_id"`
	ComicID   string    `json:"comic_id"`
	ChapterID *int      `json:"chapter_id,omitempty"`
	Body      string    `json:"body"`
	Likes     int       `json:"likes"`
	Dislikes  int       `json:"dislikes"`
	Score     int       `json:"score"`
	IssuedAt  time.Time `json:"issued_at"`

	// UserLikes is the viewer's own vote, null when none or anonymous.
	UserLikes *VoteType `json:"user_likes"`
}

// Vote is one account's current vote on a comment.
type Vote struct {
	AccountID string
	CommentID string
	Type      VoteType
	IssuedAt  time.Time
	UpdatedAt time.Time
}

// Filter selects the comments of a comic, optionally narrowed to one chapter.
type Filter struct {
	ComicID   string
	ChapterID *int
	ViewerID  string // own comments first, drives user_likes
}

// # Field Identifiers

const (
	FieldCommentID = "comment_id"
	FieldComicID   = "comic_id"
	FieldChapterID = "chapter_id"
	FieldBody      = "body"
	FieldAccountID = "account_id"
	FieldAction    = "action"
)
