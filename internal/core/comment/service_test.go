// Copyright (c) 2026 Paras Comic. All rights reserved.
// Author: Troon Technologies LLC

package comment

import (
	"context"
	"io"
	"log/slog"
	"maps"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/core/comic"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/apperr"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/pkg/pointer"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/pkg/uuid"
)

// # In-memory Store

type voteKey struct{ account, comment string }

type memoryStore struct {
	mu       sync.Mutex
	comments map[string]*Comment
	votes    map[voteKey]*Vote
	writes   int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{comments: map[string]*Comment{}, votes: map[voteKey]*Vote{}}
}

func (store *memoryStore) Create(_ context.Context, comment *Comment) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	copied := *comment
	store.comments[comment.ID] = &copied
	return nil
}

func (store *memoryStore) Find(_ context.Context, filter Filter, skip, limit int) ([]*Comment, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	var out []*Comment
	for _, c := range store.comments {
		if c.ComicID != filter.ComicID {
			continue
		}
		if filter.ChapterID != nil && (c.ChapterID == nil || *c.ChapterID != *filter.ChapterID) {
			continue
		}
		copied := *c
		if vote, ok := store.votes[voteKey{filter.ViewerID, c.ID}]; ok {
			copied.UserLikes = pointer.To(vote.Type)
		}
		out = append(out, &copied)
	}

	sort.Slice(out, func(i, j int) bool {
		ownI, ownJ := out[i].AccountID == filter.ViewerID, out[j].AccountID == filter.ViewerID
		if ownI != ownJ {
			return ownI
		}
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].IssuedAt.After(out[j].IssuedAt)
	})

	if skip >= len(out) {
		return nil, nil
	}
	out = out[skip:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (store *memoryStore) Delete(_ context.Context, accountID, commentID string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	c, ok := store.comments[commentID]
	if !ok || c.AccountID != accountID {
		return apperr.NotFound("Comment")
	}
	delete(store.comments, commentID)
	for key := range store.votes {
		if key.comment == commentID {
			delete(store.votes, key)
		}
	}
	return nil
}

// RunVote holds the store lock for the whole callback and restores a
// snapshot when fn fails.
func (store *memoryStore) RunVote(_ context.Context, fn func(tx VoteTx) error) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	comments := make(map[string]Comment, len(store.comments))
	for id, c := range store.comments {
		comments[id] = *c
	}
	votes := maps.Clone(store.votes)

	if err := fn(store); err != nil {
		for id, c := range comments {
			*store.comments[id] = c
		}
		store.votes = votes
		return err
	}
	return nil
}

func (store *memoryStore) Lock(context.Context, string, string) error { return nil }

func (store *memoryStore) CommentExists(_ context.Context, commentID string) (bool, error) {
	_, ok := store.comments[commentID]
	return ok, nil
}

func (store *memoryStore) CurrentVote(_ context.Context, accountID, commentID string) (VoteType, error) {
	if vote, ok := store.votes[voteKey{accountID, commentID}]; ok {
		return vote.Type, nil
	}
	return VoteNone, nil
}

func (store *memoryStore) SaveVote(_ context.Context, vote *Vote) error {
	store.writes++
	key := voteKey{vote.AccountID, vote.CommentID}
	if existing, ok := store.votes[key]; ok {
		updated := *existing
		updated.Type = vote.Type
		updated.UpdatedAt = vote.UpdatedAt
		store.votes[key] = &updated
		return nil
	}
	copied := *vote
	store.votes[key] = &copied
	return nil
}

func (store *memoryStore) RemoveVote(_ context.Context, accountID, commentID string) error {
	store.writes++
	delete(store.votes, voteKey{accountID, commentID})
	return nil
}

func (store *memoryStore) AddDelta(_ context.Context, commentID string, delta Delta) error {
	store.writes++
	c := store.comments[commentID]
	c.Likes += delta.Likes
	c.Dislikes += delta.Dislikes
	c.Score += delta.Score
	return nil
}

type staticCatalog struct{}

func (staticCatalog) GetComic(_ context.Context, comicID string) (*comic.Comic, error) {
	if comicID != "paradigm" {
		return nil, apperr.NotFound("Comic")
	}
	return &comic.Comic{ComicID: comicID, Title: "Paradigm"}, nil
}

func newTestService(store *memoryStore) *Service {
	service := NewService(store, staticCatalog{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	service.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return service
}

func seedComment(t *testing.T, service *Service, author string) *Comment {
	t.Helper()
	c, err := service.Create(context.Background(), author, "paradigm", pointer.To(1), "Great chapter")
	require.NoError(t, err)
	return c
}

// # Transition

func TestTransition(t *testing.T) {
	tests := []struct {
		from    VoteType
		action  Action
		to      VoteType
		delta   Delta
		changed bool
	}{
		{VoteNone, ActionLike, VoteLikes, Delta{Likes: 1, Score: 1}, true},
		{VoteLikes, ActionLike, VoteLikes, Delta{}, false},
		{VoteDislikes, ActionLike, VoteLikes, Delta{Likes: 1, Dislikes: -1, Score: 2}, true},

		{VoteNone, ActionDislike, VoteDislikes, Delta{Dislikes: 1, Score: -1}, true},
		{VoteLikes, ActionDislike, VoteDislikes, Delta{Likes: -1, Dislikes: 1, Score: -2}, true},
		{VoteDislikes, ActionDislike, VoteDislikes, Delta{}, false},

		{VoteNone, ActionUnlike, VoteNone, Delta{}, false},
		{VoteLikes, ActionUnlike, VoteNone, Delta{Likes: -1, Score: -1}, true},
		{VoteDislikes, ActionUnlike, VoteDislikes, Delta{}, false},

		{VoteNone, ActionUndislike, VoteNone, Delta{}, false},
		{VoteLikes, ActionUndislike, VoteLikes, Delta{}, false},
		{VoteDislikes, ActionUndislike, VoteNone, Delta{Dislikes: -1, Score: 1}, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.action)+"_from_"+string(tt.from), func(t *testing.T) {
			to, delta, changed := Transition(tt.from, tt.action)

			assert.Equal(t, tt.to, to)
			assert.Equal(t, tt.delta, delta)
			assert.Equal(t, tt.changed, changed)
			assert.Equal(t, delta.Likes-delta.Dislikes, delta.Score)
		})
	}
}

// # Votes

func TestVote_Scenario(t *testing.T) {
	store := newMemoryStore()
	service := newTestService(store)
	ctx := context.Background()
	c1 := seedComment(t, service, "budi.testnet")

	steps := []struct {
		action                 Action
		likes, dislikes, score int
	}{
		{ActionLike, 1, 0, 1},
		{ActionLike, 1, 0, 1},
		{ActionDislike, 0, 1, -1},
		{ActionUnlike, 0, 1, -1},
		{ActionLike, 1, 0, 1},
		{ActionUndislike, 1, 0, 1},
		{ActionUnlike, 0, 0, 0},
	}

	for i, step := range steps {
		ok, err := service.Vote(ctx, "afiq.testnet", c1.ID, step.action)
		require.NoError(t, err, "step %d", i)
		require.True(t, ok)

		stored := store.comments[c1.ID]
		assert.Equal(t, step.likes, stored.Likes, "likes after step %d (%s)", i, step.action)
		assert.Equal(t, step.dislikes, stored.Dislikes, "dislikes after step %d (%s)", i, step.action)
		assert.Equal(t, step.score, stored.Score, "score after step %d (%s)", i, step.action)
	}

	assert.Empty(t, store.votes)
}

func TestVote_ScoreMatchesVotes(t *testing.T) {
	store := newMemoryStore()
	service := newTestService(store)
	ctx := context.Background()
	c1 := seedComment(t, service, "budi.testnet")

	accounts := []string{"a.testnet", "b.testnet", "c.testnet", "d.testnet"}
	actions := []Action{ActionLike, ActionDislike, ActionUnlike, ActionLike, ActionUndislike, ActionDislike, ActionDislike}

	for i := 0; i < 40; i++ {
		account := accounts[i%len(accounts)]
		action := actions[(i*3)%len(actions)]
		_, err := service.Vote(ctx, account, c1.ID, action)
		require.NoError(t, err)
	}

	likes, dislikes := 0, 0
	for _, vote := range store.votes {
		switch vote.Type {
		case VoteLikes:
			likes++
		case VoteDislikes:
			dislikes++
		}
	}

	stored := store.comments[c1.ID]
	assert.Equal(t, likes, stored.Likes)
	assert.Equal(t, dislikes, stored.Dislikes)
	assert.Equal(t, stored.Likes-stored.Dislikes, stored.Score)
}

func TestVote_NoOpWritesNothing(t *testing.T) {
	store := newMemoryStore()
	service := newTestService(store)
	c1 := seedComment(t, service, "budi.testnet")

	ok, err := service.Unlikes(context.Background(), "afiq.testnet", c1.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = service.Undislikes(context.Background(), "afiq.testnet", c1.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Zero(t, store.writes)
}

func TestVote_UnlikeKeepsDislike(t *testing.T) {
	store := newMemoryStore()
	service := newTestService(store)
	c1 := seedComment(t, service, "budi.testnet")
	ctx := context.Background()

	_, err := service.Dislikes(ctx, "afiq.testnet", c1.ID)
	require.NoError(t, err)
	_, err = service.Unlikes(ctx, "afiq.testnet", c1.ID)
	require.NoError(t, err)

	assert.Equal(t, VoteDislikes, store.votes[voteKey{"afiq.testnet", c1.ID}].Type)
	assert.Equal(t, -1, store.comments[c1.ID].Score)
}

func TestVote_KeepsIssuedAt(t *testing.T) {
	store := newMemoryStore()
	service := newTestService(store)
	c1 := seedComment(t, service, "budi.testnet")
	ctx := context.Background()

	_, err := service.Likes(ctx, "afiq.testnet", c1.ID)
	require.NoError(t, err)
	first := *store.votes[voteKey{"afiq.testnet", c1.ID}]

	_, err = service.Dislikes(ctx, "afiq.testnet", c1.ID)
	require.NoError(t, err)
	second := store.votes[voteKey{"afiq.testnet", c1.ID}]

	assert.Equal(t, first.IssuedAt, second.IssuedAt)
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt))
}

func TestVote_ConcurrentLikesCountOnce(t *testing.T) {
	store := newMemoryStore()
	service := newTestService(store)
	c1 := seedComment(t, service, "budi.testnet")

	var clockMu sync.Mutex
	base := service.now
	service.now = func() time.Time {
		clockMu.Lock()
		defer clockMu.Unlock()
		return base()
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.Likes(context.Background(), "afiq.testnet", c1.ID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, store.comments[c1.ID].Likes)
	assert.Equal(t, 1, store.comments[c1.ID].Score)
}

func TestVote_Errors(t *testing.T) {
	service := newTestService(newMemoryStore())
	ctx := context.Background()

	_, err := service.Likes(ctx, "afiq.testnet", uuid.New())
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	_, err = service.Likes(ctx, "afiq.testnet", "not-a-uuid")
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	_, err = service.Vote(ctx, "afiq.testnet", uuid.New(), Action("boost"))
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	_, err = service.Likes(ctx, "", uuid.New())
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

// # Create, Find & Delete

func TestCreate_SanitizesBody(t *testing.T) {
	service := newTestService(newMemoryStore())

	c, err := service.Create(context.Background(), "afiq.testnet", "paradigm", nil, "  <b>Great</b> chapter<script>alert(1)</script> ")
	require.NoError(t, err)

	assert.Equal(t, "Great chapter", c.Body)
	assert.Zero(t, c.Likes)
	assert.Zero(t, c.Score)
	assert.True(t, uuid.Valid(c.ID))
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name      string
		comicID   string
		chapterID *int
		body      string
		code      string
	}{
		{"markup_only", "paradigm", nil, "<img src=x>", apperr.CodeValidation},
		{"too_long", "paradigm", nil, strings.Repeat("あ", 2001), apperr.CodeValidation},
		{"bad_chapter", "paradigm", pointer.To(0), "hi", apperr.CodeValidation},
		{"no_comic", "", nil, "hi", apperr.CodeValidation},
		{"unknown_comic", "missing", nil, "hi", apperr.CodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemoryStore()
			_, err := newTestService(store).Create(context.Background(), "afiq.testnet", tt.comicID, tt.chapterID, tt.body)

			assert.True(t, apperr.HasCode(err, tt.code))
			assert.Empty(t, store.comments)
		})
	}
}

func TestCreate_MaxLengthCountsRunes(t *testing.T) {
	service := newTestService(newMemoryStore())

	_, err := service.Create(context.Background(), "afiq.testnet", "paradigm", nil, strings.Repeat("あ", 2000))

	assert.NoError(t, err)
}

func TestFind_Ordering(t *testing.T) {
	store := newMemoryStore()
	service := newTestService(store)
	ctx := context.Background()

	older := seedComment(t, service, "budi.testnet")
	own := seedComment(t, service, "afiq.testnet")
	popular := seedComment(t, service, "citra.testnet")
	newer := seedComment(t, service, "dewi.testnet")

	_, err := service.Likes(ctx, "budi.testnet", popular.ID)
	require.NoError(t, err)
	_, err = service.Likes(ctx, "afiq.testnet", popular.ID)
	require.NoError(t, err)

	comments, err := service.Find(ctx, Filter{ComicID: "paradigm", ChapterID: pointer.To(1), ViewerID: "afiq.testnet"}, 0, 10)
	require.NoError(t, err)

	ids := make([]string, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{own.ID, popular.ID, newer.ID, older.ID}, ids)

	require.NotNil(t, comments[1].UserLikes)
	assert.Equal(t, VoteLikes, *comments[1].UserLikes)
	assert.Nil(t, comments[0].UserLikes)
}

func TestFind_Validation(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		skip   int
		limit  int
	}{
		{"no_comic", Filter{}, 0, 10},
		{"negative_skip", Filter{ComicID: "paradigm"}, -1, 10},
		{"negative_limit", Filter{ComicID: "paradigm"}, 0, -5},
		{"zero_limit", Filter{ComicID: "paradigm"}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemoryStore()
			_, err := newTestService(store).Find(context.Background(), tt.filter, tt.skip, tt.limit)

			assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
		})
	}
}

func TestDelete(t *testing.T) {
	store := newMemoryStore()
	service := newTestService(store)
	ctx := context.Background()
	c1 := seedComment(t, service, "budi.testnet")

	_, err := service.Likes(ctx, "afiq.testnet", c1.ID)
	require.NoError(t, err)

	err = service.Delete(ctx, "afiq.testnet", c1.ID)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
	assert.Contains(t, store.comments, c1.ID)

	require.NoError(t, service.Delete(ctx, "budi.testnet", c1.ID))
	assert.NotContains(t, store.comments, c1.ID)
	assert.Empty(t, store.votes)

	err = service.Delete(ctx, "budi.testnet", c1.ID)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}
