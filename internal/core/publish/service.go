// Copyright (c) 2026 Paras Comic. All rights reserved.
// Author: Troon Technologies LLC

package publish

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/core/comic"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/ledger"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/apperr"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/constants"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/validate"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/pkg/pagination"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/pkg/pointer"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/pkg/slice"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/pkg/slug"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/pkg/uuid"
)

// MaxRoyaltyPercent is the highest royalty a creator may request.
const MaxRoyaltyPercent = 90

// Options carries the ledger identity used for every mint.
type Options struct {
	OwnerID    string
	ContractID string
	Gas        string
	Deposit    string // yoctoNEAR
}

// # Service Layer

// Service orchestrates upload, mint and persist for new token series.
type Service struct {
	store    Store
	catalog  Catalog
	uploader Uploader
	ledger   ledger.Client
	retry    ledger.Retry
	options  Options
	logger   *slog.Logger

	now   func() time.Time
	newID func() string
}

// NewService constructs a new publishing [Service].
func NewService(
	store Store,
	catalog Catalog,
	uploader Uploader,
	client ledger.Client,
	retry ledger.Retry,
	options Options,
	logger *slog.Logger,
) *Service {
	return &Service{
		store:    store,
		catalog:  catalog,
		uploader: uploader,
		ledger:   client,
		retry:    retry,
		options:  options,
		logger:   logger,
		now:      time.Now,
		newID:    uuid.New,
	}
}

// mint is the normalized form of both inputs.
type mint struct {
	kind      Kind
	metadata  Metadata
	title     string
	media     string
	copies    *int
	royalty   *float64
	price     string
	chapter   *comic.Chapter
	replace   bool
	creatorID string
}

/*
CreateSeries publishes a standalone collectible of a comic.

Returns:
  - *Result: The new series id, mint params and ledger outcome
  - error: Validation, LEDGER_ERROR or PERSISTENCE_ERROR
*/
func (service *Service) CreateSeries(ctx context.Context, input SeriesInput) (*Result, error) {

	input.AuthorIDs = compactAuthors(input.AuthorIDs)
	if input.Price == "" {
		input.Price = "0"
	}

	validator := &validate.Validator{}
	validator.Required(FieldComicID, input.ComicID)
	validator.Required(FieldTitle, input.Title).MaxLen(FieldTitle, input.Title, 200)
	validateCommon(validator, input.Description, input.Media, input.Collection, input.CreatorID, input.AuthorIDs, input.Copies, input.Royalty, input.Price)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	issuedAt := service.now().UTC()

	return service.publish(ctx, &mint{
		kind: KindCollectible,
		metadata: Metadata{
			ComicID:      input.ComicID,
			Description:  input.Description,
			CreatorID:    input.CreatorID,
			AuthorIDs:    input.AuthorIDs,
			Collection:   input.Collection,
			CollectionID: slug.From(input.Collection),
			IssuedAt:     issuedAt,
		},
		title:     input.Title,
		media:     input.Media,
		copies:    input.Copies,
		royalty:   input.Royalty,
		price:     input.Price,
		creatorID: input.CreatorID,
	})
}

/*
CreateChapterSeries publishes a chapter of a registered comic.

Description: The title is "<comic title> Ch.<id>" with " : <subtitle>"
appended when a subtitle is given. An existing chapter is a conflict unless
Force is set, in which case the chapter row and its pages are replaced.

Returns:
  - *Result: The new series id, mint params and ledger outcome
  - error: Validation, NotFound, Conflict, LEDGER_ERROR or PERSISTENCE_ERROR
*/
func (service *Service) CreateChapterSeries(ctx context.Context, input ChapterInput) (*Result, error) {

	input.AuthorIDs = compactAuthors(input.AuthorIDs)
	if input.Price == "" {
		input.Price = "0"
	}
	if input.PageCount == 0 {
		input.PageCount = len(input.PageContents)
	}

	validator := &validate.Validator{}
	validator.Required(FieldComicID, input.ComicID)
	validator.Positive(FieldChapterID, input.ChapterID)
	validator.NonNegative(FieldPageCount, input.PageCount)
	validator.Custom(FieldPageContents,
		len(input.PageContents) > 0 && len(input.PageContents) != input.PageCount,
		"Must contain page_count entries")
	validator.Custom(FieldPageContents,
		slices.Contains(slice.Map(input.PageContents, strings.TrimSpace), ""),
		"Must not contain empty entries")
	validateCommon(validator, input.Description, input.Media, input.Collection, input.CreatorID, input.AuthorIDs, input.Copies, input.Royalty, input.Price)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	parent, err := service.catalog.GetComic(ctx, input.ComicID)
	if err != nil {
		return nil, err
	}

	if !input.Force {
		exists, err := service.catalog.ChapterExists(ctx, input.ComicID, input.ChapterID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperr.Conflict(fmt.Sprintf("Chapter %d of %s already exists", input.ChapterID, input.ComicID))
		}
	}

	title := ChapterTitle(parent.Title, input.ChapterID, input.Subtitle)
	issuedAt := service.now().UTC()

	return service.publish(ctx, &mint{
		kind: KindChapter,
		metadata: Metadata{
			ComicID:      input.ComicID,
			ChapterID:    pointer.To(input.ChapterID),
			Description:  input.Description,
			CreatorID:    input.CreatorID,
			AuthorIDs:    input.AuthorIDs,
			Collection:   input.Collection,
			CollectionID: slug.From(input.Collection),
			Subtitle:     input.Subtitle,
			Blurhash:     input.Blurhash,
			PageCount:    pointer.To(input.PageCount),
			IssuedAt:     issuedAt,
		},
		title:   title,
		media:   input.Media,
		copies:  input.Copies,
		royalty: input.Royalty,
		price:   input.Price,
		chapter: &comic.Chapter{
			ComicID:     input.ComicID,
			ChapterID:   input.ChapterID,
			Title:       title,
			Subtitle:    input.Subtitle,
			Description: input.Description,
			Media:       input.Media,
			AuthorIDs:   input.AuthorIDs,
			Collection:  input.Collection,
			PageCount:   input.PageCount,
			Price:       input.Price,
			CreatedAt:   issuedAt,
			UpdatedAt:   issuedAt,
			Pages:       comic.NewPages(input.PageContents),
		},
		replace:   input.Force,
		creatorID: input.CreatorID,
	})
}

// ListOrphaned returns mints that reached the ledger but have no local record.
func (service *Service) ListOrphaned(ctx context.Context, skip, limit int) ([]*MintAttempt, error) {
	return service.ListAttempts(ctx, AttemptOrphaned, skip, limit)
}

/*
ListAttempts returns attempts in the given status, oldest first.

Description: A pending attempt older than the retry budget belongs to a
process that stopped mid-publish; its ledger state is unknown and it needs
the same repair as an orphan.
*/
func (service *Service) ListAttempts(ctx context.Context, status AttemptStatus, skip, limit int) ([]*MintAttempt, error) {
	validator := &validate.Validator{}
	validator.OneOf(FieldStatus, string(status),
		string(AttemptPending), string(AttemptMinted), string(AttemptFailed), string(AttemptOrphaned))
	validator.NonNegative(pagination.QuerySkip, skip)
	validator.Positive(pagination.QueryLimit, limit)
	if err := validator.Err(); err != nil {
		return nil, err
	}
	return service.store.ListAttempts(ctx, status, skip, limit)
}

// ListSeries returns published series, newest first.
func (service *Service) ListSeries(ctx context.Context, filter SeriesFilter, skip, limit int) ([]*Record, error) {
	validator := &validate.Validator{}
	if filter.Kind != "" {
		validator.OneOf(FieldCategory, string(filter.Kind), string(KindChapter), string(KindCollectible))
	}
	validator.NonNegative(pagination.QuerySkip, skip)
	validator.Positive(pagination.QueryLimit, limit)
	if err := validator.Err(); err != nil {
		return nil, err
	}
	return service.store.ListSeries(ctx, filter, skip, limit)
}

// # Pipeline

func (service *Service) publish(ctx context.Context, m *mint) (*Result, error) {

	logger := service.logger.With(
		slog.String("comic_id", m.metadata.ComicID),
		slog.String("kind", string(m.kind)),
	)

	// 1. Reference blob
	reference, err := service.uploader.UploadJSON(ctx, m.metadata)
	if err != nil {
		logger.ErrorContext(ctx, "metadata_upload_failed", slog.Any("error", err))
		return nil, err
	}

	params := MintParams{
		TokenMetadata: TokenMetadata{
			Title:     m.title,
			Media:     m.media,
			Reference: reference,
			Copies:    m.copies,
		},
		Price:     m.price,
		CreatorID: m.creatorID,
		Royalty:   Royalty(m.creatorID, m.royalty),
	}

	// 2. Pending attempt
	now := service.now().UTC()
	attempt := &MintAttempt{
		ID:        service.newID(),
		Kind:      m.kind,
		ComicID:   m.metadata.ComicID,
		ChapterID: m.metadata.ChapterID,
		Reference: reference,
		Params:    params,
		Status:    AttemptPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := service.store.CreateAttempt(ctx, attempt); err != nil {
		return nil, err
	}

	// 3. Ledger call with bounded retry. From here on the caller going away
	// must not cut the loop short: a call in flight may already have minted.
	mintCtx := context.WithoutCancel(ctx)

	call := ledger.FunctionCall{
		OwnerID:    service.options.OwnerID,
		ContractID: service.options.ContractID,
		Method:     constants.MethodCreateSeries,
		Args:       params,
		Gas:        service.options.Gas,
		Deposit:    service.options.Deposit,
	}

	policy := service.retry
	policy.OnRetry = func(attemptNo int, delay time.Duration, err error) {
		logger.WarnContext(ctx, "ledger_call_retry",
			slog.Int("attempt", attemptNo),
			slog.Duration("delay", delay),
			slog.Any("error", err),
		)
	}

	var outcome *ledger.Outcome
	err = policy.Do(mintCtx, func(ctx context.Context, _ int) error {
		result, callErr := service.ledger.Call(ctx, call)
		if callErr != nil {
			return callErr
		}
		outcome = result
		return nil
	})
	if err != nil {
		service.markAttempt(mintCtx, logger, attempt.ID, AttemptFailed, nil, err)
		logger.ErrorContext(ctx, "ledger_mint_failed", slog.String("attempt_id", attempt.ID), slog.Any("error", err))
		return nil, apperr.LedgerUnavailable(err)
	}

	var created struct {
		TokenSeriesID string `json:"token_series_id"`
	}
	if err := ledger.DecodeSuccessValue(outcome, &created); err != nil || created.TokenSeriesID == "" {
		if err == nil {
			err = errors.WithMessage(ledger.ErrCallFailed, "empty token_series_id")
		}
		service.markAttempt(mintCtx, logger, attempt.ID, AttemptOrphaned, nil, err)
		logger.ErrorContext(ctx, "ledger_result_unreadable",
			slog.String("attempt_id", attempt.ID),
			slog.String("tx_hash", outcome.TransactionHash()),
			slog.Any("error", err),
		)
		return nil, apperr.LedgerUnavailable(err)
	}

	// 4. Local record
	record := &Record{
		TokenSeriesID: created.TokenSeriesID,
		Metadata:      SeriesMetadata{Metadata: m.metadata, TokenMetadata: params.TokenMetadata},
		Price:         params.Price,
		CreatorID:     params.CreatorID,
		Royalty:       params.Royalty,
		ComicID:       m.metadata.ComicID,
		ChapterID:     m.metadata.ChapterID,
		CreatedAt:     service.now().UTC(),
	}
	if m.chapter != nil {
		m.chapter.TokenSeriesID = created.TokenSeriesID
	}

	err = service.store.Persist(mintCtx, PersistRequest{
		AttemptID: attempt.ID,
		Record:    record,
		Chapter:   m.chapter,
		Replace:   m.replace,
	})
	if err != nil {
		service.markAttempt(mintCtx, logger, attempt.ID, AttemptOrphaned, pointer.To(created.TokenSeriesID), err)
		logger.ErrorContext(ctx, "series_persist_failed",
			slog.String("attempt_id", attempt.ID),
			slog.String("token_series_id", created.TokenSeriesID),
			slog.Any("error", err),
		)
		return nil, apperr.Persistence(err)
	}

	logger.InfoContext(ctx, "series_minted",
		slog.String("token_series_id", created.TokenSeriesID),
		slog.String("attempt_id", attempt.ID),
		slog.String("tx_hash", outcome.TransactionHash()),
	)

	return &Result{
		TokenSeriesID: created.TokenSeriesID,
		Params:        params,
		Reference:     reference,
		AttemptID:     attempt.ID,
		Outcome:       outcome,
	}, nil
}

func (service *Service) markAttempt(ctx context.Context, logger *slog.Logger, attemptID string, status AttemptStatus, tokenSeriesID *string, cause error) {
	err := service.store.MarkAttempt(ctx, attemptID, status, tokenSeriesID, cause.Error())
	if err != nil {
		logger.ErrorContext(ctx, "mint_attempt_update_failed",
			slog.String("attempt_id", attemptID),
			slog.String("status", string(status)),
			slog.Any("error", err),
		)
	}
}

// # Helpers

// ChapterTitle derives the token title of a chapter.
func ChapterTitle(comicTitle string, chapterID int, subtitle string) string {
	if subtitle == "" {
		return fmt.Sprintf("%s Ch.%d", comicTitle, chapterID)
	}
	return fmt.Sprintf("%s Ch.%d : %s", comicTitle, chapterID, subtitle)
}

// Royalty converts a percentage into basis points paid to the creator.
// A nil percentage means no royalty.
func Royalty(creatorID string, percent *float64) map[string]int {
	if percent == nil {
		return nil
	}
	return map[string]int{creatorID: int(math.Round(*percent * 100))}
}

func compactAuthors(ids []string) []string {
	return slice.Filter(slice.Map(ids, strings.TrimSpace), func(id string) bool { return id != "" })
}

func validateCommon(
	validator *validate.Validator,
	description, media, collection, creatorID string,
	authorIDs []string,
	copies *int,
	royalty *float64,
	price string,
) {
	validator.Required(FieldDescription, description)
	validator.Required(FieldMedia, media)
	validator.Required(FieldCollection, collection).MaxLen(FieldCollection, collection, 100)
	validator.Required(FieldCreatorID, creatorID).Account(FieldCreatorID, creatorID)
	validator.Custom(FieldAuthorIDs, len(authorIDs) == 0, "At least one author is required")
	validator.Custom(FieldCollection, collection != "" && slug.From(collection) == "", "Must contain letters or digits")
	validator.Custom(FieldPrice, !ledger.IsAmount(price), "Must be a non-negative integer amount")
	if copies != nil {
		validator.Positive(FieldCopies, *copies)
	}
	if royalty != nil {
		validator.Between(FieldRoyalty, *royalty, 0, MaxRoyaltyPercent)
	}
}
