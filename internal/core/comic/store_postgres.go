// Copyright (c) 2026 Paras Comic. All rights reserved.
// Author: Troon Technologies LLC

package comic

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/apperr"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/database/schema"
	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/dberr"
)

// # PostgreSQL Repository

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed catalogue store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
FindByID returns the comic with the given id.

Returns:
  - *Comic: The hydrated domain entity
  - error: apperr NotFound if missing
*/
func (repository *PostgresRepository) FindByID(context context.Context, comicID string) (*Comic, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.CoreComic.ComicID, schema.CoreComic.Title, schema.CoreComic.Description,
		schema.CoreComic.Media, schema.CoreComic.AuthorIDs, schema.CoreComic.CreatedAt,
		schema.CoreComic.Table,
		schema.CoreComic.ComicID,
	)

	var comic Comic
	err := repository.pool.QueryRow(context, query, comicID).Scan(
		&comic.ComicID, &comic.Title, &comic.Description,
		&comic.Media, &comic.AuthorIDs, &comic.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("Comic")
	}
	if err != nil {
		return nil, dberr.Wrap(err, "find_comic")
	}

	return &comic, nil
}

// Create inserts a new comic row.
func (repository *PostgresRepository) Create(context context.Context, comic *Comic) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		schema.CoreComic.Table,
		schema.CoreComic.ComicID, schema.CoreComic.Title, schema.CoreComic.Description,
		schema.CoreComic.Media, schema.CoreComic.AuthorIDs, schema.CoreComic.CreatedAt,
	)

	_, err := repository.pool.Exec(context, query,
		comic.ComicID, comic.Title, comic.Description, comic.Media, comic.AuthorIDs, comic.CreatedAt,
	)
	if dberr.IsUniqueViolation(err) {
		return apperr.Conflict(fmt.Sprintf("Comic %s already exists", comic.ComicID))
	}

	return dberr.Wrap(err, "insert_comic")
}

// ChapterExists reports whether (comicID, chapterID) already holds a chapter.
func (repository *PostgresRepository) ChapterExists(context context.Context, comicID string, chapterID int) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)`,
		schema.CoreChapter.Table, schema.CoreChapter.ComicID, schema.CoreChapter.ChapterID,
	)

	var exists bool
	if err := repository.pool.QueryRow(context, query, comicID, chapterID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "chapter_exists")
	}

	return exists, nil
}

/*
FindChapter returns a chapter together with its pages.

Description: Two reads on the pool; pages come back ordered by page id.
*/
func (repository *PostgresRepository) FindChapter(context context.Context, comicID string, chapterID int) (*Chapter, error) {
	chapterTable := schema.CoreChapter
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s::text, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = $2
	`,
		chapterTable.ComicID, chapterTable.ChapterID, chapterTable.TokenSeriesID, chapterTable.Title,
		chapterTable.Subtitle, chapterTable.Description, chapterTable.Media, chapterTable.AuthorIDs,
		chapterTable.Collection, chapterTable.PageCount, chapterTable.Price,
		chapterTable.CreatedAt, chapterTable.UpdatedAt,
		chapterTable.Table,
		chapterTable.ComicID, chapterTable.ChapterID,
	)

	var chapter Chapter
	err := repository.pool.QueryRow(context, query, comicID, chapterID).Scan(
		&chapter.ComicID, &chapter.ChapterID, &chapter.TokenSeriesID, &chapter.Title,
		&chapter.Subtitle, &chapter.Description, &chapter.Media, &chapter.AuthorIDs,
		&chapter.Collection, &chapter.PageCount, &chapter.Price,
		&chapter.CreatedAt, &chapter.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("Chapter")
	}
	if err != nil {
		return nil, dberr.Wrap(err, "find_chapter")
	}

	pageQuery := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s = $1 AND %s = $2 ORDER BY %s`,
		schema.CorePage.PageID, schema.CorePage.Content, schema.CorePage.Table,
		schema.CorePage.ComicID, schema.CorePage.ChapterID, schema.CorePage.PageID,
	)

	rows, err := repository.pool.Query(context, pageQuery, comicID, chapterID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_pages")
	}

	chapter.Pages, err = pgx.CollectRows(rows, pgx.RowToStructByPos[Page])
	if err != nil {
		return nil, dberr.Wrap(err, "scan_pages")
	}

	return &chapter, nil
}

// # Transactional Writes

/*
SaveChapter writes chapter and its pages inside the caller's transaction.

Description: Without replace, an occupied (comic_id, chapter_id) fails with
apperr Conflict through the primary key. With replace, the existing row is
overwritten and its pages are deleted before the new ones are queued.

Parameters:
  - context: context.Context
  - tx: pgx.Tx owned by the caller
  - chapter: *Chapter (Pages are written when non-empty)
  - replace: bool

Returns:
  - error: apperr Conflict or a wrapped database failure
*/
func SaveChapter(context context.Context, tx pgx.Tx, chapter *Chapter, replace bool) error {
	table := schema.CoreChapter

	onConflict := ""
	if replace {
		onConflict = fmt.Sprintf(`
			ON CONFLICT (%s, %s) DO UPDATE SET
				%s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s,
				%s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s,
				%s = EXCLUDED.%s, %s = EXCLUDED.%s`,
			table.ComicID, table.ChapterID,
			table.TokenSeriesID, table.TokenSeriesID, table.Title, table.Title,
			table.Subtitle, table.Subtitle, table.Description, table.Description,
			table.Media, table.Media, table.AuthorIDs, table.AuthorIDs,
			table.Collection, table.Collection, table.PageCount, table.PageCount,
			table.Price, table.Price, table.UpdatedAt, table.UpdatedAt,
		)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11::numeric, $12, $12)
		%s
	`,
		table.Table,
		table.ComicID, table.ChapterID, table.TokenSeriesID, table.Title, table.Subtitle,
		table.Description, table.Media, table.AuthorIDs, table.Collection, table.PageCount,
		table.Price, table.CreatedAt, table.UpdatedAt,
		onConflict,
	)

	_, err := tx.Exec(context, query,
		chapter.ComicID, chapter.ChapterID, chapter.TokenSeriesID, chapter.Title, chapter.Subtitle,
		chapter.Description, chapter.Media, chapter.AuthorIDs, chapter.Collection, chapter.PageCount,
		chapter.Price, chapter.CreatedAt,
	)
	if dberr.IsUniqueViolation(err) {
		return apperr.Conflict(fmt.Sprintf("Chapter %d of %s already exists", chapter.ChapterID, chapter.ComicID))
	}
	if err != nil {
		return dberr.Wrap(err, "insert_chapter")
	}

	if replace {
		deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
			schema.CorePage.Table, schema.CorePage.ComicID, schema.CorePage.ChapterID,
		)
		if _, err := tx.Exec(context, deleteQuery, chapter.ComicID, chapter.ChapterID); err != nil {
			return dberr.Wrap(err, "delete_pages")
		}
	}

	return insertPages(context, tx, chapter)
}

// insertPages pipelines one INSERT per page.
func insertPages(context context.Context, tx pgx.Tx, chapter *Chapter) error {
	if len(chapter.Pages) == 0 {
		return nil
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4)`,
		schema.CorePage.Table,
		schema.CorePage.ComicID, schema.CorePage.ChapterID, schema.CorePage.PageID, schema.CorePage.Content,
	)

	batch := &pgx.Batch{}
	for _, page := range chapter.Pages {
		batch.Queue(query, chapter.ComicID, chapter.ChapterID, page.PageID, page.Content)
	}

	result := tx.SendBatch(context, batch)
	defer result.Close()

	for i := range chapter.Pages {
		if _, err := result.Exec(); err != nil {
			return dberr.Wrap(err, fmt.Sprintf("insert_page_%d", i+1))
		}
	}

	return nil
}
