// Copyright (c) 2026 Mecra. All rights reserved.
// Author: umut.kirgoz@posteo.net

package entry

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/umutkirgoz/mecra/internal/platform/apperr"
	"github.com/umutkirgoz/mecra/pkg/pagination"
)

// PostgresRepository implements the [Repository] interface using pgx.
//
// # Aggregates
//
// Vote scores and favorite counts are computed with correlated subqueries at
// read time. Entry volumes per title are modest, and this keeps writes to the
// vote/favorite tables free of counter maintenance.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const entryColumns = `
	e.id, e.title_id, e.author_id, e.content, e.created_at, e.updated_at, e.deleted_at,
	COALESCE((SELECT SUM(v.value) FROM vote v WHERE v.entry_id = e.id), 0) AS vote_score,
	(SELECT COUNT(*) FROM favorite f WHERE f.entry_id = e.id) AS favorite_count`

// scanEntry reads one entry row (with aggregates) from a pgx row scanner.
func scanEntry(row pgx.Row) (*Entry, error) {
	entry := &Entry{}
	err := row.Scan(
		&entry.ID,
		&entry.TitleID,
		&entry.AuthorID,
		&entry.Content,
		&entry.CreatedAt,
		&entry.UpdatedAt,
		&entry.DeletedAt,
		&entry.VoteScore,
		&entry.FavoriteCount,
	)
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// Create persists a new entry record.
func (repository *PostgresRepository) Create(ctx context.Context, entry *Entry) error {
	const query = `
		INSERT INTO entry (title_id, author_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	err := repository.pool.QueryRow(ctx, query,
		entry.TitleID,
		entry.AuthorID,
		entry.Content,
	).Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)

	if err != nil {
		return fmt.Errorf("postgres_entry_repo_create_failed: %w", err)
	}

	return nil
}

// FindByID retrieves an entry by ID, regardless of deletion state.
func (repository *PostgresRepository) FindByID(ctx context.Context, id int64) (*Entry, error) {
	query := fmt.Sprintf(`SELECT %s FROM entry e WHERE e.id = $1`, entryColumns)

	entry, err := scanEntry(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Entry")
		}
		return nil, fmt.Errorf("postgres_entry_repo_find_by_id_failed: %w", err)
	}

	return entry, nil
}

// UpdateContent replaces the content of a live entry.
func (repository *PostgresRepository) UpdateContent(ctx context.Context, id int64, content string) error {
	const query = `
		UPDATE entry
		SET content = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	return repository.execExpectingRow(ctx, query, "postgres_entry_repo_update_failed", id, content)
}

// SoftDelete stamps DeletedAt on a live entry.
func (repository *PostgresRepository) SoftDelete(ctx context.Context, id int64) error {
	const query = `
		UPDATE entry
		SET deleted_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	return repository.execExpectingRow(ctx, query, "postgres_entry_repo_soft_delete_failed", id)
}

// Recover clears DeletedAt on a soft-deleted entry.
func (repository *PostgresRepository) Recover(ctx context.Context, id int64) error {
	const query = `
		UPDATE entry
		SET deleted_at = NULL, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NOT NULL`

	return repository.execExpectingRow(ctx, query, "postgres_entry_repo_recover_failed", id)
}

// HardDelete removes the row permanently. Votes and favorites cascade via
// foreign keys.
func (repository *PostgresRepository) HardDelete(ctx context.Context, id int64) error {
	const query = `DELETE FROM entry WHERE id = $1`

	return repository.execExpectingRow(ctx, query, "postgres_entry_repo_hard_delete_failed", id)
}

// MoveToTitle reassigns a live entry to a different title.
func (repository *PostgresRepository) MoveToTitle(ctx context.Context, id, titleID int64) error {
	const query = `
		UPDATE entry
		SET title_id = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	return repository.execExpectingRow(ctx, query, "postgres_entry_repo_move_failed", id, titleID)
}

// ListByTitle returns a page of entries under a title in chronological order.
func (repository *PostgresRepository) ListByTitle(ctx context.Context, titleID int64, params pagination.Params, includeDeleted bool) ([]*Entry, int, error) {
	const countQuery = `
		SELECT COUNT(*) FROM entry e
		WHERE e.title_id = $1 AND ($2 OR e.deleted_at IS NULL)`

	var total int
	if err := repository.pool.QueryRow(ctx, countQuery, titleID, includeDeleted).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_entry_repo_count_failed: %w", err)
	}

	listQuery := fmt.Sprintf(`
		SELECT %s FROM entry e
		WHERE e.title_id = $1 AND ($2 OR e.deleted_at IS NULL)
		ORDER BY e.created_at ASC
		LIMIT $3 OFFSET $4`, entryColumns)

	return repository.queryPage(ctx, listQuery, total, params.Limit, titleID, includeDeleted, params.Limit, params.Offset())
}

// ListBin returns a page of the author's soft-deleted entries.
func (repository *PostgresRepository) ListBin(ctx context.Context, authorID int64, params pagination.Params) ([]*Entry, int, error) {
	const countQuery = `
		SELECT COUNT(*) FROM entry e
		WHERE e.author_id = $1 AND e.deleted_at IS NOT NULL`

	var total int
	if err := repository.pool.QueryRow(ctx, countQuery, authorID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_entry_repo_bin_count_failed: %w", err)
	}

	listQuery := fmt.Sprintf(`
		SELECT %s FROM entry e
		WHERE e.author_id = $1 AND e.deleted_at IS NOT NULL
		ORDER BY e.deleted_at DESC
		LIMIT $2 OFFSET $3`, entryColumns)

	return repository.queryPage(ctx, listQuery, total, params.Limit, authorID, params.Limit, params.Offset())
}

// PurgeBin permanently removes all of the author's soft-deleted entries.
func (repository *PostgresRepository) PurgeBin(ctx context.Context, authorID int64) (int64, error) {
	const query = `
		DELETE FROM entry
		WHERE author_id = $1 AND deleted_at IS NOT NULL`

	tag, err := repository.pool.Exec(ctx, query, authorID)
	if err != nil {
		return 0, fmt.Errorf("postgres_entry_repo_purge_bin_failed: %w", err)
	}

	return tag.RowsAffected(), nil
}

// ── Signals ──────────────────────────────────────────────────────────────────

// SetVote records the caller's vote, replacing any previous one.
func (repository *PostgresRepository) SetVote(ctx context.Context, entryID, userID int64, value int) error {
	const query = `
		INSERT INTO vote (entry_id, user_id, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (entry_id, user_id) DO UPDATE SET value = EXCLUDED.value`

	if _, err := repository.pool.Exec(ctx, query, entryID, userID, value); err != nil {
		return fmt.Errorf("postgres_entry_repo_set_vote_failed: %w", err)
	}

	return nil
}

// ClearVote removes the caller's vote, if any.
func (repository *PostgresRepository) ClearVote(ctx context.Context, entryID, userID int64) error {
	const query = `DELETE FROM vote WHERE entry_id = $1 AND user_id = $2`

	if _, err := repository.pool.Exec(ctx, query, entryID, userID); err != nil {
		return fmt.Errorf("postgres_entry_repo_clear_vote_failed: %w", err)
	}

	return nil
}

// SetFavorite marks an entry as a favorite of the caller. Idempotent.
func (repository *PostgresRepository) SetFavorite(ctx context.Context, entryID, userID int64) error {
	const query = `
		INSERT INTO favorite (entry_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (entry_id, user_id) DO NOTHING`

	if _, err := repository.pool.Exec(ctx, query, entryID, userID); err != nil {
		return fmt.Errorf("postgres_entry_repo_set_favorite_failed: %w", err)
	}

	return nil
}

// ClearFavorite removes an entry from the caller's favorites, if present.
func (repository *PostgresRepository) ClearFavorite(ctx context.Context, entryID, userID int64) error {
	const query = `DELETE FROM favorite WHERE entry_id = $1 AND user_id = $2`

	if _, err := repository.pool.Exec(ctx, query, entryID, userID); err != nil {
		return fmt.Errorf("postgres_entry_repo_clear_favorite_failed: %w", err)
	}

	return nil
}

// ── Query Helpers ────────────────────────────────────────────────────────────

// execExpectingRow runs an exec that must affect exactly one row, mapping
// zero affected rows to NotFound.
func (repository *PostgresRepository) execExpectingRow(ctx context.Context, query, failLabel string, args ...any) error {
	tag, err := repository.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", failLabel, err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Entry")
	}

	return nil
}

// queryPage runs a paged list query and scans all rows.
func (repository *PostgresRepository) queryPage(ctx context.Context, query string, total, capacity int, args ...any) ([]*Entry, int, error) {
	rows, err := repository.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_entry_repo_list_failed: %w", err)
	}
	defer rows.Close()

	entries := make([]*Entry, 0, capacity)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_entry_repo_list_scan_failed: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_entry_repo_list_rows_failed: %w", err)
	}

	return entries, total, nil
}
