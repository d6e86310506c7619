// Copyright (c) 2026 Mecra. All rights reserved.
// Author: umut.kirgoz@posteo.net

package title

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
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const titleColumns = `id, name, slug, is_hidden, created_by, created_at, updated_at`

// scanTitle reads one title row from a pgx row scanner.
func scanTitle(row pgx.Row) (*Title, error) {
	title := &Title{}
	err := row.Scan(
		&title.ID,
		&title.Name,
		&title.Slug,
		&title.IsHidden,
		&title.CreatedBy,
		&title.CreatedAt,
		&title.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return title, nil
}

// Create persists a new title record.
func (repository *PostgresRepository) Create(ctx context.Context, title *Title) error {
	const query = `
		INSERT INTO title (name, slug, is_hidden, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	err := repository.pool.QueryRow(ctx, query,
		title.Name,
		title.Slug,
		title.IsHidden,
		title.CreatedBy,
	).Scan(&title.ID, &title.CreatedAt, &title.UpdatedAt)

	if err != nil {
		return fmt.Errorf("postgres_title_repo_create_failed: %w", err)
	}

	return nil
}

// FindByID retrieves a title by its unique ID.
func (repository *PostgresRepository) FindByID(ctx context.Context, id int64) (*Title, error) {
	query := fmt.Sprintf(`SELECT %s FROM title WHERE id = $1`, titleColumns)

	title, err := scanTitle(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Title")
		}
		return nil, fmt.Errorf("postgres_title_repo_find_by_id_failed: %w", err)
	}

	return title, nil
}

// FindBySlug retrieves a title by its unique slug.
func (repository *PostgresRepository) FindBySlug(ctx context.Context, slug string) (*Title, error) {
	query := fmt.Sprintf(`SELECT %s FROM title WHERE slug = $1`, titleColumns)

	title, err := scanTitle(repository.pool.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Title")
		}
		return nil, fmt.Errorf("postgres_title_repo_find_by_slug_failed: %w", err)
	}

	return title, nil
}

// FindByName retrieves a title by its exact name.
func (repository *PostgresRepository) FindByName(ctx context.Context, name string) (*Title, error) {
	query := fmt.Sprintf(`SELECT %s FROM title WHERE name = $1`, titleColumns)

	title, err := scanTitle(repository.pool.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Title")
		}
		return nil, fmt.Errorf("postgres_title_repo_find_by_name_failed: %w", err)
	}

	return title, nil
}

// List returns a page of titles ordered by most recently updated.
func (repository *PostgresRepository) List(ctx context.Context, params pagination.Params, includeHidden bool) ([]*Title, int, error) {
	countQuery := `SELECT COUNT(*) FROM title WHERE ($1 OR NOT is_hidden)`

	var total int
	if err := repository.pool.QueryRow(ctx, countQuery, includeHidden).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_title_repo_count_failed: %w", err)
	}

	listQuery := fmt.Sprintf(`
		SELECT %s FROM title
		WHERE ($1 OR NOT is_hidden)
		ORDER BY updated_at DESC
		LIMIT $2 OFFSET $3`, titleColumns)

	rows, err := repository.pool.Query(ctx, listQuery, includeHidden, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_title_repo_list_failed: %w", err)
	}
	defer rows.Close()

	titles := make([]*Title, 0, params.Limit)
	for rows.Next() {
		title, err := scanTitle(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_title_repo_list_scan_failed: %w", err)
		}
		titles = append(titles, title)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_title_repo_list_rows_failed: %w", err)
	}

	return titles, total, nil
}

// SetHidden updates the visibility flag of a title.
func (repository *PostgresRepository) SetHidden(ctx context.Context, id int64, hidden bool) error {
	const query = `
		UPDATE title
		SET is_hidden = $2, updated_at = NOW()
		WHERE id = $1`

	tag, err := repository.pool.Exec(ctx, query, id, hidden)
	if err != nil {
		return fmt.Errorf("postgres_title_repo_set_hidden_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Title")
	}

	return nil
}
