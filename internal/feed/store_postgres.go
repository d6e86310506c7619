// Copyright (c) 2026 Mecra. All rights reserved.
// Author: umut.kirgoz@posteo.net

package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements the [Repository] interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Trends aggregates live entry counts per visible title inside the window.
func (repository *PostgresRepository) Trends(ctx context.Context, window time.Duration, limit int) ([]*Item, error) {
	const query = `
		SELECT t.id, t.name, t.slug, COUNT(e.id) AS entry_count, MAX(e.created_at) AS last_entry
		FROM title t
		JOIN entry e ON e.title_id = t.id
		WHERE NOT t.is_hidden
		  AND e.deleted_at IS NULL
		  AND e.created_at > NOW() - $1::interval
		GROUP BY t.id, t.name, t.slug
		ORDER BY entry_count DESC, last_entry DESC
		LIMIT $2`

	interval := fmt.Sprintf("%d seconds", int(window.Seconds()))

	rows, err := repository.pool.Query(ctx, query, interval, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres_feed_repo_trends_failed: %w", err)
	}

	return scanItems(rows)
}

// Today aggregates per-title activity since local midnight.
func (repository *PostgresRepository) Today(ctx context.Context, limit int) ([]*Item, error) {
	const query = `
		SELECT t.id, t.name, t.slug, COUNT(e.id) AS entry_count, MAX(e.created_at) AS last_entry
		FROM title t
		JOIN entry e ON e.title_id = t.id
		WHERE NOT t.is_hidden
		  AND e.deleted_at IS NULL
		  AND e.created_at >= date_trunc('day', NOW())
		GROUP BY t.id, t.name, t.slug
		ORDER BY last_entry DESC
		LIMIT $1`

	rows, err := repository.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres_feed_repo_today_failed: %w", err)
	}

	return scanItems(rows)
}

// scanItems drains a feed aggregation result set.
func scanItems(rows pgx.Rows) ([]*Item, error) {
	defer rows.Close()

	items := make([]*Item, 0)
	for rows.Next() {
		item := &Item{}
		err := rows.Scan(&item.TitleID, &item.Name, &item.Slug, &item.EntryCount, &item.LastEntry)
		if err != nil {
			return nil, fmt.Errorf("postgres_feed_repo_scan_failed: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_feed_repo_rows_failed: %w", err)
	}

	return items, nil
}
