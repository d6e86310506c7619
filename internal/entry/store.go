// Copyright (c) 2026 Mecra. All rights reserved.
// Author: umut.kirgoz@posteo.net

package entry

import (
	"context"

	"github.com/umutkirgoz/mecra/pkg/pagination"
)

// Repository defines the data access contract for entries and their signals.
//
// # Implementations
//
// The canonical implementation for Mecra is PostgreSQL (store_postgres.go).
type Repository interface {
	// FindByID returns the entry with the given ID, deleted or not.
	// Callers enforce visibility of soft-deleted rows.
	//
	// Returns [apperr.NotFound] if no row exists.
	FindByID(ctx context.Context, id int64) (*Entry, error)

	// Create persists a new entry and fills in the generated ID and
	// timestamps.
	Create(ctx context.Context, entry *Entry) error

	// UpdateContent replaces the content of a live entry.
	//
	// Returns [apperr.NotFound] if the entry does not exist or is deleted.
	UpdateContent(ctx context.Context, id int64, content string) error

	// SoftDelete stamps DeletedAt on a live entry.
	//
	// Returns [apperr.NotFound] if the entry does not exist or is already
	// deleted.
	SoftDelete(ctx context.Context, id int64) error

	// Recover clears DeletedAt on a soft-deleted entry.
	//
	// Returns [apperr.NotFound] if the entry does not exist or is live.
	Recover(ctx context.Context, id int64) error

	// HardDelete removes the row permanently, along with its signals.
	//
	// Returns [apperr.NotFound] if the entry does not exist.
	HardDelete(ctx context.Context, id int64) error

	// MoveToTitle reassigns a live entry to a different title.
	//
	// Returns [apperr.NotFound] if the entry does not exist or is deleted.
	MoveToTitle(ctx context.Context, id, titleID int64) error

	// ListByTitle returns a page of entries under a title in chronological
	// order. When includeDeleted is false, soft-deleted rows are filtered.
	ListByTitle(ctx context.Context, titleID int64, params pagination.Params, includeDeleted bool) ([]*Entry, int, error)

	// ListBin returns a page of the author's soft-deleted entries, most
	// recently deleted first.
	ListBin(ctx context.Context, authorID int64, params pagination.Params) ([]*Entry, int, error)

	// PurgeBin permanently removes all of the author's soft-deleted entries.
	// Returns the number of rows removed.
	PurgeBin(ctx context.Context, authorID int64) (int64, error)

	// SetVote records the caller's vote on an entry, replacing any previous
	// vote by the same user.
	SetVote(ctx context.Context, entryID, userID int64, value int) error

	// ClearVote removes the caller's vote from an entry, if any.
	ClearVote(ctx context.Context, entryID, userID int64) error

	// SetFavorite marks an entry as a favorite of the caller. Idempotent.
	SetFavorite(ctx context.Context, entryID, userID int64) error

	// ClearFavorite removes an entry from the caller's favorites, if present.
	ClearFavorite(ctx context.Context, entryID, userID int64) error
}
