// Copyright (c) 2026 Mecra. All rights reserved.
// Author: umut.kirgoz@posteo.net

package title

import (
	"context"

	"github.com/umutkirgoz/mecra/pkg/pagination"
)

// Repository defines the data access contract for titles.
//
// # Implementations
//
// The canonical implementation for Mecra is PostgreSQL (store_postgres.go).
type Repository interface {
	// FindByID returns the title with the given ID.
	//
	// Returns [apperr.NotFound] if it does not exist.
	FindByID(ctx context.Context, id int64) (*Title, error)

	// FindBySlug returns the title with the given slug.
	//
	// Returns [apperr.NotFound] if it does not exist.
	FindBySlug(ctx context.Context, slug string) (*Title, error)

	// FindByName returns the title with the given exact name.
	//
	// Returns [apperr.NotFound] if it does not exist.
	FindByName(ctx context.Context, name string) (*Title, error)

	// Create persists a new title and fills in the generated ID and
	// timestamps.
	//
	// Returns the raw driver error on a unique constraint (name/slug)
	// failure so the service layer can classify it.
	Create(ctx context.Context, title *Title) error

	// List returns a page of titles ordered by most recently updated.
	// When includeHidden is false, hidden titles are filtered out.
	List(ctx context.Context, params pagination.Params, includeHidden bool) ([]*Title, int, error)

	// SetHidden updates the visibility flag of a title.
	//
	// Returns [apperr.NotFound] if the title does not exist.
	SetHidden(ctx context.Context, id int64, hidden bool) error
}
