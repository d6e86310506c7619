// Copyright (c) 2026 Mecra. All rights reserved.
// Author: umut.kirgoz@posteo.net

package title

import (
	"context"
	"fmt"
	"strings"

	"github.com/umutkirgoz/mecra/internal/platform/apperr"
	"github.com/umutkirgoz/mecra/internal/platform/dberr"
	"github.com/umutkirgoz/mecra/internal/platform/sec"
	"github.com/umutkirgoz/mecra/internal/platform/validate"
	"github.com/umutkirgoz/mecra/pkg/pagination"
	"github.com/umutkirgoz/mecra/pkg/slug"
)

// NameMaxLen bounds title names.
const NameMaxLen = 60

// Service implements the title use cases.
type Service struct {
	repository Repository
}

// NewService constructs a new [Service].
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

// ResolveOrCreate returns the title with the given name, creating it first if
// it does not exist.
//
// # Business Rules
//   - Opening a brand-new title requires a full-trust account: faded callers
//     may only write under titles that already exist.
//   - The slug is derived from the name once, at creation.
//
// A concurrent create racing on the unique name constraint falls back to a
// second lookup, so both racers end up with the same row.
func (service *Service) ResolveOrCreate(context context.Context, claims *sec.AuthClaims, name string) (*Title, error) {
	// ── 1. Input Validation ───────────────────────────────────────────────

	name = strings.TrimSpace(name)

	validator := &validate.Validator{}
	validator.
		Required("title", name).
		MaxLen("title", name, NameMaxLen)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// ── 2. Lookup ─────────────────────────────────────────────────────────

	existing, err := service.repository.FindByName(context, name)
	if err == nil {
		return existing, nil
	}
	if !apperr.IsAppError(err) {
		return nil, fmt.Errorf("title_service_resolve_failed: %w", err)
	}

	// ── 3. Trust Gate ─────────────────────────────────────────────────────

	if claims.IsFaded {
		return nil, apperr.Forbidden("Faded accounts cannot open new titles")
	}

	titleSlug := slug.From(name)
	if titleSlug == "" {
		return nil, validate.RequiredError("title", "must contain at least one letter or digit")
	}

	// ── 4. Creation ───────────────────────────────────────────────────────

	title := &Title{
		Name:      name,
		Slug:      titleSlug,
		IsHidden:  false,
		CreatedBy: claims.UserID,
	}

	if err := service.repository.Create(context, title); err != nil {
		if dberr.IsUniqueViolation(err) {
			// Lost the race: the other writer's row is the canonical one.
			return service.repository.FindByName(context, name)
		}
		return nil, fmt.Errorf("title_service_create_failed: %w", err)
	}

	return title, nil
}

// GetBySlug returns a title by its slug, enforcing visibility rules.
//
// Hidden titles exist only for staff; everyone else gets NotFound rather
// than Forbidden so hidden names are not confirmable by probing.
func (service *Service) GetBySlug(context context.Context, claims *sec.AuthClaims, slugValue string) (*Title, error) {
	title, err := service.repository.FindBySlug(context, slugValue)
	if err != nil {
		return nil, err
	}

	if title.IsHidden && !sec.Authorize(claims, sec.ModeratorOrAdmin()) {
		return nil, apperr.NotFound("Title")
	}

	return title, nil
}

// GetByID returns a title by ID without visibility filtering.
//
// Intended for internal cross-domain lookups (e.g. validating a migration
// target), not for public read paths.
func (service *Service) GetByID(context context.Context, id int64) (*Title, error) {
	return service.repository.FindByID(context, id)
}

// List returns a page of titles. Hidden titles are included for staff only.
func (service *Service) List(context context.Context, claims *sec.AuthClaims, params pagination.Params) ([]*Title, pagination.Meta, error) {
	includeHidden := sec.Authorize(claims, sec.ModeratorOrAdmin())

	titles, total, err := service.repository.List(context, params, includeHidden)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return titles, pagination.NewMeta(params.Page, params.Limit, total), nil
}

// SetVisibility hides or reveals a title.
//
// # Authorization
//
// Moderator or admin only.
func (service *Service) SetVisibility(context context.Context, claims *sec.AuthClaims, id int64, hidden bool) error {
	if !sec.Authorize(claims, sec.ModeratorOrAdmin()) {
		return apperr.Forbidden("Moderator or admin role required")
	}

	return service.repository.SetHidden(context, id, hidden)
}
