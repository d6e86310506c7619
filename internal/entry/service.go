// Copyright (c) 2026 Mecra. All rights reserved.
// Author: umut.kirgoz@posteo.net

package entry

import (
	"context"
	"fmt"

	"github.com/umutkirgoz/mecra/internal/platform/apperr"
	"github.com/umutkirgoz/mecra/internal/platform/sec"
	"github.com/umutkirgoz/mecra/internal/platform/validate"
	"github.com/umutkirgoz/mecra/internal/title"
	"github.com/umutkirgoz/mecra/pkg/pagination"
)

// ContentMaxLen bounds entry bodies.
const ContentMaxLen = 10000

// TitleResolver is the slice of the title domain the entry service needs.
type TitleResolver interface {
	// ResolveOrCreate returns the title with the given name, creating it
	// if the caller is allowed to open new titles.
	ResolveOrCreate(ctx context.Context, claims *sec.AuthClaims, name string) (*title.Title, error)

	// GetBySlug returns a title by slug, enforcing visibility rules.
	GetBySlug(ctx context.Context, claims *sec.AuthClaims, slug string) (*title.Title, error)

	// GetByID returns a title by ID without visibility filtering.
	GetByID(ctx context.Context, id int64) (*title.Title, error)
}

// Service implements the entry use cases.
//
// # Authorization Model
//
// Every mutating operation takes the caller's claims and decides through
// [sec.Authorize] whether the action is allowed. Handlers only guarantee that
// a credential was verified; ownership and role checks live here.
type Service struct {
	repository Repository
	titles     TitleResolver
}

// NewService constructs a new [Service].
func NewService(repository Repository, titles TitleResolver) *Service {
	return &Service{repository: repository, titles: titles}
}

// CreateInput holds the data required to post a new entry.
type CreateInput struct {
	TitleName string
	Content   string
}

// Create posts a new entry under the named title.
//
// # Business Rules
//   - Any authenticated member may write entries.
//   - If the title does not exist yet, it is created first; faded accounts
//     are refused at that step.
func (service *Service) Create(context context.Context, claims *sec.AuthClaims, input CreateInput) (*Entry, error) {
	if !sec.Authorize(claims, sec.AnyAuthenticated()) {
		return nil, apperr.InvalidToken()
	}

	// ── 1. Input Validation ───────────────────────────────────────────────

	validator := &validate.Validator{}
	validator.
		Required("content", input.Content).
		MaxLen("content", input.Content, ContentMaxLen)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// ── 2. Title Resolution ───────────────────────────────────────────────

	parentTitle, err := service.titles.ResolveOrCreate(context, claims, input.TitleName)
	if err != nil {
		return nil, err
	}

	// ── 3. Persistence ────────────────────────────────────────────────────

	entry := &Entry{
		TitleID:  parentTitle.ID,
		AuthorID: claims.UserID,
		Content:  input.Content,
	}

	if err := service.repository.Create(context, entry); err != nil {
		return nil, fmt.Errorf("entry_service_create_failed: %w", err)
	}

	return entry, nil
}

// Get returns one entry by ID.
//
// Live entries are public. Soft-deleted entries are visible only to their
// author and to staff; everyone else gets NotFound so deletion is not
// observable by probing.
func (service *Service) Get(context context.Context, claims *sec.AuthClaims, id int64) (*Entry, error) {
	entry, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if entry.DeletedAt != nil && !sec.Authorize(claims, sec.OwnerOrModeratorOrAdmin(entry.AuthorID)) {
		return nil, apperr.NotFound("Entry")
	}

	return entry, nil
}

// Update replaces the content of an entry.
//
// # Authorization
//
// Owner, moderator, or admin.
func (service *Service) Update(context context.Context, claims *sec.AuthClaims, id int64, content string) (*Entry, error) {
	validator := &validate.Validator{}
	validator.
		Required("content", content).
		MaxLen("content", content, ContentMaxLen)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	entry, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if !sec.Authorize(claims, sec.OwnerOrModeratorOrAdmin(entry.AuthorID)) {
		return nil, apperr.Forbidden("Only the author or staff may edit this entry")
	}

	if err := service.repository.UpdateContent(context, id, content); err != nil {
		return nil, err
	}

	return service.repository.FindByID(context, id)
}

// SoftDelete moves an entry into its author's recycle bin.
//
// # Authorization
//
// Owner, moderator, or admin.
func (service *Service) SoftDelete(context context.Context, claims *sec.AuthClaims, id int64) error {
	entry, err := service.repository.FindByID(context, id)
	if err != nil {
		return err
	}

	if !sec.Authorize(claims, sec.OwnerOrModeratorOrAdmin(entry.AuthorID)) {
		return apperr.Forbidden("Only the author or staff may delete this entry")
	}

	return service.repository.SoftDelete(context, id)
}

// Recover restores a soft-deleted entry from the recycle bin.
//
// # Authorization
//
// Owner, moderator, or admin.
func (service *Service) Recover(context context.Context, claims *sec.AuthClaims, id int64) (*Entry, error) {
	entry, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if !sec.Authorize(claims, sec.OwnerOrModeratorOrAdmin(entry.AuthorID)) {
		return nil, apperr.Forbidden("Only the author or staff may recover this entry")
	}

	if err := service.repository.Recover(context, id); err != nil {
		return nil, err
	}

	return service.repository.FindByID(context, id)
}

// HardDelete removes an entry permanently, bypassing the recycle bin.
//
// # Authorization
//
// Moderator or admin. This is irreversible.
func (service *Service) HardDelete(context context.Context, claims *sec.AuthClaims, id int64) error {
	if !sec.Authorize(claims, sec.ModeratorOrAdmin()) {
		return apperr.Forbidden("Moderator or admin role required")
	}

	return service.repository.HardDelete(context, id)
}

// Migrate moves a live entry under a different title.
//
// # Authorization
//
// Moderator or admin. Used to consolidate duplicate titles.
func (service *Service) Migrate(context context.Context, claims *sec.AuthClaims, id, targetTitleID int64) (*Entry, error) {
	if !sec.Authorize(claims, sec.ModeratorOrAdmin()) {
		return nil, apperr.Forbidden("Moderator or admin role required")
	}

	// Verify the destination exists before moving anything.
	if _, err := service.titles.GetByID(context, targetTitleID); err != nil {
		return nil, err
	}

	if err := service.repository.MoveToTitle(context, id, targetTitleID); err != nil {
		return nil, err
	}

	return service.repository.FindByID(context, id)
}

// ListByTitle returns a page of entries under the title with the given slug.
//
// Staff additionally see soft-deleted entries in place.
func (service *Service) ListByTitle(context context.Context, claims *sec.AuthClaims, slug string, params pagination.Params) ([]*Entry, pagination.Meta, error) {
	parentTitle, err := service.titles.GetBySlug(context, claims, slug)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	includeDeleted := sec.Authorize(claims, sec.ModeratorOrAdmin())

	entries, total, err := service.repository.ListByTitle(context, parentTitle.ID, params, includeDeleted)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return entries, pagination.NewMeta(params.Page, params.Limit, total), nil
}

// Bin returns a page of the caller's own soft-deleted entries.
func (service *Service) Bin(context context.Context, claims *sec.AuthClaims, params pagination.Params) ([]*Entry, pagination.Meta, error) {
	if !sec.Authorize(claims, sec.AnyAuthenticated()) {
		return nil, pagination.Meta{}, apperr.InvalidToken()
	}

	entries, total, err := service.repository.ListBin(context, claims.UserID, params)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return entries, pagination.NewMeta(params.Page, params.Limit, total), nil
}

// EmptyBin permanently removes all of the caller's soft-deleted entries.
// Returns the number of entries purged.
func (service *Service) EmptyBin(context context.Context, claims *sec.AuthClaims) (int64, error) {
	if !sec.Authorize(claims, sec.AnyAuthenticated()) {
		return 0, apperr.InvalidToken()
	}

	purged, err := service.repository.PurgeBin(context, claims.UserID)
	if err != nil {
		return 0, err
	}

	return purged, nil
}

// ── Signals ──────────────────────────────────────────────────────────────────

// Vote records the caller's up or down vote on a live entry.
func (service *Service) Vote(context context.Context, claims *sec.AuthClaims, id int64, value int) error {
	if !sec.Authorize(claims, sec.AnyAuthenticated()) {
		return apperr.InvalidToken()
	}

	validator := &validate.Validator{}
	validator.Custom("value", value != VoteUp && value != VoteDown, "Must be 1 or -1")
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.requireLiveEntry(context, id); err != nil {
		return err
	}

	return service.repository.SetVote(context, id, claims.UserID, value)
}

// Unvote removes the caller's vote from an entry.
func (service *Service) Unvote(context context.Context, claims *sec.AuthClaims, id int64) error {
	if !sec.Authorize(claims, sec.AnyAuthenticated()) {
		return apperr.InvalidToken()
	}

	return service.repository.ClearVote(context, id, claims.UserID)
}

// Favorite marks a live entry as one of the caller's favorites.
func (service *Service) Favorite(context context.Context, claims *sec.AuthClaims, id int64) error {
	if !sec.Authorize(claims, sec.AnyAuthenticated()) {
		return apperr.InvalidToken()
	}

	if err := service.requireLiveEntry(context, id); err != nil {
		return err
	}

	return service.repository.SetFavorite(context, id, claims.UserID)
}

// Unfavorite removes an entry from the caller's favorites.
func (service *Service) Unfavorite(context context.Context, claims *sec.AuthClaims, id int64) error {
	if !sec.Authorize(claims, sec.AnyAuthenticated()) {
		return apperr.InvalidToken()
	}

	return service.repository.ClearFavorite(context, id, claims.UserID)
}

// requireLiveEntry returns NotFound unless the entry exists and is not
// soft-deleted. Signals only attach to live content.
func (service *Service) requireLiveEntry(context context.Context, id int64) error {
	entry, err := service.repository.FindByID(context, id)
	if err != nil {
		return err
	}

	if entry.DeletedAt != nil {
		return apperr.NotFound("Entry")
	}

	return nil
}
