// Copyright (c) 2026 Mecra. All rights reserved.
// Author: umut.kirgoz@posteo.net

package title_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umutkirgoz/mecra/internal/platform/apperr"
	"github.com/umutkirgoz/mecra/internal/platform/sec"
	"github.com/umutkirgoz/mecra/internal/title"
	"github.com/umutkirgoz/mecra/pkg/pagination"
)

// ── In-Memory Fake ───────────────────────────────────────────────────────────

type fakeRepository struct {
	titles []*title.Title
	nextID int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{nextID: 1}
}

func (r *fakeRepository) FindByID(_ context.Context, id int64) (*title.Title, error) {
	for _, t := range r.titles {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, apperr.NotFound("Title")
}

func (r *fakeRepository) FindBySlug(_ context.Context, slug string) (*title.Title, error) {
	for _, t := range r.titles {
		if t.Slug == slug {
			return t, nil
		}
	}
	return nil, apperr.NotFound("Title")
}

func (r *fakeRepository) FindByName(_ context.Context, name string) (*title.Title, error) {
	for _, t := range r.titles {
		if t.Name == name {
			return t, nil
		}
	}
	return nil, apperr.NotFound("Title")
}

func (r *fakeRepository) Create(_ context.Context, created *title.Title) error {
	for _, t := range r.titles {
		if t.Name == created.Name || t.Slug == created.Slug {
			return &pgconn.PgError{Code: pgerrcode.UniqueViolation}
		}
	}
	created.ID = r.nextID
	r.nextID++
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	r.titles = append(r.titles, created)
	return nil
}

func (r *fakeRepository) List(_ context.Context, params pagination.Params, includeHidden bool) ([]*title.Title, int, error) {
	visible := make([]*title.Title, 0, len(r.titles))
	for _, t := range r.titles {
		if includeHidden || !t.IsHidden {
			visible = append(visible, t)
		}
	}
	return visible, len(visible), nil
}

func (r *fakeRepository) SetHidden(_ context.Context, id int64, hidden bool) error {
	for _, t := range r.titles {
		if t.ID == id {
			t.IsHidden = hidden
			return nil
		}
	}
	return apperr.NotFound("Title")
}

func memberClaims(id int64) *sec.AuthClaims {
	return &sec.AuthClaims{UserID: id}
}

func moderatorClaims(id int64) *sec.AuthClaims {
	return &sec.AuthClaims{UserID: id, IsModerator: true}
}

func fadedClaims(id int64) *sec.AuthClaims {
	return &sec.AuthClaims{UserID: id, IsFaded: true}
}

// ── Resolve Or Create ────────────────────────────────────────────────────────

/*
TestService_ResolveOrCreate creates a missing title with a derived slug and
returns the existing row on subsequent calls.
*/
func TestService_ResolveOrCreate(t *testing.T) {
	service := title.NewService(newFakeRepository())

	created, err := service.ResolveOrCreate(context.Background(), memberClaims(7), "Kahve Keyfi")
	require.NoError(t, err)

	assert.Equal(t, "Kahve Keyfi", created.Name)
	assert.Equal(t, "kahve-keyfi", created.Slug)
	assert.Equal(t, int64(7), created.CreatedBy)
	assert.False(t, created.IsHidden)

	// Second call resolves the same row instead of duplicating.
	resolved, err := service.ResolveOrCreate(context.Background(), memberClaims(8), "Kahve Keyfi")
	require.NoError(t, err)
	assert.Equal(t, created.ID, resolved.ID)
}

/*
TestService_ResolveOrCreate_FadedGate lets faded accounts resolve existing
titles but refuses to let them open new ones.
*/
func TestService_ResolveOrCreate_FadedGate(t *testing.T) {
	service := title.NewService(newFakeRepository())

	// A trusted member opens the title first.
	_, err := service.ResolveOrCreate(context.Background(), memberClaims(1), "Mevcut Konu")
	require.NoError(t, err)

	// Faded account resolving an existing title: allowed.
	resolved, err := service.ResolveOrCreate(context.Background(), fadedClaims(2), "Mevcut Konu")
	require.NoError(t, err)
	assert.Equal(t, "Mevcut Konu", resolved.Name)

	// Faded account opening a new title: refused.
	_, err = service.ResolveOrCreate(context.Background(), fadedClaims(2), "Yeni Konu")
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "FORBIDDEN", ae.Code)
}

/*
TestService_ResolveOrCreate_Validation rejects empty and oversized names.
*/
func TestService_ResolveOrCreate_Validation(t *testing.T) {
	service := title.NewService(newFakeRepository())

	_, err := service.ResolveOrCreate(context.Background(), memberClaims(1), "   ")
	require.Error(t, err)
	assert.Equal(t, "INVALID_REQUEST", apperr.As(err).Code)

	_, err = service.ResolveOrCreate(context.Background(), memberClaims(1), "!!!")
	require.Error(t, err)
	assert.Equal(t, "INVALID_REQUEST", apperr.As(err).Code)
}

// ── Visibility ───────────────────────────────────────────────────────────────

/*
TestService_GetBySlug_Hidden serves hidden titles to staff only; regular
members get NotFound, not Forbidden.
*/
func TestService_GetBySlug_Hidden(t *testing.T) {
	repository := newFakeRepository()
	service := title.NewService(repository)

	created, err := service.ResolveOrCreate(context.Background(), memberClaims(1), "Gizli Konu")
	require.NoError(t, err)
	require.NoError(t, repository.SetHidden(context.Background(), created.ID, true))

	// Member and anonymous callers cannot see it, nor learn it exists.
	for _, claims := range []*sec.AuthClaims{memberClaims(1), nil} {
		_, err = service.GetBySlug(context.Background(), claims, created.Slug)
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	}

	// Staff see it.
	found, err := service.GetBySlug(context.Background(), moderatorClaims(2), created.Slug)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
}

/*
TestService_SetVisibility enforces the staff requirement.
*/
func TestService_SetVisibility(t *testing.T) {
	service := title.NewService(newFakeRepository())

	created, err := service.ResolveOrCreate(context.Background(), memberClaims(1), "Konu")
	require.NoError(t, err)

	// Member: refused.
	err = service.SetVisibility(context.Background(), memberClaims(1), created.ID, true)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	// Moderator: allowed.
	require.NoError(t, service.SetVisibility(context.Background(), moderatorClaims(2), created.ID, true))

	// Unknown title: NotFound.
	err = service.SetVisibility(context.Background(), moderatorClaims(2), 999, true)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestService_List filters hidden titles for non-staff.
*/
func TestService_List(t *testing.T) {
	repository := newFakeRepository()
	service := title.NewService(repository)

	visible, err := service.ResolveOrCreate(context.Background(), memberClaims(1), "Acik Konu")
	require.NoError(t, err)
	hidden, err := service.ResolveOrCreate(context.Background(), memberClaims(1), "Gizli Konu")
	require.NoError(t, err)
	require.NoError(t, repository.SetHidden(context.Background(), hidden.ID, true))

	params := pagination.Params{Page: 1, Limit: 20}

	memberView, _, err := service.List(context.Background(), memberClaims(1), params)
	require.NoError(t, err)
	require.Len(t, memberView, 1)
	assert.Equal(t, visible.ID, memberView[0].ID)

	staffView, _, err := service.List(context.Background(), moderatorClaims(2), params)
	require.NoError(t, err)
	assert.Len(t, staffView, 2)
}
