// Copyright (c) 2026 Mecra. All rights reserved.
// Author: umut.kirgoz@posteo.net

package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umutkirgoz/mecra/internal/auth"
	"github.com/umutkirgoz/mecra/internal/platform/apperr"
	"github.com/umutkirgoz/mecra/internal/platform/sec"
)

// ── In-Memory Fakes ──────────────────────────────────────────────────────────

type fakeUserRepository struct {
	users   map[string]*auth.User // keyed by nickname
	nextID  int64
	findErr error // when set, FindByNickname fails with it
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[string]*auth.User), nextID: 1}
}

func (r *fakeUserRepository) FindByID(_ context.Context, id int64) (*auth.User, error) {
	for _, user := range r.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (r *fakeUserRepository) FindByNickname(_ context.Context, nickname string) (*auth.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	user, ok := r.users[nickname]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return user, nil
}

func (r *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	if _, exists := r.users[user.Nickname]; exists {
		// Same shape the driver produces for a constraint failure.
		return &pgconn.PgError{Code: pgerrcode.UniqueViolation}
	}
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return &pgconn.PgError{Code: pgerrcode.UniqueViolation}
		}
	}

	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.Nickname] = user
	return nil
}

type fakeTokenRepository struct {
	rows map[string]*auth.SessionToken // keyed by fingerprint; nil InvalidatedAt = active
}

func newFakeTokenRepository() *fakeTokenRepository {
	return &fakeTokenRepository{rows: make(map[string]*auth.SessionToken)}
}

func (r *fakeTokenRepository) Record(_ context.Context, token *auth.SessionToken) error {
	token.ID = int64(len(r.rows) + 1)
	token.CreatedAt = time.Now()
	r.rows[token.Hash] = token
	return nil
}

func (r *fakeTokenRepository) Invalidate(_ context.Context, hash string) error {
	row, ok := r.rows[hash]
	if !ok || row.InvalidatedAt != nil {
		return apperr.NotFound("Session")
	}
	now := time.Now()
	row.InvalidatedAt = &now
	return nil
}

func (r *fakeTokenRepository) IsActive(_ context.Context, hash string) (bool, error) {
	row, ok := r.rows[hash]
	return ok && row.InvalidatedAt == nil, nil
}

// newTestService wires the auth service with fakes and a real JWT signer.
func newTestService(t *testing.T) (*auth.Service, *fakeUserRepository, *fakeTokenRepository) {
	t.Helper()

	jwtService, err := sec.NewTokenService("service-test-secret", time.Hour)
	require.NoError(t, err)

	users := newFakeUserRepository()
	tokens := newFakeTokenRepository()
	return auth.NewService(users, tokens, jwtService), users, tokens
}

func register(t *testing.T, service *auth.Service, nickname string) *auth.User {
	t.Helper()

	user, err := service.Register(context.Background(), auth.RegisterInput{
		Nickname: nickname,
		Email:    nickname + "@example.com",
		Password: "Sifre123",
	})
	require.NoError(t, err)
	return user
}

// ── Registration ─────────────────────────────────────────────────────────────

/*
TestService_Register covers the happy path and the validation rules.
*/
func TestService_Register(t *testing.T) {
	service, _, _ := newTestService(t)

	user := register(t, service, "gezgin")

	assert.NotZero(t, user.ID)
	assert.Equal(t, "gezgin", user.Nickname)
	assert.False(t, user.IsAdmin)
	assert.False(t, user.IsModerator)
	assert.False(t, user.IsFaded)

	// The stored hash is usable for verification and is not the plain text.
	assert.NotEqual(t, "Sifre123", user.PasswordHash)
	assert.True(t, sec.CheckPasswordHash("Sifre123", user.PasswordHash))
}

/*
TestService_Register_Validation rejects rule-breaking input with field details.
*/
func TestService_Register_Validation(t *testing.T) {
	service, _, _ := newTestService(t)

	tests := []struct {
		name  string
		input auth.RegisterInput
	}{
		{"short_nickname", auth.RegisterInput{Nickname: "a", Email: "a@example.com", Password: "Sifre123"}},
		{"long_nickname", auth.RegisterInput{Nickname: "abcdefghijklmnopqrstuvwxyzabcde", Email: "a@example.com", Password: "Sifre123"}},
		{"bad_email", auth.RegisterInput{Nickname: "gezgin", Email: "not-an-email", Password: "Sifre123"}},
		{"weak_password", auth.RegisterInput{Nickname: "gezgin", Email: "a@example.com", Password: "password"}},
		{"password_with_space", auth.RegisterInput{Nickname: "gezgin", Email: "a@example.com", Password: "Sifre 123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Register(context.Background(), tt.input)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "INVALID_REQUEST", ae.Code)
			assert.NotEmpty(t, ae.Details)
		})
	}
}

/*
TestService_Register_Duplicate maps the unique-constraint violation onto
INVALID_REQUEST without leaking which column collided.
*/
func TestService_Register_Duplicate(t *testing.T) {
	service, _, _ := newTestService(t)

	register(t, service, "gezgin")

	_, err := service.Register(context.Background(), auth.RegisterInput{
		Nickname: "gezgin",
		Email:    "other@example.com",
		Password: "Sifre123",
	})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "INVALID_REQUEST", ae.Code)
}

// ── Login ────────────────────────────────────────────────────────────────────

/*
TestService_Login issues a verifiable token and records its fingerprint in
the ledger.
*/
func TestService_Login(t *testing.T) {
	service, _, tokens := newTestService(t)
	user := register(t, service, "gezgin")

	session, err := service.Login(context.Background(), auth.LoginInput{
		Nickname: "gezgin",
		Password: "Sifre123",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, session.Token)
	assert.Equal(t, user.ID, session.Claims.UserID)
	assert.Equal(t, "gezgin", session.Claims.Nickname)

	// The ledger holds an active row for exactly this credential.
	active, err := tokens.IsActive(context.Background(), sec.Fingerprint(session.Token))
	require.NoError(t, err)
	assert.True(t, active)
}

/*
TestService_Login_BadCredentials collapses unknown-nickname and wrong-password
into the same externally visible error.
*/
func TestService_Login_BadCredentials(t *testing.T) {
	service, _, _ := newTestService(t)
	register(t, service, "gezgin")

	tests := []struct {
		name  string
		input auth.LoginInput
	}{
		{"unknown_nickname", auth.LoginInput{Nickname: "yabanci", Password: "Sifre123"}},
		{"wrong_password", auth.LoginInput{Nickname: "gezgin", Password: "Yanlis123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Login(context.Background(), tt.input)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "INVALID_CREDENTIALS", ae.Code)
		})
	}
}

/*
TestService_Login_StorageFailure keeps infrastructure errors out of the
credentials collapse: a broken user store must not look like a bad password.
*/
func TestService_Login_StorageFailure(t *testing.T) {
	service, users, _ := newTestService(t)
	register(t, service, "gezgin")

	users.findErr = errors.New("connection refused")

	_, err := service.Login(context.Background(), auth.LoginInput{
		Nickname: "gezgin",
		Password: "Sifre123",
	})
	require.Error(t, err)
	assert.Nil(t, apperr.As(err), "storage failures must not carry a client-facing error kind")
}

// ── Logout ───────────────────────────────────────────────────────────────────

/*
TestService_Logout invalidates the ledger row; a second logout with the same
credential fails with INVALID_TOKEN instead of silently succeeding.
*/
func TestService_Logout(t *testing.T) {
	service, _, tokens := newTestService(t)
	register(t, service, "gezgin")

	session, err := service.Login(context.Background(), auth.LoginInput{
		Nickname: "gezgin",
		Password: "Sifre123",
	})
	require.NoError(t, err)

	// First logout succeeds and deactivates the row.
	require.NoError(t, service.Logout(context.Background(), session.Token))

	active, err := tokens.IsActive(context.Background(), sec.Fingerprint(session.Token))
	require.NoError(t, err)
	assert.False(t, active)

	// Second logout with the same token is refused.
	err = service.Logout(context.Background(), session.Token)
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "INVALID_TOKEN", ae.Code)
}

/*
TestService_Logout_UnknownToken refuses a credential that was never issued.
*/
func TestService_Logout_UnknownToken(t *testing.T) {
	service, _, _ := newTestService(t)

	err := service.Logout(context.Background(), "never.issued.token")
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "INVALID_TOKEN", ae.Code)
}

// ── Profile ──────────────────────────────────────────────────────────────────

/*
TestService_Me returns the stored profile, not the claims snapshot.
*/
func TestService_Me(t *testing.T) {
	service, users, _ := newTestService(t)
	user := register(t, service, "gezgin")

	// Simulate a role change after the user logged in.
	users.users["gezgin"].IsModerator = true

	fresh, err := service.Me(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, fresh.IsModerator)
}
