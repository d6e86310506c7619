// Copyright (c) 2026 Mecra. All rights reserved.
// Author: umut.kirgoz@posteo.net

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/umutkirgoz/mecra/internal/platform/apperr"
)

// PostgresUserRepository implements the [UserRepository] interface using pgx.
//
// # Error Mapping
//
// Storage-specific errors (like pgx.ErrNoRows) are mapped to domain-friendly
// [apperr.AppError] types, except for unique-constraint violations on Create,
// which are returned raw for the service layer to classify.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// Create persists a new user record into the "user" table.
//
// Uniqueness of nickname and email is enforced by database constraints; a
// violation comes back as the raw pgconn error so the caller can classify it.
func (repository *PostgresUserRepository) Create(ctx context.Context, user *User) error {
	const query = `
		INSERT INTO "user" (nickname, email, password_hash, is_admin, is_moderator, is_faded)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	err := repository.pool.QueryRow(ctx, query,
		user.Nickname,
		user.Email,
		user.PasswordHash,
		user.IsAdmin,
		user.IsModerator,
		user.IsFaded,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		return fmt.Errorf("postgres_user_repo_create_failed: %w", err)
	}

	return nil
}

// FindByID retrieves a non-deleted user record by their unique ID.
func (repository *PostgresUserRepository) FindByID(ctx context.Context, id int64) (*User, error) {
	const query = `
		SELECT id, nickname, email, password_hash, is_admin, is_moderator, is_faded,
		       created_at, updated_at, deleted_at
		FROM "user"
		WHERE id = $1 AND deleted_at IS NULL`

	user := &User{}
	err := repository.pool.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Nickname,
		&user.Email,
		&user.PasswordHash,
		&user.IsAdmin,
		&user.IsModerator,
		&user.IsFaded,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.DeletedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_id_failed: %w", err)
	}

	return user, nil
}

// FindByNickname retrieves a non-deleted user record by their unique nickname.
//
// # Returns
//
// Returns [*User] if found, or [apperr.NotFound] if no account exists.
func (repository *PostgresUserRepository) FindByNickname(ctx context.Context, nickname string) (*User, error) {
	const query = `
		SELECT id, nickname, email, password_hash, is_admin, is_moderator, is_faded,
		       created_at, updated_at, deleted_at
		FROM "user"
		WHERE nickname = $1 AND deleted_at IS NULL`

	user := &User{}
	err := repository.pool.QueryRow(ctx, query, nickname).Scan(
		&user.ID,
		&user.Nickname,
		&user.Email,
		&user.PasswordHash,
		&user.IsAdmin,
		&user.IsModerator,
		&user.IsFaded,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.DeletedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_nickname_failed: %w", err)
	}

	return user, nil
}

// ── Token Ledger Repository ──────────────────────────────────────────────────

// PostgresTokenRepository implements the [TokenRepository] interface.
type PostgresTokenRepository struct {
	pool *pgxpool.Pool
}

// NewTokenRepository creates a new PostgreSQL implementation of TokenRepository.
func NewTokenRepository(pool *pgxpool.Pool) *PostgresTokenRepository {
	return &PostgresTokenRepository{pool: pool}
}

// Record appends a new ledger row into the token table.
func (repository *PostgresTokenRepository) Record(ctx context.Context, token *SessionToken) error {
	const query = `
		INSERT INTO token (user_id, hash)
		VALUES ($1, $2)
		RETURNING id, created_at`

	err := repository.pool.QueryRow(ctx, query,
		token.UserID,
		token.Hash,
	).Scan(&token.ID, &token.CreatedAt)

	if err != nil {
		return fmt.Errorf("postgres_token_repo_record_failed: %w", err)
	}

	return nil
}

// Invalidate stamps the active ledger row matching the given fingerprint.
//
// The WHERE clause only touches active rows, so a repeated invalidation of the
// same credential affects zero rows and reports NotFound.
func (repository *PostgresTokenRepository) Invalidate(ctx context.Context, hash string) error {
	const query = `
		UPDATE token
		SET invalidated_at = NOW()
		WHERE hash = $1 AND invalidated_at IS NULL`

	tag, err := repository.pool.Exec(ctx, query, hash)
	if err != nil {
		return fmt.Errorf("postgres_token_repo_invalidate_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Session")
	}

	return nil
}

// IsActive reports whether an active ledger row exists for the fingerprint.
func (repository *PostgresTokenRepository) IsActive(ctx context.Context, hash string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM token
			WHERE hash = $1 AND invalidated_at IS NULL
		)`

	var active bool
	if err := repository.pool.QueryRow(ctx, query, hash).Scan(&active); err != nil {
		return false, fmt.Errorf("postgres_token_repo_is_active_failed: %w", err)
	}

	return active, nil
}
