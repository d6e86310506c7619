// Copyright (c) 2026 Mecra. All rights reserved.
// Author: umut.kirgoz@posteo.net

package auth

import (
	"context"
)

// UserRepository defines the data access contract for user accounts.
//
// # Review Process
//
// This interface is placed in a separate file from user.go so entity changes
// and storage-contract changes can be reviewed independently by the team.
//
// # Implementations
//
// The canonical implementation for Mecra is PostgreSQL (store_postgres.go).
type UserRepository interface {
	// FindByID returns the non-deleted account with the given ID.
	//
	// Returns [apperr.NotFound] if the account does not exist.
	FindByID(ctx context.Context, id int64) (*User, error)

	// FindByNickname returns the non-deleted account with the given nickname.
	//
	// Returns [apperr.NotFound] if the nickname is available.
	FindByNickname(ctx context.Context, nickname string) (*User, error)

	// Create persists a brand-new user account and fills in the generated
	// ID and timestamps.
	//
	// Returns the raw driver error on a unique constraint (nickname/email)
	// failure so the service layer can classify it via dberr.
	Create(ctx context.Context, user *User) error
}

// TokenRepository defines the data access contract for the session token ledger.
//
// # Domain Ownership
//
// This is kept alongside [UserRepository] because the ledger is owned entirely
// by the identity domain, despite serving session security.
type TokenRepository interface {
	// Record appends a ledger row for a freshly issued credential.
	// The row starts active (InvalidatedAt is NULL).
	Record(ctx context.Context, token *SessionToken) error

	// Invalidate stamps the active ledger row matching the fingerprint.
	//
	// Returns [apperr.NotFound] if no active row matches — the credential
	// was never issued or has already been invalidated.
	Invalidate(ctx context.Context, hash string) error

	// IsActive reports whether an active (non-invalidated) ledger row
	// exists for the fingerprint.
	IsActive(ctx context.Context, hash string) (bool, error)
}
