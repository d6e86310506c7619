// Copyright (c) 2026 Mecra. All rights reserved.
// Author: umut.kirgoz@posteo.net

// Package auth owns the member identity lifecycle: registration, credential
// verification, session token issuance, and the revocation ledger.
//
// # Architecture
//
// Entities in this file represent the "Truth" of the identity subsystem.
// They have no dependencies on outer layers (like databases, APIs, or libraries).
package auth

import (
	"time"
)

// User represents a registered member of the Mecra platform.
//
// # Rules
//   - Nickname is unique, 2 to 30 characters.
//   - Email is unique and validated.
//   - PasswordHash is an Argon2id PHC string, produced exclusively via [sec.HashPassword].
//   - IsFaded marks reduced-trust accounts that may write entries but not open titles.
type User struct {
	ID           int64      `json:"id"`
	Nickname     string     `json:"nickname"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"` // Explicitly omitted from JSON for security.
	IsAdmin      bool       `json:"is_admin"`
	IsModerator  bool       `json:"is_moderator"`
	IsFaded      bool       `json:"is_faded"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"-"`
}

// SessionToken is a ledger row recording one issued session credential.
//
// # Security Concept
//
// The JWT itself is stateless; the ledger stores only a BLAKE3 fingerprint of
// it. A row with a nil InvalidatedAt is an active session. Logout stamps
// InvalidatedAt rather than deleting the row, so the ledger doubles as an
// audit trail of every credential ever issued.
type SessionToken struct {
	ID            int64      `json:"id"`
	UserID        int64      `json:"user_id"`
	Hash          string     `json:"-"` // BLAKE3 fingerprint of the JWT. Omitted for security.
	CreatedAt     time.Time  `json:"created_at"`
	InvalidatedAt *time.Time `json:"invalidated_at,omitempty"`
}
