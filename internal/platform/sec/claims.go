// Copyright (c) 2026 Mecra. All rights reserved.
// Author: umut.kirgoz@posteo.net

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (password hashing, token
// signing, credential extraction, the authorization policy) from the domain
// logic. It acts as an Infrastructure service injected into the Application
// layer via narrow interfaces.
package sec

import (
	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims represents the payload embedded inside a session token.
//
// # Why custom claims?
//
// By embedding the user's identity and role flags directly inside the token,
// [middleware.Authenticate] can reconstruct the active user context WITHOUT
// querying the database on every single API request.
//
// # Staleness
//
// Claims are a point-in-time snapshot taken at login. A role change on the
// user row is not reflected in already-issued tokens; it propagates when the
// token expires (at most [constants.TokenValidity] later) or the user logs in
// again.
type AuthClaims struct {
	jwt.RegisteredClaims

	UserID      int64  `json:"id"`
	Nickname    string `json:"nickname"`
	Email       string `json:"email"`
	IsAdmin     bool   `json:"is_admin"`
	IsModerator bool   `json:"is_moderator"`

	// IsFaded marks reduced-trust accounts (new or demoted users). Faded
	// users cannot create titles, only add entries under existing ones.
	IsFaded bool `json:"is_faded"`
}
