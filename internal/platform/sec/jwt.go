// Copyright (c) 2026 Mecra. All rights reserved.
// Author: umut.kirgoz@posteo.net

package sec

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenService handles generation and verification of session tokens using
// HS256 with a shared secret.
type TokenService struct {
	secret   []byte
	validity time.Duration
}

// NewTokenService creates a new TokenService.
//
// A missing secret is a configuration error and must abort startup; it is the
// only condition under which token handling is allowed to be fatal.
func NewTokenService(secret string, validity time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, fmt.Errorf("sec: signing secret is empty")
	}
	if validity <= 0 {
		return nil, fmt.Errorf("sec: token validity must be positive, got %s", validity)
	}

	return &TokenService{
		secret:   []byte(secret),
		validity: validity,
	}, nil
}

// Generate creates a new signed session token for a user.
//
// The claims carry iat = now and exp = now + validity; both are Unix seconds.
func (service *TokenService) Generate(userID int64, nickname, email string, isAdmin, isModerator, isFaded bool) (string, *AuthClaims, error) {
	currentTime := time.Now()
	claims := &AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(service.validity)),
		},
		UserID:      userID,
		Nickname:    nickname,
		Email:       email,
		IsAdmin:     isAdmin,
		IsModerator: isModerator,
		IsFaded:     isFaded,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, claims, nil
}

// Verify checks the signature and expiry of a token string.
//
// Signature mismatch, malformed structure, and passed expiry all surface as a
// plain error: the caller must treat every failure as one invalid-token
// condition and never trust partially decoded claims.
func (service *TokenService) Verify(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	}, jwt.WithExpirationRequired())

	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("sec: invalid token claims")
	}

	return claims, nil
}

// Validity returns the configured token lifetime. Used by the login handler
// to set the cookie Expires attribute equal to the claims expiry.
func (service *TokenService) Validity() time.Duration {
	return service.validity
}
