// Copyright (c) 2026 Mecra. All rights reserved.
// Author: umut.kirgoz@posteo.net

package middleware

import (
	"net/http"

	"github.com/umutkirgoz/mecra/internal/platform/apperr"
	"github.com/umutkirgoz/mecra/internal/platform/ctxutil"
	"github.com/umutkirgoz/mecra/internal/platform/respond"
	"github.com/umutkirgoz/mecra/internal/platform/sec"
)

// TokenVerifier checks a raw session token and returns its claims.
type TokenVerifier interface {
	Verify(tokenString string) (*sec.AuthClaims, error)
}

// # Authentication

// Authenticate resolves the caller's identity from the configured credential
// transport and stores the claims in the request context.
//
// Requests without a credential pass through anonymously; downstream guards
// like [RequireAuth] decide whether anonymity is acceptable. A credential that
// is present but invalid is rejected here with 401, so handlers never see a
// half-authenticated request.
func Authenticate(extractor *sec.Extractor, verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// 1. Look for a credential in the configured transport (cookie or header)
			tokenString, found := extractor.Extract(request.Header)
			if !found {
				next.ServeHTTP(writer, request)
				return
			}

			// 2. Verify signature and expiry
			claims, err := verifier.Verify(tokenString)
			if err != nil {
				respond.Error(writer, request, apperr.InvalidToken())
				return
			}

			// 3. Attach the identity for downstream handlers
			ctx := ctxutil.WithAuthUser(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth rejects anonymous requests with 401.
// It must be mounted after [Authenticate].
func RequireAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if ctxutil.GetAuthUser(request.Context()) == nil {
				respond.Error(writer, request, apperr.InvalidToken())
				return
			}
			next.ServeHTTP(writer, request)
		})
	}
}

// RequireStaff rejects requests whose caller is neither a moderator nor an
// admin. Anonymous requests get 401, authenticated non-staff get 403.
func RequireStaff() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims := ctxutil.GetAuthUser(request.Context())
			if claims == nil {
				respond.Error(writer, request, apperr.InvalidToken())
				return
			}
			if !sec.Authorize(claims, sec.ModeratorOrAdmin()) {
				respond.Error(writer, request, apperr.Forbidden("Moderator or admin role required"))
				return
			}
			next.ServeHTTP(writer, request)
		})
	}
}
