// Copyright (c) 2026 Mecra. All rights reserved.
// Author: umut.kirgoz@posteo.net

package middleware_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/umutkirgoz/mecra/internal/platform/ctxutil"
	"github.com/umutkirgoz/mecra/internal/platform/middleware"
	"github.com/umutkirgoz/mecra/internal/platform/sec"
)

// stubVerifier accepts exactly one token string and returns fixed claims.
type stubVerifier struct {
	accept string
	claims *sec.AuthClaims
}

func (v *stubVerifier) Verify(tokenString string) (*sec.AuthClaims, error) {
	if tokenString == v.accept {
		return v.claims, nil
	}
	return nil, fmt.Errorf("stub: unknown token")
}

// echoUser writes the authenticated user's ID, or "anonymous".
func echoUser(writer http.ResponseWriter, request *http.Request) {
	claims := ctxutil.GetAuthUser(request.Context())
	if claims == nil {
		fmt.Fprint(writer, "anonymous")
		return
	}
	fmt.Fprintf(writer, "user:%d", claims.UserID)
}

/*
TestAuthenticate_CookieTransport verifies the full chain in cookie mode:
no credential passes through anonymously, a valid credential attaches
claims, an invalid one is rejected with 401.
*/
func TestAuthenticate_CookieTransport(t *testing.T) {
	verifier := &stubVerifier{accept: "good-token", claims: &sec.AuthClaims{UserID: 42}}
	extractor := sec.NewExtractor(sec.TokenSourceCookie)
	handler := middleware.Authenticate(extractor, verifier)(http.HandlerFunc(echoUser))

	tests := []struct {
		name       string
		cookie     string
		wantStatus int
		wantBody   string
	}{
		{"no_credential", "", http.StatusOK, "anonymous"},
		{"valid_credential", "token=good-token", http.StatusOK, "user:42"},
		{"invalid_credential", "token=bad-token", http.StatusUnauthorized, ""},
		{"other_cookies_only", "theme=dark", http.StatusOK, "anonymous"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", "/", nil)
			if tt.cookie != "" {
				request.Header.Set("Cookie", tt.cookie)
			}
			recorder := httptest.NewRecorder()

			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, recorder.Body.String())
			}
		})
	}
}

/*
TestAuthenticate_HeaderTransport verifies header mode reads Authorization
and ignores cookies entirely.
*/
func TestAuthenticate_HeaderTransport(t *testing.T) {
	verifier := &stubVerifier{accept: "good-token", claims: &sec.AuthClaims{UserID: 7}}
	extractor := sec.NewExtractor(sec.TokenSourceHeader)
	handler := middleware.Authenticate(extractor, verifier)(http.HandlerFunc(echoUser))

	// Bearer form.
	request := httptest.NewRequest("GET", "/", nil)
	request.Header.Set("Authorization", "Bearer good-token")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, "user:7", recorder.Body.String())

	// A cookie credential is invisible in header mode.
	request = httptest.NewRequest("GET", "/", nil)
	request.Header.Set("Cookie", "token=good-token")
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, "anonymous", recorder.Body.String())
}

/*
TestRequireAuth rejects anonymous requests after the Authenticate stage.
*/
func TestRequireAuth(t *testing.T) {
	handler := middleware.RequireAuth()(http.HandlerFunc(echoUser))

	// Anonymous: 401.
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	// Authenticated: passes.
	request := httptest.NewRequest("GET", "/", nil)
	request = request.WithContext(ctxutil.WithAuthUser(request.Context(), &sec.AuthClaims{UserID: 3}))
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "user:3", recorder.Body.String())
}

/*
TestRequireStaff distinguishes 401 for anonymous from 403 for plain members.
*/
func TestRequireStaff(t *testing.T) {
	handler := middleware.RequireStaff()(http.HandlerFunc(echoUser))

	tests := []struct {
		name       string
		claims     *sec.AuthClaims
		wantStatus int
	}{
		{"anonymous", nil, http.StatusUnauthorized},
		{"member", &sec.AuthClaims{UserID: 1}, http.StatusForbidden},
		{"moderator", &sec.AuthClaims{UserID: 1, IsModerator: true}, http.StatusOK},
		{"admin", &sec.AuthClaims{UserID: 1, IsAdmin: true}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", "/", nil)
			if tt.claims != nil {
				request = request.WithContext(ctxutil.WithAuthUser(request.Context(), tt.claims))
			}
			recorder := httptest.NewRecorder()

			handler.ServeHTTP(recorder, request)
			assert.Equal(t, tt.wantStatus, recorder.Code)
		})
	}
}
