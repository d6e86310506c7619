// Copyright (c) 2026 Mecra. All rights reserved.
// Author: umut.kirgoz@posteo.net

package auth

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/umutkirgoz/mecra/internal/platform/apperr"
	"github.com/umutkirgoz/mecra/internal/platform/constants"
	"github.com/umutkirgoz/mecra/internal/platform/ctxutil"
	"github.com/umutkirgoz/mecra/internal/platform/middleware"
	"github.com/umutkirgoz/mecra/internal/platform/respond"
	"github.com/umutkirgoz/mecra/internal/platform/sec"
	"github.com/umutkirgoz/mecra/internal/platform/validate"
)

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// This handler manages the user lifecycle entry points (Registration, Login,
// Logout) and the session cookie they maintain. It contains NO business logic
// or database queries.
type Handler struct {
	authService *Service
	extractor   *sec.Extractor
}

// NewHandler constructs a new [Handler] with its dependencies.
//
// The extractor decides where logout looks for the credential (cookie or
// Authorization header), matching the deployment's configured transport.
func NewHandler(service *Service, extractor *sec.Extractor) *Handler {
	return &Handler{authService: service, extractor: extractor}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /register : Creates a new account.
//   - POST /login    : Authenticates, sets the session cookie, returns the JWT.
//   - POST /logout   : Invalidates the presented credential, clears the cookie.
//   - GET  /me       : Returns the authenticated caller's fresh profile.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/logout", handler.logout)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth())
		protected.Get("/me", handler.me)
	})

	return router
}

// registerRequest represents the JSON payload expected for account creation.
type registerRequest struct {
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// register handles POST /api/v1/auth/register requests.
//
// # Returns
//   - Writes HTTP 201 Created on success with the User profile.
//   - Writes HTTP 400 Bad Request if validation fails or the nickname/email
//     is taken.
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	// ── 1. Payload Extraction ─────────────────────────────────────────────

	var input registerRequest
	if err := json.NewDecoder(request.Body).Decode(&input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	// ── 2. Application Execution ──────────────────────────────────────────

	// The service owns the full validation chain (nickname bounds, email
	// shape, password policy) so rules stay identical across transports.
	user, err := handler.authService.Register(request.Context(), RegisterInput{
		Nickname: input.Nickname,
		Email:    input.Email,
		Password: input.Password,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 3. Presentation Output ────────────────────────────────────────────

	respond.Created(writer, user)
}

// loginRequest represents the JSON payload expected for authentication.
type loginRequest struct {
	Nickname string `json:"nickname"`
	Password string `json:"password"`
}

// login handles POST /api/v1/auth/login requests.
//
// # Returns
//   - Writes HTTP 200 OK on success with the token and User profile, and
//     sets the session cookie.
//   - Writes HTTP 401 for bad credentials, without revealing whether the
//     nickname or the password was wrong.
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	// ── 1. Payload Extraction ─────────────────────────────────────────────

	var input loginRequest
	if err := json.NewDecoder(request.Body).Decode(&input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	// ── 2. Boundary Validation ────────────────────────────────────────────

	if input.Nickname == "" || input.Password == "" {
		respond.Error(writer, request, validate.RequiredError("nickname/password", "are required"))
		return
	}

	// ── 3. Application Execution ──────────────────────────────────────────

	session, err := handler.authService.Login(request.Context(), LoginInput{
		Nickname: input.Nickname,
		Password: input.Password,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 4. Session Cookie ─────────────────────────────────────────────────

	// The cookie expires exactly when the JWT inside it does, so the browser
	// drops the credential the moment the server would reject it anyway.
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    session.Token,
		Path:     constants.SessionCookiePath,
		Expires:  session.Claims.ExpiresAt.Time,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})

	// ── 5. Presentation Output ────────────────────────────────────────────

	respond.OK(writer, map[string]any{
		"token": session.Token,
		"user":  session.User,
	})
}

// logout handles POST /api/v1/auth/logout requests.
//
// # Returns
//   - Writes HTTP 204 No Content on success and clears the session cookie.
//   - Writes HTTP 401 if no credential is presented, or if the presented
//     credential was never issued or is already invalidated.
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	// ── 1. Credential Extraction ──────────────────────────────────────────

	// Logout reads the raw credential itself rather than relying on the
	// Authenticate middleware: the ledger needs the exact token string to
	// compute the fingerprint, not just the verified claims.
	token, found := handler.extractor.Extract(request.Header)
	if !found {
		respond.Error(writer, request, apperr.InvalidToken())
		return
	}

	// ── 2. Application Execution ──────────────────────────────────────────

	if err := handler.authService.Logout(request.Context(), token); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 3. Cookie Teardown ────────────────────────────────────────────────

	// An epoch expiry makes the browser discard the cookie immediately.
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     constants.SessionCookiePath,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})

	respond.NoContent(writer)
}

// me handles GET /api/v1/auth/me requests.
//
// Returns the caller's fresh profile from storage, not the possibly stale
// snapshot inside the JWT claims.
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	claims := ctxutil.GetAuthUser(request.Context())

	user, err := handler.authService.Me(request.Context(), claims.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}
