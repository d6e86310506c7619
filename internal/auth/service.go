// Copyright (c) 2026 Mecra. All rights reserved.
// Author: umut.kirgoz@posteo.net

package auth

import (
	"context"
	"fmt"

	"github.com/umutkirgoz/mecra/internal/platform/apperr"
	"github.com/umutkirgoz/mecra/internal/platform/dberr"
	"github.com/umutkirgoz/mecra/internal/platform/sec"
	"github.com/umutkirgoz/mecra/internal/platform/validate"
)

// Validation bounds for registration input.
const (
	NicknameMinLen = 2
	NicknameMaxLen = 30
)

// TokenProvider defines the contract for minting signed session credentials.
type TokenProvider interface {
	// Generate creates a signed JWT embedding the user's identity snapshot.
	//
	// # Returns
	//   - The signed JWT string and the claims baked into it, or an error
	//     if signing fails.
	Generate(userID int64, nickname, email string, isAdmin, isModerator, isFaded bool) (string, *sec.AuthClaims, error)
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed by the security team.
type Service struct {
	userRepository  UserRepository
	tokenRepository TokenRepository
	tokenProvider   TokenProvider
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	tokenRepo TokenRepository,
	tokenProv TokenProvider,
) *Service {
	return &Service{
		userRepository:  userRepo,
		tokenRepository: tokenRepo,
		tokenProvider:   tokenProv,
	}
}

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Nickname string
	Email    string
	Password string
}

// Register validates, hashes, and persists a brand new user account.
//
// # Parameters
//   - context: Context for the database operation.
//   - input: The user-provided registration details.
//
// # Returns
//   - A pointer to the newly created [*User].
//   - Returns [apperr.InvalidRequest] if a rule fails or the nickname/email
//     is already in use.
//
// # Business Rules
//   - Nicknames are 2 to 30 characters and unique.
//   - Emails are valid addresses and unique.
//   - Passwords need an uppercase letter, a lowercase letter, a digit,
//     no whitespace, and at least 8 characters.
//   - New accounts start with no staff roles and full trust.
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {
	// ── 1. Input Validation ───────────────────────────────────────────────

	validator := &validate.Validator{}
	validator.
		Required("nickname", input.Nickname).
		MinLen("nickname", input.Nickname, NicknameMinLen).
		MaxLen("nickname", input.Nickname, NicknameMaxLen).
		Required("email", input.Email).
		Email("email", input.Email).
		Password("password", input.Password)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// ── 2. Security ───────────────────────────────────────────────────────

	// Prevent storing plain-text passwords. Argon2id parameters balance
	// security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// ── 3. Entity Construction ────────────────────────────────────────────

	user := &User{
		Nickname:     input.Nickname,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		IsAdmin:      false,
		IsModerator:  false,
		IsFaded:      false,
	}

	// ── 4. Persistence ────────────────────────────────────────────────────

	// Uniqueness is enforced atomically by database constraints rather than
	// a read-then-write check, so concurrent registrations cannot race.
	if err := service.userRepository.Create(context, user); err != nil {
		if dberr.IsUniqueViolation(err) {
			return nil, apperr.InvalidRequest("Nickname or email is already in use")
		}
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	return user, nil
}

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Nickname string
	Password string
}

// LoginSession represents a successfully established user session.
type LoginSession struct {
	Token  string
	Claims *sec.AuthClaims
	User   *User
}

// Login validates user credentials and issues a session credential.
//
// # Parameters
//   - context: Context for the database operation.
//   - input: Contains Nickname and plain-text Password.
//
// # Returns
//   - A pointer to [LoginSession] containing the signed JWT and its claims.
//   - Returns [apperr.InvalidCredentials] if credentials do not match.
//
// # Flow
//  1. Lookup non-deleted user by nickname.
//  2. Verify password against the Argon2id hash.
//  3. Mint the JWT and append its fingerprint to the ledger.
//
// The credential only becomes valid once the ledger row exists: if Record
// fails, the token is never handed to the caller.
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {
	// ── 1. Fetch User Profile ─────────────────────────────────────────────

	// An unknown nickname collapses into the generic credentials error to
	// prevent enumeration. A storage failure is not a credentials problem
	// and must surface as such.
	user, err := service.userRepository.FindByNickname(context, input.Nickname)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.InvalidCredentials()
		}
		return nil, fmt.Errorf("auth_service_user_lookup_failed: %w", err)
	}

	// ── 2. Security Verification ──────────────────────────────────────────

	// Constant-time digest comparison inside CheckPasswordHash prevents
	// timing attacks.
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.InvalidCredentials()
	}

	// ── 3. Token Issuance ─────────────────────────────────────────────────

	token, claims, err := service.tokenProvider.Generate(
		user.ID, user.Nickname, user.Email,
		user.IsAdmin, user.IsModerator, user.IsFaded,
	)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	// ── 4. Ledger Recording ───────────────────────────────────────────────

	ledgerRow := &SessionToken{
		UserID: user.ID,
		Hash:   sec.Fingerprint(token),
	}

	if err := service.tokenRepository.Record(context, ledgerRow); err != nil {
		return nil, fmt.Errorf("auth_service_ledger_record_failed: %w", err)
	}

	return &LoginSession{
		Token:  token,
		Claims: claims,
		User:   user,
	}, nil
}

// Logout invalidates the presented session credential in the ledger.
//
// # Returns
//   - Returns [apperr.InvalidToken] if the credential was never issued or
//     has already been invalidated, making a second logout with the same
//     token fail loudly instead of silently succeeding.
func (service *Service) Logout(context context.Context, token string) error {
	fingerprint := sec.Fingerprint(token)

	err := service.tokenRepository.Invalidate(context, fingerprint)
	if err != nil {
		if apperr.IsNotFound(err) {
			return apperr.InvalidToken()
		}
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}

	return nil
}

// Me returns the fresh profile of the authenticated caller.
//
// Unlike the claims snapshot inside the JWT, this reads current roles and
// flags from storage.
func (service *Service) Me(context context.Context, userID int64) (*User, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}
