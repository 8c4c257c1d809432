// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/weavepost/internal/platform/apperr"
	"github.com/taibuivan/weavepost/internal/platform/constants"
	"github.com/taibuivan/weavepost/internal/platform/ctxutil"
	"github.com/taibuivan/weavepost/internal/platform/dberr"
	"github.com/taibuivan/weavepost/internal/platform/sec"
	"github.com/taibuivan/weavepost/internal/platform/validate"
)

// Service implements account registration, password login and token verification.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed by the security team.
type Service struct {
	accounts AccountRepository
	hasher   *sec.Hasher
	tokens   *sec.TokenService
	now      func() time.Time

	// decoyHash is verified against when the account does not exist, so an
	// unknown username costs one bcrypt comparison like a wrong password.
	decoyHash string
}

// ServiceOption configures optional [Service] behaviour.
type ServiceOption func(*Service)

// WithClock replaces the wall clock used to stamp new accounts.
func WithClock(now func() time.Time) ServiceOption {
	return func(service *Service) {
		service.now = now
	}
}

// NewService constructs a new [Service] with its dependencies.
func NewService(accounts AccountRepository, hasher *sec.Hasher, tokens *sec.TokenService, opts ...ServiceOption) (*Service, error) {
	decoyHash, err := hasher.Hash("weavepost-decoy-password")
	if err != nil {
		return nil, fmt.Errorf("auth_service_init_failed: %w", err)
	}

	service := &Service{
		accounts:  accounts,
		hasher:    hasher,
		tokens:    tokens,
		now:       time.Now,
		decoyHash: decoyHash,
	}
	for _, opt := range opts {
		opt(service)
	}

	return service, nil
}

// Signup validates, hashes, and persists a brand new account.
//
// # Returns
//   - [apperr.ValidationError] for a malformed username, email or password.
//   - [apperr.DuplicateAccount] if the username is taken, including when a
//     concurrent signup wins the race.
//   - [apperr.StoreUnavailable] if the store cannot be reached.
func (service *Service) Signup(ctx context.Context, username, email, password string) error {
	username = CanonicalUsername(username)
	email = strings.TrimSpace(email)

	// ── 1. Validation ─────────────────────────────────────────────────────

	validator := &validate.Validator{}
	validator.Required("username", username).
		MinLen("username", username, MinUsernameLength).
		MaxLen("username", username, MaxUsernameLength)
	validator.Required("email", email)
	if email != "" {
		validator.Email("email", email)
	}
	validator.Required("password", password).
		MaxBytes("password", password, sec.MaxPasswordBytes)
	if err := validator.Err(); err != nil {
		return err
	}

	// ── 2. Uniqueness Pre-check ───────────────────────────────────────────

	_, err := service.accounts.FindByUsername(ctx, username)
	if err == nil {
		return apperr.DuplicateAccount()
	}
	if !dberr.IsNotFound(err) {
		return fmt.Errorf("auth_service_signup_lookup_failed: %w", err)
	}

	// ── 3. Security ───────────────────────────────────────────────────────

	passwordHash, err := service.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// ── 4. Persistence ────────────────────────────────────────────────────

	account := &Account{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    service.now().UTC(),
	}
	if err := service.accounts.Create(ctx, account); err != nil {
		if dberr.IsDuplicate(err) {
			return apperr.DuplicateAccount()
		}
		return fmt.Errorf("auth_service_signup_failed: %w", err)
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "account_created", slog.String("username", username))

	return nil
}

// Login checks the credentials and issues a bearer token for the account.
//
// An unknown username and a wrong password both return
// [apperr.InvalidCredentials], with the same message.
func (service *Service) Login(ctx context.Context, username, password string) (*AccessToken, error) {
	username = CanonicalUsername(username)
	logger := ctxutil.GetLogger(ctx)

	// ── 1. Fetch Account ──────────────────────────────────────────────────

	account, err := service.accounts.FindByUsername(ctx, username)
	if err != nil {
		if !dberr.IsNotFound(err) {
			return nil, fmt.Errorf("auth_service_login_lookup_failed: %w", err)
		}
		service.hasher.Verify(password, service.decoyHash)
		logger.InfoContext(ctx, "login_failed", slog.String("reason", "unknown_account"))
		return nil, apperr.InvalidCredentials()
	}

	// ── 2. Password Verification ──────────────────────────────────────────

	if !service.hasher.Verify(password, account.PasswordHash) {
		logger.InfoContext(ctx, "login_failed", slog.String("reason", "password_mismatch"))
		return nil, apperr.InvalidCredentials()
	}

	// ── 3. Token Issuance ─────────────────────────────────────────────────

	token, expiresAt, err := service.tokens.GenerateAccessToken(account.Username)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return &AccessToken{
		AccessToken: token,
		TokenType:   constants.TokenType,
		ExpiresIn:   int64(service.tokens.TimeToLive().Seconds()),
		ExpiresAt:   expiresAt,
	}, nil
}

// VerifyToken checks a bearer token and returns its claims.
// Every failure is reported as [apperr.InvalidToken].
func (service *Service) VerifyToken(token string) (*sec.AuthClaims, error) {
	claims, err := service.tokens.VerifyToken(token)
	if err != nil {
		return nil, apperr.InvalidToken(err)
	}
	return claims, nil
}

// Authenticate returns the username asserted by a valid bearer token.
//
// The account is not looked up: a token stays valid until it expires.
func (service *Service) Authenticate(token string) (string, error) {
	claims, err := service.VerifyToken(token)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}
