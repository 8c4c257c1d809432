// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. The auth service receives a [Hasher] and a [TokenService]
// through its constructor and never touches bcrypt or JWT directly.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for every token that fails verification.
//
// Malformed, tampered and expired tokens all wrap this single sentinel.
var ErrInvalidToken = errors.New("sec: invalid token")

// AuthClaims is the payload embedded inside an access token: {sub, exp}.
type AuthClaims struct {
	jwt.RegisteredClaims
}

// TokenService handles generation and verification of JWT tokens using HS256.
//
// It is constructed once at startup; the secret never changes afterwards.
type TokenService struct {
	secret     []byte
	timeToLive time.Duration
	now        func() time.Time
}

// TokenOption customises a [TokenService].
type TokenOption func(*TokenService)

// WithClock replaces the wall clock used for issuing and verifying tokens.
func WithClock(now func() time.Time) TokenOption {
	return func(service *TokenService) {
		service.now = now
	}
}

// NewTokenService creates a new TokenService signing with secret.
func NewTokenService(secret string, timeToLive time.Duration, options ...TokenOption) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("sec: signing secret must not be empty")
	}
	if timeToLive <= 0 {
		return nil, fmt.Errorf("sec: token time-to-live must be positive, got %s", timeToLive)
	}

	service := &TokenService{
		secret:     []byte(secret),
		timeToLive: timeToLive,
		now:        time.Now,
	}
	for _, option := range options {
		option(service)
	}
	return service, nil
}

// TimeToLive returns how long issued tokens stay valid.
func (service *TokenService) TimeToLive() time.Duration {
	return service.timeToLive
}

// GenerateAccessToken creates a signed token for subject.
//
// It returns the compact token and its absolute expiry.
func (service *TokenService) GenerateAccessToken(subject string) (string, time.Time, error) {
	expiresAt := service.now().Add(service.timeToLive)
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, expiresAt, nil
}

// VerifyToken checks the signature and expiry of a token string.
//
// Any failure is reported as [ErrInvalidToken].
func (service *TokenService) VerifyToken(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		return service.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(service.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return claims, nil
}
