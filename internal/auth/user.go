// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package auth owns the credential and token lifecycle: account registration,
// password login, and bearer token verification.
//
// # Architecture
//
// The [Service] takes and returns primitives only. Request decoding lives in
// http.go, persistence behind [AccountRepository].
package auth

import (
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// Username length bounds, counted in Unicode characters.
const (
	MinUsernameLength = 3
	MaxUsernameLength = 64
)

// Account represents a registered user.
//
// # Rules
//   - Username is unique and immutable once created.
//   - Accounts are never deleted.
//   - PasswordHash is a bcrypt hash; the plaintext is never stored.
type Account struct {
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// AccessToken is the result of a successful password login.
type AccessToken struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   int64     `json:"expires_in"`
	ExpiresAt   time.Time `json:"-"`
}

// CanonicalUsername trims surrounding whitespace and applies Unicode NFC so
// that visually identical names map to the same account.
func CanonicalUsername(username string) string {
	return norm.NFC.String(strings.TrimSpace(username))
}
