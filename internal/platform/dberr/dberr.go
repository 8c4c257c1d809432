// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level store errors and
// higher-level application errors.
//
// Every store backend (Weaviate, PostgreSQL, memory) reports the same three
// outcomes: [ErrNotFound], [ErrDuplicate], or a 503 [apperr.StoreUnavailable].
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/weavepost/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried record doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")

	// ErrDuplicate is returned when an insert collides with an existing key.
	ErrDuplicate = errors.New("dberr: duplicate key")
)

// Wrap inspects a PostgreSQL error and wraps it into a meaningful application error.
// It hides internal database details from the client while classifying the error type.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	// 2. Unique constraint violations
	var pgError *pgconn.PgError
	if errors.As(err, &pgError) && pgError.Code == pgerrcode.UniqueViolation {
		return fmt.Errorf("%s: %w", action, ErrDuplicate)
	}

	// 3. Everything else means the store could not serve the request
	return Unavailable(err, action)
}

// Unavailable wraps a connectivity or query failure as a 503 [apperr.AppError].
func Unavailable(err error, action string) error {
	return apperr.StoreUnavailable(fmt.Errorf("%s: %w", action, err))
}

// IsNotFound reports whether err means the record does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicate reports whether err means the record already exists.
func IsDuplicate(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
