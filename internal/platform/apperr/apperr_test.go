// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/weavepost/internal/platform/apperr"
)

/*
TestConstructors checks the status and code of every error kind.
*/
func TestConstructors(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name   string
		err    *apperr.AppError
		status int
		code   string
	}{
		{"not_found", apperr.NotFound("Account"), http.StatusNotFound, apperr.CodeNotFound},
		{"unauthorized", apperr.Unauthorized("Not authenticated"), http.StatusUnauthorized, apperr.CodeUnauthorized},
		{"validation", apperr.ValidationError("bad"), http.StatusBadRequest, apperr.CodeValidation},
		{"duplicate_account", apperr.DuplicateAccount(), http.StatusBadRequest, apperr.CodeDuplicateAccount},
		{"invalid_credentials", apperr.InvalidCredentials(), http.StatusBadRequest, apperr.CodeInvalidCredentials},
		{"invalid_token", apperr.InvalidToken(cause), http.StatusUnauthorized, apperr.CodeInvalidToken},
		{"store_unavailable", apperr.StoreUnavailable(cause), http.StatusServiceUnavailable, apperr.CodeStoreUnavailable},
		{"internal", apperr.Internal(cause), http.StatusInternalServerError, apperr.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
			assert.Equal(t, tt.code, tt.err.Code)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

/*
TestCauseIsHidden ensures the client message never contains the cause.
*/
func TestCauseIsHidden(t *testing.T) {
	cause := errors.New("dial tcp 10.0.0.1:8080: connection refused")
	err := apperr.StoreUnavailable(cause)

	assert.NotContains(t, err.Error(), "10.0.0.1")
	assert.ErrorIs(t, err, cause)
}

/*
TestAs_HasCode walks wrapped chains.
*/
func TestAs_HasCode(t *testing.T) {
	wrapped := fmt.Errorf("auth_service_signup_failed: %w", apperr.DuplicateAccount())

	ae := apperr.As(wrapped)
	require.NotNil(t, ae)
	assert.Equal(t, apperr.CodeDuplicateAccount, ae.Code)
	assert.True(t, apperr.HasCode(wrapped, apperr.CodeDuplicateAccount))
	assert.False(t, apperr.HasCode(wrapped, apperr.CodeNotFound))

	assert.Nil(t, apperr.As(errors.New("plain")))
	assert.False(t, apperr.HasCode(nil, apperr.CodeNotFound))
}
