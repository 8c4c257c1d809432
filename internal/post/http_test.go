// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package post_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/weavepost/internal/platform/apperr"
	"github.com/taibuivan/weavepost/internal/platform/sec"
	"github.com/taibuivan/weavepost/internal/post"
)

// stubVerifier accepts "token-<name>" as a bearer for <name>.
type stubVerifier struct{}

func (stubVerifier) VerifyToken(token string) (*sec.AuthClaims, error) {
	name, ok := strings.CutPrefix(token, "token-")
	if !ok {
		return nil, apperr.InvalidToken(errors.New("unknown token"))
	}
	return &sec.AuthClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: name}}, nil
}

func newRouter(t *testing.T, repository post.Repository) http.Handler {
	t.Helper()
	router := chi.NewRouter()
	post.NewHandler(post.NewService(repository, 100), stubVerifier{}).RegisterRoutes(router)
	return router
}

func do(router http.Handler, method, body, authorization string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, "/posts", strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	if authorization != "" {
		request.Header.Set("Authorization", authorization)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

/*
TestHandler_CreatePost uses the token subject as author and ignores any
author in the body.
*/
func TestHandler_CreatePost(t *testing.T) {
	repository := post.NewMemoryRepository()
	router := newRouter(t, repository)

	recorder := do(router, http.MethodPost, `{"title":"Hi","content":"First","author":"mallory"}`, "Bearer token-alice")
	require.Equal(t, http.StatusOK, recorder.Code)

	var message map[string]string
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &message))
	assert.Equal(t, "Post created successfully", message["message"])

	posts, err := repository.List(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "alice", posts[0].Author)
}

func TestHandler_CreatePostUnauthorized(t *testing.T) {
	repository := post.NewMemoryRepository()
	router := newRouter(t, repository)
	body := `{"title":"Hi","content":"First"}`

	tests := []struct {
		name          string
		authorization string
		code          string
	}{
		{"missing header", "", "UNAUTHORIZED"},
		{"invalid token", "Bearer nope", "INVALID_TOKEN"},
		{"wrong scheme", "Basic token-alice", "INVALID_TOKEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := do(router, http.MethodPost, body, tt.authorization)
			assert.Equal(t, http.StatusUnauthorized, recorder.Code)
			assert.Equal(t, "Bearer", recorder.Header().Get("WWW-Authenticate"))

			var envelope map[string]any
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
			assert.Equal(t, tt.code, envelope["code"])
		})
	}

	posts, err := repository.List(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestHandler_CreatePostValidation(t *testing.T) {
	router := newRouter(t, post.NewMemoryRepository())

	for _, body := range []string{`not json`, `{"title":"","content":"x"}`, `{"title":"x"}`} {
		recorder := do(router, http.MethodPost, body, "Bearer token-alice")
		assert.Equal(t, http.StatusBadRequest, recorder.Code, body)
	}
}

func TestHandler_ListPosts(t *testing.T) {
	router := newRouter(t, post.NewMemoryRepository())

	recorder := do(router, http.MethodGet, "", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `[]`, recorder.Body.String())

	require.Equal(t, http.StatusOK, do(router, http.MethodPost, `{"title":"Hi","content":"First"}`, "Bearer token-alice").Code)

	// Anonymous reads are allowed, and a bad token on GET is ignored.
	recorder = do(router, http.MethodGet, "", "Bearer nope")
	require.Equal(t, http.StatusOK, recorder.Code)

	var posts []map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &posts))
	require.Len(t, posts, 1)
	assert.Equal(t, "Hi", posts[0]["title"])
	assert.Equal(t, "First", posts[0]["content"])
	assert.Equal(t, "alice", posts[0]["author"])
	assert.NotEmpty(t, posts[0]["id"])
	assert.NotEmpty(t, posts[0]["created_at"])
}

func TestHandler_ListPostsStoreUnavailable(t *testing.T) {
	router := newRouter(t, brokenRepository{})

	recorder := do(router, http.MethodGet, "", "")
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "connection refused")
}
