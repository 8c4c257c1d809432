// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/weavepost/internal/auth"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	f := newFixture(t)
	router := chi.NewRouter()
	auth.NewHandler(f.service).RegisterRoutes(router)
	return router
}

func postJSON(router http.Handler, path, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func postForm(router http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

func TestHandler_Signup(t *testing.T) {
	router := newRouter(t)

	recorder := postJSON(router, "/signup", `{"username":"alice","email":"a@x.com","password":"pw1"}`)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "User created successfully", decodeBody(t, recorder)["message"])

	recorder = postJSON(router, "/signup", `{"username":"alice","email":"a@x.com","password":"pw2"}`)
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, "DUPLICATE_ACCOUNT", body["code"])
	assert.Equal(t, "Username already exists", body["error"])
}

func TestHandler_SignupRejectsBadPayload(t *testing.T) {
	router := newRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{"not json", `username=alice`},
		{"missing fields", `{}`},
		{"bad email", `{"username":"alice","email":"nope","password":"pw"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := postJSON(router, "/signup", tt.body)
			assert.Equal(t, http.StatusBadRequest, recorder.Code)
			assert.Equal(t, "VALIDATION_ERROR", decodeBody(t, recorder)["code"])
		})
	}
}

func TestHandler_Token(t *testing.T) {
	router := newRouter(t)
	require.Equal(t, http.StatusOK, postJSON(router, "/signup", `{"username":"alice","email":"a@x.com","password":"pw1"}`).Code)

	recorder := postForm(router, "/token", url.Values{"username": {"alice"}, "password": {"pw1"}, "grant_type": {"password"}})
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "no-store", recorder.Header().Get("Cache-Control"))

	body := decodeBody(t, recorder)
	assert.NotEmpty(t, body["access_token"])
	assert.Equal(t, "bearer", body["token_type"])
	assert.EqualValues(t, 1800, body["expires_in"])
}

func TestHandler_TokenFailures(t *testing.T) {
	router := newRouter(t)
	require.Equal(t, http.StatusOK, postJSON(router, "/signup", `{"username":"alice","email":"a@x.com","password":"pw1"}`).Code)

	tests := []struct {
		name string
		form url.Values
		code string
	}{
		{"wrong password", url.Values{"username": {"alice"}, "password": {"nope"}}, "INVALID_CREDENTIALS"},
		{"unknown user", url.Values{"username": {"mallory"}, "password": {"pw1"}}, "INVALID_CREDENTIALS"},
		{"missing password", url.Values{"username": {"alice"}}, "VALIDATION_ERROR"},
		{"unsupported grant", url.Values{"username": {"alice"}, "password": {"pw1"}, "grant_type": {"client_credentials"}}, "VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := postForm(router, "/token", tt.form)
			assert.Equal(t, http.StatusBadRequest, recorder.Code)
			assert.Equal(t, tt.code, decodeBody(t, recorder)["code"])
		})
	}
}
