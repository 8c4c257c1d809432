// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/weavepost/internal/platform/constants"
	requestutil "github.com/taibuivan/weavepost/internal/platform/request"
	"github.com/taibuivan/weavepost/internal/platform/respond"
	"github.com/taibuivan/weavepost/internal/platform/validate"
)

// Handler implements the credential endpoints.
//
// Handlers are the "gatekeepers": they decode the payload, check its shape,
// and hand primitives to the [Service]. They contain no business logic.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// RegisterRoutes attaches the credential endpoints on router.
//
// # Endpoints
//   - POST /signup : Creates a new account.
//   - POST /token  : Exchanges a username and password for a bearer token.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/signup", handler.signup)
	router.Post("/token", handler.token)
}

// signupRequest represents the JSON payload expected for account creation.
type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// signup handles POST /signup requests.
//
// # Returns
//   - Writes HTTP 200 with a confirmation message on success.
//   - Writes HTTP 400 VALIDATION_ERROR for a malformed payload.
//   - Writes HTTP 400 DUPLICATE_ACCOUNT if the username is taken.
func (handler *Handler) signup(writer http.ResponseWriter, request *http.Request) {
	// ── 1. Payload Extraction ─────────────────────────────────────────────

	var input signupRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 2. Application Execution ──────────────────────────────────────────

	if err := handler.authService.Signup(request.Context(), input.Username, input.Email, input.Password); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 3. Presentation Output ────────────────────────────────────────────

	respond.Message(writer, "User created successfully")
}

// token handles POST /token requests (OAuth2 password grant, form encoded).
//
// # Returns
//   - Writes HTTP 200 with {access_token, token_type, expires_in}.
//   - Writes HTTP 400 INVALID_CREDENTIALS for an unknown user or wrong password.
//   - Writes HTTP 400 VALIDATION_ERROR if a form field is missing.
func (handler *Handler) token(writer http.ResponseWriter, request *http.Request) {
	// ── 1. Payload Extraction ─────────────────────────────────────────────

	if err := requestutil.ParseForm(writer, request); err != nil {
		respond.Error(writer, request, err)
		return
	}

	username := request.PostForm.Get("username")
	password := request.PostForm.Get("password")
	grantType := request.PostForm.Get("grant_type")

	// ── 2. Boundary Validation ────────────────────────────────────────────

	validator := &validate.Validator{}
	validator.Required("username", username).
		Required("password", password).
		Custom("grant_type", grantType != "" && grantType != constants.PasswordGrantType, "Must be 'password'")
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 3. Application Execution ──────────────────────────────────────────

	accessToken, err := handler.authService.Login(request.Context(), username, password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	writer.Header().Set("Cache-Control", "no-store")
	respond.OK(writer, accessToken)
}
