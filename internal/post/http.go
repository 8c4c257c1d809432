// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package post

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/weavepost/internal/platform/middleware"
	requestutil "github.com/taibuivan/weavepost/internal/platform/request"
	"github.com/taibuivan/weavepost/internal/platform/respond"
)

// Handler implements the post feed endpoints.
type Handler struct {
	service  *Service
	verifier middleware.TokenVerifier
}

// NewHandler constructs a new post [Handler]. verifier guards the write endpoint.
func NewHandler(service *Service, verifier middleware.TokenVerifier) *Handler {
	return &Handler{service: service, verifier: verifier}
}

// RegisterRoutes attaches the feed endpoints to the root API router.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	// Public feed
	api.Get("/posts", handler.ListPosts)

	// Publishing requires a bearer token
	api.Group(func(author chi.Router) {
		author.Use(middleware.Authenticate(handler.verifier))
		author.Use(middleware.RequireAuth)
		author.Post("/posts", handler.CreatePost)
	})
}

// # Feed

/*
GET /posts.

Description: Returns the newest posts first. No authentication.

Response:
  - 200: []Post
  - 503: STORE_UNAVAILABLE
*/
func (handler *Handler) ListPosts(writer http.ResponseWriter, request *http.Request) {
	posts, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, posts)
}

// # Publishing

// createPostRequest defines the inbound JSON schema. Any "author" field sent
// by the client is ignored.
type createPostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

/*
POST /posts.

Description: Publishes a post authored by the bearer token subject.

Request:
  - Authorization: Bearer <token>
  - body: createPostRequest

Response:
  - 200: {"message": "Post created successfully"}
  - 400: VALIDATION_ERROR
  - 401: UNAUTHORIZED / INVALID_TOKEN
*/
func (handler *Handler) CreatePost(writer http.ResponseWriter, request *http.Request) {
	author, err := requestutil.RequiredSubject(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createPostRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if _, err := handler.service.Create(request.Context(), author, input.Title, input.Content); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, "Post created successfully")
}
