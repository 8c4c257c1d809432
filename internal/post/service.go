// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package post

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/weavepost/internal/platform/apperr"
	"github.com/taibuivan/weavepost/internal/platform/ctxutil"
	"github.com/taibuivan/weavepost/internal/platform/validate"
	"github.com/taibuivan/weavepost/pkg/uuid"
)

const (
	FieldTitle   = "title"
	FieldContent = "content"
)

// # Service Layer

// Service orchestrates publishing and listing posts.
type Service struct {
	posts     Repository
	listLimit int
	now       func() time.Time
}

// NewService constructs a new [Service]. listLimit caps every feed response.
func NewService(posts Repository, listLimit int) *Service {
	return &Service{
		posts:     posts,
		listLimit: listLimit,
		now:       time.Now,
	}
}

// # Post Operations

/*
Create publishes a post on behalf of author.

Parameters:
  - ctx: context.Context
  - author: string (verified token subject, never client input)
  - title: string
  - content: string

Returns:
  - *Post: The stored post with its generated ID
  - error: Unauthorized, validation or storage errors
*/
func (service *Service) Create(ctx context.Context, author, title, content string) (*Post, error) {
	if author == "" {
		return nil, apperr.Unauthorized("Not authenticated")
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, title).MaxLen(FieldTitle, title, MaxTitleLength)
	validator.Required(FieldContent, content).MaxLen(FieldContent, content, MaxContentLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	post := &Post{
		ID:        uuid.New(),
		Title:     title,
		Content:   content,
		Author:    author,
		CreatedAt: service.now().UTC(),
	}

	if err := service.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("post_service_create_failed: %w", err)
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "post_created",
		slog.String("post_id", post.ID),
		slog.String("author", author),
	)

	return post, nil
}

/*
List returns the newest posts first, at most the configured limit.

Returns:
  - []*Post: Never nil; an empty feed is an empty slice
  - error: Storage errors
*/
func (service *Service) List(ctx context.Context) ([]*Post, error) {
	posts, err := service.posts.List(ctx, service.listLimit)
	if err != nil {
		return nil, fmt.Errorf("post_service_list_failed: %w", err)
	}
	if posts == nil {
		posts = []*Post{}
	}
	return posts, nil
}
