// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package post

import (
	"context"
	"log/slog"
	"time"

	"github.com/weaviate/weaviate-go-client/v4/weaviate"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"

	"github.com/taibuivan/weavepost/internal/platform/database/schema"
	"github.com/taibuivan/weavepost/internal/platform/dberr"
	weaviatedb "github.com/taibuivan/weavepost/internal/platform/weaviate"
)

// WeaviateRepository stores each post as one object of the Post class,
// using the post ID as the object id.
type WeaviateRepository struct {
	client *weaviate.Client
}

// NewWeaviateRepository creates a Weaviate implementation of [Repository].
func NewWeaviateRepository(client *weaviate.Client) *WeaviateRepository {
	return &WeaviateRepository{client: client}
}

// Class is the schema of the Post class.
func Class() *models.Class {
	return &models.Class{
		Class:       schema.Post.Class,
		Description: "Published posts",
		Vectorizer:  weaviatedb.VectorizerNone,
		Properties: []*models.Property{
			{Name: schema.Post.Title, DataType: []string{weaviatedb.DataTypeText}},
			{Name: schema.Post.Content, DataType: []string{weaviatedb.DataTypeText}},
			weaviatedb.TextProperty(schema.Post.Author),
			weaviatedb.DateProperty(schema.Post.CreatedAt),
		},
	}
}

// EnsureSchema creates the Post class if it is missing.
func (repository *WeaviateRepository) EnsureSchema(ctx context.Context, logger *slog.Logger) error {
	return weaviatedb.EnsureClass(ctx, repository.client, Class(), logger)
}

// postObject mirrors the Post class properties.
type postObject struct {
	Title      string                `json:"title"`
	Content    string                `json:"content"`
	Author     string                `json:"author"`
	CreatedAt  time.Time             `json:"created_at"`
	Additional weaviatedb.Additional `json:"_additional"`
}

// Create implements [Repository].
func (repository *WeaviateRepository) Create(ctx context.Context, post *Post) error {
	_, err := repository.client.Data().Creator().
		WithClassName(schema.Post.Class).
		WithID(post.ID).
		WithProperties(map[string]interface{}{
			schema.Post.Title:     post.Title,
			schema.Post.Content:   post.Content,
			schema.Post.Author:    post.Author,
			schema.Post.CreatedAt: post.CreatedAt.UTC().Format(time.RFC3339Nano),
		}).
		Do(ctx)
	if err != nil {
		return dberr.Unavailable(err, "weaviate_post_repo_create")
	}

	return nil
}

// List implements [Repository], sorted on created_at descending.
func (repository *WeaviateRepository) List(ctx context.Context, limit int) ([]*Post, error) {
	response, err := repository.client.GraphQL().Get().
		WithClassName(schema.Post.Class).
		WithFields(append(weaviatedb.Fields(schema.Post.Properties()...), weaviatedb.AdditionalID())...).
		WithSort(graphql.Sort{Path: []string{schema.Post.CreatedAt}, Order: graphql.Desc}).
		WithLimit(limit).
		Do(ctx)
	if err != nil {
		return nil, dberr.Unavailable(err, "weaviate_post_repo_list")
	}

	objects, err := weaviatedb.DecodeGet[postObject](response, schema.Post.Class)
	if err != nil {
		return nil, dberr.Unavailable(err, "weaviate_post_repo_list")
	}

	return toPosts(objects), nil
}

func toPosts(objects []postObject) []*Post {
	posts := make([]*Post, 0, len(objects))
	for _, object := range objects {
		posts = append(posts, &Post{
			ID:        object.Additional.ID,
			Title:     object.Title,
			Content:   object.Content,
			Author:    object.Author,
			CreatedAt: object.CreatedAt,
		})
	}
	return posts
}
