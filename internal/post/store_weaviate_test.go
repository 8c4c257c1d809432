// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package post

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weaviate/weaviate/entities/models"

	"github.com/taibuivan/weavepost/internal/platform/apperr"
	weaviatedb "github.com/taibuivan/weavepost/internal/platform/weaviate"
	"github.com/taibuivan/weavepost/internal/platform/weaviate/weaviatetest"
	"github.com/taibuivan/weavepost/pkg/uuid"
)

func TestToPosts(t *testing.T) {
	response := &models.GraphQLResponse{
		Data: map[string]models.JSONObject{
			"Get": map[string]any{
				"Post": []any{
					map[string]any{
						"title":       "Hi",
						"content":     "First",
						"author":      "alice",
						"created_at":  "2026-10-19T08:00:00Z",
						"_additional": map[string]any{"id": "0192f0c4-0000-7000-8000-000000000001"},
					},
				},
			},
		},
	}

	objects, err := weaviatedb.DecodeGet[postObject](response, "Post")
	assert.NoError(t, err)

	posts := toPosts(objects)
	assert.Len(t, posts, 1)
	assert.Equal(t, "0192f0c4-0000-7000-8000-000000000001", posts[0].ID)
	assert.Equal(t, "alice", posts[0].Author)
	assert.True(t, posts[0].CreatedAt.Equal(time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)))
}

func TestClass(t *testing.T) {
	class := Class()
	assert.Equal(t, "Post", class.Class)
	assert.Equal(t, weaviatedb.VectorizerNone, class.Vectorizer)
	assert.Len(t, class.Properties, 4)
}

func newWeaviateRepository(t *testing.T) (*WeaviateRepository, *weaviatetest.Server) {
	t.Helper()

	server := weaviatetest.NewServer(t)
	repository := NewWeaviateRepository(server.Client(t))
	require.NoError(t, repository.EnsureSchema(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.True(t, server.HasClass("Post"))

	return repository, server
}

/*
TestWeaviateRepository_ListNewestFirst stores posts out of order and expects
the feed sorted on created_at descending, capped at the limit.
*/
func TestWeaviateRepository_ListNewestFirst(t *testing.T) {
	repository, server := newWeaviateRepository(t)
	ctx := context.Background()
	base := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)

	for _, offset := range []int{2, 0, 3, 1} {
		require.NoError(t, repository.Create(ctx, &Post{
			ID:        uuid.New(),
			Title:     "Post",
			Content:   "Body",
			Author:    "alice",
			CreatedAt: base.Add(time.Duration(offset) * time.Minute),
		}))
	}

	posts, err := repository.List(ctx, 3)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.True(t, posts[0].CreatedAt.Equal(base.Add(3*time.Minute)))
	assert.True(t, posts[1].CreatedAt.Equal(base.Add(2*time.Minute)))
	assert.True(t, posts[2].CreatedAt.Equal(base.Add(1*time.Minute)))

	queries := server.Queries()
	require.NotEmpty(t, queries)
	assert.Contains(t, queries[len(queries)-1], `sort:[{path:["created_at"] order:desc}]`)
	assert.Contains(t, queries[len(queries)-1], "limit: 3")
}

func TestWeaviateRepository_CreateKeepsID(t *testing.T) {
	repository, server := newWeaviateRepository(t)
	ctx := context.Background()

	created := &Post{ID: uuid.New(), Title: "Hi", Content: "First", Author: "alice", CreatedAt: time.Now().UTC()}
	require.NoError(t, repository.Create(ctx, created))

	objects := server.Objects("Post")
	require.Len(t, objects, 1)
	assert.Equal(t, created.ID, objects[0].ID.String())

	posts, err := repository.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, created.ID, posts[0].ID)
	assert.Equal(t, "First", posts[0].Content)
	assert.True(t, posts[0].CreatedAt.Equal(created.CreatedAt))
}

func TestWeaviateRepository_ListEmpty(t *testing.T) {
	repository, _ := newWeaviateRepository(t)

	posts, err := repository.List(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestWeaviateRepository_Unavailable(t *testing.T) {
	repository, server := newWeaviateRepository(t)
	server.Fail(http.StatusServiceUnavailable)

	_, err := repository.List(context.Background(), 10)
	assert.True(t, apperr.HasCode(err, apperr.CodeStoreUnavailable))

	err = repository.Create(context.Background(), &Post{ID: uuid.New(), CreatedAt: time.Now().UTC()})
	assert.True(t, apperr.HasCode(err, apperr.CodeStoreUnavailable))
}
