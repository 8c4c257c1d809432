// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package weaviate_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/fault"
	"github.com/weaviate/weaviate/entities/models"

	weaviatedb "github.com/taibuivan/weavepost/internal/platform/weaviate"
)

type row struct {
	Name       string                `json:"name"`
	Additional weaviatedb.Additional `json:"_additional"`
}

func TestDecodeGet(t *testing.T) {
	response := &models.GraphQLResponse{
		Data: map[string]models.JSONObject{
			"Get": map[string]any{
				"Thing": []any{
					map[string]any{"name": "a", "_additional": map[string]any{"id": "id-a"}},
					map[string]any{"name": "b", "_additional": map[string]any{"id": "id-b"}},
				},
			},
		},
	}

	rows, err := weaviatedb.DecodeGet[row](response, "Thing")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "a", rows[0].Name)
	assert.Equal(t, "id-b", rows[1].Additional.ID)

	missing, err := weaviatedb.DecodeGet[row](response, "Other")
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestDecodeGet_Errors(t *testing.T) {
	_, err := weaviatedb.DecodeGet[row](nil, "Thing")
	assert.Error(t, err)

	response := &models.GraphQLResponse{
		Errors: []*models.GraphQLError{{Message: "no such class"}},
	}
	_, err = weaviatedb.DecodeGet[row](response, "Thing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no such class")
}

func TestIsAlreadyExists(t *testing.T) {
	duplicate := &fault.WeaviateClientError{
		IsUnexpectedStatusCode: true,
		StatusCode:             http.StatusUnprocessableEntity,
		Msg:                    `{"error":[{"message":"id 'abc' already exists"}]}`,
	}
	assert.True(t, weaviatedb.IsAlreadyExists(duplicate))
	assert.True(t, weaviatedb.IsAlreadyExists(fmt.Errorf("create: %w", duplicate)))

	invalid := &fault.WeaviateClientError{StatusCode: http.StatusUnprocessableEntity, Msg: "invalid property"}
	assert.False(t, weaviatedb.IsAlreadyExists(invalid))
	assert.False(t, weaviatedb.IsAlreadyExists(errors.New("already exists")))
}

func TestProperties(t *testing.T) {
	text := weaviatedb.TextProperty("username")
	assert.Equal(t, []string{"text"}, text.DataType)
	assert.Equal(t, "field", text.Tokenization)

	date := weaviatedb.DateProperty("created_at")
	assert.Equal(t, []string{"date"}, date.DataType)
}

func TestNewClient_InvalidURL(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, err := weaviatedb.NewClient(context.Background(), "not a url", "", logger)
	assert.Error(t, err)
}

func TestFields(t *testing.T) {
	fields := weaviatedb.Fields("title", "author")
	require.Len(t, fields, 2)
	assert.Equal(t, "title", fields[0].Name)
	assert.Equal(t, "author", fields[1].Name)

	additional := weaviatedb.AdditionalID()
	assert.Equal(t, "_additional", additional.Name)
	require.Len(t, additional.Fields, 1)
	assert.Equal(t, "id", additional.Fields[0].Name)
}
