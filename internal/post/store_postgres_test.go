// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package post

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostQueries(t *testing.T) {
	squash := func(query string) string { return strings.Join(strings.Fields(query), " ") }

	assert.Equal(t,
		"INSERT INTO posts (id, title, content, author, created_at) VALUES ($1, $2, $3, $4, $5)",
		squash(insertPostQuery))

	assert.Equal(t,
		"SELECT id, title, content, author, created_at FROM posts ORDER BY created_at DESC, id DESC LIMIT $1",
		squash(listPostsQuery))
}
