// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/weavepost/internal/platform/database/schema"
)

func TestColumns(t *testing.T) {
	assert.Equal(t, []string{"username", "email", "password_hash", "created_at"}, schema.Account.Columns())
	assert.Equal(t, []string{"id", "title", "content", "author", "created_at"}, schema.Post.Columns())
	assert.NotContains(t, schema.Post.Properties(), schema.Post.ID)
}
