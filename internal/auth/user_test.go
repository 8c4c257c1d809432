// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/weavepost/internal/auth"
)

func TestCanonicalUsername(t *testing.T) {
	assert.Equal(t, "alice", auth.CanonicalUsername("  alice\t"))
	assert.Equal(t, "jos\u00e9", auth.CanonicalUsername("jose\u0301"))
	assert.Equal(t, "Alice", auth.CanonicalUsername("Alice"), "case is preserved")
}

func TestAccountObjectID(t *testing.T) {
	assert.Equal(t, auth.AccountObjectID("alice"), auth.AccountObjectID("alice"))
	assert.NotEqual(t, auth.AccountObjectID("alice"), auth.AccountObjectID("bob"))
}

func TestAccountClass(t *testing.T) {
	class := auth.AccountClass()
	assert.Equal(t, "User", class.Class)
	assert.Equal(t, "none", class.Vectorizer)

	names := make([]string, 0, len(class.Properties))
	for _, property := range class.Properties {
		names = append(names, property.Name)
	}
	assert.ElementsMatch(t, []string{"username", "email", "password_hash", "created_at"}, names)
}
