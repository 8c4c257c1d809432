// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToPgx5DSN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"postgres://u:p@localhost:5432/weavepost", "pgx5://u:p@localhost:5432/weavepost"},
		{"postgresql://u:p@db/weavepost?sslmode=disable", "pgx5://u:p@db/weavepost?sslmode=disable"},
		{"pgx5://u:p@db/weavepost", "pgx5://u:p@db/weavepost"},
		{"host=localhost dbname=weavepost", "host=localhost dbname=weavepost"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, toPgx5DSN(tt.in), tt.in)
	}
}
