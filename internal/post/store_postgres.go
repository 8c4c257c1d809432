// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package post

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/weavepost/internal/platform/database/schema"
	"github.com/taibuivan/weavepost/internal/platform/dberr"
)

// Statements are built once from [schema.Post].
var (
	insertPostQuery = fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5)`,
		schema.Post.Table,
		strings.Join(schema.Post.Columns(), ", "),
	)

	// The id breaks ties between posts created in the same instant.
	listPostsQuery = fmt.Sprintf(`
		SELECT %s
		FROM %s
		ORDER BY %s DESC, %s DESC
		LIMIT $1`,
		strings.Join(schema.Post.Columns(), ", "),
		schema.Post.Table,
		schema.Post.CreatedAt, schema.Post.ID,
	)
)

// PostgresRepository implements [Repository] on the posts table.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of [Repository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Create inserts a single post row.
func (repository *PostgresRepository) Create(ctx context.Context, post *Post) error {
	_, err := repository.pool.Exec(ctx, insertPostQuery,
		post.ID,
		post.Title,
		post.Content,
		post.Author,
		post.CreatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "postgres_post_repo_create")
	}

	return nil
}

// List returns the newest posts first.
func (repository *PostgresRepository) List(ctx context.Context, limit int) ([]*Post, error) {
	rows, err := repository.pool.Query(ctx, listPostsQuery, limit)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_post_repo_list")
	}
	defer rows.Close()

	posts := make([]*Post, 0, limit)
	for rows.Next() {
		var post Post
		if err := rows.Scan(
			&post.ID,
			&post.Title,
			&post.Content,
			&post.Author,
			&post.CreatedAt,
		); err != nil {
			return nil, dberr.Wrap(err, "postgres_post_repo_scan")
		}
		posts = append(posts, &post)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "postgres_post_repo_rows")
	}

	return posts, nil
}
