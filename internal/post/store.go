// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package post

import "context"

// Repository defines the persistence contract for posts.
type Repository interface {
	// Create persists a new post. ID and CreatedAt are set by the caller.
	Create(ctx context.Context, post *Post) error

	// List returns at most limit posts, newest first.
	List(ctx context.Context, limit int) ([]*Post, error)
}
