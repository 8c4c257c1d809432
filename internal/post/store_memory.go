// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package post

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepository keeps posts in a slice guarded by a mutex.
type MemoryRepository struct {
	mu    sync.RWMutex
	posts []Post
}

// NewMemoryRepository returns an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// Create implements [Repository].
func (repository *MemoryRepository) Create(_ context.Context, post *Post) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	repository.posts = append(repository.posts, *post)
	return nil
}

// List implements [Repository]. Ties on CreatedAt fall back to the
// time-ordered ID.
func (repository *MemoryRepository) List(_ context.Context, limit int) ([]*Post, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	posts := make([]*Post, 0, len(repository.posts))
	for i := range repository.posts {
		copied := repository.posts[i]
		posts = append(posts, &copied)
	}

	sort.SliceStable(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].ID > posts[j].ID
	})

	if limit > 0 && len(posts) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}
