// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package post implements the public feed: authenticated users publish posts,
// anyone can list them.
package post

import "time"

// Content limits, counted in Unicode characters.
const (
	MaxTitleLength   = 200
	MaxContentLength = 20000
)

// Post is a published entry.
//
// Author is always the verified token subject of the request that created it.
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}
