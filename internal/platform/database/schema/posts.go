// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// PostTable represents the posts table and the Post class.
type PostTable struct {
	Table     string
	Class     string
	ID        string
	Title     string
	Content   string
	Author    string
	CreatedAt string
}

// Post is the schema definition for posts.
var Post = PostTable{
	Table:     "posts",
	Class:     "Post",
	ID:        "id",
	Title:     "title",
	Content:   "content",
	Author:    "author",
	CreatedAt: "created_at",
}

// Columns returns all standard column names
func (t PostTable) Columns() []string {
	return []string{t.ID, t.Title, t.Content, t.Author, t.CreatedAt}
}

// Properties returns the Weaviate property names. The id lives in the object
// metadata, not in a property.
func (t PostTable) Properties() []string {
	return []string{t.Title, t.Content, t.Author, t.CreatedAt}
}
