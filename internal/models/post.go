// Package models defines the domain types for Skald.
package models

import "time"

// Post represents a single blog post, draft or published.
// Content is rich text (HTML) and opaque to the store.
type Post struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Slug            string    `json:"slug"`
	Content         string    `json:"content"`
	Excerpt         string    `json:"excerpt"`
	FeaturedImage   string    `json:"featured_image,omitempty"`
	Author          string    `json:"author"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	Published       bool      `json:"published"`
	Tags            []string  `json:"tags"`
	MetaTitle       string    `json:"meta_title,omitempty"`
	MetaDescription string    `json:"meta_description,omitempty"`
}
