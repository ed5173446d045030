// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Post is a blog article owned by exactly one author. PublishedAt is set
// once, on the first transition to published, and is never cleared by an
// un-publish.
type Post struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Content     string     `json:"content"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"published_at"`
	AuthorID    uuid.UUID  `json:"author_id"`
	CategoryID  *uuid.UUID `json:"category_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Assembled relations. Always a single object or null on the output
	// contract, never an array.
	Category   *Category `json:"category"`
	Author     *Author   `json:"author"`
	CoverImage *Image    `json:"cover_image"`

	// ContentHTML is the rendered markdown body, populated on single-post
	// reads only.
	ContentHTML string `json:"content_html,omitempty"`
}

// HasBeenPublished reports whether the post has ever been published. The
// published flag can be toggled off while PublishedAt stays set.
func (p *Post) HasBeenPublished() bool {
	return p.PublishedAt != nil
}
