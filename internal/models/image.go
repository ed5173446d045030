// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Image is a file uploaded to object storage. The row holds the public URL
// and the storage key; the bytes live in the bucket. Images attach to posts
// through the post_images join table.
type Image struct {
	ID        uuid.UUID `json:"id"`
	URL       string    `json:"url"`
	PublicID  string    `json:"public_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PostImage is a single post–image association. A NULL DisplayOrder marks
// the image as a cover candidate; the earliest-created candidate wins.
type PostImage struct {
	PostID       uuid.UUID `json:"post_id"`
	ImageID      uuid.UUID `json:"image_id"`
	DisplayOrder *int      `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}
