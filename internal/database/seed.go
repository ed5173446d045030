// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates an empty database with development data: a default
// author account, a starter category, and a published welcome post.
// It is a no-op when users already exist.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	var authorID string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash, username, first_name)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, "admin@inkpress.local", string(hash), "admin", "Admin").Scan(&authorID)
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	var categoryID string
	err = db.QueryRow(`
		INSERT INTO categories (name, slug, description)
		VALUES ($1, $2, $3)
		RETURNING id
	`, "General", "general", "Posts without a more specific home").Scan(&categoryID)
	if err != nil {
		return fmt.Errorf("seed insert category: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO posts (title, slug, content, published, published_at, author_id, category_id)
		VALUES ($1, $2, $3, TRUE, NOW(), $4, $5)
	`, "Welcome to your blog", "welcome-to-your-blog",
		"# Welcome\n\nThis post was created by the development seed. Log in as "+
			"`admin@inkpress.local` and start writing.",
		authorID, categoryID)
	if err != nil {
		return fmt.Errorf("seed insert post: %w", err)
	}

	slog.Info("database seeded with default author",
		"email", "admin@inkpress.local",
		"password", "admin",
	)

	return nil
}
