// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"inkpress/internal/models"
)

// CategoryStore manages categories in the database.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

// categoryColumns lists the columns selected in category queries, plus the
// derived post count.
const categoryColumns = `c.id, c.name, c.slug, c.description, c.image_url, c.created_at, c.updated_at,
	(SELECT COUNT(*) FROM posts p WHERE p.category_id = c.id) AS post_count`

// scanCategory scans a row into a Category struct.
func scanCategory(scanner interface{ Scan(...any) error }) (*models.Category, error) {
	var c models.Category
	err := scanner.Scan(
		&c.ID, &c.Name, &c.Slug, &c.Description, &c.ImageURL,
		&c.CreatedAt, &c.UpdatedAt, &c.PostCount,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// CategoryPatch holds partial category updates. Nil fields are left
// unchanged.
type CategoryPatch struct {
	Name        *string
	Slug        *string
	Description *string
	ImageURL    *string
}

// NameExists reports whether a category with the given name exists,
// compared case-insensitively. Pass uuid.Nil as excludeID on create;
// updates pass their own id so a category can keep its name.
func (s *CategoryStore) NameExists(ctx context.Context, name string, excludeID uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM categories WHERE LOWER(name) = LOWER($1) AND id <> $2
		)
	`, name, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("category name exists: %w", err)
	}
	return exists, nil
}

// SlugExists reports whether a category slug is already taken.
func (s *CategoryStore) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM categories WHERE slug = $1)
	`, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("category slug exists: %w", err)
	}
	return exists, nil
}

// Create inserts a new category and returns it. A unique-constraint
// violation on the slug surfaces as ErrDuplicate.
func (s *CategoryStore) Create(ctx context.Context, c *models.Category) (*models.Category, error) {
	var id uuid.UUID
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO categories (name, slug, description, image_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, c.Name, c.Slug, c.Description, c.ImageURL).Scan(&id)
	if err != nil {
		if mapped := mapError(err); errors.Is(mapped, ErrDuplicate) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("create category: %w", err)
	}
	return s.FindByID(ctx, id)
}

// FindByID retrieves a category by ID, with its post count.
func (s *CategoryStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+categoryColumns+` FROM categories c WHERE c.id = $1
	`, id)
	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// FindBySlug retrieves a category by its slug.
func (s *CategoryStore) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+categoryColumns+` FROM categories c WHERE c.slug = $1
	`, slug)
	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find category by slug: %w", err)
	}
	return c, nil
}

// List returns a page of categories ordered by name ascending, optionally
// filtered by a case-insensitive substring match on the name.
func (s *CategoryStore) List(ctx context.Context, search string, limit, offset int) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+categoryColumns+`
		FROM categories c
		WHERE ($1 = '' OR c.name ILIKE $2)
		ORDER BY c.name ASC
		LIMIT $3 OFFSET $4
	`, search, likePattern(search), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// Count returns the number of categories matching the search filter. The
// filter must be applied identically to List so page metadata stays
// consistent with page contents.
func (s *CategoryStore) Count(ctx context.Context, search string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM categories c
		WHERE ($1 = '' OR c.name ILIKE $2)
	`, search, likePattern(search)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}
	return count, nil
}

// Update applies a partial update and returns the updated category.
// Returns ErrNotFound if the target vanished between check and update.
func (s *CategoryStore) Update(ctx context.Context, id uuid.UUID, patch CategoryPatch) (*models.Category, error) {
	var updated uuid.UUID
	err := s.db.QueryRowContext(ctx, `
		UPDATE categories SET
			name = COALESCE($1, name),
			slug = COALESCE($2, slug),
			description = COALESCE($3, description),
			image_url = COALESCE($4, image_url),
			updated_at = NOW()
		WHERE id = $5
		RETURNING id
	`, patch.Name, patch.Slug, patch.Description, patch.ImageURL, id).Scan(&updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		if mapped := mapError(err); errors.Is(mapped, ErrDuplicate) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("update category: %w", err)
	}
	return s.FindByID(ctx, updated)
}

// Delete removes a category by ID. Posts keep existing; their category
// reference is cleared by the schema (ON DELETE SET NULL).
func (s *CategoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
