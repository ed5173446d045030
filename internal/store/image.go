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

// ImageStore handles image metadata rows. The file bytes live in object
// storage; rows carry the public URL and the storage key.
type ImageStore struct {
	db *sql.DB
}

// NewImageStore creates a new ImageStore with the given database connection.
func NewImageStore(db *sql.DB) *ImageStore {
	return &ImageStore{db: db}
}

const imageColumns = `id, url, public_id, created_at, updated_at`

func scanImage(scanner interface{ Scan(...any) error }) (*models.Image, error) {
	var m models.Image
	err := scanner.Scan(&m.ID, &m.URL, &m.PublicID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserts a new image record and returns it with the generated ID.
func (s *ImageStore) Create(ctx context.Context, url, publicID string) (*models.Image, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO images (url, public_id)
		VALUES ($1, $2)
		RETURNING `+imageColumns,
		url, publicID,
	)
	m, err := scanImage(row)
	if err != nil {
		return nil, fmt.Errorf("create image: %w", err)
	}
	return m, nil
}

// FindByID retrieves a single image record by its UUID.
func (s *ImageStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Image, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+imageColumns+` FROM images WHERE id = $1`, id)
	m, err := scanImage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find image by id: %w", err)
	}
	return m, nil
}

// List returns image records ordered by creation date descending.
func (s *ImageStore) List(ctx context.Context, limit, offset int) ([]models.Image, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+imageColumns+`
		FROM images
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	defer rows.Close()

	var items []models.Image
	for rows.Next() {
		m, err := scanImage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan image: %w", err)
		}
		items = append(items, *m)
	}
	return items, rows.Err()
}

// Count returns the total number of image records.
func (s *ImageStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM images`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count images: %w", err)
	}
	return count, nil
}

// Delete removes an image record and returns it so the caller can clean
// up the corresponding storage object.
func (s *ImageStore) Delete(ctx context.Context, id uuid.UUID) (*models.Image, error) {
	row := s.db.QueryRowContext(ctx, `
		DELETE FROM images WHERE id = $1
		RETURNING `+imageColumns, id)
	m, err := scanImage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("delete image: %w", err)
	}
	return m, nil
}
