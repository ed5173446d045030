// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/google/uuid"

	"inkpress/internal/models"
	"inkpress/internal/storage"
	"inkpress/internal/store"
)

// ErrStorageUnavailable is returned by upload and delete operations when
// no object storage is configured.
var ErrStorageUnavailable = errors.New("object storage is not configured")

// ImageFullStore is the data-store capability the image service needs.
type ImageFullStore interface {
	Create(ctx context.Context, url, publicID string) (*models.Image, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Image, error)
	List(ctx context.Context, limit, offset int) ([]models.Image, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id uuid.UUID) (*models.Image, error)
}

// ObjectStorage is the slice of the storage client the image service uses.
// Implemented by storage.Client; tests substitute a fake.
type ObjectStorage interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
	Delete(ctx context.Context, key string) error
}

// ImageService uploads image files to object storage and tracks them as
// database rows so posts can reference them.
type ImageService struct {
	store   ImageFullStore
	storage ObjectStorage // nil when storage is not configured
}

// NewImageService creates an ImageService. objects may be nil; uploads
// then fail with ErrStorageUnavailable while reads keep working.
func NewImageService(imageStore ImageFullStore, objects ObjectStorage) *ImageService {
	return &ImageService{store: imageStore, storage: objects}
}

// NewImageServiceWithClient adapts a concrete storage client, which may be
// a typed nil when storage is unconfigured.
func NewImageServiceWithClient(imageStore ImageFullStore, client *storage.Client) *ImageService {
	if client == nil {
		return NewImageService(imageStore, nil)
	}
	return NewImageService(imageStore, client)
}

// Upload stores the file bytes under a fresh storage key and records the
// resulting public URL. The original filename only contributes its
// extension; the key is a generated UUID.
func (s *ImageService) Upload(ctx context.Context, filename, contentType string, body io.Reader, size int64) (*models.Image, error) {
	if s.storage == nil {
		return nil, ErrStorageUnavailable
	}

	ext := strings.ToLower(path.Ext(filename))
	key := "images/" + uuid.New().String() + ext

	url, err := s.storage.Upload(ctx, key, contentType, body, size)
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}

	img, err := s.store.Create(ctx, url, key)
	if err != nil {
		// The object is already in the bucket; try not to leak it.
		if derr := s.storage.Delete(ctx, key); derr != nil {
			slog.Warn("orphaned storage object after failed image insert", "key", key, "error", derr)
		}
		return nil, err
	}
	return img, nil
}

// FindAll returns a page of image records, newest first.
func (s *ImageService) FindAll(ctx context.Context, page, pageSize int) Page[models.Image] {
	return paginate(ctx, page, pageSize,
		func(ctx context.Context) (int, error) {
			return s.store.Count(ctx)
		},
		func(ctx context.Context, limit, offset int) ([]models.Image, error) {
			return s.store.List(ctx, limit, offset)
		},
	)
}

// FindOne retrieves a single image record by id.
func (s *ImageService) FindOne(ctx context.Context, id uuid.UUID) (*models.Image, error) {
	img, err := s.store.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &NotFoundError{Resource: "image", ID: id.String()}
	}
	if err != nil {
		return nil, err
	}
	return img, nil
}

// Delete removes the image record and then the stored object. A storage
// failure after the row is gone is logged, not surfaced: the row deletion
// is the source of truth.
func (s *ImageService) Delete(ctx context.Context, id uuid.UUID) error {
	img, err := s.store.Delete(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return &NotFoundError{Resource: "image", ID: id.String()}
	}
	if err != nil {
		return err
	}

	if s.storage != nil {
		if err := s.storage.Delete(ctx, img.PublicID); err != nil {
			slog.Warn("delete storage object", "key", img.PublicID, "error", err)
		}
	}
	return nil
}
