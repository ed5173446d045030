// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"inkpress/internal/models"
	"inkpress/internal/slug"
	"inkpress/internal/store"
)

// CategoryStore is the data-store capability the category service needs.
// Implemented by store.CategoryStore; tests substitute a fake.
type CategoryStore interface {
	NameExists(ctx context.Context, name string, excludeID uuid.UUID) (bool, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Create(ctx context.Context, c *models.Category) (*models.Category, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	FindBySlug(ctx context.Context, slug string) (*models.Category, error)
	List(ctx context.Context, search string, limit, offset int) ([]models.Category, error)
	Count(ctx context.Context, search string) (int, error)
	Update(ctx context.Context, id uuid.UUID, patch store.CategoryPatch) (*models.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CategoryService orchestrates category operations: name-collision checks,
// slug assignment, paginated listing.
type CategoryService struct {
	store CategoryStore
}

// NewCategoryService creates a CategoryService on the given store.
func NewCategoryService(store CategoryStore) *CategoryService {
	return &CategoryService{store: store}
}

// CreateCategoryInput carries the fields for a new category.
type CreateCategoryInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
}

// UpdateCategoryInput carries a partial category update. Nil fields are
// left unchanged.
type UpdateCategoryInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
}

// Create inserts a new category. The name-collision check runs before any
// write and is case-insensitive; the slug is derived from the name and
// resolved against existing category slugs.
func (s *CategoryService) Create(ctx context.Context, in CreateCategoryInput) (*models.Category, error) {
	exists, err := s.store.NameExists(ctx, in.Name, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, &ConflictError{Resource: "category", Field: "name", Value: in.Name}
	}

	resolved, err := slug.Resolve(ctx, slug.Generate(in.Name), s.store.SlugExists)
	if err != nil {
		return nil, err
	}

	cat := &models.Category{
		Name:        in.Name,
		Slug:        resolved,
		Description: in.Description,
		ImageURL:    in.ImageURL,
	}
	created, err := s.store.Create(ctx, cat)
	if errors.Is(err, store.ErrDuplicate) {
		// A concurrent writer took the slug between check and insert.
		// Re-resolve once; the unique index remains the real backstop.
		resolved, rerr := slug.Resolve(ctx, slug.Generate(in.Name), s.store.SlugExists)
		if rerr != nil {
			return nil, rerr
		}
		cat.Slug = resolved
		created, err = s.store.Create(ctx, cat)
		if errors.Is(err, store.ErrDuplicate) {
			return nil, &ConflictError{Resource: "category", Field: "name", Value: in.Name}
		}
	}
	if err != nil {
		return nil, err
	}
	return created, nil
}

// FindAll returns a page of categories ordered by name, optionally
// filtered by a case-insensitive substring search. Store failures degrade
// to an empty page.
func (s *CategoryService) FindAll(ctx context.Context, page, pageSize int, search string) Page[models.Category] {
	return paginate(ctx, page, pageSize,
		func(ctx context.Context) (int, error) {
			return s.store.Count(ctx, search)
		},
		func(ctx context.Context, limit, offset int) ([]models.Category, error) {
			return s.store.List(ctx, search, limit, offset)
		},
	)
}

// FindOne retrieves a single category by id.
func (s *CategoryService) FindOne(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	cat, err := s.store.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &NotFoundError{Resource: "category", ID: id.String()}
	}
	if err != nil {
		return nil, err
	}
	return cat, nil
}

// FindBySlug retrieves a single category by its slug.
func (s *CategoryService) FindBySlug(ctx context.Context, categorySlug string) (*models.Category, error) {
	cat, err := s.store.FindBySlug(ctx, categorySlug)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &NotFoundError{Resource: "category", ID: categorySlug}
	}
	if err != nil {
		return nil, err
	}
	return cat, nil
}

// Update applies a partial update. When the name changes, the collision
// check excludes the category itself, and the slug is recomputed only if
// the new base slug actually differs from the stored one — a name change
// that normalizes to the same slug causes no churn.
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, in UpdateCategoryInput) (*models.Category, error) {
	patch := store.CategoryPatch{
		Name:        in.Name,
		Description: in.Description,
		ImageURL:    in.ImageURL,
	}

	if in.Name != nil {
		exists, err := s.store.NameExists(ctx, *in.Name, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, &ConflictError{Resource: "category", Field: "name", Value: *in.Name}
		}

		current, err := s.store.FindByID(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			return nil, &NotFoundError{Resource: "category", ID: id.String()}
		}
		if err != nil {
			return nil, err
		}

		if base := slug.Generate(*in.Name); base != current.Slug {
			resolved, err := slug.Resolve(ctx, base, s.store.SlugExists)
			if err != nil {
				return nil, err
			}
			patch.Slug = &resolved
		}
	}

	updated, err := s.store.Update(ctx, id, patch)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &NotFoundError{Resource: "category", ID: id.String()}
	}
	if errors.Is(err, store.ErrDuplicate) {
		name := ""
		if in.Name != nil {
			name = *in.Name
		}
		return nil, &ConflictError{Resource: "category", Field: "name", Value: name}
	}
	if err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return updated, nil
}

// Delete removes a category. There is no ownership concept for
// categories; the delete is unconditional.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.store.Delete(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return &NotFoundError{Resource: "category", ID: id.String()}
	}
	return err
}
