// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"

	"inkpress/internal/models"
	"inkpress/internal/store"
)

// fakeCategoryStore is an in-memory CategoryStore. failCreates makes the
// next N Create calls fail with store.ErrDuplicate to simulate losing a
// slug race to a concurrent writer.
type fakeCategoryStore struct {
	categories  []*models.Category
	failCreates int
}

func (f *fakeCategoryStore) NameExists(_ context.Context, name string, excludeID uuid.UUID) (bool, error) {
	for _, c := range f.categories {
		if c.ID != excludeID && strings.EqualFold(c.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCategoryStore) SlugExists(_ context.Context, slug string) (bool, error) {
	for _, c := range f.categories {
		if c.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCategoryStore) Create(_ context.Context, c *models.Category) (*models.Category, error) {
	if f.failCreates > 0 {
		f.failCreates--
		return nil, store.ErrDuplicate
	}
	stored := *c
	stored.ID = uuid.New()
	f.categories = append(f.categories, &stored)
	out := stored
	return &out, nil
}

func (f *fakeCategoryStore) FindByID(_ context.Context, id uuid.UUID) (*models.Category, error) {
	for _, c := range f.categories {
		if c.ID == id {
			out := *c
			return &out, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeCategoryStore) FindBySlug(_ context.Context, slug string) (*models.Category, error) {
	for _, c := range f.categories {
		if c.Slug == slug {
			out := *c
			return &out, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeCategoryStore) List(_ context.Context, search string, limit, offset int) ([]models.Category, error) {
	var out []models.Category
	for _, c := range f.categories {
		if search == "" || strings.Contains(strings.ToLower(c.Name), strings.ToLower(search)) {
			out = append(out, *c)
		}
	}
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeCategoryStore) Count(_ context.Context, search string) (int, error) {
	n := 0
	for _, c := range f.categories {
		if search == "" || strings.Contains(strings.ToLower(c.Name), strings.ToLower(search)) {
			n++
		}
	}
	return n, nil
}

func (f *fakeCategoryStore) Update(_ context.Context, id uuid.UUID, patch store.CategoryPatch) (*models.Category, error) {
	for _, c := range f.categories {
		if c.ID != id {
			continue
		}
		if patch.Name != nil {
			c.Name = *patch.Name
		}
		if patch.Slug != nil {
			c.Slug = *patch.Slug
		}
		if patch.Description != nil {
			c.Description = patch.Description
		}
		if patch.ImageURL != nil {
			c.ImageURL = patch.ImageURL
		}
		out := *c
		return &out, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeCategoryStore) Delete(_ context.Context, id uuid.UUID) error {
	for i, c := range f.categories {
		if c.ID == id {
			f.categories = append(f.categories[:i], f.categories[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func seedCategory(f *fakeCategoryStore, name, slug string) *models.Category {
	c := &models.Category{ID: uuid.New(), Name: name, Slug: slug}
	f.categories = append(f.categories, c)
	return c
}

func TestCategoryCreate(t *testing.T) {
	fake := &fakeCategoryStore{}
	svc := NewCategoryService(fake)

	created, err := svc.Create(context.Background(), CreateCategoryInput{Name: "Web Development"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Slug != "web-development" {
		t.Errorf("slug = %q, want %q", created.Slug, "web-development")
	}
	if created.ID == uuid.Nil {
		t.Error("created category has no id")
	}
}

func TestCategoryCreate_NameConflictIsCaseInsensitive(t *testing.T) {
	fake := &fakeCategoryStore{}
	seedCategory(fake, "Technology", "technology")
	svc := NewCategoryService(fake)

	_, err := svc.Create(context.Background(), CreateCategoryInput{Name: "TECHNOLOGY"})
	if !IsConflict(err) {
		t.Fatalf("err = %v, want ConflictError", err)
	}
	if len(fake.categories) != 1 {
		t.Error("conflicting create reached the store")
	}
}

func TestCategoryCreate_ResolvesSlugCollision(t *testing.T) {
	fake := &fakeCategoryStore{}
	seedCategory(fake, "News", "news")
	svc := NewCategoryService(fake)

	created, err := svc.Create(context.Background(), CreateCategoryInput{Name: "News!"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Slug != "news-2" {
		t.Errorf("slug = %q, want %q", created.Slug, "news-2")
	}
}

func TestCategoryCreate_RetriesOnceOnDuplicate(t *testing.T) {
	fake := &fakeCategoryStore{failCreates: 1}
	svc := NewCategoryService(fake)

	created, err := svc.Create(context.Background(), CreateCategoryInput{Name: "Go"})
	if err != nil {
		t.Fatalf("Create after retry: %v", err)
	}
	if created.Slug != "go" {
		t.Errorf("slug = %q, want %q", created.Slug, "go")
	}
}

func TestCategoryCreate_SecondDuplicateIsConflict(t *testing.T) {
	fake := &fakeCategoryStore{failCreates: 2}
	svc := NewCategoryService(fake)

	_, err := svc.Create(context.Background(), CreateCategoryInput{Name: "Go"})
	if !IsConflict(err) {
		t.Fatalf("err = %v, want ConflictError", err)
	}
}

func TestCategoryUpdate_RenameToOtherNameConflicts(t *testing.T) {
	fake := &fakeCategoryStore{}
	seedCategory(fake, "Technology", "technology")
	target := seedCategory(fake, "Science", "science")
	svc := NewCategoryService(fake)

	name := "technology"
	_, err := svc.Update(context.Background(), target.ID, UpdateCategoryInput{Name: &name})
	if !IsConflict(err) {
		t.Fatalf("err = %v, want ConflictError", err)
	}
}

func TestCategoryUpdate_RenameToOwnNameIsAllowed(t *testing.T) {
	fake := &fakeCategoryStore{}
	target := seedCategory(fake, "Technology", "technology")
	svc := NewCategoryService(fake)

	// A case-only change collides with nothing but itself.
	name := "TECHNOLOGY"
	updated, err := svc.Update(context.Background(), target.ID, UpdateCategoryInput{Name: &name})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "TECHNOLOGY" {
		t.Errorf("name = %q, want %q", updated.Name, "TECHNOLOGY")
	}
	if updated.Slug != "technology" {
		t.Errorf("slug = %q, want unchanged %q", updated.Slug, "technology")
	}
}

func TestCategoryUpdate_SlugRecomputedOnlyWhenBaseChanges(t *testing.T) {
	fake := &fakeCategoryStore{}
	target := seedCategory(fake, "Cloud", "cloud")
	svc := NewCategoryService(fake)

	name := "Cloud Native"
	updated, err := svc.Update(context.Background(), target.ID, UpdateCategoryInput{Name: &name})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Slug != "cloud-native" {
		t.Errorf("slug = %q, want %q", updated.Slug, "cloud-native")
	}
}

func TestCategoryUpdate_NotFound(t *testing.T) {
	svc := NewCategoryService(&fakeCategoryStore{})

	desc := "updated"
	_, err := svc.Update(context.Background(), uuid.New(), UpdateCategoryInput{Description: &desc})
	if !IsNotFound(err) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
}

func TestCategoryFindOne_NotFound(t *testing.T) {
	svc := NewCategoryService(&fakeCategoryStore{})

	_, err := svc.FindOne(context.Background(), uuid.New())
	if !IsNotFound(err) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
}

func TestCategoryDelete_NotFound(t *testing.T) {
	svc := NewCategoryService(&fakeCategoryStore{})

	err := svc.Delete(context.Background(), uuid.New())
	if !IsNotFound(err) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
}

func TestCategoryFindAll(t *testing.T) {
	fake := &fakeCategoryStore{}
	seedCategory(fake, "Technology", "technology")
	seedCategory(fake, "Science", "science")
	seedCategory(fake, "Tech News", "tech-news")
	svc := NewCategoryService(fake)

	page := svc.FindAll(context.Background(), 1, 10, "tech")
	if page.Meta.Total != 2 {
		t.Errorf("total = %d, want 2", page.Meta.Total)
	}
	if len(page.Data) != 2 {
		t.Errorf("data length = %d, want 2", len(page.Data))
	}
}
