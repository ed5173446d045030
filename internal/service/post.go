// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"inkpress/internal/cache"
	"inkpress/internal/models"
	"inkpress/internal/slug"
	"inkpress/internal/store"
)

// PostStore is the data-store capability the post service needs.
// Implemented by store.PostStore; tests substitute a fake.
type PostStore interface {
	SlugExists(ctx context.Context, slug string) (bool, error)
	Create(ctx context.Context, p *models.Post) (*models.Post, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Post, error)
	FindBySlug(ctx context.Context, slug string) (*models.Post, error)
	List(ctx context.Context, f store.PostFilter, limit, offset int) ([]models.Post, error)
	Count(ctx context.Context, f store.PostFilter) (int, error)
	OwnerOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, patch store.PostPatch) (*models.Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AttachImage(ctx context.Context, postID, imageID uuid.UUID, displayOrder *int) error
	DetachImage(ctx context.Context, postID, imageID uuid.UUID) error
}

// ImageStore is the slice of the image store the post service needs to
// validate attachments.
type ImageStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Image, error)
}

// PostService orchestrates post operations: slug assignment, ownership
// guarding, the one-way publish transition, paginated search, and image
// attachment.
type PostService struct {
	posts  PostStore
	images ImageStore
	cache  *cache.PostCache // optional; nil disables caching
}

// NewPostService creates a PostService. cache may be nil.
func NewPostService(posts PostStore, images ImageStore, postCache *cache.PostCache) *PostService {
	return &PostService{posts: posts, images: images, cache: postCache}
}

// CreatePostInput carries the fields for a new post.
type CreatePostInput struct {
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Published  bool       `json:"published"`
	CategoryID *uuid.UUID `json:"category_id"`
}

// UpdatePostInput carries a partial post update. Nil fields are left
// unchanged.
type UpdatePostInput struct {
	Title      *string    `json:"title"`
	Content    *string    `json:"content"`
	Published  *bool      `json:"published"`
	CategoryID *uuid.UUID `json:"category_id"`
}

// ListPostsInput restricts a post listing.
type ListPostsInput struct {
	Search     string
	CategoryID *uuid.UUID
	AuthorID   *uuid.UUID
}

// authorize is the ownership guard: it resolves existence first, then
// compares the current owner against the acting principal with strict
// equality. Re-run on every mutating call, never cached.
func (s *PostService) authorize(ctx context.Context, id, principal uuid.UUID) error {
	owner, err := s.posts.OwnerOf(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return &NotFoundError{Resource: "post", ID: id.String()}
	}
	if err != nil {
		return err
	}
	if owner != principal {
		return &ForbiddenError{Message: "you can only modify your own posts"}
	}
	return nil
}

// Create inserts a new post owned by the author. published_at is stamped
// now iff the post is published at creation, otherwise left null.
func (s *PostService) Create(ctx context.Context, authorID uuid.UUID, in CreatePostInput) (*models.Post, error) {
	resolved, err := slug.Resolve(ctx, slug.Generate(in.Title), s.posts.SlugExists)
	if err != nil {
		return nil, err
	}

	p := &models.Post{
		Title:      in.Title,
		Slug:       resolved,
		Content:    in.Content,
		Published:  in.Published,
		AuthorID:   authorID,
		CategoryID: in.CategoryID,
	}
	if in.Published {
		now := time.Now()
		p.PublishedAt = &now
	}

	created, err := s.posts.Create(ctx, p)
	if errors.Is(err, store.ErrDuplicate) {
		// Slug race with a concurrent writer: re-resolve once.
		resolved, rerr := slug.Resolve(ctx, slug.Generate(in.Title), s.posts.SlugExists)
		if rerr != nil {
			return nil, rerr
		}
		p.Slug = resolved
		created, err = s.posts.Create(ctx, p)
		if errors.Is(err, store.ErrDuplicate) {
			return nil, &ConflictError{Resource: "post", Field: "slug", Value: p.Slug}
		}
	}
	if err != nil {
		return nil, err
	}
	return created, nil
}

// FindAll returns a page of assembled posts ordered by published date
// descending. Store failures degrade to an empty page.
func (s *PostService) FindAll(ctx context.Context, page, pageSize int, in ListPostsInput) Page[models.Post] {
	filter := store.PostFilter{
		Search:     in.Search,
		CategoryID: in.CategoryID,
		AuthorID:   in.AuthorID,
	}
	return paginate(ctx, page, pageSize,
		func(ctx context.Context) (int, error) {
			return s.posts.Count(ctx, filter)
		},
		func(ctx context.Context, limit, offset int) ([]models.Post, error) {
			return s.posts.List(ctx, filter, limit, offset)
		},
	)
}

// FindOne retrieves a single assembled post by id. No authorization:
// reads are public.
func (s *PostService) FindOne(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	p, err := s.posts.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &NotFoundError{Resource: "post", ID: id.String()}
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// FindBySlug retrieves a published post by slug, read through the cache
// when one is configured.
func (s *PostService) FindBySlug(ctx context.Context, postSlug string) (*models.Post, error) {
	if s.cache != nil {
		if p, ok := s.cache.Get(ctx, postSlug); ok {
			return p, nil
		}
	}

	p, err := s.posts.FindBySlug(ctx, postSlug)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &NotFoundError{Resource: "post", ID: postSlug}
	}
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, postSlug, p)
	}
	return p, nil
}

// Update applies a partial update after the ownership guard. The slug is
// recomputed only when the new title's base slug differs from the stored
// slug, and published_at is stamped exactly once, on the first transition
// to published. Un-publishing never clears it.
func (s *PostService) Update(ctx context.Context, id, principal uuid.UUID, in UpdatePostInput) (*models.Post, error) {
	if err := s.authorize(ctx, id, principal); err != nil {
		return nil, err
	}

	existing, err := s.posts.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &NotFoundError{Resource: "post", ID: id.String()}
	}
	if err != nil {
		return nil, err
	}

	patch := store.PostPatch{
		Title:      in.Title,
		Content:    in.Content,
		Published:  in.Published,
		CategoryID: in.CategoryID,
	}

	if in.Title != nil {
		if base := slug.Generate(*in.Title); base != existing.Slug {
			resolved, err := slug.Resolve(ctx, base, s.posts.SlugExists)
			if err != nil {
				return nil, err
			}
			patch.Slug = &resolved
		}
	}

	if in.Published != nil && *in.Published && existing.PublishedAt == nil {
		now := time.Now()
		patch.PublishedAt = &now
	}

	updated, err := s.posts.Update(ctx, id, patch)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &NotFoundError{Resource: "post", ID: id.String()}
	}
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, existing.Slug, updated.Slug)
	}
	return updated, nil
}

// Delete removes a post after the ownership guard.
func (s *PostService) Delete(ctx context.Context, id, principal uuid.UUID) error {
	if err := s.authorize(ctx, id, principal); err != nil {
		return err
	}

	existing, err := s.posts.FindByID(ctx, id)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return err
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return &NotFoundError{Resource: "post", ID: id.String()}
		}
		return err
	}

	if s.cache != nil && existing != nil {
		s.cache.Invalidate(ctx, existing.Slug)
	}
	return nil
}

// AttachImage associates an image with a post. A nil displayOrder marks
// a cover candidate. Ownership-guarded: only the author may attach.
func (s *PostService) AttachImage(ctx context.Context, postID, imageID, principal uuid.UUID, displayOrder *int) error {
	if err := s.authorize(ctx, postID, principal); err != nil {
		return err
	}

	if _, err := s.images.FindByID(ctx, imageID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return &NotFoundError{Resource: "image", ID: imageID.String()}
		}
		return err
	}

	err := s.posts.AttachImage(ctx, postID, imageID, displayOrder)
	if errors.Is(err, store.ErrDuplicate) {
		return &ConflictError{Resource: "post image", Field: "image_id", Value: imageID.String()}
	}
	if err != nil {
		return err
	}

	s.invalidateByID(ctx, postID)
	return nil
}

// DetachImage removes a post–image association. Ownership-guarded.
func (s *PostService) DetachImage(ctx context.Context, postID, imageID, principal uuid.UUID) error {
	if err := s.authorize(ctx, postID, principal); err != nil {
		return err
	}

	err := s.posts.DetachImage(ctx, postID, imageID)
	if errors.Is(err, store.ErrNotFound) {
		return &NotFoundError{Resource: "image", ID: imageID.String()}
	}
	if err != nil {
		return err
	}

	s.invalidateByID(ctx, postID)
	return nil
}

// invalidateByID drops the cached copy of a post after an attachment
// change, since the cover image may have moved.
func (s *PostService) invalidateByID(ctx context.Context, postID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if p, err := s.posts.FindByID(ctx, postID); err == nil {
		s.cache.Invalidate(ctx, p.Slug)
	}
}
