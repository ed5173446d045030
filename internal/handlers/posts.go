// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"inkpress/internal/markdown"
	"inkpress/internal/middleware"
	"inkpress/internal/models"
	"inkpress/internal/service"
)

// PostHandler serves the post CRUD, search, and image-attachment endpoints.
type PostHandler struct {
	posts *service.PostService
}

// NewPostHandler creates a PostHandler.
func NewPostHandler(posts *service.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

// renderContent fills ContentHTML on single-post reads. Listings skip the
// conversion; clients render excerpts from the raw Markdown.
func renderContent(p *models.Post) {
	html, err := markdown.ToHTML(p.Content)
	if err != nil {
		slog.Warn("render post content", "post", p.ID, "error", err)
		return
	}
	p.ContentHTML = html
}

// List handles GET /api/v1/posts. Supports ?search=, ?category_id=,
// ?author_id= plus paging.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePaging(r)

	categoryID, ok := queryUUID(r, "category_id")
	if !ok {
		respondValidation(w, "invalid category_id")
		return
	}
	authorID, ok := queryUUID(r, "author_id")
	if !ok {
		respondValidation(w, "invalid author_id")
		return
	}

	result := h.posts.FindAll(r.Context(), page, pageSize, service.ListPostsInput{
		Search:     r.URL.Query().Get("search"),
		CategoryID: categoryID,
		AuthorID:   authorID,
	})
	respondJSON(w, http.StatusOK, result)
}

// Get handles GET /api/v1/posts/{id}.
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	p, err := h.posts.FindOne(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	renderContent(p)
	respondData(w, http.StatusOK, p)
}

// GetBySlug handles GET /api/v1/posts/slug/{slug}. Only published posts
// are reachable by slug.
func (h *PostHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	p, err := h.posts.FindBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		respondError(w, err)
		return
	}
	renderContent(p)
	respondData(w, http.StatusOK, p)
}

// Create handles POST /api/v1/posts.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.Principal(r.Context())

	var in service.CreatePostInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if msg := validatePostInput(in.Title, in.Content); msg != "" {
		respondValidation(w, msg)
		return
	}

	p, err := h.posts.Create(r.Context(), principal, in)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusCreated, p)
}

// Update handles PATCH /api/v1/posts/{id}.
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.Principal(r.Context())

	id, ok := pathUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var in service.UpdatePostInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if msg := validatePostPatch(in.Title, in.Content); msg != "" {
		respondValidation(w, msg)
		return
	}

	p, err := h.posts.Update(r.Context(), id, principal, in)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, p)
}

// Delete handles DELETE /api/v1/posts/{id}.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.Principal(r.Context())

	id, ok := pathUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := h.posts.Delete(r.Context(), id, principal); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// attachImageRequest is the payload for attaching an image to a post.
// A null display_order marks the image as a cover candidate.
type attachImageRequest struct {
	ImageID      uuid.UUID `json:"image_id"`
	DisplayOrder *int      `json:"display_order"`
}

// AttachImage handles POST /api/v1/posts/{id}/images.
func (h *PostHandler) AttachImage(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.Principal(r.Context())

	id, ok := pathUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var in attachImageRequest
	if !decodeJSON(w, r, &in) {
		return
	}
	if in.ImageID == uuid.Nil {
		respondValidation(w, "image_id is required")
		return
	}

	if err := h.posts.AttachImage(r.Context(), id, in.ImageID, principal, in.DisplayOrder); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DetachImage handles DELETE /api/v1/posts/{id}/images/{imageID}.
func (h *PostHandler) DetachImage(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.Principal(r.Context())

	id, ok := pathUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	imageID, ok := pathUUID(w, chi.URLParam(r, "imageID"))
	if !ok {
		return
	}

	if err := h.posts.DetachImage(r.Context(), id, imageID, principal); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
