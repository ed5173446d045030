// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"inkpress/internal/service"
)

// CategoryHandler serves the category CRUD endpoints.
type CategoryHandler struct {
	categories *service.CategoryService
}

// NewCategoryHandler creates a CategoryHandler.
func NewCategoryHandler(categories *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// List handles GET /api/v1/categories. Supports ?search= plus paging.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePaging(r)
	search := r.URL.Query().Get("search")

	respondJSON(w, http.StatusOK, h.categories.FindAll(r.Context(), page, pageSize, search))
}

// Get handles GET /api/v1/categories/{id}.
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	cat, err := h.categories.FindOne(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, cat)
}

// GetBySlug handles GET /api/v1/categories/slug/{slug}.
func (h *CategoryHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	cat, err := h.categories.FindBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, cat)
}

// Create handles POST /api/v1/categories.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in service.CreateCategoryInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if msg := validateCategoryInput(in.Name, in.Description); msg != "" {
		respondValidation(w, msg)
		return
	}

	cat, err := h.categories.Create(r.Context(), in)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusCreated, cat)
}

// Update handles PATCH /api/v1/categories/{id}.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var in service.UpdateCategoryInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if in.Name != nil {
		if msg := validateCategoryInput(*in.Name, in.Description); msg != "" {
			respondValidation(w, msg)
			return
		}
	}

	cat, err := h.categories.Update(r.Context(), id, in)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, cat)
}

// Delete handles DELETE /api/v1/categories/{id}.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := h.categories.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
