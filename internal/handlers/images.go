// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"inkpress/internal/service"
)

// maxUploadBytes caps multipart image uploads at 10 MiB.
const maxUploadBytes = 10 << 20

// allowedImageTypes are the content types accepted for upload.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
	"image/avif": true,
}

// ImageHandler serves image upload and management endpoints.
type ImageHandler struct {
	images *service.ImageService
}

// NewImageHandler creates an ImageHandler.
func NewImageHandler(images *service.ImageService) *ImageHandler {
	return &ImageHandler{images: images}
}

// Upload handles POST /api/v1/images. Expects a multipart form with a
// "file" part.
func (h *ImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondValidation(w, "invalid multipart form or file too large")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondValidation(w, "file part is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		respondValidation(w, "unsupported image type")
		return
	}

	img, err := h.images.Upload(r.Context(), header.Filename, contentType, file, header.Size)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusCreated, img)
}

// List handles GET /api/v1/images.
func (h *ImageHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePaging(r)
	respondJSON(w, http.StatusOK, h.images.FindAll(r.Context(), page, pageSize))
}

// Get handles GET /api/v1/images/{id}.
func (h *ImageHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	img, err := h.images.FindOne(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, img)
}

// Delete handles DELETE /api/v1/images/{id}.
func (h *ImageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := h.images.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
