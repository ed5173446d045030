// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the JSON API endpoints. Handlers decode and
// validate input, call the service layer, and translate its typed errors
// into HTTP status codes. Successful responses are wrapped in a data
// envelope; listings carry pagination metadata alongside.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"inkpress/internal/service"
)

// maxBodyBytes caps JSON request bodies. Image uploads have their own,
// larger multipart limit.
const maxBodyBytes = 1 << 20

// dataEnvelope wraps single-entity responses.
type dataEnvelope struct {
	Data any `json:"data"`
}

// errorEnvelope wraps error responses.
type errorEnvelope struct {
	Error string `json:"error"`
}

// respondJSON writes v as the JSON response body with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// respondData wraps v in the data envelope.
func respondData(w http.ResponseWriter, status int, v any) {
	respondJSON(w, status, dataEnvelope{Data: v})
}

// respondError translates a service error into an HTTP response. Typed
// service errors carry user-facing messages; anything else becomes an
// opaque 500.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case service.IsNotFound(err):
		respondJSON(w, http.StatusNotFound, errorEnvelope{Error: err.Error()})
	case service.IsConflict(err):
		respondJSON(w, http.StatusConflict, errorEnvelope{Error: err.Error()})
	case service.IsForbidden(err):
		respondJSON(w, http.StatusForbidden, errorEnvelope{Error: err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		respondJSON(w, http.StatusUnauthorized, errorEnvelope{Error: err.Error()})
	case errors.Is(err, service.ErrStorageUnavailable):
		respondJSON(w, http.StatusServiceUnavailable, errorEnvelope{Error: err.Error()})
	default:
		slog.Error("request failed", "error", err)
		respondJSON(w, http.StatusInternalServerError, errorEnvelope{Error: "internal server error"})
	}
}

// respondValidation reports a request validation failure.
func respondValidation(w http.ResponseWriter, msg string) {
	respondJSON(w, http.StatusBadRequest, errorEnvelope{Error: msg})
}

// decodeJSON parses the request body into dst, rejecting unknown fields
// and oversized bodies. Returns false after writing the error response.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		respondValidation(w, "invalid request body")
		return false
	}
	return true
}

// parsePaging reads page and limit from the query string. Out-of-range or
// missing values fall back to the defaults.
func parsePaging(r *http.Request) (page, pageSize int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	return service.NormalizePaging(page, pageSize)
}

// pathUUID parses a UUID path parameter. Returns false after writing the
// error response.
func pathUUID(w http.ResponseWriter, raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		respondValidation(w, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

// queryUUID parses an optional UUID query parameter. A missing parameter
// yields (nil, true); a malformed one yields (nil, false).
func queryUUID(r *http.Request, key string) (*uuid.UUID, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, false
	}
	return &id, true
}
