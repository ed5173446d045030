// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import (
	"context"
	"log/slog"
)

// Paging defaults applied when the caller omits or mangles the inputs.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// Meta describes one page of a listing. Field names match the JSON
// contract of the listing endpoints.
type Meta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

// Page is the envelope returned by every listing operation: the rows plus
// pagination metadata. Data is never nil.
type Page[T any] struct {
	Data []T  `json:"data"`
	Meta Meta `json:"meta"`
}

// NormalizePaging coerces raw paging inputs to the documented defaults:
// page 1 and pageSize 10 for missing or non-positive values.
func NormalizePaging(page, pageSize int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return page, pageSize
}

// emptyPage is the soft-failure result: no rows, zeroed total and
// totalPages, with the requested page and pageSize echoed back.
func emptyPage[T any](page, pageSize int) Page[T] {
	return Page[T]{
		Data: []T{},
		Meta: Meta{Total: 0, Page: page, PageSize: pageSize, TotalPages: 0},
	}
}

// paginate drives one listing: count the matching rows, derive the page
// window, fetch the page, and assemble the envelope.
//
// Failures here are soft by design: a failing count, a zero count, or a
// failing fetch all produce an empty page instead of an error, so listing
// endpoints degrade gracefully. Single-entity operations elsewhere fail
// loudly; this asymmetry is deliberate.
func paginate[T any](
	ctx context.Context,
	page, pageSize int,
	count func(ctx context.Context) (int, error),
	fetch func(ctx context.Context, limit, offset int) ([]T, error),
) Page[T] {
	page, pageSize = NormalizePaging(page, pageSize)

	total, err := count(ctx)
	if err != nil {
		slog.Warn("list count failed, returning empty page", "error", err)
		return emptyPage[T](page, pageSize)
	}
	if total == 0 {
		return emptyPage[T](page, pageSize)
	}

	totalPages := (total + pageSize - 1) / pageSize
	offset := (page - 1) * pageSize

	rows, err := fetch(ctx, pageSize, offset)
	if err != nil {
		slog.Warn("list fetch failed, returning empty page", "error", err)
		return emptyPage[T](page, pageSize)
	}
	if rows == nil {
		rows = []T{}
	}

	return Page[T]{
		Data: rows,
		Meta: Meta{Total: total, Page: page, PageSize: pageSize, TotalPages: totalPages},
	}
}
