// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// assembler.go normalizes joined rows at the store boundary. Relations
// that fan out to zero-or-one rows become a single object or nil on the
// output contract, never a slice, and cover images are resolved from a
// separate candidate query instead of widening the primary join.
package store

import (
	"database/sql"

	"github.com/google/uuid"

	"inkpress/internal/models"
)

// firstOrNil normalizes a relation serialized as a zero-or-one element
// slice to a pointer: first element, or nil when the relation is absent.
func firstOrNil[T any](rows []T) *T {
	if len(rows) == 0 {
		return nil
	}
	return &rows[0]
}

// coverCandidate is one row of the cover-image candidate query: an image
// attached to a post with no explicit display order. Candidates arrive
// ordered by image creation ascending.
type coverCandidate struct {
	PostID uuid.UUID
	Image  models.Image
}

// coverIndex reduces ordered candidates to a post-id → image mapping.
// The first candidate per post wins; later ones are discarded. Posts with
// no candidate simply have no entry, which callers surface as a nil cover.
func coverIndex(candidates []coverCandidate) map[uuid.UUID]models.Image {
	index := make(map[uuid.UUID]models.Image, len(candidates))
	for _, c := range candidates {
		if _, seen := index[c.PostID]; seen {
			continue
		}
		index[c.PostID] = c.Image
	}
	return index
}

// categoryRelation holds the nullable category columns of a joined post row.
type categoryRelation struct {
	ID          uuid.NullUUID
	Name        sql.NullString
	Slug        sql.NullString
	Description sql.NullString
	ImageURL    sql.NullString
	CreatedAt   sql.NullTime
	UpdatedAt   sql.NullTime
}

// toModel converts the scanned relation to a single object or nil.
func (r *categoryRelation) toModel() *models.Category {
	if !r.ID.Valid {
		return nil
	}
	c := models.Category{
		ID:        r.ID.UUID,
		Name:      r.Name.String,
		Slug:      r.Slug.String,
		CreatedAt: r.CreatedAt.Time,
		UpdatedAt: r.UpdatedAt.Time,
	}
	if r.Description.Valid {
		c.Description = &r.Description.String
	}
	if r.ImageURL.Valid {
		c.ImageURL = &r.ImageURL.String
	}
	return &c
}

// authorRelation holds the author columns of a joined post row. The author
// join is on a NOT NULL foreign key, but the columns are scanned as
// nullable anyway so a missing relation degrades to nil instead of a scan
// error.
type authorRelation struct {
	ID       uuid.NullUUID
	Email    sql.NullString
	Username sql.NullString
	Avatar   sql.NullString
}

func (r *authorRelation) toModel() *models.Author {
	if !r.ID.Valid {
		return nil
	}
	a := models.Author{
		ID:       r.ID.UUID,
		Email:    r.Email.String,
		Username: r.Username.String,
	}
	if r.Avatar.Valid {
		a.Avatar = &r.Avatar.String
	}
	return &a
}
