// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"inkpress/internal/models"
)

// PostStore handles all post-related database operations, returning posts
// assembled with their category, author, and cover image.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

// assembledColumns selects the post row plus its joined category and
// author relations. The joins fan out to at most one row each; the
// assembler normalizes them to a single object or nil.
const assembledColumns = `p.id, p.title, p.slug, p.content, p.published, p.published_at,
	p.author_id, p.category_id, p.created_at, p.updated_at,
	c.id, c.name, c.slug, c.description, c.image_url, c.created_at, c.updated_at,
	u.id, u.email, u.username, u.avatar`

const assembledFrom = ` FROM posts p
	LEFT JOIN categories c ON c.id = p.category_id
	LEFT JOIN users u ON u.id = p.author_id`

// scanAssembled scans a joined post row and normalizes the relations.
func scanAssembled(scanner interface{ Scan(...any) error }) (*models.Post, error) {
	var p models.Post
	var cat categoryRelation
	var author authorRelation
	err := scanner.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Content, &p.Published, &p.PublishedAt,
		&p.AuthorID, &p.CategoryID, &p.CreatedAt, &p.UpdatedAt,
		&cat.ID, &cat.Name, &cat.Slug, &cat.Description, &cat.ImageURL,
		&cat.CreatedAt, &cat.UpdatedAt,
		&author.ID, &author.Email, &author.Username, &author.Avatar,
	)
	if err != nil {
		return nil, err
	}
	p.Category = cat.toModel()
	p.Author = author.toModel()
	return &p, nil
}

// PostFilter restricts post list and count queries. The same filter must
// drive both so page metadata matches page contents.
type PostFilter struct {
	Search     string     // case-insensitive substring match on the title
	CategoryID *uuid.UUID // only posts in this category
	AuthorID   *uuid.UUID // only posts by this author
}

// where builds the WHERE clause and argument list for the filter.
func (f PostFilter) where() (string, []any) {
	var clauses []string
	var args []any
	if f.Search != "" {
		args = append(args, likePattern(f.Search))
		clauses = append(clauses, fmt.Sprintf("p.title ILIKE $%d", len(args)))
	}
	if f.CategoryID != nil {
		args = append(args, *f.CategoryID)
		clauses = append(clauses, fmt.Sprintf("p.category_id = $%d", len(args)))
	}
	if f.AuthorID != nil {
		args = append(args, *f.AuthorID)
		clauses = append(clauses, fmt.Sprintf("p.author_id = $%d", len(args)))
	}
	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// PostPatch holds partial post updates. Nil fields are left unchanged;
// PublishedAt is only ever set, never cleared.
type PostPatch struct {
	Title       *string
	Slug        *string
	Content     *string
	Published   *bool
	PublishedAt *time.Time
	CategoryID  *uuid.UUID
}

// SlugExists reports whether a post slug is already taken.
func (s *PostStore) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM posts WHERE slug = $1)
	`, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("post slug exists: %w", err)
	}
	return exists, nil
}

// Create inserts a new post and returns it assembled with category and
// author. A unique-constraint violation surfaces as ErrDuplicate so the
// caller can re-resolve the slug once.
func (s *PostStore) Create(ctx context.Context, p *models.Post) (*models.Post, error) {
	var id uuid.UUID
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO posts (title, slug, content, published, published_at, author_id, category_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, p.Title, p.Slug, p.Content, p.Published, p.PublishedAt, p.AuthorID, p.CategoryID).Scan(&id)
	if err != nil {
		if mapped := mapError(err); errors.Is(mapped, ErrDuplicate) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("create post: %w", err)
	}
	return s.FindByID(ctx, id)
}

// FindByID retrieves an assembled post by ID.
func (s *PostStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+assembledColumns+assembledFrom+` WHERE p.id = $1`, id)
	p, err := scanAssembled(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	if err := s.attachCovers(ctx, []*models.Post{p}); err != nil {
		return nil, err
	}
	return p, nil
}

// FindBySlug retrieves an assembled published post by its slug. Used for
// public reads; unpublished posts are invisible here.
func (s *PostStore) FindBySlug(ctx context.Context, slug string) (*models.Post, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+assembledColumns+assembledFrom+` WHERE p.slug = $1 AND p.published = TRUE
	`, slug)
	p, err := scanAssembled(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find post by slug: %w", err)
	}
	if err := s.attachCovers(ctx, []*models.Post{p}); err != nil {
		return nil, err
	}
	return p, nil
}

// List returns a page of assembled posts ordered by published date
// descending, unpublished posts last.
func (s *PostStore) List(ctx context.Context, f PostFilter, limit, offset int) ([]models.Post, error) {
	where, args := f.where()
	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s%s%s
		ORDER BY p.published_at DESC NULLS LAST, p.created_at DESC
		LIMIT $%d OFFSET $%d`,
		assembledColumns, assembledFrom, where, len(args)-1, len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var items []models.Post
	var refs []*models.Post
	for rows.Next() {
		p, err := scanAssembled(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		items = append(items, *p)
		refs = append(refs, &items[len(items)-1])
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := s.attachCovers(ctx, refs); err != nil {
		return nil, err
	}
	return items, nil
}

// Count returns the number of posts matching the filter.
func (s *PostStore) Count(ctx context.Context, f PostFilter) (int, error) {
	where, args := f.where()
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts p`+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return count, nil
}

// OwnerOf returns the author id of the given post. Returns ErrNotFound if
// the post does not exist; callers resolve existence before ownership.
func (s *PostStore) OwnerOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	var owner uuid.UUID
	err := s.db.QueryRowContext(ctx, `SELECT author_id FROM posts WHERE id = $1`, id).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return uuid.Nil, ErrNotFound
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("post owner: %w", err)
	}
	return owner, nil
}

// Update applies a partial update and returns the assembled post.
func (s *PostStore) Update(ctx context.Context, id uuid.UUID, patch PostPatch) (*models.Post, error) {
	var updated uuid.UUID
	err := s.db.QueryRowContext(ctx, `
		UPDATE posts SET
			title = COALESCE($1, title),
			slug = COALESCE($2, slug),
			content = COALESCE($3, content),
			published = COALESCE($4, published),
			published_at = COALESCE($5, published_at),
			category_id = COALESCE($6, category_id),
			updated_at = NOW()
		WHERE id = $7
		RETURNING id
	`, patch.Title, patch.Slug, patch.Content, patch.Published, patch.PublishedAt, patch.CategoryID, id).Scan(&updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		if mapped := mapError(err); errors.Is(mapped, ErrDuplicate) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("update post: %w", err)
	}
	return s.FindByID(ctx, updated)
}

// Delete removes a post by ID. The post_images join rows go with it
// (ON DELETE CASCADE); the images themselves stay.
func (s *PostStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// AttachImage associates an image with a post. A nil displayOrder marks
// the image as a cover candidate.
func (s *PostStore) AttachImage(ctx context.Context, postID, imageID uuid.UUID, displayOrder *int) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO post_images (post_id, image_id, display_order)
		VALUES ($1, $2, $3)
	`, postID, imageID, displayOrder)
	if err != nil {
		if mapped := mapError(err); errors.Is(mapped, ErrDuplicate) {
			return ErrDuplicate
		}
		return fmt.Errorf("attach image: %w", err)
	}
	return nil
}

// DetachImage removes a post–image association.
func (s *PostStore) DetachImage(ctx context.Context, postID, imageID uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM post_images WHERE post_id = $1 AND image_id = $2
	`, postID, imageID)
	if err != nil {
		return fmt.Errorf("detach image: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// attachCovers resolves cover images for the given posts with a single
// separate query instead of widening the primary join. Candidates are
// images attached with no explicit display order, earliest-created first.
func (s *PostStore) attachCovers(ctx context.Context, posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}

	placeholders := make([]string, len(posts))
	args := make([]any, len(posts))
	for i, p := range posts {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = p.ID
	}

	query := fmt.Sprintf(`
		SELECT pi.post_id, i.id, i.url, i.public_id, i.created_at, i.updated_at
		FROM post_images pi
		JOIN images i ON i.id = pi.image_id
		WHERE pi.display_order IS NULL AND pi.post_id IN (%s)
		ORDER BY i.created_at ASC
	`, strings.Join(placeholders, ", "))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("cover candidates: %w", err)
	}
	defer rows.Close()

	var candidates []coverCandidate
	for rows.Next() {
		var c coverCandidate
		if err := rows.Scan(
			&c.PostID, &c.Image.ID, &c.Image.URL, &c.Image.PublicID,
			&c.Image.CreatedAt, &c.Image.UpdatedAt,
		); err != nil {
			return fmt.Errorf("scan cover candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	index := coverIndex(candidates)
	for _, p := range posts {
		if img, ok := index[p.ID]; ok {
			cover := img
			p.CoverImage = &cover
		}
	}
	return nil
}
