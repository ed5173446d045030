// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// post.go caches assembled published posts by slug. The public
// read-by-slug endpoint is the hottest path; caching the marshaled post
// skips the joined query and cover-image lookup entirely. Mutations
// invalidate by slug.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"inkpress/internal/models"
)

const (
	// postKeyPrefix is the Valkey key prefix for cached posts.
	postKeyPrefix = "post:"

	// DefaultPostTTL is how long an assembled post stays cached.
	DefaultPostTTL = 5 * time.Minute
)

// PostCache manages assembled-post caching in Valkey. All failures are
// treated as cache misses; the cache never makes a read path fail.
type PostCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPostCache creates a new post cache backed by the given Valkey client.
func NewPostCache(client *redis.Client, ttl time.Duration) *PostCache {
	if ttl == 0 {
		ttl = DefaultPostTTL
	}
	return &PostCache{client: client, ttl: ttl}
}

// Get retrieves a cached post by slug. Returns (nil, false) on miss.
func (pc *PostCache) Get(ctx context.Context, slug string) (*models.Post, bool) {
	val, err := pc.client.Get(ctx, postKeyPrefix+slug).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("post cache get error", "slug", slug, "error", err)
		return nil, false
	}

	var p models.Post
	if err := json.Unmarshal(val, &p); err != nil {
		slog.Warn("post cache decode error", "slug", slug, "error", err)
		return nil, false
	}
	slog.Debug("post cache hit", "slug", slug)
	return &p, true
}

// Set stores an assembled post under its slug with the configured TTL.
func (pc *PostCache) Set(ctx context.Context, slug string, p *models.Post) {
	val, err := json.Marshal(p)
	if err != nil {
		slog.Warn("post cache encode error", "slug", slug, "error", err)
		return
	}
	if err := pc.client.Set(ctx, postKeyPrefix+slug, val, pc.ttl).Err(); err != nil {
		slog.Warn("post cache set error", "slug", slug, "error", err)
	}
}

// Invalidate removes cached posts by slug. Callers pass both the old and
// the new slug when a title change renames the post.
func (pc *PostCache) Invalidate(ctx context.Context, slugs ...string) {
	for _, slug := range slugs {
		if slug == "" {
			continue
		}
		if err := pc.client.Del(ctx, postKeyPrefix+slug).Err(); err != nil {
			slog.Warn("post cache invalidate error", "slug", slug, "error", err)
		}
	}
}
