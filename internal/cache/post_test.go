// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"inkpress/internal/models"
)

// testValkey connects to a local Valkey, or skips the test.
func testValkey(t *testing.T) *PostCache {
	t.Helper()
	host := os.Getenv("VALKEY_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("VALKEY_PORT")
	if port == "" {
		port = "6379"
	}

	client, err := ConnectValkey(host, port, os.Getenv("VALKEY_PASSWORD"))
	if err != nil {
		t.Skipf("skipping: Valkey not available: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return NewPostCache(client, time.Minute)
}

func TestPostCache_RoundTrip(t *testing.T) {
	pc := testValkey(t)
	ctx := context.Background()
	slug := "cached-" + uuid.NewString()[:8]

	if _, ok := pc.Get(ctx, slug); ok {
		t.Fatal("unexpected hit before Set")
	}

	now := time.Now().UTC().Truncate(time.Second)
	p := &models.Post{
		ID:          uuid.New(),
		Title:       "Cached",
		Slug:        slug,
		Content:     "body",
		Published:   true,
		PublishedAt: &now,
	}
	pc.Set(ctx, slug, p)

	got, ok := pc.Get(ctx, slug)
	if !ok {
		t.Fatal("miss after Set")
	}
	if got.ID != p.ID || got.Slug != slug || !got.Published {
		t.Errorf("cached post = %+v", got)
	}
	if got.PublishedAt == nil || !got.PublishedAt.Equal(now) {
		t.Errorf("published_at = %v, want %v", got.PublishedAt, now)
	}

	pc.Invalidate(ctx, slug)
	if _, ok := pc.Get(ctx, slug); ok {
		t.Error("hit after Invalidate")
	}
}

func TestPostCache_InvalidateIgnoresEmptySlug(t *testing.T) {
	pc := testValkey(t)
	// Must not panic or issue a DEL for the empty key.
	pc.Invalidate(context.Background(), "", "also-missing")
}
