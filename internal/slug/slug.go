// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from display names and
// collision-free slug resolution against an existing collection.
package slug

import (
	"regexp"
	"strings"
)

// nonSlug matches every maximal run of characters outside [a-z0-9].
var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Generate creates a URL-friendly slug from the given string: lower-case,
// each run of non-alphanumeric characters collapsed to a single hyphen,
// leading and trailing hyphens stripped.
// Example: "Hello, World!" → "hello-world"
//
// Empty or all-punctuation input yields an empty string, which callers
// must treat as a valid (if degenerate) base slug.
func Generate(s string) string {
	result := nonSlug.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(result, "-")
}
