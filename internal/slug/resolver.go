// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package slug

import (
	"context"
	"errors"
	"fmt"
)

// maxAttempts caps the probing loop. Uniqueness under heavy contention is
// ultimately enforced by the store's unique index, not by this loop.
const maxAttempts = 50

// ErrExhausted is returned when no free slug was found within maxAttempts.
var ErrExhausted = errors.New("slug: no free candidate found")

// ExistsFunc reports whether a slug is already taken in the target
// collection. Any error aborts resolution.
type ExistsFunc func(ctx context.Context, slug string) (bool, error)

// Resolve returns a slug absent from the target collection at the moment of
// check. It probes base, then base-2, base-3, and so on, re-querying after
// every attempt. Two concurrent writers can still race between check and
// insert; callers rely on the store's unique constraint as the backstop.
func Resolve(ctx context.Context, base string, exists ExistsFunc) (string, error) {
	candidate := base
	counter := 1
	for attempt := 0; attempt < maxAttempts; attempt++ {
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("resolve slug %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
		counter++
		candidate = fmt.Sprintf("%s-%d", base, counter)
	}
	return "", fmt.Errorf("resolve slug %q after %d attempts: %w", base, maxAttempts, ErrExhausted)
}
