// Package slug derives URL slugs for news titles.
package slug

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	gosimple "github.com/gosimple/slug"
)

const (
	maxBaseLength = 80
	maxAttempts   = 16
)

var ErrExhausted = errors.New("no free slug")

// Derive transliterates and hyphenates title and appends the disambiguator
// seed. Titles without any Latin mapping yield the seed alone.
func Derive(title string, seed int64) string {
	base := gosimple.Make(title)
	if len(base) > maxBaseLength {
		base = strings.TrimRight(base[:maxBaseLength], "-")
	}

	suffix := strconv.FormatInt(seed, 10)
	if base == "" {
		return suffix
	}
	return base + "-" + suffix
}

// ExistsFunc reports whether a slug is already taken.
type ExistsFunc func(ctx context.Context, slug string) (bool, error)

// Unique tries seed, seed+1, ... until exists reports a free slug.
func Unique(ctx context.Context, title string, seed int64, exists ExistsFunc) (string, error) {
	for i := int64(0); i < maxAttempts; i++ {
		candidate := Derive(title, seed+i)
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check slug %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w for %q", ErrExhausted, title)
}
