package utils

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gosimple/unidecode"
	"golang.org/x/text/unicode/norm"
)

// MaxSlugAttempts bounds the number of suffixed candidates UniqueSlug tries.
const MaxSlugAttempts = 1000

// ErrSlugExhausted is returned when no free candidate was found within MaxSlugAttempts.
var ErrSlugExhausted = errors.New("no unused slug candidate found")

// SlugExistsFunc reports whether a slug is already taken in the store.
type SlugExistsFunc func(ctx context.Context, slug string) (bool, error)

// Slugify derives a lowercase, hyphen-separated identifier from free text.
// Non-ASCII letters are transliterated ("Иван" -> "ivan", "Straße" ->
// "strasse"); every other run of non-alphanumeric characters becomes a
// single hyphen. Quotes are dropped ("don't" -> "dont").
func Slugify(text string) string {
	folded := unidecode.Unidecode(norm.NFKC.String(text))

	var b strings.Builder
	b.Grow(len(folded))
	pendingDash := false
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		// Soft and hard signs transliterate to quotes; they join, not split.
		if r == '\'' || r == '"' {
			continue
		}
		pendingDash = true
	}
	return b.String()
}

// UniqueSlug returns base when it is free, otherwise the first free
// base-1, base-2, ... candidate. Each candidate costs one exists lookup.
func UniqueSlug(ctx context.Context, base string, exists SlugExistsFunc) (string, error) {
	candidate := base
	for counter := 1; counter <= MaxSlugAttempts; counter++ {
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check slug %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, counter)
	}
	return "", fmt.Errorf("%w for %q", ErrSlugExhausted, base)
}
