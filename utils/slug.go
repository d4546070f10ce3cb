// utils/slug.go
package utils

import (
	"fmt"
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL-safe identifier from a display name: lower-case,
// every run of non-alphanumeric characters collapsed to a single hyphen,
// leading and trailing hyphens stripped.
func Slugify(name string) string {
	slug := nonAlnum.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}

// UniqueSlug returns the first of base, base-1, base-2, ... for which taken
// reports false.
func UniqueSlug(name string, taken func(string) bool) string {
	base := Slugify(name)
	slug := base
	for counter := 1; taken(slug); counter++ {
		slug = fmt.Sprintf("%s-%d", base, counter)
	}
	return slug
}

// SlugSet tracks slugs assigned within a single batch, so a linear scan can
// assign unique slugs without re-querying after each insert. It is discarded
// when the batch ends.
type SlugSet struct {
	seen map[string]struct{}
}

func NewSlugSet() *SlugSet {
	return &SlugSet{seen: make(map[string]struct{})}
}

// Reserve records an already-assigned slug without deriving it, so later
// claims cannot collide with it.
func (s *SlugSet) Reserve(slug string) {
	s.seen[slug] = struct{}{}
}

// Claim assigns and records a slug for name, appending -1, -2, ... on
// collision with a slug already claimed in this batch.
func (s *SlugSet) Claim(name string) string {
	slug := UniqueSlug(name, func(candidate string) bool {
		_, ok := s.seen[candidate]
		return ok
	})
	s.seen[slug] = struct{}{}
	return slug
}
