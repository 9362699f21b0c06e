package maps

import (
	"sort"
	"strings"
)

// Vocabulary accumulates the {slug, display name} pairs discovered while
// building canonical records. The first display name seen for a slug wins;
// later spellings of the same slug do not change it.
type Vocabulary struct {
	names     map[string]string
	uppercase bool
}

// NewVocabulary creates an empty vocabulary. When uppercase is set, display
// names are normalized to uppercase on insertion (the convention for game
// tags on the site).
func NewVocabulary(uppercase bool) *Vocabulary {
	return &Vocabulary{names: make(map[string]string), uppercase: uppercase}
}

// Add records a display name under its slug the first time the slug is seen.
func (v *Vocabulary) Add(name string) {
	slug := Slugify(name)
	if slug == "" {
		return
	}
	if _, seen := v.names[slug]; seen {
		return
	}
	if v.uppercase {
		name = strings.ToUpper(name)
	}
	v.names[slug] = name
}

// Name returns the display name recorded for slug.
func (v *Vocabulary) Name(slug string) string {
	return v.names[slug]
}

// Slugs returns all recorded slugs in sorted order.
func (v *Vocabulary) Slugs() []string {
	slugs := make([]string, 0, len(v.names))
	for slug := range v.names {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs
}

// Len returns the number of recorded entries.
func (v *Vocabulary) Len() int {
	return len(v.names)
}
