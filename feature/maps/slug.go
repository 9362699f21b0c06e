package maps

import "strings"

// Slugify derives the URL-safe natural key for a display name: lowercase,
// with every run of non-alphanumeric characters collapsed to a single hyphen
// and leading/trailing hyphens stripped.
//
// Slugify is pure and idempotent: applying it to its own output is a no-op.
// The slug is the identity of tags and terrains across source and
// destination; the display name may change (e.g. casing) without changing
// identity.
func Slugify(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	pendingHyphen := false
	for _, r := range strings.ToLower(name) {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !alnum {
			pendingHyphen = b.Len() > 0
			continue
		}
		if pendingHyphen {
			b.WriteByte('-')
			pendingHyphen = false
		}
		b.WriteRune(r)
	}

	return b.String()
}
