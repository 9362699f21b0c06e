package maps

import (
	"context"
	"sort"

	"mapsync/core/cms"
)

// Digester computes the content digest of the resource behind a URL.
// core/hashcache provides the production implementation.
type Digester interface {
	Digest(ctx context.Context, url string) (string, error)
}

// Resolver decides image field values for destination items: reuse the
// already-uploaded asset when its bytes match the desired image, otherwise
// pass the desired URL through so the destination re-fetches it.
type Resolver struct {
	digester Digester
}

// NewResolver creates a resolver over the given digester.
func NewResolver(d Digester) *Resolver {
	return &Resolver{digester: d}
}

// Resolve returns the value to write to a single image field. When the
// existing destination asset holds the same bytes as desiredURL the existing
// handle is returned unchanged (no re-upload); otherwise the desired URL is
// returned, signalling an upload/replace.
func (r *Resolver) Resolve(ctx context.Context, desiredURL string, existing *cms.Image) (cms.Image, error) {
	if existing == nil || existing.URL == "" {
		return cms.Image{URL: desiredURL}, nil
	}

	same, err := r.SameImage(ctx, desiredURL, existing)
	if err != nil {
		return cms.Image{}, err
	}
	if same {
		return *existing, nil
	}
	return cms.Image{URL: desiredURL}, nil
}

// ResolveList returns values for a list-valued image field via a digest
// multiset match: each desired URL reuses the existing asset whose digest
// matches, if one remains unclaimed, and passes through as a URL otherwise.
// Content identity is preserved; list order across reshuffles is not.
func (r *Resolver) ResolveList(ctx context.Context, desired []string, existing []cms.Image) ([]cms.Image, error) {
	// Index existing assets by digest. Duplicated digests queue up so each
	// asset is reused at most once.
	byDigest := make(map[string][]cms.Image)
	for _, img := range existing {
		digest, err := r.digester.Digest(ctx, img.URL)
		if err != nil {
			return nil, err
		}
		byDigest[digest] = append(byDigest[digest], img)
	}

	out := make([]cms.Image, 0, len(desired))
	for _, u := range desired {
		digest, err := r.digester.Digest(ctx, u)
		if err != nil {
			return nil, err
		}
		if pool := byDigest[digest]; len(pool) > 0 {
			out = append(out, pool[0])
			byDigest[digest] = pool[1:]
			continue
		}
		out = append(out, cms.Image{URL: u})
	}
	return out, nil
}

// SameImage reports whether url and the existing asset hold identical bytes.
// The empty URL represents "no image" and only equals another empty value.
func (r *Resolver) SameImage(ctx context.Context, url string, existing *cms.Image) (bool, error) {
	existingURL := ""
	if existing != nil {
		existingURL = existing.URL
	}
	if url == "" || existingURL == "" {
		return url == existingURL, nil
	}

	want, err := r.digester.Digest(ctx, url)
	if err != nil {
		return false, err
	}
	have, err := r.digester.Digest(ctx, existingURL)
	if err != nil {
		return false, err
	}
	return want == have, nil
}

// SameImageList reports whether the desired URLs and the existing assets hold
// the same multiset of image bytes: equal cardinality and pairwise-equal
// digests after sorting both sides.
func (r *Resolver) SameImageList(ctx context.Context, urls []string, existing []cms.Image) (bool, error) {
	if len(urls) != len(existing) {
		return false, nil
	}

	want := make([]string, 0, len(urls))
	for _, u := range urls {
		d, err := r.digester.Digest(ctx, u)
		if err != nil {
			return false, err
		}
		want = append(want, d)
	}
	have := make([]string, 0, len(existing))
	for _, img := range existing {
		d, err := r.digester.Digest(ctx, img.URL)
		if err != nil {
			return false, err
		}
		have = append(have, d)
	}

	sort.Strings(want)
	sort.Strings(have)
	for i := range want {
		if want[i] != have[i] {
			return false, nil
		}
	}
	return true, nil
}
