package maps

import (
	"context"
	"slices"

	"mapsync/core/cms"
	"mapsync/feature/maps/models"
)

// mapEqual reports whether the destination item already reflects the
// canonical record: scalar fields exactly equal, reference lists equal
// element-for-element in order, and every image pair holding identical bytes.
//
// The check may be conservative (a false only costs a redundant update call)
// but must never miss a real change. Scalars are compared first so most
// differences are caught before any digest fetch.
func mapEqual(ctx context.Context, rv *Resolver, c *models.CanonicalMap, refs mapRefs, existing *models.MapFields) (bool, error) {
	if existing.Name != c.Name ||
		existing.Slug != Slugify(c.Name) ||
		existing.RowID != c.RowID ||
		existing.Author != c.Author ||
		existing.Width != c.Width ||
		existing.Height != c.Height ||
		existing.Size != c.Size ||
		existing.TeamCount != c.TeamCount ||
		existing.MaxPlayers != c.MaxPlayers ||
		existing.WindMin != c.WindMin ||
		existing.WindMax != c.WindMax ||
		existing.DownloadURL != c.DownloadURL {
		return false, nil
	}

	if !equalFloatPtr(existing.Tidal, c.Tidal) ||
		!equalStringPtr(existing.Title, c.Title) ||
		!equalStringPtr(existing.Description, c.Description) {
		return false, nil
	}

	// Reference identifiers are stored in order; a reorder is a change.
	if !slices.Equal(existing.GameTags, refs.tags) ||
		!slices.Equal(existing.Terrains, refs.terrains) {
		return false, nil
	}

	imagePairs := []struct {
		desired  string
		existing *cms.Image
	}{
		{c.MinimapURL, &existing.Minimap},
		{c.MinimapThumbURL, &existing.MinimapThumb},
		{derefString(c.BackgroundURL), existing.BackgroundImage},
		{derefString(c.PerspectiveURL), existing.PerspectiveShot},
		{c.TextureURL, &existing.TextureMap},
		{c.HeightMapURL, &existing.HeightMap},
		{c.MetalMapURL, &existing.MetalMap},
	}
	for _, pair := range imagePairs {
		same, err := rv.SameImage(ctx, pair.desired, pair.existing)
		if err != nil {
			return false, err
		}
		if !same {
			return false, nil
		}
	}

	return rv.SameImageList(ctx, c.InGameShotURLs, existing.InGameShots)
}

func equalStringPtr(a, b *string) bool {
	if a == nil || b == nil {
		return (a == nil) == (b == nil)
	}
	return *a == *b
}

func equalFloatPtr(a, b *float64) bool {
	if a == nil || b == nil {
		return (a == nil) == (b == nil)
	}
	return *a == *b
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
