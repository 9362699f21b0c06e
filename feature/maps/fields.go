package maps

import (
	"context"
	"encoding/json"
	"fmt"

	"mapsync/core/cms"
	"mapsync/feature/maps/models"
)

// mapRefs holds a map's tag and terrain lists resolved to destination item
// identifiers, in canonical order.
type mapRefs struct {
	tags     []string
	terrains []string
}

// buildMapFields converts a canonical record to the destination field shape.
// existing, when present, is consulted so byte-identical images keep their
// already-uploaded asset handles instead of being uploaded again.
func buildMapFields(ctx context.Context, rv *Resolver, c *models.CanonicalMap, refs mapRefs, existing *models.MapFields) (*models.MapFields, error) {
	var (
		exMinimap, exThumb, exBackground, exPerspective *cms.Image
		exTexture, exHeight, exMetal                    *cms.Image
		exShots                                         []cms.Image
	)
	if existing != nil {
		exMinimap = &existing.Minimap
		exThumb = &existing.MinimapThumb
		exBackground = existing.BackgroundImage
		exPerspective = existing.PerspectiveShot
		exTexture = &existing.TextureMap
		exHeight = &existing.HeightMap
		exMetal = &existing.MetalMap
		exShots = existing.InGameShots
	}

	minimap, err := rv.Resolve(ctx, c.MinimapURL, exMinimap)
	if err != nil {
		return nil, err
	}
	thumb, err := rv.Resolve(ctx, c.MinimapThumbURL, exThumb)
	if err != nil {
		return nil, err
	}
	texture, err := rv.Resolve(ctx, c.TextureURL, exTexture)
	if err != nil {
		return nil, err
	}
	height, err := rv.Resolve(ctx, c.HeightMapURL, exHeight)
	if err != nil {
		return nil, err
	}
	metal, err := rv.Resolve(ctx, c.MetalMapURL, exMetal)
	if err != nil {
		return nil, err
	}
	shots, err := rv.ResolveList(ctx, c.InGameShotURLs, exShots)
	if err != nil {
		return nil, err
	}

	f := &models.MapFields{
		Name:         c.Name,
		Slug:         Slugify(c.Name),
		RowID:        c.RowID,
		Author:       c.Author,
		Minimap:      minimap,
		MinimapThumb: thumb,
		InGameShots:  shots,
		TextureMap:   texture,
		HeightMap:    height,
		MetalMap:     metal,
		Width:        c.Width,
		Height:       c.Height,
		Size:         c.Size,
		TeamCount:    c.TeamCount,
		MaxPlayers:   c.MaxPlayers,
		WindMin:      c.WindMin,
		WindMax:      c.WindMax,
		Tidal:        c.Tidal,
		Title:        c.Title,
		Description:  c.Description,
		GameTags:     refs.tags,
		Terrains:     refs.terrains,
		DownloadURL:  c.DownloadURL,
	}

	if c.BackgroundURL != nil {
		img, err := rv.Resolve(ctx, *c.BackgroundURL, exBackground)
		if err != nil {
			return nil, err
		}
		f.BackgroundImage = &img
	}
	if c.PerspectiveURL != nil {
		img, err := rv.Resolve(ctx, *c.PerspectiveURL, exPerspective)
		if err != nil {
			return nil, err
		}
		f.PerspectiveShot = &img
	}

	return f, nil
}

// decodeMapFields decodes the field data of a maps-collection item.
func decodeMapFields(item *cms.Item) (*models.MapFields, error) {
	var f models.MapFields
	if err := json.Unmarshal(item.FieldData, &f); err != nil {
		return nil, fmt.Errorf("failed to decode map item %s: %w", item.ID, err)
	}
	return &f, nil
}

// decodeTagFields decodes the field data of a tag or terrain item.
func decodeTagFields(item *cms.Item) (*models.TagFields, error) {
	var f models.TagFields
	if err := json.Unmarshal(item.FieldData, &f); err != nil {
		return nil, fmt.Errorf("failed to decode tag item %s: %w", item.ID, err)
	}
	return &f, nil
}
