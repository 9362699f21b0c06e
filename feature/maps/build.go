package maps

import (
	"fmt"

	"mapsync/feature/maps/models"
)

// requiredExtractedFiles must be present in a map's extracted archive before
// a canonical record can be built; they back the texture/height/metal layers.
var requiredExtractedFiles = []string{"height.png", "metal.png", "texture.jpg"}

// Builder turns source map rows plus their auxiliary data into canonical
// records, accumulating the tag and terrain vocabularies as it goes.
type Builder struct {
	cdn      map[string]models.CDNInfo
	meta     map[string]models.MapMeta
	tags     *Vocabulary
	terrains *Vocabulary
}

// NewBuilder creates a builder over the CDN info (keyed by spring name) and
// derived metadata (keyed by row id).
func NewBuilder(cdn map[string]models.CDNInfo, meta map[string]models.MapMeta) *Builder {
	return &Builder{
		cdn:      cdn,
		meta:     meta,
		tags:     NewVocabulary(true),
		terrains: NewVocabulary(false),
	}
}

// Tags returns the tag vocabulary accumulated so far.
func (b *Builder) Tags() *Vocabulary {
	return b.tags
}

// Terrains returns the terrain vocabulary accumulated so far.
func (b *Builder) Terrains() *Vocabulary {
	return b.terrains
}

// Build constructs the canonical record for one source row. It fails when the
// CDN entry or any required auxiliary file is missing, and when any required
// field of the result ends up empty; no partial record is ever returned.
func (b *Builder) Build(rowID string, src models.SourceMap) (*models.CanonicalMap, error) {
	cdn, ok := b.cdn[src.SpringName]
	if !ok {
		return nil, fmt.Errorf("map %q (%s): no CDN entry", src.SpringName, rowID)
	}
	if len(cdn.Mirrors) == 0 {
		return nil, fmt.Errorf("map %q (%s): CDN entry has no mirrors", src.SpringName, rowID)
	}

	meta, ok := b.meta[rowID]
	if !ok {
		return nil, fmt.Errorf("map %q (%s): no derived metadata", src.SpringName, rowID)
	}
	extracted := make(map[string]struct{}, len(meta.ExtractedFiles))
	for _, f := range meta.ExtractedFiles {
		extracted[f] = struct{}{}
	}
	for _, f := range requiredExtractedFiles {
		if _, ok := extracted[f]; !ok {
			return nil, fmt.Errorf("map %q (%s): missing extracted file %s", src.SpringName, rowID, f)
		}
	}

	if len(src.Photo) == 0 {
		return nil, fmt.Errorf("map %q (%s): no preview photo upload", src.SpringName, rowID)
	}

	c := &models.CanonicalMap{
		RowID:  rowID,
		Name:   src.DisplayName,
		Author: src.Author,

		MinimapURL:      uploadURL(directiveMinimap, src.Photo[0]),
		MinimapThumbURL: uploadURL(directiveThumb, src.Photo[0]),
		TextureURL:      layerURL(meta.Location, "texture.jpg"),
		HeightMapURL:    layerURL(meta.Location, "height.png"),
		MetalMapURL:     layerURL(meta.Location, "metal.png"),

		Width:      meta.Width,
		Height:     meta.Height,
		Size:       meta.Width * meta.Height,
		TeamCount:  src.TeamCount,
		MaxPlayers: src.MaxPlayers,

		WindMin: meta.WindMin,
		WindMax: meta.WindMax,
		Tidal:   meta.TidalStrength,

		Tags:     append([]string(nil), src.GameTags...),
		Terrains: append([]string(nil), src.Terrain...),

		DownloadURL: cdn.Mirrors[0],
	}

	if src.BackgroundImage != nil {
		u := uploadURL(directivePhoto, *src.BackgroundImage)
		c.BackgroundURL = &u
	}
	if src.PerspectiveShot != nil {
		u := uploadURL(directivePhoto, *src.PerspectiveShot)
		c.PerspectiveURL = &u
	}
	for _, shot := range src.InGameShots {
		c.InGameShotURLs = append(c.InGameShotURLs, uploadURL(directivePhoto, shot))
	}
	if src.Title != "" {
		t := src.Title
		c.Title = &t
	}
	if src.Description != "" {
		d := src.Description
		c.Description = &d
	}

	if err := validateCanonical(c); err != nil {
		return nil, fmt.Errorf("map %q (%s): %w", src.SpringName, rowID, err)
	}

	// Record vocabularies only for records that passed validation.
	for _, tag := range c.Tags {
		b.tags.Add(tag)
	}
	for _, terrain := range c.Terrains {
		b.terrains.Add(terrain)
	}

	return c, nil
}

// validateCanonical rejects records with any empty required field. Numeric
// zero values are legitimate (e.g. wind minimum); only empty strings and
// empty required collections are errors. Optional pointer fields may be nil
// but must not point at an empty string.
func validateCanonical(c *models.CanonicalMap) error {
	required := map[string]string{
		"rowId":        c.RowID,
		"name":         c.Name,
		"author":       c.Author,
		"minimapUrl":   c.MinimapURL,
		"minimapThumb": c.MinimapThumbURL,
		"textureUrl":   c.TextureURL,
		"heightMapUrl": c.HeightMapURL,
		"metalMapUrl":  c.MetalMapURL,
		"downloadUrl":  c.DownloadURL,
	}
	for field, value := range required {
		if value == "" {
			return fmt.Errorf("required field %s is empty", field)
		}
	}

	optional := map[string]*string{
		"backgroundUrl":  c.BackgroundURL,
		"perspectiveUrl": c.PerspectiveURL,
		"title":          c.Title,
		"description":    c.Description,
	}
	for field, value := range optional {
		if value != nil && *value == "" {
			return fmt.Errorf("optional field %s is present but empty", field)
		}
	}

	for i, u := range c.InGameShotURLs {
		if u == "" {
			return fmt.Errorf("inGameShots[%d] is empty", i)
		}
	}
	for i, t := range c.Tags {
		if t == "" {
			return fmt.Errorf("tags[%d] is empty", i)
		}
	}
	for i, t := range c.Terrains {
		if t == "" {
			return fmt.Errorf("terrains[%d] is empty", i)
		}
	}

	return nil
}
