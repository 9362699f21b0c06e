package models

// CanonicalMap is the fully-resolved internal representation of one map,
// independent of both the source schema and the destination field naming.
//
// Canonical records are transient: they are rebuilt from upstream sources on
// every run and never persisted. A record with any missing required field is
// rejected at build time; partial records are never synced.
type CanonicalMap struct {
	// RowID is the stable source row identifier and the natural key in the
	// destination maps collection.
	RowID string
	// Name is the display name.
	Name string
	// Author is the map author.
	Author string

	// MinimapURL is the full-size minimap image.
	MinimapURL string
	// MinimapThumbURL is the resized minimap thumbnail.
	MinimapThumbURL string
	// BackgroundURL is the optional site background shot.
	BackgroundURL *string
	// PerspectiveURL is the optional angled in-engine shot.
	PerspectiveURL *string
	// InGameShotURLs are the in-game screenshots.
	InGameShotURLs []string
	// TextureURL, HeightMapURL and MetalMapURL are the extracted map layers.
	TextureURL   string
	HeightMapURL string
	MetalMapURL  string

	// Width and Height are the map dimensions; Size is their product.
	Width  int
	Height int
	Size   int
	// TeamCount is the number of teams.
	TeamCount int
	// MaxPlayers is the maximum player count.
	MaxPlayers int

	// WindMin and WindMax bound the wind strength.
	WindMin float64
	WindMax float64
	// Tidal is the tidal strength, nil for maps without water.
	Tidal *float64

	// Title and Description are optional site copy.
	Title       *string
	Description *string

	// Tags is the ordered classification tag name list.
	Tags []string
	// Terrains is the ordered terrain type name list.
	Terrains []string

	// DownloadURL is the first CDN mirror.
	DownloadURL string
}
