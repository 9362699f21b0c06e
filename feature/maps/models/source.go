package models

// UploadedFile references an image upload in the source storage.
type UploadedFile struct {
	// Bucket is the storage bucket holding the file.
	Bucket string `yaml:"bucket" json:"bucket"`
	// Path is the object path within the bucket.
	Path string `yaml:"path" json:"path"`
}

// SourceMap is one row of the schema-validated map list, keyed externally by
// its stable row id. This is the source-of-truth shape; it never reaches the
// destination directly (see CanonicalMap).
type SourceMap struct {
	// SpringName is the spring-engine internal map name.
	SpringName string `yaml:"springName" json:"springName"`
	// DisplayName is the human-facing map name.
	DisplayName string `yaml:"displayName" json:"displayName"`
	// Author is the map author.
	Author string `yaml:"author" json:"author"`
	// Certified marks maps that passed the certification process.
	Certified bool `yaml:"certified" json:"certified"`
	// InPool marks maps that belong to the current map pool.
	InPool bool `yaml:"inPool" json:"inPool"`
	// GameTags is the ordered classification tag list (e.g. "1v1", "team").
	GameTags []string `yaml:"gameTags" json:"gameTags"`
	// Terrain is the ordered terrain type list (e.g. "water", "hills").
	Terrain []string `yaml:"terrain" json:"terrain"`
	// TeamCount is the number of teams the map is laid out for.
	TeamCount int `yaml:"teamCount" json:"teamCount"`
	// MaxPlayers is the maximum supported player count.
	MaxPlayers int `yaml:"playerCount" json:"playerCount"`
	// Title is an optional tagline shown on the site.
	Title string `yaml:"title" json:"title"`
	// Description is an optional long-form description.
	Description string `yaml:"description" json:"description"`
	// Photo holds one or more uploads of the primary preview image; the first
	// entry is used.
	Photo []UploadedFile `yaml:"photo" json:"photo"`
	// BackgroundImage is an optional site background shot.
	BackgroundImage *UploadedFile `yaml:"backgroundImage" json:"backgroundImage"`
	// PerspectiveShot is an optional angled in-engine shot.
	PerspectiveShot *UploadedFile `yaml:"perspectiveShot" json:"perspectiveShot"`
	// InGameShots holds zero or more in-game screenshots.
	InGameShots []UploadedFile `yaml:"inGameShots" json:"inGameShots"`
}

// Location is a storage coordinate of an extracted map archive.
type Location struct {
	Bucket string `json:"bucket"`
	Path   string `json:"path"`
}

// MapMeta is the per-map derived metadata, keyed externally by row id.
// It is produced by an out-of-band extraction step and consumed read-only.
type MapMeta struct {
	// Location is where the extracted archive contents live.
	Location Location `json:"location"`
	// ExtractedFiles lists the files available under Location.Path.
	ExtractedFiles []string `json:"extractedFiles"`
	// Width is the map width in engine units.
	Width int `json:"width"`
	// Height is the map height in engine units.
	Height int `json:"height"`
	// WindMin is the minimum wind strength.
	WindMin float64 `json:"windMin"`
	// WindMax is the maximum wind strength.
	WindMax float64 `json:"windMax"`
	// TidalStrength is the tidal strength, nil for maps without water.
	TidalStrength *float64 `json:"tidalStrength"`
}

// CDNInfo is the per-map download mirror record, keyed externally by the
// spring-engine map name.
type CDNInfo struct {
	// Mirrors lists download URLs; the first entry is the canonical one.
	Mirrors []string `json:"mirrors"`
}
