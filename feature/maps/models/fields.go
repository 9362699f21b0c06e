package models

import "mapsync/core/cms"

// MapFields is the destination field shape of one maps-collection item.
// Image fields hold destination asset handles (or bare URLs signalling an
// upload); GameTags and Terrains hold destination item identifiers of the
// tag and terrain collections, not names.
type MapFields struct {
	Name            string      `json:"name"`
	Slug            string      `json:"slug"`
	RowID           string      `json:"rowId"`
	Author          string      `json:"author"`
	Minimap         cms.Image   `json:"minimap"`
	MinimapThumb    cms.Image   `json:"minimapThumb"`
	BackgroundImage *cms.Image  `json:"backgroundImage,omitempty"`
	PerspectiveShot *cms.Image  `json:"perspectiveShot,omitempty"`
	InGameShots     []cms.Image `json:"inGameShots"`
	TextureMap      cms.Image   `json:"textureMap"`
	HeightMap       cms.Image   `json:"heightMap"`
	MetalMap        cms.Image   `json:"metalMap"`
	Width           int         `json:"width"`
	Height          int         `json:"height"`
	Size            int         `json:"size"`
	TeamCount       int         `json:"teamCount"`
	MaxPlayers      int         `json:"maxPlayers"`
	WindMin         float64     `json:"windMin"`
	WindMax         float64     `json:"windMax"`
	Tidal           *float64    `json:"tidal,omitempty"`
	Title           *string     `json:"title,omitempty"`
	Description     *string     `json:"description,omitempty"`
	GameTags        []string    `json:"gameTags"`
	Terrains        []string    `json:"terrains"`
	DownloadURL     string      `json:"downloadUrl"`
}

// TagFields is the destination field shape shared by the tag and terrain
// collections: a display name plus its slug, the natural key.
type TagFields struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}
