package maps

import (
	"testing"

	"mapsync/feature/maps/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSourceMap() models.SourceMap {
	return models.SourceMap{
		SpringName:  "supreme_isthmus_v1.8",
		DisplayName: "Supreme Isthmus",
		Author:      "Frostregen",
		Certified:   true,
		InPool:      true,
		GameTags:    []string{"1v1", "team"},
		Terrain:     []string{"water", "chokepoints"},
		TeamCount:   2,
		MaxPlayers:  16,
		Photo:       []models.UploadedFile{{Bucket: "uploads", Path: "photos/supreme.jpg"}},
	}
}

func testMeta() models.MapMeta {
	return models.MapMeta{
		Location:       models.Location{Bucket: "extracted", Path: "maps/supreme_isthmus"},
		ExtractedFiles: []string{"height.png", "metal.png", "texture.jpg", "mapinfo.lua"},
		Width:          16,
		Height:         12,
		WindMin:        0,
		WindMax:        20,
	}
}

func testCDN() map[string]models.CDNInfo {
	return map[string]models.CDNInfo{
		"supreme_isthmus_v1.8": {Mirrors: []string{"https://cdn.example.com/supreme.sd7", "https://mirror.example.com/supreme.sd7"}},
	}
}

func TestBuilder_Build(t *testing.T) {
	b := NewBuilder(testCDN(), map[string]models.MapMeta{"row1": testMeta()})

	c, err := b.Build("row1", testSourceMap())
	require.NoError(t, err)

	assert.Equal(t, "row1", c.RowID)
	assert.Equal(t, "Supreme Isthmus", c.Name)
	assert.Equal(t, "Frostregen", c.Author)
	assert.Equal(t, 16, c.Width)
	assert.Equal(t, 12, c.Height)
	assert.Equal(t, 192, c.Size)
	assert.Equal(t, 2, c.TeamCount)
	assert.Equal(t, 16, c.MaxPlayers)
	assert.Equal(t, float64(0), c.WindMin)
	assert.Equal(t, float64(20), c.WindMax)
	assert.Nil(t, c.Tidal)
	assert.Nil(t, c.Title)
	assert.Nil(t, c.Description)
	assert.Equal(t, []string{"1v1", "team"}, c.Tags)
	assert.Equal(t, []string{"water", "chokepoints"}, c.Terrains)

	// First mirror is the canonical download URL.
	assert.Equal(t, "https://cdn.example.com/supreme.sd7", c.DownloadURL)

	// Image URLs are deterministic proxied constructions.
	assert.Equal(t,
		"https://images.mapsync.dev/fit/1024/1024/q90/webp/uploads/photos%2Fsupreme.jpg",
		c.MinimapURL)
	assert.Equal(t,
		"https://images.mapsync.dev/fit/256/256/q80/webp/uploads/photos%2Fsupreme.jpg",
		c.MinimapThumbURL)
	assert.Equal(t,
		"https://images.mapsync.dev/raw/q100/png/extracted/maps%2Fsupreme_isthmus%2Ftexture.jpg",
		c.TextureURL)
	assert.Equal(t,
		"https://images.mapsync.dev/raw/q100/png/extracted/maps%2Fsupreme_isthmus%2Fheight.png",
		c.HeightMapURL)
	assert.Equal(t,
		"https://images.mapsync.dev/raw/q100/png/extracted/maps%2Fsupreme_isthmus%2Fmetal.png",
		c.MetalMapURL)
}

func TestBuilder_Build_OptionalFields(t *testing.T) {
	src := testSourceMap()
	src.Title = "King of the isthmus"
	src.Description = "A chokepoint-heavy 1v1 and team map."
	src.BackgroundImage = &models.UploadedFile{Bucket: "uploads", Path: "bg/supreme.jpg"}
	src.InGameShots = []models.UploadedFile{
		{Bucket: "uploads", Path: "shots/supreme_1.jpg"},
		{Bucket: "uploads", Path: "shots/supreme_2.jpg"},
	}
	tidal := 13.0
	meta := testMeta()
	meta.TidalStrength = &tidal

	b := NewBuilder(testCDN(), map[string]models.MapMeta{"row1": meta})
	c, err := b.Build("row1", src)
	require.NoError(t, err)

	require.NotNil(t, c.Title)
	assert.Equal(t, "King of the isthmus", *c.Title)
	require.NotNil(t, c.BackgroundURL)
	assert.Contains(t, *c.BackgroundURL, "bg%2Fsupreme.jpg")
	assert.Nil(t, c.PerspectiveURL)
	assert.Len(t, c.InGameShotURLs, 2)
	require.NotNil(t, c.Tidal)
	assert.Equal(t, 13.0, *c.Tidal)
}

func TestBuilder_Build_Errors(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(src *models.SourceMap, meta *models.MapMeta, cdn map[string]models.CDNInfo)
		expectErr string
	}{
		{
			name: "missing CDN entry",
			mutate: func(src *models.SourceMap, meta *models.MapMeta, cdn map[string]models.CDNInfo) {
				delete(cdn, "supreme_isthmus_v1.8")
			},
			expectErr: "no CDN entry",
		},
		{
			name: "CDN entry without mirrors",
			mutate: func(src *models.SourceMap, meta *models.MapMeta, cdn map[string]models.CDNInfo) {
				cdn["supreme_isthmus_v1.8"] = models.CDNInfo{}
			},
			expectErr: "no mirrors",
		},
		{
			name: "missing extracted file",
			mutate: func(src *models.SourceMap, meta *models.MapMeta, cdn map[string]models.CDNInfo) {
				meta.ExtractedFiles = []string{"height.png", "texture.jpg"}
			},
			expectErr: "missing extracted file metal.png",
		},
		{
			name: "missing preview photo",
			mutate: func(src *models.SourceMap, meta *models.MapMeta, cdn map[string]models.CDNInfo) {
				src.Photo = nil
			},
			expectErr: "no preview photo",
		},
		{
			name: "empty author rejected",
			mutate: func(src *models.SourceMap, meta *models.MapMeta, cdn map[string]models.CDNInfo) {
				src.Author = ""
			},
			expectErr: "required field author is empty",
		},
		{
			name: "empty tag rejected",
			mutate: func(src *models.SourceMap, meta *models.MapMeta, cdn map[string]models.CDNInfo) {
				src.GameTags = []string{"1v1", ""}
			},
			expectErr: "tags[1] is empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := testSourceMap()
			meta := testMeta()
			cdn := testCDN()
			tt.mutate(&src, &meta, cdn)

			b := NewBuilder(cdn, map[string]models.MapMeta{"row1": meta})
			_, err := b.Build("row1", src)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectErr)
		})
	}
}

func TestBuilder_Build_MissingMeta(t *testing.T) {
	b := NewBuilder(testCDN(), map[string]models.MapMeta{})
	_, err := b.Build("row1", testSourceMap())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no derived metadata")
}

// Vocabularies accumulate only from records that built successfully, so a
// rejected map cannot leak tags into the destination.
func TestBuilder_VocabularyAccumulation(t *testing.T) {
	b := NewBuilder(testCDN(), map[string]models.MapMeta{"row1": testMeta()})

	_, err := b.Build("row1", testSourceMap())
	require.NoError(t, err)

	assert.Equal(t, []string{"1v1", "team"}, b.Tags().Slugs())
	assert.Equal(t, "1V1", b.Tags().Name("1v1"))
	assert.Equal(t, "TEAM", b.Tags().Name("team"))
	assert.Equal(t, []string{"chokepoints", "water"}, b.Terrains().Slugs())
	assert.Equal(t, "water", b.Terrains().Name("water"))

	bad := testSourceMap()
	bad.Author = ""
	bad.GameTags = []string{"ffa"}
	_, err = b.Build("row1", bad)
	require.Error(t, err)
	assert.Equal(t, 2, b.Tags().Len(), "failed build must not grow the vocabulary")
}
