package maps

import (
	"fmt"
	"net/url"

	"mapsync/feature/maps/models"
)

// imageProxyBase is the image proxy serving resized/transcoded variants of
// storage objects. URLs built against it are the join keys of the hash
// cache, so construction must stay byte-for-byte reproducible.
const imageProxyBase = "https://images.mapsync.dev"

// Resize/format/quality directives per image kind.
const (
	directiveMinimap = "fit/1024/1024/q90/webp"
	directiveThumb   = "fit/256/256/q80/webp"
	directivePhoto   = "fit/1920/1080/q85/webp"
	directiveLayer   = "raw/q100/png"
)

// proxiedURL builds the deterministic image proxy URL for a storage object:
// base, directive, bucket, then the URL-escaped object path.
func proxiedURL(directive, bucket, path string) string {
	return fmt.Sprintf("%s/%s/%s/%s", imageProxyBase, directive, bucket, url.PathEscape(path))
}

// uploadURL builds the proxied URL for an uploaded source file.
func uploadURL(directive string, f models.UploadedFile) string {
	return proxiedURL(directive, f.Bucket, f.Path)
}

// layerURL builds the proxied URL for a file extracted from the map archive.
func layerURL(loc models.Location, file string) string {
	return proxiedURL(directiveLayer, loc.Bucket, loc.Path+"/"+file)
}
