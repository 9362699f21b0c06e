package hashcache

// Config holds configuration for the image hash cache.
type Config struct {
	// Path is the location of the persisted cache file.
	Path string `mapstructure:"path" default:".image-hash-cache.json"`
}
