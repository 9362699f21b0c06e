package storage

// Config holds configuration for the source storage provider.
type Config struct {
	// Endpoint is the URL of the storage service.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:""`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:""`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket is the name of the bucket holding the map-pool source data.
	Bucket string `mapstructure:"bucket" default:"maps-metadata"`
	// Region is the location of the bucket (e.g., us-east-1).
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// MapListObject is the object name of the schema-shaped map list.
	MapListObject string `mapstructure:"map_list_object" default:"map_list.yaml"`
	// CDNInfoObject is the object name of the CDN mirror info JSON.
	CDNInfoObject string `mapstructure:"cdn_info_object" default:"cdn_maps.json"`
	// MetaObject is the object name of the per-map derived metadata JSON.
	MetaObject string `mapstructure:"meta_object" default:"map_meta.json"`
}
