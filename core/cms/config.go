package cms

// Config holds configuration for the destination CMS.
type Config struct {
	// Token is the API access token. Required.
	Token string `mapstructure:"token" default:""`
	// SiteID identifies the destination site whose collections are synced. Required.
	SiteID string `mapstructure:"site_id" default:""`
	// BaseURL is the API root of the destination system.
	BaseURL string `mapstructure:"base_url" default:"https://api.webflow.com/v2"`
}
