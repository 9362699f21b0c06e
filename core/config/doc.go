// Package config provides centralized configuration loading for the application.
//
// Configuration is assembled from environment variables (optionally seeded from
// a .env file via godotenv) using Viper. Struct tags drive the mapping:
// 'mapstructure' names the key and 'default' supplies the fallback value, so
// CMS_TOKEN maps to cms.token and STORAGE_BUCKET to storage.bucket.
//
// Required values (the CMS access token and site identifier) are checked by
// Validate; the process aborts with a diagnostic when they are absent.
package config
