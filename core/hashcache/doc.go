// Package hashcache provides a content-addressable cache of image digests.
//
// Synchronization decides whether a destination asset already holds the bytes
// of a desired image by comparing SHA-256 digests instead of re-uploading.
// Digests are expensive to compute (each one is a full download), so they are
// memoized by URL and persisted across runs.
//
// # Persistence
//
// The cache lives in a single JSON file {version, entries:[[url,digest],...]}.
// A version mismatch on load discards every entry rather than attempting a
// partial migration. Load and save failures are warnings, never fatal: the
// worst case is rehashing images that were already known.
//
// # Concurrency
//
// Downloads for distinct URLs run concurrently up to a fixed cap to hide
// network latency; concurrent requests for the same URL are collapsed via
// singleflight.
package hashcache
