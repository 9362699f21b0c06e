// Package maps implements the map-pool synchronization feature.
//
// It converges three related destination collections (maps, tags, terrains)
// to the source-of-truth map list, bridging two external shapes through one
// internal canonical record:
//
//	source schema  ->  CanonicalMap  ->  destination field data
//
// # Pipeline
//
// A run gathers the source rows, CDN mirror info and derived metadata, builds
// a canonical record per pooled map (failing loudly on any missing required
// field), derives the tag and terrain vocabularies, then reconciles:
//
//  1. Tags and terrains (creates/updates) - maps hold forward references to
//     their destination identifiers.
//  2. Maps (creates/updates, then removals).
//  3. Publish of every changed item.
//  4. Removal of now-unused tags and terrains, strictly after the maps that
//     referenced them were updated.
//
// # Image identity
//
// Image fields are compared by content digest (see core/hashcache) so an
// unchanged image keeps its already-uploaded destination asset handle and is
// never re-uploaded, even when its proxied source URL changes shape.
//
// # Dry-run
//
// In dry-run every read and diff still runs and intended mutations are
// logged, but no mutating call is made. Forward references that would have
// been created pass through unresolved instead of failing.
package maps
