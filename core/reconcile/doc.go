// Package reconcile provides a generic engine for converging a keyed
// destination collection to a source-of-truth key set.
//
// The engine is parameterized by an Adapter supplying three capabilities:
// destination field construction, source/destination equality, and key
// extraction. This keeps the engine free of any collection-specific shape;
// the maps, tags, and terrains collections each wire in their own adapter
// (see feature/maps).
//
// # Phases
//
// Reconciliation runs in ordered phases:
//
//  1. Apply: create items missing in the destination, update items that
//     differ from their source record.
//  2. Prune: delete destination items whose key left the source set.
//  3. Publish: push items whose live copy is stale.
//
// Apply and Prune are separate calls because ordering matters across related
// collections: a vocabulary item (tag, terrain) may only be pruned after the
// map items referencing it have been updated, or the destination would hold
// dangling references.
//
// # Dry-run
//
// A dry-run engine performs every read and every equality check, logs each
// planned mutation, and performs zero mutating calls.
package reconcile
