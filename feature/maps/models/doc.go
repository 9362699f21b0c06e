// Package models defines the data shapes the map synchronizer moves between:
// the source-of-truth contracts (SourceMap, MapMeta, CDNInfo), the internal
// canonical representation (CanonicalMap), and the destination field shapes
// (MapFields, TagFields).
//
// The canonical record deliberately sits between the two external shapes so
// that neither leaks into the other; conversions are plain functions in the
// parent package, not type relationships.
package models
