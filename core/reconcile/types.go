package reconcile

import (
	"context"

	"mapsync/core/cms"
)

// Adapter provides the collection-specific capabilities the engine is
// parameterized over: the source key set, destination field construction,
// and equality between a source item and its destination record.
type Adapter interface {
	// Name returns the unique name of this adapter (used in logs).
	Name() string

	// SourceKeys returns the natural keys of every source item.
	SourceKeys() []string

	// DestKey extracts the natural key from a destination item.
	DestKey(item *cms.Item) (string, error)

	// BuildFields constructs the destination field data for a source item.
	// existing is the current destination item when one exists, nil otherwise;
	// adapters may inspect it to reuse already-uploaded assets.
	BuildFields(ctx context.Context, key string, existing *cms.Item) (any, error)

	// Equal reports whether the destination item already reflects the source
	// item, i.e. no update call is needed. It must never report true for a
	// real difference; a conservative false only costs a redundant update.
	Equal(ctx context.Context, key string, existing *cms.Item) (bool, error)
}

// Stats aggregates the mutations performed (or planned, in dry-run) by one
// reconciliation pass.
type Stats struct {
	// Created counts items added to the destination.
	Created int
	// Updated counts items rewritten in the destination.
	Updated int
	// Deleted counts items removed from the destination.
	Deleted int
}

// Total returns the total number of mutations.
func (s Stats) Total() int {
	return s.Created + s.Updated + s.Deleted
}
