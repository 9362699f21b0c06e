package reconcile

import (
	"sort"

	"mapsync/core/cms"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Index holds the destination items of one collection keyed by natural key.
// It is the engine's working view of destination state: creates insert into
// it, updates replace, removals delete.
type Index struct {
	byKey map[string]*cms.Item
}

// NewIndex builds an index over the listed destination items using the
// adapter's key extraction.
//
// A duplicate natural key is a destination-side anomaly (two items claiming
// the same slug or row id). Dropping one silently would make the run delete
// it as an orphan, so the duplicate is kept under a disambiguated key and a
// warning is logged for manual cleanup.
func NewIndex(log *zap.Logger, adapter Adapter, items []cms.Item) (*Index, error) {
	idx := &Index{byKey: make(map[string]*cms.Item, len(items))}

	for i := range items {
		item := &items[i]
		key, err := adapter.DestKey(item)
		if err != nil {
			return nil, err
		}

		if _, exists := idx.byKey[key]; exists {
			suffixed := key + "-dup-" + uuid.NewString()[:8]
			log.Warn("Duplicate destination key, keeping under disambiguated key",
				zap.String("collection", adapter.Name()),
				zap.String("key", key),
				zap.String("stored_as", suffixed),
				zap.String("item_id", item.ID))
			key = suffixed
		}
		idx.byKey[key] = item
	}

	return idx, nil
}

// Get returns the item stored under key, if any.
func (x *Index) Get(key string) (*cms.Item, bool) {
	item, ok := x.byKey[key]
	return item, ok
}

// Put stores item under key, replacing any previous entry.
func (x *Index) Put(key string, item *cms.Item) {
	x.byKey[key] = item
}

// Delete removes the entry under key.
func (x *Index) Delete(key string) {
	delete(x.byKey, key)
}

// Keys returns all keys in sorted order for deterministic iteration.
func (x *Index) Keys() []string {
	keys := make([]string, 0, len(x.byKey))
	for key := range x.byKey {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Items returns all indexed items, ordered by key.
func (x *Index) Items() []*cms.Item {
	items := make([]*cms.Item, 0, len(x.byKey))
	for _, key := range x.Keys() {
		items = append(items, x.byKey[key])
	}
	return items
}

// Len returns the number of indexed items.
func (x *Index) Len() int {
	return len(x.byKey)
}
