package reconcile

import (
	"context"
	"fmt"
	"sort"

	"mapsync/core/cms"

	"go.uber.org/zap"
)

// Engine converges a destination collection to a source key set through the
// capabilities of an Adapter.
//
// In dry-run mode every read and every equality check still runs, planned
// mutations are logged, and no remote call that would change destination
// state is ever made.
type Engine struct {
	client cms.Client
	log    *zap.Logger
	dryRun bool
}

// NewEngine creates a reconciliation engine over the given destination client.
func NewEngine(client cms.Client, log *zap.Logger, dryRun bool) *Engine {
	return &Engine{client: client, log: log, dryRun: dryRun}
}

// DryRun reports whether the engine is in dry-run mode.
func (e *Engine) DryRun() bool {
	return e.dryRun
}

// Apply performs the additions/updates phase: every source item absent from
// the destination is created, and every present-but-different item is
// updated. Created and updated items replace their entries in dest so later
// phases observe the new state.
func (e *Engine) Apply(ctx context.Context, collectionID string, adapter Adapter, dest *Index) (Stats, error) {
	var stats Stats

	keys := append([]string(nil), adapter.SourceKeys()...)
	sort.Strings(keys)

	for _, key := range keys {
		existing, found := dest.Get(key)

		if !found {
			if e.dryRun {
				e.log.Info("Would create item",
					zap.String("collection", adapter.Name()), zap.String("key", key))
				stats.Created++
				continue
			}

			fields, err := adapter.BuildFields(ctx, key, nil)
			if err != nil {
				return stats, fmt.Errorf("%s %q: %w", adapter.Name(), key, err)
			}
			item, err := e.client.CreateItem(ctx, collectionID, fields)
			if err != nil {
				return stats, fmt.Errorf("failed to create %s %q: %w", adapter.Name(), key, err)
			}
			e.log.Info("Created item",
				zap.String("collection", adapter.Name()), zap.String("key", key),
				zap.String("item_id", item.ID))
			dest.Put(key, item)
			stats.Created++
			continue
		}

		equal, err := adapter.Equal(ctx, key, existing)
		if err != nil {
			return stats, fmt.Errorf("%s %q: %w", adapter.Name(), key, err)
		}
		if equal {
			continue
		}

		if e.dryRun {
			e.log.Info("Would update item",
				zap.String("collection", adapter.Name()), zap.String("key", key),
				zap.String("item_id", existing.ID))
			stats.Updated++
			continue
		}

		fields, err := adapter.BuildFields(ctx, key, existing)
		if err != nil {
			return stats, fmt.Errorf("%s %q: %w", adapter.Name(), key, err)
		}
		item, err := e.client.UpdateItem(ctx, collectionID, existing.ID, fields)
		if err != nil {
			return stats, fmt.Errorf("failed to update %s %q: %w", adapter.Name(), key, err)
		}
		e.log.Info("Updated item",
			zap.String("collection", adapter.Name()), zap.String("key", key),
			zap.String("item_id", item.ID))
		dest.Put(key, item)
		stats.Updated++
	}

	return stats, nil
}

// Prune performs the removals phase: every destination item whose key is
// absent from the source set is deleted. Callers sequence Prune after any
// dependent collections have been updated so no dangling references remain.
func (e *Engine) Prune(ctx context.Context, collectionID string, adapter Adapter, dest *Index) (Stats, error) {
	var stats Stats

	source := make(map[string]struct{})
	for _, key := range adapter.SourceKeys() {
		source[key] = struct{}{}
	}

	for _, key := range dest.Keys() {
		if _, keep := source[key]; keep {
			continue
		}
		item, _ := dest.Get(key)

		if e.dryRun {
			e.log.Info("Would delete item",
				zap.String("collection", adapter.Name()), zap.String("key", key),
				zap.String("item_id", item.ID))
			stats.Deleted++
			continue
		}

		if err := e.client.DeleteItem(ctx, collectionID, item.ID); err != nil {
			return stats, fmt.Errorf("failed to delete %s %q: %w", adapter.Name(), key, err)
		}
		e.log.Info("Deleted item",
			zap.String("collection", adapter.Name()), zap.String("key", key),
			zap.String("item_id", item.ID))
		dest.Delete(key)
		stats.Deleted++
	}

	return stats, nil
}

// Publish publishes every indexed item whose last publish is missing or older
// than its last update. IDs are passed to the client in one call; the client
// batches them as needed.
func (e *Engine) Publish(ctx context.Context, collectionID string, adapter Adapter, dest *Index) (int, error) {
	var ids []string
	for _, item := range dest.Items() {
		if item.NeedsPublish() {
			ids = append(ids, item.ID)
		}
	}
	if len(ids) == 0 {
		return 0, nil
	}

	if e.dryRun {
		e.log.Info("Would publish items",
			zap.String("collection", adapter.Name()), zap.Int("count", len(ids)))
		return len(ids), nil
	}

	if err := e.client.PublishItems(ctx, collectionID, ids); err != nil {
		return 0, fmt.Errorf("failed to publish %s items: %w", adapter.Name(), err)
	}
	e.log.Info("Published items",
		zap.String("collection", adapter.Name()), zap.Int("count", len(ids)))
	return len(ids), nil
}
