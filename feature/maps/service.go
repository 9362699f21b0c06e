package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"mapsync/core/cms"
	"mapsync/core/reconcile"
	"mapsync/feature/maps/models"

	"go.uber.org/zap"
)

// Destination collection slugs. The synchronizer discovers collection IDs by
// listing the site's collections and matching these.
const (
	mapsCollectionSlug     = "maps"
	tagsCollectionSlug     = "map-tags"
	terrainsCollectionSlug = "terrain-types"
)

// Syncer orchestrates one synchronization run: gather source data, build
// canonical records, reconcile tags and terrains, resolve references,
// reconcile maps, publish changed items, then prune orphaned vocabulary.
type Syncer struct {
	log      *zap.Logger
	client   cms.Client
	source   Source
	resolver *Resolver
	siteID   string
	dryRun   bool
}

// NewSyncer creates a synchronizer. digester backs image identity checks
// (production code passes the hash cache).
func NewSyncer(log *zap.Logger, client cms.Client, source Source, digester Digester, siteID string, dryRun bool) *Syncer {
	return &Syncer{
		log:      log,
		client:   client,
		source:   source,
		resolver: NewResolver(digester),
		siteID:   siteID,
		dryRun:   dryRun,
	}
}

// Run executes the full pipeline. Any error is terminal; no rollback is
// attempted because a re-run reconciles whatever state this run left behind.
func (s *Syncer) Run(ctx context.Context) error {
	records, builder, err := s.buildRecords(ctx)
	if err != nil {
		return err
	}
	s.log.Info("Built canonical records",
		zap.Int("maps", len(records)),
		zap.Int("tags", builder.Tags().Len()),
		zap.Int("terrains", builder.Terrains().Len()))

	cols, err := s.collections(ctx)
	if err != nil {
		return err
	}

	engine := reconcile.NewEngine(s.client, s.log, s.dryRun)

	tagAdapter := newVocabAdapter("tags", builder.Tags())
	terrainAdapter := newVocabAdapter("terrains", builder.Terrains())

	tagIndex, err := s.loadIndex(ctx, cols[tagsCollectionSlug], tagAdapter)
	if err != nil {
		return err
	}
	terrainIndex, err := s.loadIndex(ctx, cols[terrainsCollectionSlug], terrainAdapter)
	if err != nil {
		return err
	}

	// Vocabulary first: map records store forward references to tag and
	// terrain identifiers, so those must exist before maps are written.
	tagStats, err := engine.Apply(ctx, cols[tagsCollectionSlug], tagAdapter, tagIndex)
	if err != nil {
		return err
	}
	terrainStats, err := engine.Apply(ctx, cols[terrainsCollectionSlug], terrainAdapter, terrainIndex)
	if err != nil {
		return err
	}

	mapAdapter := newMapAdapter(records, tagIndex, terrainIndex, s.resolver, s.dryRun)
	mapIndex, err := s.loadIndex(ctx, cols[mapsCollectionSlug], mapAdapter)
	if err != nil {
		return err
	}

	mapStats, err := engine.Apply(ctx, cols[mapsCollectionSlug], mapAdapter, mapIndex)
	if err != nil {
		return err
	}
	pruneStats, err := engine.Prune(ctx, cols[mapsCollectionSlug], mapAdapter, mapIndex)
	if err != nil {
		return err
	}
	mapStats.Deleted = pruneStats.Deleted

	if _, err := engine.Publish(ctx, cols[mapsCollectionSlug], mapAdapter, mapIndex); err != nil {
		return err
	}
	if _, err := engine.Publish(ctx, cols[tagsCollectionSlug], tagAdapter, tagIndex); err != nil {
		return err
	}
	if _, err := engine.Publish(ctx, cols[terrainsCollectionSlug], terrainAdapter, terrainIndex); err != nil {
		return err
	}

	// Orphaned vocabulary goes last: every map referencing a removed tag or
	// terrain has already been updated above, so nothing dangles.
	tagPrune, err := engine.Prune(ctx, cols[tagsCollectionSlug], tagAdapter, tagIndex)
	if err != nil {
		return err
	}
	tagStats.Deleted = tagPrune.Deleted
	terrainPrune, err := engine.Prune(ctx, cols[terrainsCollectionSlug], terrainAdapter, terrainIndex)
	if err != nil {
		return err
	}
	terrainStats.Deleted = terrainPrune.Deleted

	s.log.Info("Synchronization complete",
		zap.Bool("dry_run", s.dryRun),
		zap.Int("maps_created", mapStats.Created),
		zap.Int("maps_updated", mapStats.Updated),
		zap.Int("maps_deleted", mapStats.Deleted),
		zap.Int("tags_changed", tagStats.Total()),
		zap.Int("terrains_changed", terrainStats.Total()))

	return nil
}

// buildRecords loads the three upstream data sets and builds canonical
// records for every pooled map, accumulating the vocabularies.
func (s *Syncer) buildRecords(ctx context.Context) (map[string]*models.CanonicalMap, *Builder, error) {
	mapList, err := s.source.MapList(ctx)
	if err != nil {
		return nil, nil, err
	}
	cdn, err := s.source.CDNInfo(ctx)
	if err != nil {
		return nil, nil, err
	}
	meta, err := s.source.MapMeta(ctx)
	if err != nil {
		return nil, nil, err
	}

	builder := NewBuilder(cdn, meta)
	records := make(map[string]*models.CanonicalMap)

	rowIDs := make([]string, 0, len(mapList))
	for rowID := range mapList {
		rowIDs = append(rowIDs, rowID)
	}
	sort.Strings(rowIDs)

	for _, rowID := range rowIDs {
		src := mapList[rowID]
		if !src.InPool {
			continue
		}
		record, err := builder.Build(rowID, src)
		if err != nil {
			return nil, nil, err
		}
		records[rowID] = record
	}

	return records, builder, nil
}

// collections discovers the three destination collections by slug.
func (s *Syncer) collections(ctx context.Context) (map[string]string, error) {
	listed, err := s.client.Collections(ctx, s.siteID)
	if err != nil {
		return nil, err
	}

	cols := make(map[string]string)
	for _, col := range listed {
		cols[col.Slug] = col.ID
	}
	for _, slug := range []string{mapsCollectionSlug, tagsCollectionSlug, terrainsCollectionSlug} {
		if cols[slug] == "" {
			return nil, fmt.Errorf("destination site %s has no %q collection", s.siteID, slug)
		}
	}
	return cols, nil
}

// loadIndex lists a collection's items and indexes them by natural key.
func (s *Syncer) loadIndex(ctx context.Context, collectionID string, adapter reconcile.Adapter) (*reconcile.Index, error) {
	items, err := s.client.Items(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	return reconcile.NewIndex(s.log, adapter, items)
}

// DumpData writes the current destination state of all three collections as
// JSON. It performs only listing calls.
func (s *Syncer) DumpData(ctx context.Context, w io.Writer) error {
	cols, err := s.collections(ctx)
	if err != nil {
		return err
	}

	dump := make(map[string][]cms.Item, len(cols))
	for _, slug := range []string{mapsCollectionSlug, tagsCollectionSlug, terrainsCollectionSlug} {
		items, err := s.client.Items(ctx, cols[slug])
		if err != nil {
			return err
		}
		if items == nil {
			items = []cms.Item{}
		}
		dump[slug] = items
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(dump)
}
