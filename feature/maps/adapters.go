package maps

import (
	"context"
	"fmt"
	"sort"

	"mapsync/core/cms"
	"mapsync/core/reconcile"
	"mapsync/feature/maps/models"
)

// vocabAdapter reconciles a {name, slug} vocabulary collection (tags or
// terrains) against an accumulated vocabulary. Slug is the natural key; the
// display name may change without changing identity.
type vocabAdapter struct {
	name  string
	vocab *Vocabulary
}

func newVocabAdapter(name string, vocab *Vocabulary) *vocabAdapter {
	return &vocabAdapter{name: name, vocab: vocab}
}

func (a *vocabAdapter) Name() string {
	return a.name
}

func (a *vocabAdapter) SourceKeys() []string {
	return a.vocab.Slugs()
}

func (a *vocabAdapter) DestKey(item *cms.Item) (string, error) {
	f, err := decodeTagFields(item)
	if err != nil {
		return "", err
	}
	if f.Slug == "" {
		return "", fmt.Errorf("%s item %s has no slug", a.name, item.ID)
	}
	return f.Slug, nil
}

func (a *vocabAdapter) BuildFields(ctx context.Context, key string, existing *cms.Item) (any, error) {
	return models.TagFields{Name: a.vocab.Name(key), Slug: key}, nil
}

func (a *vocabAdapter) Equal(ctx context.Context, key string, existing *cms.Item) (bool, error) {
	f, err := decodeTagFields(existing)
	if err != nil {
		return false, err
	}
	return f.Slug == key && f.Name == a.vocab.Name(key), nil
}

// mapAdapter reconciles the maps collection against the built canonical
// records, resolving tag and terrain names to destination identifiers
// through the already-reconciled vocabulary indices.
type mapAdapter struct {
	records  map[string]*models.CanonicalMap
	tags     *reconcile.Index
	terrains *reconcile.Index
	resolver *Resolver
	dryRun   bool
}

func newMapAdapter(records map[string]*models.CanonicalMap, tags, terrains *reconcile.Index, rv *Resolver, dryRun bool) *mapAdapter {
	return &mapAdapter{records: records, tags: tags, terrains: terrains, resolver: rv, dryRun: dryRun}
}

func (a *mapAdapter) Name() string {
	return "maps"
}

func (a *mapAdapter) SourceKeys() []string {
	keys := make([]string, 0, len(a.records))
	for key := range a.records {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (a *mapAdapter) DestKey(item *cms.Item) (string, error) {
	f, err := decodeMapFields(item)
	if err != nil {
		return "", err
	}
	if f.RowID == "" {
		return "", fmt.Errorf("map item %s has no row id", item.ID)
	}
	return f.RowID, nil
}

func (a *mapAdapter) BuildFields(ctx context.Context, key string, existing *cms.Item) (any, error) {
	c := a.records[key]
	refs, err := a.resolveRefs(c)
	if err != nil {
		return nil, err
	}

	var exFields *models.MapFields
	if existing != nil {
		if exFields, err = decodeMapFields(existing); err != nil {
			return nil, err
		}
	}

	return buildMapFields(ctx, a.resolver, c, refs, exFields)
}

func (a *mapAdapter) Equal(ctx context.Context, key string, existing *cms.Item) (bool, error) {
	c := a.records[key]
	refs, err := a.resolveRefs(c)
	if err != nil {
		return false, err
	}

	exFields, err := decodeMapFields(existing)
	if err != nil {
		return false, err
	}

	return mapEqual(ctx, a.resolver, c, refs, exFields)
}

// resolveRefs maps the canonical tag and terrain name lists to destination
// item identifiers, preserving order. A reference that does not exist in the
// destination is fatal, except in dry-run where creates were skipped: there
// the name passes through unresolved.
func (a *mapAdapter) resolveRefs(c *models.CanonicalMap) (mapRefs, error) {
	var refs mapRefs

	for _, name := range c.Tags {
		id, err := a.resolveRef(a.tags, "tag", name)
		if err != nil {
			return refs, err
		}
		refs.tags = append(refs.tags, id)
	}
	for _, name := range c.Terrains {
		id, err := a.resolveRef(a.terrains, "terrain", name)
		if err != nil {
			return refs, err
		}
		refs.terrains = append(refs.terrains, id)
	}

	return refs, nil
}

func (a *mapAdapter) resolveRef(index *reconcile.Index, kind, name string) (string, error) {
	item, ok := index.Get(Slugify(name))
	if ok {
		return item.ID, nil
	}
	if a.dryRun {
		return name, nil
	}
	return "", fmt.Errorf("%s %q not found in destination", kind, name)
}
