package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"mapsync/core/storage"
	"mapsync/feature/maps/models"

	"github.com/minio/minio-go/v7"
	"gopkg.in/yaml.v3"
)

// Source provides the read-only upstream data sets the synchronizer consumes.
// All three are produced out-of-band (document-database export, archive
// extraction, CDN indexing) and are keyed by stable identifiers.
type Source interface {
	// MapList returns the schema-shaped source rows keyed by row id.
	MapList(ctx context.Context) (map[string]models.SourceMap, error)
	// CDNInfo returns the download mirror records keyed by spring name.
	CDNInfo(ctx context.Context) (map[string]models.CDNInfo, error)
	// MapMeta returns the per-map derived metadata keyed by row id.
	MapMeta(ctx context.Context) (map[string]models.MapMeta, error)
}

// storageSource reads the source objects from the configured bucket.
type storageSource struct {
	client storage.Client
	cfg    storage.Config
}

// NewStorageSource creates a Source over the configured storage bucket.
func NewStorageSource(client storage.Client, cfg storage.Config) Source {
	return &storageSource{client: client, cfg: cfg}
}

func (s *storageSource) MapList(ctx context.Context) (map[string]models.SourceMap, error) {
	data, err := s.read(ctx, s.cfg.MapListObject)
	if err != nil {
		return nil, err
	}
	var maps map[string]models.SourceMap
	if err := yaml.Unmarshal(data, &maps); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.cfg.MapListObject, err)
	}
	return maps, nil
}

func (s *storageSource) CDNInfo(ctx context.Context) (map[string]models.CDNInfo, error) {
	data, err := s.read(ctx, s.cfg.CDNInfoObject)
	if err != nil {
		return nil, err
	}
	var cdn map[string]models.CDNInfo
	if err := json.Unmarshal(data, &cdn); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.cfg.CDNInfoObject, err)
	}
	return cdn, nil
}

func (s *storageSource) MapMeta(ctx context.Context) (map[string]models.MapMeta, error) {
	data, err := s.read(ctx, s.cfg.MetaObject)
	if err != nil {
		return nil, err
	}
	var meta map[string]models.MapMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.cfg.MetaObject, err)
	}
	return meta, nil
}

func (s *storageSource) read(ctx context.Context, objectName string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.cfg.Bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", objectName, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", objectName, err)
	}
	return data, nil
}
