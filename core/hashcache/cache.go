package hashcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"
)

const (
	// fileVersion tags the persisted cache file. A mismatch on load discards
	// all entries and forces rehashing; partial migration is never attempted.
	fileVersion = 2

	// maxConcurrentFetches bounds simultaneous image downloads.
	maxConcurrentFetches = 20

	// flushThreshold forces a save after this many newly computed digests.
	flushThreshold = 30
)

// Cache memoizes the SHA-256 digest of image bytes by URL.
//
// Entries persist across runs in a single versioned JSON file. Persistence is
// best-effort: load and save failures are logged as warnings and never abort
// the run.
type Cache struct {
	log  *zap.Logger
	path string
	http *http.Client

	sem *semaphore.Weighted
	sf  singleflight.Group

	mu      sync.Mutex
	entries map[string]string
	unsaved int
}

// cacheFile is the on-disk representation: a version tag plus url/digest pairs.
type cacheFile struct {
	Version int         `json:"version"`
	Entries [][2]string `json:"entries"`
}

// New creates a cache backed by the file at cfg.Path, loading any persisted
// entries whose file version matches the current implementation.
func New(cfg Config, log *zap.Logger) *Cache {
	c := &Cache{
		log:     log,
		path:    cfg.Path,
		http:    &http.Client{Timeout: 120 * time.Second},
		sem:     semaphore.NewWeighted(maxConcurrentFetches),
		entries: make(map[string]string),
	}
	c.load()
	return c
}

// Digest returns the SHA-256 digest (hex) of the bytes behind url, fetching
// and memoizing on a cache miss. The empty URL maps to the empty digest,
// which represents "no image" and only ever equals itself.
func (c *Cache) Digest(ctx context.Context, url string) (string, error) {
	if url == "" {
		return "", nil
	}

	c.mu.Lock()
	if digest, ok := c.entries[url]; ok {
		c.mu.Unlock()
		return digest, nil
	}
	c.mu.Unlock()

	// Collapse concurrent requests for the same URL into one fetch.
	v, err, _ := c.sf.Do(url, func() (any, error) {
		digest, err := c.fetchDigest(ctx, url)
		if err != nil {
			return nil, err
		}
		c.store(url, digest)
		return digest, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// fetchDigest streams the resource and hashes its bytes, bounded by the
// global download semaphore.
func (c *Cache) fetchDigest(ctx context.Context, url string) (string, error) {
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer c.sem.Release(1)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request for %s: %w", url, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch %s: status %d", url, resp.StatusCode)
	}

	h := sha256.New()
	if _, err := io.Copy(h, resp.Body); err != nil {
		return "", fmt.Errorf("failed to read %s: %w", url, err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// store records a freshly computed digest and flushes the file once enough
// new entries have accumulated.
func (c *Cache) store(url, digest string) {
	c.mu.Lock()
	c.entries[url] = digest
	c.unsaved++
	flush := c.unsaved >= flushThreshold
	if flush {
		c.unsaved = 0
	}
	c.mu.Unlock()

	if flush {
		c.Save()
	}
}

// load reads the persisted cache file. Any failure, including a version
// mismatch, leaves the cache empty.
func (c *Cache) load() {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if !os.IsNotExist(err) {
			c.log.Warn("Failed to load hash cache, starting empty",
				zap.String("path", c.path), zap.Error(err))
		}
		return
	}

	var file cacheFile
	if err := json.Unmarshal(data, &file); err != nil {
		c.log.Warn("Failed to parse hash cache, starting empty",
			zap.String("path", c.path), zap.Error(err))
		return
	}

	if file.Version != fileVersion {
		c.log.Warn("Hash cache version mismatch, discarding entries",
			zap.Int("file_version", file.Version), zap.Int("current_version", fileVersion))
		return
	}

	for _, entry := range file.Entries {
		c.entries[entry[0]] = entry[1]
	}
}

// Save writes the full cache to disk. Failures are logged as warnings; the
// cache contents stay valid in memory either way.
func (c *Cache) Save() {
	c.mu.Lock()
	file := cacheFile{Version: fileVersion, Entries: make([][2]string, 0, len(c.entries))}
	for url, digest := range c.entries {
		file.Entries = append(file.Entries, [2]string{url, digest})
	}
	c.mu.Unlock()

	// Deterministic output keeps the file diff-friendly across runs.
	sort.Slice(file.Entries, func(i, j int) bool {
		return file.Entries[i][0] < file.Entries[j][0]
	})

	data, err := json.Marshal(&file)
	if err != nil {
		c.log.Warn("Failed to encode hash cache", zap.Error(err))
		return
	}

	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		c.log.Warn("Failed to save hash cache", zap.String("path", c.path), zap.Error(err))
	}
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
