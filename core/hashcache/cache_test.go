package hashcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCache(t *testing.T) (*Cache, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hashes.json")
	return New(Config{Path: path}, zap.NewNop()), path
}

func TestCache_Digest(t *testing.T) {
	body := []byte("minimap bytes")
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write(body)
	}))
	defer srv.Close()

	cache, _ := newTestCache(t)

	digest, err := cache.Digest(context.Background(), srv.URL+"/img.webp")
	require.NoError(t, err)

	sum := sha256.Sum256(body)
	assert.Equal(t, hex.EncodeToString(sum[:]), digest)

	// Second lookup is served from memory.
	again, err := cache.Digest(context.Background(), srv.URL+"/img.webp")
	require.NoError(t, err)
	assert.Equal(t, digest, again)
	assert.Equal(t, int64(1), hits.Load())
	assert.Equal(t, 1, cache.Len())
}

func TestCache_Digest_EmptyURL(t *testing.T) {
	cache, _ := newTestCache(t)

	digest, err := cache.Digest(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, digest)
	assert.Zero(t, cache.Len())
}

func TestCache_Digest_FetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	cache, _ := newTestCache(t)

	_, err := cache.Digest(context.Background(), srv.URL+"/missing.webp")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
	assert.Zero(t, cache.Len(), "failed fetches must not be cached")
}

func TestCache_SaveAndReload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(r.URL.Path))
	}))
	defer srv.Close()

	cache, path := newTestCache(t)
	first, err := cache.Digest(context.Background(), srv.URL+"/a")
	require.NoError(t, err)
	_, err = cache.Digest(context.Background(), srv.URL+"/b")
	require.NoError(t, err)
	cache.Save()

	// The persisted file is versioned with sorted url/digest pairs.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var file cacheFile
	require.NoError(t, json.Unmarshal(data, &file))
	assert.Equal(t, fileVersion, file.Version)
	require.Len(t, file.Entries, 2)
	assert.Equal(t, srv.URL+"/a", file.Entries[0][0])
	assert.Equal(t, srv.URL+"/b", file.Entries[1][0])

	srv.Close()

	// A fresh cache serves the persisted digests without the server.
	reloaded := New(Config{Path: path}, zap.NewNop())
	assert.Equal(t, 2, reloaded.Len())
	digest, err := reloaded.Digest(context.Background(), srv.URL+"/a")
	require.NoError(t, err)
	assert.Equal(t, first, digest)
}

func TestCache_Load_VersionMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hashes.json")
	stale := cacheFile{Version: fileVersion - 1, Entries: [][2]string{{"https://img/a", "deadbeef"}}}
	data, err := json.Marshal(&stale)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cache := New(Config{Path: path}, zap.NewNop())
	assert.Zero(t, cache.Len(), "entries from another file version must be discarded")
}

func TestCache_Load_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hashes.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	cache := New(Config{Path: path}, zap.NewNop())
	assert.Zero(t, cache.Len())
}

func TestCache_FlushesAtThreshold(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(r.URL.Path))
	}))
	defer srv.Close()

	cache, path := newTestCache(t)

	// One short of the threshold: nothing persisted yet.
	for i := 0; i < flushThreshold-1; i++ {
		_, err := cache.Digest(context.Background(), fmt.Sprintf("%s/img-%02d", srv.URL, i))
		require.NoError(t, err)
	}
	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err), "cache must not flush before the threshold")

	// The threshold digest triggers a flush without an explicit Save.
	_, err = cache.Digest(context.Background(), fmt.Sprintf("%s/img-%02d", srv.URL, flushThreshold-1))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var file cacheFile
	require.NoError(t, json.Unmarshal(data, &file))
	assert.Equal(t, fileVersion, file.Version)
	assert.Len(t, file.Entries, flushThreshold)
}
