package cms

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(srv *httptest.Server) Client {
	return NewClient(Config{Token: "test-token", SiteID: "site1", BaseURL: srv.URL})
}

func TestClient_Items_Paginates(t *testing.T) {
	// Two full pages, then an empty one.
	pages := map[string][]Item{}
	for i := 0; i < 2*pageSize; i++ {
		offset := fmt.Sprintf("%d", (i/pageSize)*pageSize)
		pages[offset] = append(pages[offset], Item{ID: fmt.Sprintf("item-%03d", i)})
	}

	var requests []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		require.Equal(t, "/collections/col1/items", r.URL.Path)
		require.Equal(t, "100", r.URL.Query().Get("limit"))

		offset := r.URL.Query().Get("offset")
		requests = append(requests, offset)
		json.NewEncoder(w).Encode(map[string]any{"items": pages[offset]})
	}))
	defer srv.Close()

	items, err := newTestClient(srv).Items(context.Background(), "col1")
	require.NoError(t, err)
	assert.Len(t, items, 2*pageSize)
	assert.Equal(t, "item-000", items[0].ID)
	assert.Equal(t, []string{"0", "100", "200"}, requests,
		"listing must page until an empty page")
}

func TestClient_PublishItems_Batches(t *testing.T) {
	ids := make([]string, publishBatchSize+50)
	for i := range ids {
		ids[i] = fmt.Sprintf("id-%03d", i)
	}

	var batches [][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/collections/col1/items/publish", r.URL.Path)

		var body struct {
			ItemIDs []string `json:"itemIds"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		batches = append(batches, body.ItemIDs)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	require.NoError(t, newTestClient(srv).PublishItems(context.Background(), "col1", ids))
	require.Len(t, batches, 2)
	assert.Len(t, batches[0], publishBatchSize)
	assert.Len(t, batches[1], 50)
	assert.Equal(t, "id-000", batches[0][0])
	assert.Equal(t, fmt.Sprintf("id-%03d", publishBatchSize), batches[1][0])
}

func TestClient_CreateItem_WrapsFieldData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]json.RawMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Contains(t, body, "fieldData")

		json.NewEncoder(w).Encode(Item{ID: "new-item", FieldData: body["fieldData"]})
	}))
	defer srv.Close()

	item, err := newTestClient(srv).CreateItem(context.Background(), "col1",
		map[string]string{"slug": "supreme-isthmus"})
	require.NoError(t, err)
	assert.Equal(t, "new-item", item.ID)
	assert.JSONEq(t, `{"slug":"supreme-isthmus"}`, string(item.FieldData))
}

func TestClient_UpdateItem_UsesPatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/collections/col1/items/item1", r.URL.Path)
		json.NewEncoder(w).Encode(Item{ID: "item1"})
	}))
	defer srv.Close()

	item, err := newTestClient(srv).UpdateItem(context.Background(), "col1", "item1",
		map[string]string{"slug": "supreme-isthmus"})
	require.NoError(t, err)
	assert.Equal(t, "item1", item.ID)
}

func TestClient_StructuredAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(apiError{
			Message: "Validation failure",
			Code:    "validation_error",
			Details: []string{"slug already in use"},
		})
	}))
	defer srv.Close()

	err := newTestClient(srv).DeleteItem(context.Background(), "col1", "item1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
	assert.Contains(t, err.Error(), "validation_error")
	assert.Contains(t, err.Error(), "slug already in use")
}

func TestClient_UnstructuredAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Collections(context.Background(), "site1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
	assert.Contains(t, err.Error(), "upstream exploded")
}

func TestItem_NeedsPublish(t *testing.T) {
	base := Item{}
	assert.False(t, base.NeedsPublish(), "item with no timestamps has nothing to publish")

	updated := testTime(t, "2026-03-01T10:00:00Z")
	published := testTime(t, "2026-03-01T12:00:00Z")

	never := Item{LastUpdated: &updated}
	assert.True(t, never.NeedsPublish(), "updated but never published")

	fresh := Item{LastUpdated: &updated, LastPublished: &published}
	assert.False(t, fresh.NeedsPublish())

	stale := Item{LastUpdated: &published, LastPublished: &updated}
	assert.True(t, stale.NeedsPublish())
}

func testTime(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return ts
}

// Calls issued concurrently are serialized and spaced out; the destination
// must never see overlapping or back-to-back requests.
func TestClient_ThrottlesAndSerializesCalls(t *testing.T) {
	var (
		mu       sync.Mutex
		inFlight int
		overlap  bool
		arrivals []time.Time
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		inFlight++
		if inFlight > 1 {
			overlap = true
		}
		arrivals = append(arrivals, time.Now())
		mu.Unlock()

		time.Sleep(20 * time.Millisecond)

		mu.Lock()
		inFlight--
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := newTestClient(srv)

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, client.DeleteItem(context.Background(), "col1", fmt.Sprintf("item-%d", i)))
		}(i)
	}
	wg.Wait()

	require.Len(t, arrivals, 3)
	assert.False(t, overlap, "no two requests may be in flight at once")
	for i := 1; i < len(arrivals); i++ {
		gap := arrivals[i].Sub(arrivals[i-1])
		assert.GreaterOrEqual(t, gap, requestSpacing-50*time.Millisecond,
			"consecutive requests must be spaced apart")
	}
}
