package cms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// pageSize is the fixed page size for item listing.
	pageSize = 100

	// publishBatchSize is the maximum number of item IDs per publish call.
	publishBatchSize = 100

	// requestSpacing is the minimum delay between consecutive API calls.
	// The destination enforces a per-minute rate limit; spacing calls out
	// keeps long runs safely under it.
	requestSpacing = 600 * time.Millisecond
)

// Client defines the interface for destination collection operations.
// Every implementation must serialize mutating and listing calls (see
// NewClient for the throttled HTTP implementation).
type Client interface {
	// Collections lists the content collections of a site.
	Collections(ctx context.Context, siteID string) ([]Collection, error)
	// Items lists every item of a collection, paginating until exhausted.
	Items(ctx context.Context, collectionID string) ([]Item, error)
	// CreateItem creates a new item with the given field data.
	CreateItem(ctx context.Context, collectionID string, fields any) (*Item, error)
	// UpdateItem replaces the field data of an existing item.
	UpdateItem(ctx context.Context, collectionID, itemID string, fields any) (*Item, error)
	// DeleteItem removes an item from a collection.
	DeleteItem(ctx context.Context, collectionID, itemID string) error
	// PublishItems publishes items by ID, batching as needed.
	PublishItems(ctx context.Context, collectionID string, itemIDs []string) error
}

// NewClient creates a throttled HTTP client for the destination API.
//
// All calls share one rate limiter and one in-flight slot, so no two API
// requests ever overlap regardless of caller concurrency.
func NewClient(cfg Config) Client {
	return &httpClient{
		cfg:     cfg,
		http:    &http.Client{Timeout: 60 * time.Second},
		limiter: rate.NewLimiter(rate.Every(requestSpacing), 1),
	}
}

type httpClient struct {
	cfg     Config
	http    *http.Client
	limiter *rate.Limiter
	mu      sync.Mutex
}

// apiError is the structured error body returned by the destination system.
type apiError struct {
	Message string   `json:"message"`
	Code    string   `json:"code"`
	Details []string `json:"details"`
}

func (c *httpClient) Collections(ctx context.Context, siteID string) ([]Collection, error) {
	var out struct {
		Collections []Collection `json:"collections"`
	}
	path := fmt.Sprintf("/sites/%s/collections", url.PathEscape(siteID))
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Collections, nil
}

func (c *httpClient) Items(ctx context.Context, collectionID string) ([]Item, error) {
	var items []Item
	for offset := 0; ; offset += pageSize {
		var out struct {
			Items []Item `json:"items"`
		}
		path := fmt.Sprintf("/collections/%s/items?limit=%d&offset=%d",
			url.PathEscape(collectionID), pageSize, offset)
		if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
			return nil, err
		}
		if len(out.Items) == 0 {
			return items, nil
		}
		items = append(items, out.Items...)
	}
}

func (c *httpClient) CreateItem(ctx context.Context, collectionID string, fields any) (*Item, error) {
	body := map[string]any{"fieldData": fields}
	var item Item
	path := fmt.Sprintf("/collections/%s/items", url.PathEscape(collectionID))
	if err := c.do(ctx, http.MethodPost, path, body, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *httpClient) UpdateItem(ctx context.Context, collectionID, itemID string, fields any) (*Item, error) {
	body := map[string]any{"fieldData": fields}
	var item Item
	path := fmt.Sprintf("/collections/%s/items/%s", url.PathEscape(collectionID), url.PathEscape(itemID))
	if err := c.do(ctx, http.MethodPatch, path, body, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *httpClient) DeleteItem(ctx context.Context, collectionID, itemID string) error {
	path := fmt.Sprintf("/collections/%s/items/%s", url.PathEscape(collectionID), url.PathEscape(itemID))
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *httpClient) PublishItems(ctx context.Context, collectionID string, itemIDs []string) error {
	path := fmt.Sprintf("/collections/%s/items/publish", url.PathEscape(collectionID))
	for start := 0; start < len(itemIDs); start += publishBatchSize {
		end := start + publishBatchSize
		if end > len(itemIDs) {
			end = len(itemIDs)
		}
		body := map[string]any{"itemIds": itemIDs[start:end]}
		if err := c.do(ctx, http.MethodPost, path, body, nil); err != nil {
			return err
		}
	}
	return nil
}

// do performs one API call under the global throttle and decodes the response.
func (c *httpClient) do(ctx context.Context, method, path string, body, out any) error {
	// One in-flight call at a time; the limiter enforces spacing between calls.
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(method, path, resp)
	}

	if out == nil {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: failed to decode response: %w", method, path, err)
	}
	return nil
}

// decodeAPIError turns a non-2xx response into an error carrying the
// destination's structured error body when one is present.
func decodeAPIError(method, path string, resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))

	var apiErr apiError
	if err := json.Unmarshal(data, &apiErr); err == nil && apiErr.Message != "" {
		detail := apiErr.Message
		if len(apiErr.Details) > 0 {
			detail += ": " + strings.Join(apiErr.Details, "; ")
		}
		return fmt.Errorf("%s %s: status %d (%s) %s", method, path, resp.StatusCode, apiErr.Code, detail)
	}

	return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, strconv.Quote(string(data)))
}
