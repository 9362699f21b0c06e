package cms

import (
	"encoding/json"
	"time"
)

// Collection describes one content collection of the destination site.
type Collection struct {
	// ID is the destination identifier of the collection.
	ID string `json:"id"`
	// DisplayName is the human-facing collection name.
	DisplayName string `json:"displayName"`
	// Slug is the URL-safe natural key of the collection.
	Slug string `json:"slug"`
}

// Item is one record of a destination collection.
//
// FieldData carries the collection-specific fields as raw JSON; callers decode
// it into their own field shape (see feature/maps models).
type Item struct {
	// ID is the destination identifier of the item.
	ID string `json:"id"`
	// LastPublished is when the item was last published, nil if never.
	LastPublished *time.Time `json:"lastPublished"`
	// LastUpdated is when the item was last created or updated.
	LastUpdated *time.Time `json:"lastUpdated"`
	// IsDraft indicates the item has never left draft state.
	IsDraft bool `json:"isDraft"`
	// FieldData holds the collection-specific fields.
	FieldData json.RawMessage `json:"fieldData"`
}

// NeedsPublish reports whether the item's live copy is stale: it has never
// been published, or was updated after its last publish.
func (i *Item) NeedsPublish() bool {
	if i.LastUpdated == nil {
		return i.LastPublished == nil
	}
	if i.LastPublished == nil {
		return true
	}
	return i.LastPublished.Before(*i.LastUpdated)
}

// Image is an image field value on a destination item.
//
// A value with a FileID refers to an asset the destination already hosts; a
// value carrying only a URL instructs the destination to fetch and host the
// resource at that URL (an upload/replace).
type Image struct {
	// FileID is the destination asset handle, empty for not-yet-uploaded URLs.
	FileID string `json:"fileId,omitempty"`
	// URL is the location of the image bytes.
	URL string `json:"url"`
	// Alt is the alternative text for the image.
	Alt string `json:"alt,omitempty"`
}
