// Package cms provides the gateway to the destination content collections.
//
// The destination is a hosted CMS whose collections (maps, tags, terrains)
// render the public site. It enforces strict API rate limits, so every call,
// mutating or listing, funnels through a single throttle: one in-flight
// request with a fixed minimum spacing between requests.
//
// # Client Interface
//
// The Client interface abstracts the remote system, making it easy to mock in
// unit tests (see core/cms/mocks). Listing paginates with a fixed page size
// until an empty page; publishing batches item IDs per call.
//
// # Errors
//
// No retries are performed. A failed call surfaces the destination's
// structured error body in the returned error and terminates the run; the
// pipeline is idempotent, so re-running is the recovery mechanism.
package cms
