// Package storage provides an abstraction layer over the source object store.
//
// It wraps the MinIO Go client to provide a simplified read-only interface for
// fetching the map-pool source objects (map list, CDN info, derived metadata).
// This abstraction supports both AWS S3 and self-hosted MinIO instances.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it
// easier to mock storage interactions for unit testing (see core/storage/mocks).
//
// # Operations
//
//   - BucketExists: Verifies access to the source bucket.
//   - GetObject: Retrieves content as a stream.
//   - ListObjects: Lists objects in a bucket (supports prefix/recursive).
package storage
