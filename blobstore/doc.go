// Package blobstore provides storage abstraction for archived web
// snapshots.
//
// Store is the interface for reading and writing snapshot blobs.
// Implementations must be safe for concurrent use. Snapshots are written
// and read as sequential streams, so a blob is just a named byte stream;
// there is no random access in the contract.
//
// # Built-in Implementations
//
//   - MemoryStore: in-memory, for tests and ephemeral use
//   - LocalStore: local filesystem with atomic writes
//   - s3.Store: Amazon S3 with streaming parallel uploads
//   - minio.Store: MinIO and other S3-compatible endpoints
package blobstore
