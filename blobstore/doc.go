// Package blobstore abstracts where point files, centroid files and query
// results live.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem, memory-mapped reads
//   - MemoryStore: in-process map, for tests and pipelines
//   - s3.Store: Amazon S3 with range reads and managed uploads
//   - minio.Store: MinIO and other S3-compatible services
//
// The resolver subpackage maps URIs (file paths, s3://, minio://, mem://)
// to a store and blob name.
//
// # Custom Implementations
//
//	type BlobStore interface {
//	    Open(ctx, name) (Blob, error)      // Open for reading
//	    Put(ctx, name, data) error         // Atomic write
//	}
//
// Blobs are read either with ReadAt or as a stream via ReadRange, which lets
// remote backends fetch a single ranged object instead of many small reads.
package blobstore
