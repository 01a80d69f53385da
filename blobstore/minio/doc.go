// Package minio provides a blobstore.BlobStore for MinIO and other
// S3-compatible object stores, built on minio-go.
package minio
