// Package s3 provides an Amazon S3 backed blobstore.BlobStore.
//
// Reads use HTTP range requests so a point file can be streamed without a
// local copy. Writes go through the SDK's managed uploader, which switches
// to multipart uploads for large result files.
//
//	cfg, _ := config.LoadDefaultConfig(ctx)
//	store := s3.NewStore(awss3.NewFromConfig(cfg), "my-bucket", "runs/2024-06/")
package s3
