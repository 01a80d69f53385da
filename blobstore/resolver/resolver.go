// Package resolver maps location URIs to a blob store and a blob name.
//
// Supported forms:
//
//	points.csv, /data/points.csv.zst, file:///data/points.csv
//	s3://bucket/prefix/points.csv
//	minio://bucket/prefix/points.csv
//	mem://points.csv
package resolver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/hupe1980/pointsearch/blobstore"
	"github.com/hupe1980/pointsearch/blobstore/minio"
	"github.com/hupe1980/pointsearch/blobstore/s3"
)

// ErrInvalidURI is returned for URIs that name no bucket or blob.
var ErrInvalidURI = errors.New("resolver: invalid location")

// ErrUnsupportedScheme is returned for URI schemes without a backend.
var ErrUnsupportedScheme = errors.New("resolver: unsupported scheme")

// Location is a resolved blob.
type Location struct {
	Store blobstore.BlobStore
	Name  string
}

// Options configures Resolve.
type Options struct {
	// Memory backs mem:// URIs. A fresh store is used when nil.
	Memory *blobstore.MemoryStore

	// Getenv reads MinIO settings. Defaults to os.Getenv.
	Getenv func(string) string

	// LoadAWSConfig loads the configuration for s3:// URIs.
	// Defaults to config.LoadDefaultConfig.
	LoadAWSConfig func(ctx context.Context) (aws.Config, error)
}

// Resolve maps uri to a store and the blob name within it.
func Resolve(ctx context.Context, uri string, optFns ...func(*Options)) (Location, error) {
	opts := Options{
		Getenv: os.Getenv,
		LoadAWSConfig: func(ctx context.Context) (aws.Config, error) {
			return config.LoadDefaultConfig(ctx)
		},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	if uri == "" {
		return Location{}, ErrInvalidURI
	}

	scheme, rest, ok := strings.Cut(uri, "://")
	if !ok {
		return resolveLocal(uri)
	}

	switch strings.ToLower(scheme) {
	case "file":
		return resolveLocal(rest)
	case "mem":
		if rest == "" {
			return Location{}, fmt.Errorf("%w: %q", ErrInvalidURI, uri)
		}
		store := opts.Memory
		if store == nil {
			store = blobstore.NewMemoryStore()
		}
		return Location{Store: store, Name: rest}, nil
	case "s3":
		bucket, prefix, name, err := splitBucket(uri, rest)
		if err != nil {
			return Location{}, err
		}
		cfg, err := opts.LoadAWSConfig(ctx)
		if err != nil {
			return Location{}, fmt.Errorf("resolver: load aws config: %w", err)
		}
		return Location{Store: s3.NewStore(awss3.NewFromConfig(cfg), bucket, prefix), Name: name}, nil
	case "minio":
		bucket, prefix, name, err := splitBucket(uri, rest)
		if err != nil {
			return Location{}, err
		}
		client, err := minio.NewClient(minioConfig(opts.Getenv))
		if err != nil {
			return Location{}, fmt.Errorf("resolver: minio client: %w", err)
		}
		return Location{Store: minio.NewStore(client, bucket, prefix), Name: name}, nil
	default:
		return Location{}, fmt.Errorf("%w: %q", ErrUnsupportedScheme, scheme)
	}
}

func resolveLocal(p string) (Location, error) {
	if strings.HasSuffix(p, "/") || strings.HasSuffix(p, string(filepath.Separator)) {
		return Location{}, fmt.Errorf("%w: %q is a directory", ErrInvalidURI, p)
	}
	dir, name := filepath.Split(filepath.Clean(p))
	if dir == "" {
		dir = "."
	}
	return Location{Store: blobstore.NewLocalStore(dir), Name: name}, nil
}

// splitBucket splits "bucket/a/b/name" into bucket, "a/b" and "name".
func splitBucket(uri, rest string) (bucket, prefix, name string, err error) {
	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" || strings.HasSuffix(key, "/") {
		return "", "", "", fmt.Errorf("%w: %q", ErrInvalidURI, uri)
	}
	prefix, name = path.Split(key)
	return bucket, strings.TrimSuffix(prefix, "/"), name, nil
}

func minioConfig(getenv func(string) string) minio.Config {
	cfg := minio.Config{
		Endpoint:  getenv("MINIO_ENDPOINT"),
		AccessKey: getenv("MINIO_ACCESS_KEY"),
		SecretKey: getenv("MINIO_SECRET_KEY"),
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = "localhost:9000"
	}
	cfg.Secure, _ = strconv.ParseBool(getenv("MINIO_SECURE"))
	return cfg
}
