// Package s3 keeps uploaded originals in an S3-compatible bucket (AWS S3,
// MinIO) so extracted chunks can be traced back to the exact file.
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/iamshubh29/RAG-Project-CSI/internal/core/ports/driven"
)

// Ensure Archive implements the interface.
var _ driven.Archive = (*Archive)(nil)

// Config holds S3/MinIO client configuration.
type Config struct {
	Endpoint        string // "localhost:9000" for MinIO
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	UseSSL          bool

	// Region skips the bucket location lookup when set.
	Region string
}

// Archive writes originals to one bucket.
type Archive struct {
	client *minio.Client
	bucket string
}

// New creates an archive client. No request is made until the first Put.
func New(cfg Config) (*Archive, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("archive endpoint is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("archive bucket is required")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	return &Archive{client: client, bucket: cfg.Bucket}, nil
}

// EnsureBucket creates the bucket if it doesn't exist.
func (a *Archive) EnsureBucket(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("check bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("create bucket: %w", err)
	}
	return nil
}

// Put uploads data under key and returns its s3:// location.
func (a *Archive) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("put %s: %w", key, err)
	}
	return Location(a.bucket, key), nil
}

// Close is a no-op.
func (a *Archive) Close() error {
	return nil
}

// Key returns the object key for an original: "<document id>/<filename>".
func Key(documentID, filename string) string {
	return path.Join(documentID, path.Base(filename))
}

// Location formats an object location as s3://bucket/key.
func Location(bucket, key string) string {
	return "s3://" + bucket + "/" + key
}
