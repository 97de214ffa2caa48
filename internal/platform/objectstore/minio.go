// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package objectstore provides access to S3-compatible object storage.
//
// The importer archives every CSV file it loads here so an import can be
// traced back to the exact bytes that produced it.
package objectstore

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const bucketCheckTimeout = 5 * time.Second

// MinioStore stores objects in a single MinIO/S3 bucket.
type MinioStore struct {
	client *minio.Client
	bucket string
}

// Options configures [NewMinioStore].
type Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// NewMinioStore connects to the endpoint and ensures the bucket exists.
func NewMinioStore(ctx context.Context, options Options, logger *slog.Logger) (*MinioStore, error) {
	client, err := minio.New(options.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(options.AccessKey, options.SecretKey, ""),
		Secure: options.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("objectstore: init client: %w", err)
	}

	checkCtx, cancel := context.WithTimeout(ctx, bucketCheckTimeout)
	defer cancel()

	exists, err := client.BucketExists(checkCtx, options.Bucket)
	if err != nil {
		return nil, fmt.Errorf("objectstore: check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(checkCtx, options.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("objectstore: create bucket: %w", err)
		}
		logger.Info("objectstore_bucket_created", slog.String("bucket", options.Bucket))
	}

	return &MinioStore{client: client, bucket: options.Bucket}, nil
}

// Put uploads an object.
func (store *MinioStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	_, err := store.client.PutObject(ctx, store.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("objectstore: put %s: %w", key, err)
	}
	return nil
}

// Delete removes an object.
func (store *MinioStore) Delete(ctx context.Context, key string) error {
	if err := store.client.RemoveObject(ctx, store.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("objectstore: delete %s: %w", key, err)
	}
	return nil
}

// Bucket returns the bucket objects are written to.
func (store *MinioStore) Bucket() string {
	return store.bucket
}
