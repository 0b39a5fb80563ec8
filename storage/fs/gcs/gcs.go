// Copyright 2026 The watorperf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gcs implements the fs.FS interface using Google Cloud
// Storage.
package gcs

import (
	"cloud.google.com/go/storage"
	"golang.org/x/net/context"
	"google.golang.org/api/option"

	"github.com/watorsim/watorperf/storage/fs"
)

// impl is an fs.FS backed by Google Cloud Storage.
type impl struct {
	bucket *storage.BucketHandle
}

// NewFS constructs an FS that writes to the provided bucket.
func NewFS(ctx context.Context, bucketName string, opts ...option.ClientOption) (fs.FS, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &impl{client.Bucket(bucketName)}, nil
}

func (f *impl) NewWriter(ctx context.Context, name string, metadata map[string]string) (fs.Writer, error) {
	w := f.bucket.Object(name).NewWriter(ctx)
	w.ContentType = "text/plain; charset=utf-8"
	if len(metadata) > 0 {
		w.Metadata = make(map[string]string)
		for k, v := range metadata {
			w.Metadata[k] = v
		}
	}
	return w, nil
}
