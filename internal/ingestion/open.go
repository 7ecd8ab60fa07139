package ingestion

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
)

// Open returns a Cloud Storage source when bucket is set and a directory
// source otherwise. The returned close func releases the storage client.
func Open(ctx context.Context, bucket, prefix, dir string) (*ObjectSource, func() error, error) {
	if bucket == "" {
		return NewDirSource(dir), func() error { return nil }, nil
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("create storage client: %w", err)
	}
	return NewGCSSource(client, bucket, prefix), client.Close, nil
}
