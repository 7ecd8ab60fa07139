package ingestion

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"github.com/wakala/banksync/internal/domain"
)

const snapshotExt = ".json"

// Bucket is a flat store of named snapshot documents.
type Bucket interface {
	Read(ctx context.Context, name string) ([]byte, error)
	List(ctx context.Context, prefix string) ([]string, error)
}

// ObjectSource serves snapshots stored as "<prefix><account id>.json".
type ObjectSource struct {
	bucket Bucket
	prefix string
}

func NewObjectSource(bucket Bucket, prefix string) *ObjectSource {
	return &ObjectSource{bucket: bucket, prefix: prefix}
}

// NewDirSource serves snapshots from files in dir.
func NewDirSource(dir string) *ObjectSource {
	return NewObjectSource(dirBucket(dir), "")
}

// NewGCSSource serves snapshots from a Cloud Storage bucket.
func NewGCSSource(client *storage.Client, bucket, prefix string) *ObjectSource {
	return NewObjectSource(&gcsBucket{handle: client.Bucket(bucket)}, prefix)
}

func (s *ObjectSource) Fetch(ctx context.Context, accountID string) (*domain.Snapshot, error) {
	if accountID == "" || strings.ContainsAny(accountID, `/\`) {
		return nil, fmt.Errorf("%w: %q", ErrSnapshotNotFound, accountID)
	}
	data, err := s.bucket.Read(ctx, s.prefix+accountID+snapshotExt)
	if err != nil {
		return nil, err
	}
	snap, err := DecodeSnapshot(data)
	if err != nil {
		return nil, fmt.Errorf("account %s: %w", accountID, err)
	}
	return snap, nil
}

func (s *ObjectSource) ListAccounts(ctx context.Context) ([]string, error) {
	names, err := s.bucket.List(ctx, s.prefix)
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, name := range names {
		rest := strings.TrimPrefix(name, s.prefix)
		if rest == name && s.prefix != "" {
			continue
		}
		if !strings.HasSuffix(rest, snapshotExt) || strings.Contains(rest, "/") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(rest, snapshotExt))
	}
	sort.Strings(ids)
	return ids, nil
}

type dirBucket string

func (d dirBucket) Read(_ context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(string(d), name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

func (d dirBucket) List(_ context.Context, prefix string) ([]string, error) {
	entries, err := os.ReadDir(string(d))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", string(d), err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), prefix) {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

type gcsBucket struct {
	handle *storage.BucketHandle
}

func (b *gcsBucket) Read(ctx context.Context, name string) ([]byte, error) {
	r, err := b.handle.Object(name).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("open object %s: %w", name, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read object %s: %w", name, err)
	}
	return data, nil
}

func (b *gcsBucket) List(ctx context.Context, prefix string) ([]string, error) {
	it := b.handle.Objects(ctx, &storage.Query{Prefix: prefix})
	var names []string
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list objects: %w", err)
		}
		names = append(names, attrs.Name)
	}
	return names, nil
}
