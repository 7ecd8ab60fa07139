package ingestion

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDirSource(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("acc-1.json", sampleJSON)
	write("acc-2.json", sampleJSON)
	write("notes.txt", "ignored")
	if err := os.Mkdir(filepath.Join(dir, "nested.json"), 0o755); err != nil {
		t.Fatal(err)
	}

	src := NewDirSource(dir)
	ctx := context.Background()

	ids, err := src.ListAccounts(ctx)
	if err != nil {
		t.Fatalf("ListAccounts: %v", err)
	}
	if diff := cmp.Diff([]string{"acc-1", "acc-2"}, ids); diff != "" {
		t.Errorf("ids (-want +got):\n%s", diff)
	}

	snap, err := src.Fetch(ctx, "acc-1")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if snap.Account.ID != "acc-1" || snap.PayloadHash == "" {
		t.Errorf("snapshot = %+v", snap.Account)
	}

	for _, id := range []string{"missing", "", "../acc-1"} {
		if _, err := src.Fetch(ctx, id); !errors.Is(err, ErrSnapshotNotFound) {
			t.Errorf("Fetch(%q) err = %v", id, err)
		}
	}

	write("broken.json", "{")
	if _, err := src.Fetch(ctx, "broken"); !errors.Is(err, ErrInvalidSnapshot) {
		t.Errorf("Fetch(broken) err = %v", err)
	}
}

type memoryBucket struct {
	objects map[string]string
	listErr error
}

func (m *memoryBucket) Read(_ context.Context, name string) ([]byte, error) {
	body, ok := m.objects[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, name)
	}
	return []byte(body), nil
}

func (m *memoryBucket) List(_ context.Context, prefix string) ([]string, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var names []string
	for name := range m.objects {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	return names, nil
}

func TestObjectSourcePrefix(t *testing.T) {
	bucket := &memoryBucket{objects: map[string]string{
		"snapshots/b.json":         sampleJSON,
		"snapshots/a.json":         sampleJSON,
		"snapshots/archive/c.json": sampleJSON,
		"other/d.json":             sampleJSON,
	}}
	src := NewObjectSource(bucket, "snapshots/")
	ctx := context.Background()

	ids, err := src.ListAccounts(ctx)
	if err != nil {
		t.Fatalf("ListAccounts: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, ids); diff != "" {
		t.Errorf("ids (-want +got):\n%s", diff)
	}
	if _, err := src.Fetch(ctx, "a"); err != nil {
		t.Errorf("Fetch(a): %v", err)
	}
	if _, err := src.Fetch(ctx, "d"); !errors.Is(err, ErrSnapshotNotFound) {
		t.Errorf("Fetch(d) err = %v", err)
	}

	bucket.listErr = errors.New("permission denied")
	if _, err := src.ListAccounts(ctx); err == nil {
		t.Error("expected list error")
	}
}
