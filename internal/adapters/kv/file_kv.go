package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"map-route-service/internal/platform/obs"
	"map-route-service/internal/ports"
	"maps"
	"os"
	"path/filepath"
	"sync"
)

// FileKV is a key-value store kept as one JSON object on disk.
// Every write replaces the file through a temp file and a rename, so readers
// never see a partially written document.
type FileKV struct {
	mu    sync.Mutex
	path  string
	quota int64
}

func NewFileKV(path string, quota int64) (*FileKV, error) {
	if path == "" {
		return nil, errors.New("file kv: path must not be empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("file kv: create dir for %q: %w", path, err)
	}
	return &FileKV{path: path, quota: quota}, nil
}

func (f *FileKV) Get(ctx context.Context, key string) (_ string, _ bool, err error) {
	defer obs.Time(ctx, "kv.file.Get")(&err)

	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.readLocked()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

func (f *FileKV) Set(ctx context.Context, key, value string) error {
	return f.Update(ctx, key, func(string, bool) (string, error) { return value, nil })
}

// Update runs fn and writes its result while holding the file lock.
func (f *FileKV) Update(ctx context.Context, key string, fn ports.UpdateFunc) (err error) {
	defer obs.Time(ctx, "kv.file.Update")(&err)

	if err := ctx.Err(); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.readLocked()
	if err != nil {
		return err
	}

	current, ok := values[key]
	next, err := fn(current, ok)
	if err != nil {
		return fmt.Errorf("file kv: update %q: %w", key, err)
	}

	updated := maps.Clone(values)
	updated[key] = next
	if err := checkQuota(f.quota, updated); err != nil {
		return fmt.Errorf("file kv: update %q: %w", key, err)
	}

	return f.writeLocked(updated)
}

func (f *FileKV) readLocked() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("file kv: read %q: %w", f.path, err)
	}
	if len(data) == 0 {
		return map[string]string{}, nil
	}

	values := map[string]string{}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("file kv: parse %q: %w", f.path, err)
	}
	return values, nil
}

func (f *FileKV) writeLocked(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("file kv: encode: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".kv-*.tmp")
	if err != nil {
		return fmt.Errorf("file kv: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("file kv: write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("file kv: sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("file kv: close temp file: %w", err)
	}

	if err := os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("file kv: replace %q: %w", f.path, err)
	}
	return nil
}
