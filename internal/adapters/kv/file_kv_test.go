package kv

import (
	"context"
	"errors"
	"map-route-service/internal/domain"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFileKV(t *testing.T, quota int64) (*FileKV, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "storage.json")
	kv, err := NewFileKV(path, quota)
	require.NoError(t, err)
	return kv, path
}

func TestFileKVGetMissing(t *testing.T) {
	kv, _ := newTestFileKV(t, 0)

	v, ok, err := kv.Get(context.Background(), "savedRoutes")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestFileKVSetPersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	kv, path := newTestFileKV(t, 0)

	require.NoError(t, kv.Set(ctx, "mapTheme", "dark"))
	require.NoError(t, kv.Set(ctx, "mapDefaultZoom", "15"))

	reopened, err := NewFileKV(path, 0)
	require.NoError(t, err)

	v, ok, err := reopened.Get(ctx, "mapTheme")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "dark", v)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileKVUpdateErrorLeavesValue(t *testing.T) {
	ctx := context.Background()
	kv, _ := newTestFileKV(t, 0)
	require.NoError(t, kv.Set(ctx, "k", "v1"))

	boom := errors.New("boom")
	err := kv.Update(ctx, "k", func(string, bool) (string, error) { return "", boom })
	require.ErrorIs(t, err, boom)

	v, _, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v1", v)
}

func TestFileKVQuota(t *testing.T) {
	ctx := context.Background()
	kv, _ := newTestFileKV(t, 32)

	require.NoError(t, kv.Set(ctx, "a", "small"))

	err := kv.Set(ctx, "b", strings.Repeat("x", 64))
	require.ErrorIs(t, err, domain.ErrStorageFull)

	_, ok, err := kv.Get(ctx, "b")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileKVConcurrentUpdates(t *testing.T) {
	ctx := context.Background()
	kv, _ := newTestFileKV(t, 0)

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := kv.Update(ctx, "log", func(cur string, _ bool) (string, error) {
				return cur + "x", nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	v, _, err := kv.Get(ctx, "log")
	require.NoError(t, err)
	assert.Len(t, v, 20)
}

func TestFileKVCorruptFile(t *testing.T) {
	kv, path := newTestFileKV(t, 0)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, _, err := kv.Get(context.Background(), "k")
	require.Error(t, err)
}
