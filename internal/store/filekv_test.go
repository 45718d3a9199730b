package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFileKV_RoundTrip(t *testing.T) {
	kv, err := NewFileKV(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	ctx := context.Background()

	_, found, err := kv.Get(ctx, "patients")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, kv.Set(ctx, "patients", []byte(`[{"id":"p-1"}]`)))

	data, found, err := kv.Get(ctx, "patients")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, `[{"id":"p-1"}]`, string(data))

	require.NoError(t, kv.Set(ctx, "patients", []byte(`[]`)))
	data, _, err = kv.Get(ctx, "patients")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))
}

func TestFileKV_Delete(t *testing.T) {
	kv, err := NewFileKV(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "patients", []byte("x")))
	require.NoError(t, kv.Delete(ctx, "patients"))

	_, found, err := kv.Get(ctx, "patients")
	require.NoError(t, err)
	assert.False(t, found)

	// Deleting again is a no-op.
	require.NoError(t, kv.Delete(ctx, "patients"))
}

func TestFileKV_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	kv, err := NewFileKV(dir, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, kv.Set(context.Background(), "patients", []byte("abc")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "patients.json", entries[0].Name())
	assert.Equal(t, ".json", filepath.Ext(entries[0].Name()))
}

func TestFileKV_RequiresDirectory(t *testing.T) {
	_, err := NewFileKV("", zap.NewNop())
	assert.Error(t, err)
}
