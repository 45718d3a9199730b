package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// FileKV stores each key as a JSON file in a single directory. Writes go
// through a temp file plus rename so a crash mid-write never leaves a
// truncated collection behind. This is the default backend for single
// workstation deployments.
type FileKV struct {
	dir    string
	logger *zap.Logger
}

// NewFileKV creates the backing directory if needed.
func NewFileKV(dir string, logger *zap.Logger) (*FileKV, error) {
	if dir == "" {
		return nil, fmt.Errorf("storage directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &FileKV{dir: dir, logger: logger}, nil
}

func (f *FileKV) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

// Get implements KV.
func (f *FileKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	data, err := os.ReadFile(f.path(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		f.logger.Error("failed to read blob file", zap.String("key", key), zap.Error(err))
		return nil, false, fmt.Errorf("failed to read blob %q: %w", key, err)
	}
	return data, true, nil
}

// Set implements KV.
func (f *FileKV) Set(_ context.Context, key string, value []byte) error {
	target := f.path(key)

	tmp, err := os.CreateTemp(f.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %q: %w", key, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write blob %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file for %q: %w", key, err)
	}

	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		f.logger.Error("failed to replace blob file", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("failed to replace blob %q: %w", key, err)
	}
	return nil
}

// Delete implements KV. Deleting an absent key is a no-op.
func (f *FileKV) Delete(_ context.Context, key string) error {
	err := os.Remove(f.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete blob %q: %w", key, err)
	}
	return nil
}

var _ KV = (*FileKV)(nil)
