package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileStore keeps one JSON document per key at <dir>/<bucket>/<key>.json.
// Writes go through a temp file in the same directory followed by a rename,
// so readers never see a partial document.
type FileStore struct {
	dir string
}

// NewFileStore creates a FileStore rooted at dir, creating it if needed
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// validateName rejects bucket/key values that would escape the data directory
func validateName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("storage: invalid name %q", name)
	}
	return nil
}

func (s *FileStore) path(bucket, key string) string {
	return filepath.Join(s.dir, bucket, key+".json")
}

// Get returns the document for key, or ErrKeyNotFound
func (s *FileStore) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	if err := validateName(bucket); err != nil {
		return nil, err
	}
	if err := validateName(key); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path(bucket, key))
	if os.IsNotExist(err) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s/%s: %w", bucket, key, err)
	}
	return data, nil
}

// Put writes the document for key via temp file + rename
func (s *FileStore) Put(ctx context.Context, bucket, key string, value []byte) error {
	if err := validateName(bucket); err != nil {
		return err
	}
	if err := validateName(key); err != nil {
		return err
	}

	bucketDir := filepath.Join(s.dir, bucket)
	if err := os.MkdirAll(bucketDir, 0o755); err != nil {
		return fmt.Errorf("failed to create bucket directory: %w", err)
	}

	tmp, err := os.CreateTemp(bucketDir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s/%s: %w", bucket, key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// Rename within the same directory is the atomic replace
	if err := os.Rename(tmpName, s.path(bucket, key)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s/%s: %w", bucket, key, err)
	}
	return nil
}

// Delete removes the document for key, reporting whether it existed
func (s *FileStore) Delete(ctx context.Context, bucket, key string) (bool, error) {
	if err := validateName(bucket); err != nil {
		return false, err
	}
	if err := validateName(key); err != nil {
		return false, err
	}

	err := os.Remove(s.path(bucket, key))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to delete %s/%s: %w", bucket, key, err)
	}
	return true, nil
}

// List returns all keys in the bucket
func (s *FileStore) List(ctx context.Context, bucket string) ([]string, error) {
	if err := validateName(bucket); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(filepath.Join(s.dir, bucket))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list bucket %s: %w", bucket, err)
	}

	var keys []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, ".json"))
	}
	return keys, nil
}

// Close is a no-op for the file backend
func (s *FileStore) Close() error {
	return nil
}
