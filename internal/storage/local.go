package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore keeps objects as files under a single directory. It is the
// default when no S3 endpoint is configured.
type LocalStore struct {
	dir string
}

// NewLocalStore creates the directory if needed and returns the store
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Put writes an object file. The content type is not recorded locally.
func (s *LocalStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	path, err := s.keyPath(key)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write object: %w", err)
	}
	return nil
}

// Get reads an object file
func (s *LocalStore) Get(ctx context.Context, key string) ([]byte, error) {
	path, err := s.keyPath(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read object: %w", err)
	}
	return data, nil
}

// Delete removes an object file
func (s *LocalStore) Delete(ctx context.Context, key string) error {
	path, err := s.keyPath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// keyPath resolves a key inside the store directory, rejecting keys that
// would escape it.
func (s *LocalStore) keyPath(key string) (string, error) {
	cleaned := filepath.Base(filepath.Clean(key))
	if cleaned == "." || cleaned == ".." || strings.ContainsRune(key, os.PathSeparator) {
		return "", fmt.Errorf("invalid object key: %q", key)
	}
	return filepath.Join(s.dir, cleaned), nil
}
