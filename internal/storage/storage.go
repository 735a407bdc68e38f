// Package storage persists raw uploaded file bytes and snapshot backups,
// either on the local filesystem or in S3-compatible object storage.
package storage

import "context"

// ObjectStore abstracts where raw bytes live. The document store records
// only the object key (storage_path); retrieval goes back through here.
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}
