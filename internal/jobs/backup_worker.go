package jobs

import (
	"context"
	"fmt"
	"log"
	"time"
)

// SnapshotSource provides a consistent serialization of the store state
type SnapshotSource interface {
	SnapshotBytes() ([]byte, error)
	Counts() (documents int, chunks int)
}

// BackupUploader receives snapshot copies
type BackupUploader interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
}

// SnapshotBackupWorker copies the store snapshot to object storage. Each
// run uploads a timestamped copy under the backups/ prefix.
type SnapshotBackupWorker struct {
	source  SnapshotSource
	objects BackupUploader

	now func() time.Time
}

// NewSnapshotBackupWorker creates a new SnapshotBackupWorker instance
func NewSnapshotBackupWorker(source SnapshotSource, objects BackupUploader) *SnapshotBackupWorker {
	return &SnapshotBackupWorker{
		source:  source,
		objects: objects,
		now:     time.Now,
	}
}

// ProcessJobs implements the JobProcessor interface
func (w *SnapshotBackupWorker) ProcessJobs(ctx context.Context) error {
	data, err := w.source.SnapshotBytes()
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot: %w", err)
	}

	key := w.BackupKey()
	if err := w.objects.Put(ctx, key, data, "application/json"); err != nil {
		return fmt.Errorf("failed to upload snapshot backup: %w", err)
	}

	documents, chunks := w.source.Counts()
	log.Printf("snapshot backup uploaded: %s (%d documents, %d chunks)", key, documents, chunks)
	return nil
}

// BackupKey returns the object key for a backup taken now.
func (w *SnapshotBackupWorker) BackupKey() string {
	return fmt.Sprintf("backups/docrecall-db-%s.json", w.now().UTC().Format("20060102T150405Z"))
}
