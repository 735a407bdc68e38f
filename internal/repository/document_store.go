// Package repository owns the durable collection of documents and chunks.
// State lives in memory and is persisted as a single JSON snapshot that is
// rewritten atomically after every mutation.
package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/docrecall/docrecall/internal/domain"
	"github.com/docrecall/docrecall/internal/embedding"
)

const defaultSearchLimit = 8

// snapshot is the exact durable state shape. Both collections marshal as
// arrays even when empty.
type snapshot struct {
	Documents []*domain.Document `json:"documents"`
	Chunks    []*domain.Chunk    `json:"chunks"`
}

// DocumentStore is the sole owner and writer of the document and chunk
// collections. A single RWMutex serializes Append against the read paths;
// readers may run concurrently with each other.
type DocumentStore struct {
	mu    sync.RWMutex
	path  string
	state snapshot

	now func() time.Time
}

// OpenDocumentStore loads the snapshot at path, creating an empty one on
// first use so the durable file always exists after a successful open.
func OpenDocumentStore(path string) (*DocumentStore, error) {
	store := &DocumentStore{
		path: path,
		state: snapshot{
			Documents: []*domain.Document{},
			Chunks:    []*domain.Chunk{},
		},
		now: time.Now,
	}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		if err := store.saveLocked(); err != nil {
			return nil, err
		}
		return store, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read store snapshot: %w", err)
	}

	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &store.state); err != nil {
			return nil, fmt.Errorf("failed to parse store snapshot: %w", err)
		}
		if store.state.Documents == nil {
			store.state.Documents = []*domain.Document{}
		}
		if store.state.Chunks == nil {
			store.state.Chunks = []*domain.Chunk{}
		}
	}

	return store, nil
}

// Append records a document together with all of its chunks. The snapshot
// is rewritten before Append returns; on a write failure the in-memory
// state is rolled back so memory and disk never diverge.
func (s *DocumentStore) Append(ctx context.Context, document *domain.Document, chunks []*domain.Chunk) error {
	if err := domain.ValidateDocument(document); err != nil {
		return err
	}
	for _, chunk := range chunks {
		if err := domain.ValidateChunk(chunk); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	docCount := len(s.state.Documents)
	chunkCount := len(s.state.Chunks)

	s.state.Documents = append(s.state.Documents, document)
	s.state.Chunks = append(s.state.Chunks, chunks...)

	if err := s.saveLocked(); err != nil {
		s.state.Documents = s.state.Documents[:docCount]
		s.state.Chunks = s.state.Chunks[:chunkCount]
		return domain.NewDomainErrorWithCause(domain.ErrCodeInternalError, "failed to persist store snapshot", err)
	}

	return nil
}

// ListRecent returns documents sorted by upload time descending. days > 0
// filters to documents uploaded within that many days; days <= 0 disables
// the filter. Equal timestamps keep insertion order.
func (s *DocumentStore) ListRecent(days int) []*domain.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cutoff := s.recencyCutoff(days)

	documents := make([]*domain.Document, 0, len(s.state.Documents))
	for _, doc := range s.state.Documents {
		if !cutoff.IsZero() && doc.UploadedAt.Before(cutoff) {
			continue
		}
		documents = append(documents, doc)
	}

	sort.SliceStable(documents, func(i, j int) bool {
		return documents[i].UploadedAt.After(documents[j].UploadedAt)
	})

	return documents
}

// Search scores every chunk whose parent document passes the recency
// filter against the query embedding, by exhaustive cosine scan. Chunks
// whose parent document is missing are skipped. Results are sorted by
// score descending and truncated to limit.
func (s *DocumentStore) Search(queryEmbedding []float32, limit int, recencyDays int) []*domain.Match {
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	cutoff := s.recencyCutoff(recencyDays)

	documentsByID := make(map[string]*domain.Document, len(s.state.Documents))
	for _, doc := range s.state.Documents {
		documentsByID[doc.ID] = doc
	}

	matches := make([]*domain.Match, 0, len(s.state.Chunks))
	for _, chunk := range s.state.Chunks {
		document, ok := documentsByID[chunk.DocumentID]
		if !ok {
			continue
		}
		if !cutoff.IsZero() && document.UploadedAt.Before(cutoff) {
			continue
		}
		matches = append(matches, &domain.Match{
			Chunk:    chunk,
			Document: document,
			Score:    embedding.Cosine(queryEmbedding, chunk.Embedding),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// Counts returns the number of stored documents and chunks.
func (s *DocumentStore) Counts() (documents int, chunks int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.state.Documents), len(s.state.Chunks)
}

// SnapshotBytes marshals the current state, for backups.
func (s *DocumentStore) SnapshotBytes() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return json.MarshalIndent(s.state, "", "  ")
}

// SnapshotPath returns the durable snapshot location.
func (s *DocumentStore) SnapshotPath() string {
	return s.path
}

// Flush rewrites the snapshot from current memory state.
func (s *DocumentStore) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked()
}

// recencyCutoff converts "days back from now" into a cutoff timestamp.
// The zero time means no filtering.
func (s *DocumentStore) recencyCutoff(days int) time.Time {
	if days <= 0 {
		return time.Time{}
	}
	return s.now().Add(-time.Duration(days) * 24 * time.Hour)
}

// saveLocked writes the snapshot to a temporary file in the same
// directory and renames it into place, so a crash mid-write can never
// leave a document recorded without its chunks.
func (s *DocumentStore) saveLocked() error {
	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal store snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".docrecall-db-*.json")
	if err != nil {
		return fmt.Errorf("failed to create snapshot temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close snapshot temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}

	return nil
}
