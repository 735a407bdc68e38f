package service

import (
	"context"
	"fmt"
	"time"

	"github.com/docrecall/docrecall/internal/domain"
	"github.com/google/uuid"
)

// Embedder converts text into a fixed-length vector.
type Embedder interface {
	Embed(text string) []float32
}

// IngestStore is the store surface the ingestion pipeline writes through.
type IngestStore interface {
	Append(ctx context.Context, document *domain.Document, chunks []*domain.Chunk) error
}

// RawObjectStore persists the raw uploaded bytes for later retrieval.
type RawObjectStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
}

// IngestFile is one uploaded file as received from the transport layer.
type IngestFile struct {
	Name    string
	Type    string
	Size    int64
	Content []byte
}

// IngestResult pairs an ingested document with its embedded chunks.
type IngestResult struct {
	Document *domain.Document
	Chunks   []*domain.Chunk
}

// IngestFailure records a file that could not be ingested. Failures are
// reported alongside the results of the files that succeeded.
type IngestFailure struct {
	Filename string `json:"filename"`
	Reason   string `json:"reason"`
}

// IngestService runs the per-file pipeline: store raw bytes, extract
// text, summarize, chunk, embed, and append the assembled records to the
// document store.
type IngestService struct {
	store    IngestStore
	objects  RawObjectStore
	embedder Embedder
	chunkCfg ChunkConfig

	now   func() time.Time
	newID func() string
}

// NewIngestService creates a new IngestService instance
func NewIngestService(store IngestStore, objects RawObjectStore, embedder Embedder) *IngestService {
	return &IngestService{
		store:    store,
		objects:  objects,
		embedder: embedder,
		chunkCfg: DefaultChunkConfig(),
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Ingest processes each file independently. A failing file is reported in
// the returned failures and does not abort the rest of the batch. The
// error return covers input validation only.
func (s *IngestService) Ingest(ctx context.Context, uploaderName string, files []IngestFile) ([]*IngestResult, []IngestFailure, error) {
	if uploaderName == "" {
		return nil, nil, domain.ErrMissingUploaderName
	}
	if len(files) == 0 {
		return nil, nil, domain.ErrNoFilesProvided
	}

	var results []*IngestResult
	var failures []IngestFailure

	for _, file := range files {
		result, err := s.ingestFile(ctx, uploaderName, file)
		if err != nil {
			failures = append(failures, IngestFailure{Filename: file.Name, Reason: err.Error()})
			continue
		}
		results = append(results, result)
	}

	return results, failures, nil
}

func (s *IngestService) ingestFile(ctx context.Context, uploaderName string, file IngestFile) (*IngestResult, error) {
	id := s.newID()
	storedName := fmt.Sprintf("%s-%s", id, file.Name)

	if err := s.objects.Put(ctx, storedName, file.Content, file.Type); err != nil {
		return nil, fmt.Errorf("failed to store raw file: %w", err)
	}

	text := ExtractText(file.Content, file.Type)
	summary := SummarizeText(text)
	windows := ChunkText(text, s.chunkCfg)

	fileType := file.Type
	if fileType == "" {
		fileType = "unknown"
	}

	document := domain.NewDocument(id, file.Name, fileType, file.Size, uploaderName, summary, s.now(), storedName)
	if err := domain.ValidateDocument(document); err != nil {
		return nil, err
	}

	chunks := make([]*domain.Chunk, 0, len(windows))
	for i, window := range windows {
		chunks = append(chunks, domain.NewChunk(s.newID(), id, i, window, s.embedder.Embed(window)))
	}

	if err := s.store.Append(ctx, document, chunks); err != nil {
		return nil, fmt.Errorf("failed to persist document: %w", err)
	}

	return &IngestResult{Document: document, Chunks: chunks}, nil
}
