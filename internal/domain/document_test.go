package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDocument(t *testing.T) {
	now := time.Now()
	doc := NewDocument("doc1", "report.txt", "text/plain", 1024, "Ada", "A summary.", now, "doc1-report.txt")

	assert.Equal(t, "doc1", doc.ID)
	assert.Equal(t, "report.txt", doc.Filename)
	assert.Equal(t, "text/plain", doc.FileType)
	assert.Equal(t, int64(1024), doc.FileSize)
	assert.Equal(t, "Ada", doc.UploaderName)
	assert.Equal(t, "A summary.", doc.Summary)
	assert.Equal(t, now, doc.UploadedAt)
	assert.Equal(t, "doc1-report.txt", doc.StoragePath)
}

func TestValidateDocument(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		doc     *Document
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid document",
			doc: &Document{
				ID:           "doc1",
				Filename:     "report.txt",
				FileType:     "text/plain",
				FileSize:     42,
				UploaderName: "Ada",
				UploadedAt:   now,
			},
			wantErr: false,
		},
		{
			name: "missing ID",
			doc: &Document{
				Filename:     "report.txt",
				UploaderName: "Ada",
				UploadedAt:   now,
			},
			wantErr: true,
			errMsg:  "ID",
		},
		{
			name: "missing Filename",
			doc: &Document{
				ID:           "doc1",
				UploaderName: "Ada",
				UploadedAt:   now,
			},
			wantErr: true,
			errMsg:  "Filename",
		},
		{
			name: "missing UploaderName",
			doc: &Document{
				ID:         "doc1",
				Filename:   "report.txt",
				UploadedAt: now,
			},
			wantErr: true,
			errMsg:  "UploaderName",
		},
		{
			name: "negative FileSize",
			doc: &Document{
				ID:           "doc1",
				Filename:     "report.txt",
				FileSize:     -1,
				UploaderName: "Ada",
				UploadedAt:   now,
			},
			wantErr: true,
			errMsg:  "FileSize",
		},
		{
			name: "zero UploadedAt",
			doc: &Document{
				ID:           "doc1",
				Filename:     "report.txt",
				UploaderName: "Ada",
			},
			wantErr: true,
			errMsg:  "UploadedAt",
		},
		{
			name:    "nil document",
			doc:     nil,
			wantErr: true,
			errMsg:  "nil",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocument(tt.doc)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidateChunk(t *testing.T) {
	tests := []struct {
		name    string
		chunk   *Chunk
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid chunk",
			chunk: &Chunk{
				ID:         "chunk1",
				DocumentID: "doc1",
				ChunkIndex: 0,
				Content:    "some text",
				Embedding:  []float32{0, 1, 0},
			},
			wantErr: false,
		},
		{
			name: "missing ID",
			chunk: &Chunk{
				DocumentID: "doc1",
			},
			wantErr: true,
			errMsg:  "ID",
		},
		{
			name: "missing DocumentID",
			chunk: &Chunk{
				ID: "chunk1",
			},
			wantErr: true,
			errMsg:  "DocumentID",
		},
		{
			name: "negative ChunkIndex",
			chunk: &Chunk{
				ID:         "chunk1",
				DocumentID: "doc1",
				ChunkIndex: -1,
			},
			wantErr: true,
			errMsg:  "ChunkIndex",
		},
		{
			name:    "nil chunk",
			chunk:   nil,
			wantErr: true,
			errMsg:  "nil",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateChunk(tt.chunk)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestDomainError(t *testing.T) {
	err := NewDomainError(ErrCodeValidation, "query is required")
	assert.Equal(t, "[VALIDATION_ERROR] query is required", err.Error())
	assert.Nil(t, err.Unwrap())

	wrapped := NewDomainErrorWithCause(ErrCodeInternalError, "failed to persist store snapshot", assert.AnError)
	assert.Contains(t, wrapped.Error(), "INTERNAL_ERROR")
	assert.Contains(t, wrapped.Error(), assert.AnError.Error())
	assert.Equal(t, assert.AnError, wrapped.Unwrap())
}
