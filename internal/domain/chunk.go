package domain

import "fmt"

// Chunk represents one embedded window of a document's extracted text.
// Chunk indexes are contiguous from zero and follow source order.
type Chunk struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"document_id"`
	ChunkIndex int       `json:"chunk_index"`
	Content    string    `json:"content"`
	Embedding  []float32 `json:"embedding"`
}

// NewChunk creates a new Chunk instance
func NewChunk(id, documentID string, chunkIndex int, content string, embedding []float32) *Chunk {
	return &Chunk{
		ID:         id,
		DocumentID: documentID,
		ChunkIndex: chunkIndex,
		Content:    content,
		Embedding:  embedding,
	}
}

// ValidateChunk validates a Chunk instance
func ValidateChunk(c *Chunk) error {
	if c == nil {
		return fmt.Errorf("chunk cannot be nil")
	}

	if c.ID == "" {
		return fmt.Errorf("chunk ID is required")
	}

	if c.DocumentID == "" {
		return fmt.Errorf("chunk DocumentID is required")
	}

	if c.ChunkIndex < 0 {
		return fmt.Errorf("chunk ChunkIndex cannot be negative")
	}

	return nil
}
