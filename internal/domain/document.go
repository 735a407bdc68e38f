package domain

import (
	"fmt"
	"time"
)

// Document represents one uploaded file after ingestion.
// Documents are immutable once written to the store.
type Document struct {
	ID           string    `json:"id"`
	Filename     string    `json:"filename"`
	FileType     string    `json:"file_type"`
	FileSize     int64     `json:"file_size"`
	UploaderName string    `json:"uploader_name"`
	Summary      string    `json:"summary"`
	UploadedAt   time.Time `json:"uploaded_at"`
	StoragePath  string    `json:"storage_path"`
}

// NewDocument creates a new Document instance
func NewDocument(id, filename, fileType string, fileSize int64, uploaderName, summary string, uploadedAt time.Time, storagePath string) *Document {
	return &Document{
		ID:           id,
		Filename:     filename,
		FileType:     fileType,
		FileSize:     fileSize,
		UploaderName: uploaderName,
		Summary:      summary,
		UploadedAt:   uploadedAt,
		StoragePath:  storagePath,
	}
}

// ValidateDocument validates a Document instance
func ValidateDocument(d *Document) error {
	if d == nil {
		return fmt.Errorf("document cannot be nil")
	}

	if d.ID == "" {
		return fmt.Errorf("document ID is required")
	}

	if d.Filename == "" {
		return fmt.Errorf("document Filename is required")
	}

	if d.UploaderName == "" {
		return fmt.Errorf("document UploaderName is required")
	}

	if d.FileSize < 0 {
		return fmt.Errorf("document FileSize cannot be negative")
	}

	if d.UploadedAt.IsZero() {
		return fmt.Errorf("document UploadedAt is required")
	}

	return nil
}
