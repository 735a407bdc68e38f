package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/docrecall/docrecall/internal/api"
	"github.com/docrecall/docrecall/internal/domain"
	"github.com/docrecall/docrecall/internal/service"
)

type DocumentLister interface {
	ListRecent(days int) []*domain.Document
}

type Ingestor interface {
	Ingest(ctx context.Context, uploaderName string, files []service.IngestFile) ([]*service.IngestResult, []service.IngestFailure, error)
}

type DocumentsHandler struct {
	lister   DocumentLister
	ingestor Ingestor
}

func NewDocumentsHandler(lister DocumentLister, ingestor Ingestor) *DocumentsHandler {
	return &DocumentsHandler{lister: lister, ingestor: ingestor}
}

type UploadFileRequest struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Size    int64  `json:"size"`
	Content string `json:"content"`
}

type UploadRequest struct {
	UploaderName string              `json:"uploaderName"`
	Files        []UploadFileRequest `json:"files"`
}

type UploadResponse struct {
	Uploaded int                     `json:"uploaded"`
	Failures []service.IngestFailure `json:"failures,omitempty"`
}

type ListDocumentsResponse struct {
	Documents []*domain.Document `json:"documents"`
}

// List returns recent documents, newest first. A days query parameter
// restricts the window; absent or non-positive means unfiltered.
func (h *DocumentsHandler) List(w http.ResponseWriter, r *http.Request) {
	days := 0
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			api.Error(w, http.StatusBadRequest, "days must be an integer")
			return
		}
		days = parsed
	}

	documents := h.lister.ListRecent(days)
	if documents == nil {
		documents = []*domain.Document{}
	}

	api.JSON(w, http.StatusOK, ListDocumentsResponse{Documents: documents})
}

// Upload ingests a batch of base64-encoded files. Files that fail to
// decode or persist are reported in the failures list without failing
// the batch.
func (h *DocumentsHandler) Upload(w http.ResponseWriter, r *http.Request) {
	var req UploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.UploaderName == "" || len(req.Files) == 0 {
		api.Error(w, http.StatusBadRequest, "Missing uploader name or files")
		return
	}

	var files []service.IngestFile
	var failures []service.IngestFailure
	for _, file := range req.Files {
		content, err := base64.StdEncoding.DecodeString(file.Content)
		if err != nil {
			failures = append(failures, service.IngestFailure{Filename: file.Name, Reason: "content is not valid base64"})
			continue
		}
		size := file.Size
		if size == 0 {
			size = int64(len(content))
		}
		files = append(files, service.IngestFile{
			Name:    file.Name,
			Type:    file.Type,
			Size:    size,
			Content: content,
		})
	}

	var uploaded int
	if len(files) > 0 {
		results, ingestFailures, err := h.ingestor.Ingest(r.Context(), req.UploaderName, files)
		if err != nil {
			api.HandleError(w, err)
			return
		}
		uploaded = len(results)
		failures = append(failures, ingestFailures...)
	}

	api.JSON(w, http.StatusOK, UploadResponse{Uploaded: uploaded, Failures: failures})
}
