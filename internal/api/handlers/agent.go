package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/docrecall/docrecall/internal/api"
	"github.com/docrecall/docrecall/internal/domain"
	"github.com/docrecall/docrecall/internal/service"
)

type Answerer interface {
	Answer(ctx context.Context, query string, recencyDays int) (*service.AnswerOutput, error)
	SearchDocuments(ctx context.Context, query string, recencyDays int) ([]*domain.RankedDocument, error)
}

type AgentHandler struct {
	svc Answerer
}

func NewAgentHandler(svc Answerer) *AgentHandler {
	return &AgentHandler{svc: svc}
}

type QueryRequest struct {
	Query       string `json:"query"`
	RecencyDays int    `json:"recencyDays"`
}

type SearchResponse struct {
	Documents []*domain.RankedDocument `json:"documents"`
}

// Ask runs the full answer pipeline and returns the synthesized
// response, ranked documents, and reasoning trace.
func (h *AgentHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Query == "" {
		api.Error(w, http.StatusBadRequest, "Query is required")
		return
	}

	output, err := h.svc.Answer(r.Context(), req.Query, req.RecencyDays)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.JSON(w, http.StatusOK, output)
}

// Search returns the ranked documents for a query without the
// synthesized answer.
func (h *AgentHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Query == "" {
		api.Error(w, http.StatusBadRequest, "Query is required")
		return
	}

	documents, err := h.svc.SearchDocuments(r.Context(), req.Query, req.RecencyDays)
	if err != nil {
		api.HandleError(w, err)
		return
	}
	if documents == nil {
		documents = []*domain.RankedDocument{}
	}

	api.JSON(w, http.StatusOK, SearchResponse{Documents: documents})
}
