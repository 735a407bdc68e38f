package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/docrecall/docrecall/internal/domain"
	"github.com/docrecall/docrecall/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAnswerer struct {
	mock.Mock
}

func (m *MockAnswerer) Answer(ctx context.Context, query string, recencyDays int) (*service.AnswerOutput, error) {
	args := m.Called(ctx, query, recencyDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AnswerOutput), args.Error(1)
}

func (m *MockAnswerer) SearchDocuments(ctx context.Context, query string, recencyDays int) ([]*domain.RankedDocument, error) {
	args := m.Called(ctx, query, recencyDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.RankedDocument), args.Error(1)
}

func TestAskReturnsAnswer(t *testing.T) {
	svc := new(MockAnswerer)
	svc.On("Answer", mock.Anything, "what changed", 7).Return(&service.AnswerOutput{
		Response:  "Here is what I found",
		Documents: []*domain.RankedDocument{},
		Steps:     []string{"step"},
	}, nil)

	handler := NewAgentHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/agent", strings.NewReader(`{"query":"what changed","recencyDays":7}`))
	w := httptest.NewRecorder()
	handler.Ask(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp service.AnswerOutput
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Here is what I found", resp.Response)
	assert.Len(t, resp.Steps, 1)
	svc.AssertExpectations(t)
}

func TestAskRequiresQuery(t *testing.T) {
	handler := NewAgentHandler(new(MockAnswerer))

	req := httptest.NewRequest(http.MethodPost, "/api/agent", strings.NewReader(`{"recencyDays":7}`))
	w := httptest.NewRecorder()
	handler.Ask(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Query is required")
}

func TestAskRejectsInvalidBody(t *testing.T) {
	handler := NewAgentHandler(new(MockAnswerer))

	req := httptest.NewRequest(http.MethodPost, "/api/agent", strings.NewReader("not json"))
	w := httptest.NewRecorder()
	handler.Ask(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAskMapsServiceErrors(t *testing.T) {
	svc := new(MockAnswerer)
	svc.On("Answer", mock.Anything, "   ", 0).Return(nil, domain.ErrMissingQuery)

	handler := NewAgentHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/agent", strings.NewReader(`{"query":"   "}`))
	w := httptest.NewRecorder()
	handler.Ask(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchReturnsDocuments(t *testing.T) {
	svc := new(MockAnswerer)
	svc.On("SearchDocuments", mock.Anything, "roadmap", 0).Return([]*domain.RankedDocument{
		{Document: domain.Document{ID: "doc-1", Filename: "roadmap.txt"}, Relevance: 0.8},
	}, nil)

	handler := NewAgentHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader(`{"query":"roadmap"}`))
	w := httptest.NewRecorder()
	handler.Search(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp SearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Documents, 1)
	assert.Equal(t, "doc-1", resp.Documents[0].ID)
	assert.InDelta(t, 0.8, resp.Documents[0].Relevance, 1e-9)
}

func TestSearchRequiresQuery(t *testing.T) {
	handler := NewAgentHandler(new(MockAnswerer))

	req := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	handler.Search(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchEmptyResultsReturnsEmptyArray(t *testing.T) {
	svc := new(MockAnswerer)
	svc.On("SearchDocuments", mock.Anything, "nothing", 0).Return(nil, nil)

	handler := NewAgentHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader(`{"query":"nothing"}`))
	w := httptest.NewRecorder()
	handler.Search(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"documents":[]}`, w.Body.String())
}
