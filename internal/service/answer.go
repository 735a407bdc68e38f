package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/docrecall/docrecall/internal/domain"
)

const (
	searchChunkLimit   = 8
	maxRankedDocuments = 5
	highlightChars     = 280
)

// SearchStore is the store surface the answer engine queries.
type SearchStore interface {
	Search(queryEmbedding []float32, limit int, recencyDays int) []*domain.Match
}

// AnswerOutput is the full answer-engine result consumed by presentation
// layers: synthesized prose, ranked documents, and the reasoning trace.
type AnswerOutput struct {
	Response  string                   `json:"response"`
	Documents []*domain.RankedDocument `json:"documents"`
	Steps     []string                 `json:"steps"`
}

// AnswerService turns a natural-language query into a cited answer over
// the document store.
type AnswerService struct {
	store    SearchStore
	embedder Embedder
}

// NewAnswerService creates a new AnswerService instance
func NewAnswerService(store SearchStore, embedder Embedder) *AnswerService {
	return &AnswerService{
		store:    store,
		embedder: embedder,
	}
}

// Answer embeds the query, retrieves the top matching chunks, aggregates
// them into ranked documents, and synthesizes a cited textual answer.
// recencyDays <= 0 means no recency filter.
func (s *AnswerService) Answer(ctx context.Context, query string, recencyDays int) (*AnswerOutput, error) {
	normalized := strings.TrimSpace(query)
	if normalized == "" {
		return nil, domain.ErrMissingQuery
	}

	steps := make([]string, 0, 5)
	steps = append(steps, fmt.Sprintf("Interpreted user intent for: %q", normalized))

	queryEmbedding := s.embedder.Embed(normalized)
	steps = append(steps, "Converted the question into a semantic vector representation.")

	matches := s.store.Search(queryEmbedding, searchChunkLimit, recencyDays)
	steps = append(steps, fmt.Sprintf("Retrieved %d relevant knowledge chunks from the local store.", len(matches)))

	documents := aggregateDocuments(matches)
	steps = append(steps, "Assembled supporting document context.")

	response := synthesizeAnswer(normalized, documents, matches)
	steps = append(steps, "Synthesized an answer with citations.")

	return &AnswerOutput{
		Response:  response,
		Documents: documents,
		Steps:     steps,
	}, nil
}

// SearchDocuments is the pure-search projection of Answer: same retrieval
// and aggregation, no synthesized prose or trace.
func (s *AnswerService) SearchDocuments(ctx context.Context, query string, recencyDays int) ([]*domain.RankedDocument, error) {
	output, err := s.Answer(ctx, query, recencyDays)
	if err != nil {
		return nil, err
	}
	return output.Documents, nil
}

// aggregateDocuments groups chunk matches by parent document. Relevance
// is the best chunk score in the group; highlights keep discovery order,
// which is match order, not score order.
func aggregateDocuments(matches []*domain.Match) []*domain.RankedDocument {
	byID := make(map[string]*domain.RankedDocument)
	var ordered []*domain.RankedDocument

	for _, match := range matches {
		entry, ok := byID[match.Document.ID]
		if !ok {
			entry = &domain.RankedDocument{
				Document:  *match.Document,
				Relevance: match.Score,
			}
			byID[match.Document.ID] = entry
			ordered = append(ordered, entry)
		}
		if match.Score > entry.Relevance {
			entry.Relevance = match.Score
		}
		entry.Highlights = append(entry.Highlights, truncateRunes(match.Chunk.Content, highlightChars))
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Relevance > ordered[j].Relevance
	})

	if len(ordered) > maxRankedDocuments {
		ordered = ordered[:maxRankedDocuments]
	}
	return ordered
}

func synthesizeAnswer(query string, documents []*domain.RankedDocument, matches []*domain.Match) string {
	if len(documents) == 0 {
		return fmt.Sprintf("I reviewed your local knowledge base but could not find information related to %q in the selected time window.", query)
	}

	lines := []string{fmt.Sprintf("Here is what I found for %q:", query)}

	for i, doc := range documents {
		highlight := "No readable excerpt available yet."
		if len(doc.Highlights) > 0 {
			highlight = doc.Highlights[0]
		}
		summary := doc.Summary
		if summary == "" {
			summary = "Summary not available."
		}
		lines = append(lines, fmt.Sprintf("\n%d. **%s** - %s\n   > %s...", i+1, doc.Filename, summary, strings.TrimSpace(highlight)))
	}

	sources := make([]string, 0, len(matches))
	for _, match := range matches {
		sources = append(sources, fmt.Sprintf("* %s (score %.2f)", match.Document.Filename, match.Score))
	}

	lines = append(lines, "\nRelevant sources:")
	lines = append(lines, strings.Join(sources, "\n"))

	return strings.Join(lines, "\n")
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
