// Package embedding provides the deterministic hash-bucket text embedder
// used for chunk and query vectors, plus the cosine similarity measure
// the store ranks matches with.
package embedding

import "math"

// Dimensions is the fixed length of every vector produced by the embedder.
// Chunk and query vectors must share this dimensionality for similarity
// search to be well-defined.
const Dimensions = 384

// HashEmbedder embeds text as an L2-normalized term-frequency histogram
// over hashed token buckets. Identical input always yields an identical
// vector. Hash collisions merge distinct terms; that trade-off is part of
// the persisted vector format and must not change.
type HashEmbedder struct{}

// NewHashEmbedder creates a new HashEmbedder instance
func NewHashEmbedder() *HashEmbedder {
	return &HashEmbedder{}
}

// Embed converts text into a Dimensions-length vector. Text with no
// alphanumeric tokens embeds to the all-zero vector.
func (e *HashEmbedder) Embed(text string) []float32 {
	vector := make([]float32, Dimensions)

	tokens := tokenize(text)
	if len(tokens) == 0 {
		return vector
	}

	for _, token := range tokens {
		vector[hashToken(token)]++
	}

	var sum float64
	for _, v := range vector {
		sum += float64(v) * float64(v)
	}
	norm := math.Sqrt(sum)
	if norm == 0 {
		return vector
	}

	for i := range vector {
		vector[i] = float32(float64(vector[i]) / norm)
	}
	return vector
}

// tokenize extracts maximal runs of ASCII alphanumeric characters,
// case-folded to lowercase. Everything else is a separator.
func tokenize(text string) []string {
	var tokens []string
	var current []byte

	flush := func() {
		if len(current) > 0 {
			tokens = append(tokens, string(current))
			current = current[:0]
		}
	}

	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			current = append(current, c)
		case c >= 'A' && c <= 'Z':
			current = append(current, c+'a'-'A')
		default:
			flush()
		}
	}
	flush()

	return tokens
}

// hashToken maps a token to a bucket index in [0, Dimensions) using the
// 32-bit polynomial rolling hash with wrapping int32 arithmetic, so the
// bucket assignment is stable across runs and machines.
func hashToken(token string) int {
	var h int32
	for i := 0; i < len(token); i++ {
		h = h*31 + int32(token[i])
	}

	v := int64(h)
	if v < 0 {
		v = -v
	}
	return int(v % Dimensions)
}

// Cosine returns the cosine similarity of two vectors. Mismatched lengths
// and zero-norm vectors score 0 rather than erroring, so orphaned or
// degenerate embeddings simply rank last.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	denom := math.Sqrt(normA) * math.Sqrt(normB)
	if denom == 0 {
		return 0
	}
	return dot / denom
}
