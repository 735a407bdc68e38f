package service

import "strings"

// ChunkConfig controls how extracted text is windowed for embedding.
type ChunkConfig struct {
	Size    int
	Overlap int
}

// DefaultChunkConfig provides the chunk window used for all ingested text.
func DefaultChunkConfig() ChunkConfig {
	return ChunkConfig{
		Size:    800,
		Overlap: 120,
	}
}

// ChunkText collapses whitespace runs to single spaces, trims the result,
// and slides a fixed window across it. Every chunk except the last is
// exactly cfg.Size characters and consecutive chunks share cfg.Overlap
// characters. A config whose window cannot advance (Size <= Overlap)
// falls back to the defaults.
func ChunkText(text string, cfg ChunkConfig) []string {
	clean := strings.Join(strings.Fields(text), " ")
	if clean == "" {
		return nil
	}

	if cfg.Size <= 0 || cfg.Overlap < 0 || cfg.Size <= cfg.Overlap {
		cfg = DefaultChunkConfig()
	}

	runes := []rune(clean)
	chunks := make([]string, 0, len(runes)/(cfg.Size-cfg.Overlap)+1)

	start := 0
	for start < len(runes) {
		end := start + cfg.Size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
		if end == len(runes) {
			break
		}
		start = end - cfg.Overlap
		if start < 0 {
			start = 0
		}
	}

	return chunks
}
