package service

import "strings"

const (
	summarySentences     = 3
	summaryFallbackWords = 40
)

// SummarizeText extracts a lead summary: the first three sentences, where
// a sentence is any run of text ending in '.', '!' or '?'. Text with no
// terminal punctuation falls back to its first forty words. This is a
// positional heuristic, not semantic summarization, and its output is
// part of the stored document record.
func SummarizeText(text string) string {
	sentences := splitSentences(text)
	if len(sentences) == 0 {
		words := strings.Fields(text)
		if len(words) > summaryFallbackWords {
			words = words[:summaryFallbackWords]
		}
		return strings.Join(words, " ")
	}

	if len(sentences) > summarySentences {
		sentences = sentences[:summarySentences]
	}
	return strings.Join(sentences, " ")
}

// splitSentences returns trimmed sentences with their terminal punctuation
// attached. Stray terminators with no preceding text are skipped.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	for _, r := range text {
		switch r {
		case '.', '!', '?':
			if strings.TrimSpace(current.String()) == "" {
				current.Reset()
				continue
			}
			current.WriteRune(r)
			sentences = append(sentences, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}

	return sentences
}
