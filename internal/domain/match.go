package domain

// Match is an ephemeral search hit pairing a chunk with its parent
// document and a cosine similarity score. Matches are never persisted.
type Match struct {
	Chunk    *Chunk
	Document *Document
	Score    float64
}

// RankedDocument is a document aggregated from one or more matches,
// carrying the best chunk score and excerpt highlights in discovery order.
type RankedDocument struct {
	Document
	Relevance  float64  `json:"relevance"`
	Highlights []string `json:"highlights"`
}
