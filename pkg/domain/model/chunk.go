package model

import "time"

// DocumentChunk is the unit of indexing and retrieval: a bounded substring
// of a source document. Chunks are immutable once created and are replaced
// wholesale when the knowledge store reloads.
type DocumentChunk struct {
	Content    string
	Source     string
	ChunkIndex int
	FileType   string
	FileSize   int64
	ModifiedAt time.Time
}

// SearchResult is one ranked hit from a knowledge store query. Score is
// always clamped to [0,1] before it is surfaced, regardless of the index
// strategy that produced it.
type SearchResult struct {
	Content  string
	Source   string
	Score    float64
	Metadata SearchMetadata
}

// SearchMetadata carries chunk provenance alongside a search result.
type SearchMetadata struct {
	FileType   string
	ChunkIndex int
}

// ClampScore bounds a raw score into [0,1].
func ClampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
