package interfaces

import (
	"context"

	"github.com/makazi-lab/makazi/pkg/domain/model"
)

// SearchIndex is a queryable representation over a set of document chunks.
// Implementations must be safe for concurrent Search calls once Build has
// returned; the knowledge store never mutates an index after publishing it.
type SearchIndex interface {
	// Build indexes the given chunks. It is called exactly once per index
	// instance, before any Search.
	Build(ctx context.Context, chunks []model.DocumentChunk) error

	// Search returns up to topK results ordered by descending score. Scores
	// are clamped to [0,1] and filtered by the implementation's threshold.
	Search(ctx context.Context, query string, topK int) ([]model.SearchResult, error)
}
