package knowledge

import (
	"context"
	"sort"

	"github.com/makazi-lab/makazi/pkg/domain/interfaces"
	"github.com/makazi-lab/makazi/pkg/domain/model"
	"github.com/makazi-lab/makazi/pkg/service/textsim"
)

// DefaultLexicalThreshold is the minimum overlap score a chunk must exceed
// to appear in lexical search results.
const DefaultLexicalThreshold = 0.1

// LexicalIndex ranks chunks by word overlap (Jaccard similarity) between
// the query and the chunk content. It requires no external services and is
// the default strategy when no embedding provider is configured.
type LexicalIndex struct {
	threshold float64
	chunks    []model.DocumentChunk
	words     []map[string]struct{}
}

var _ interfaces.SearchIndex = &LexicalIndex{}

// LexicalOption is a functional option for LexicalIndex configuration.
type LexicalOption func(*LexicalIndex)

// WithLexicalThreshold overrides the minimum score cut-off.
func WithLexicalThreshold(threshold float64) LexicalOption {
	return func(x *LexicalIndex) {
		x.threshold = threshold
	}
}

// NewLexicalIndex creates an empty lexical index.
func NewLexicalIndex(opts ...LexicalOption) *LexicalIndex {
	x := &LexicalIndex{
		threshold: DefaultLexicalThreshold,
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// Build tokenizes each chunk into a word set. It never fails.
func (x *LexicalIndex) Build(ctx context.Context, chunks []model.DocumentChunk) error {
	words := make([]map[string]struct{}, len(chunks))
	for i, chunk := range chunks {
		words[i] = textsim.WordSet(chunk.Content)
	}
	x.chunks = chunks
	x.words = words
	return nil
}

// Search scores every chunk by Jaccard similarity of word sets. Chunks with
// no overlapping words or a score at or below the threshold are dropped.
func (x *LexicalIndex) Search(ctx context.Context, query string, topK int) ([]model.SearchResult, error) {
	queryWords := textsim.WordSet(query)
	if len(queryWords) == 0 {
		return nil, nil
	}

	var results []model.SearchResult
	for i, chunk := range x.chunks {
		overlap := 0
		for w := range queryWords {
			if _, ok := x.words[i][w]; ok {
				overlap++
			}
		}
		if overlap == 0 {
			continue
		}

		union := len(queryWords) + len(x.words[i]) - overlap
		score := float64(overlap) / float64(union)
		if score <= x.threshold {
			continue
		}

		results = append(results, model.SearchResult{
			Content: chunk.Content,
			Source:  chunk.Source,
			Score:   model.ClampScore(score),
			Metadata: model.SearchMetadata{
				FileType:   chunk.FileType,
				ChunkIndex: chunk.ChunkIndex,
			},
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if topK > 0 && len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}
