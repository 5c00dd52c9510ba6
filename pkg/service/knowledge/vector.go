package knowledge

import (
	"context"
	"math"
	"sort"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"

	"github.com/makazi-lab/makazi/pkg/domain/interfaces"
	"github.com/makazi-lab/makazi/pkg/domain/model"
)

const (
	// DefaultVectorThreshold is the minimum cosine similarity a chunk must
	// reach to appear in vector search results.
	DefaultVectorThreshold = 0.7

	// DefaultEmbeddingDimension is the embedding vector size requested from
	// the LLM provider.
	DefaultEmbeddingDimension = 768
)

// VectorIndex ranks chunks by cosine similarity between query and chunk
// embeddings. Vectors are L2-normalized at build time so similarity reduces
// to an inner product.
type VectorIndex struct {
	llmClient gollem.LLMClient
	dimension int
	threshold float64

	chunks  []model.DocumentChunk
	vectors [][]float32
}

var _ interfaces.SearchIndex = &VectorIndex{}

// VectorOption is a functional option for VectorIndex configuration.
type VectorOption func(*VectorIndex)

// WithVectorThreshold overrides the minimum similarity cut-off.
func WithVectorThreshold(threshold float64) VectorOption {
	return func(x *VectorIndex) {
		x.threshold = threshold
	}
}

// WithEmbeddingDimension overrides the embedding vector size.
func WithEmbeddingDimension(dimension int) VectorOption {
	return func(x *VectorIndex) {
		if dimension > 0 {
			x.dimension = dimension
		}
	}
}

// NewVectorIndex creates an empty vector index backed by the given LLM
// client for embedding generation.
func NewVectorIndex(llmClient gollem.LLMClient, opts ...VectorOption) (*VectorIndex, error) {
	if llmClient == nil {
		return nil, goerr.New("LLM client is required")
	}

	x := &VectorIndex{
		llmClient: llmClient,
		dimension: DefaultEmbeddingDimension,
		threshold: DefaultVectorThreshold,
	}
	for _, opt := range opts {
		opt(x)
	}
	return x, nil
}

// Build embeds every chunk in one batch and stores normalized vectors.
func (x *VectorIndex) Build(ctx context.Context, chunks []model.DocumentChunk) error {
	if len(chunks) == 0 {
		x.chunks = nil
		x.vectors = nil
		return nil
	}

	inputs := make([]string, len(chunks))
	for i, chunk := range chunks {
		inputs[i] = chunk.Content
	}

	embeddings, err := x.llmClient.GenerateEmbedding(ctx, x.dimension, inputs)
	if err != nil {
		return goerr.Wrap(err, "failed to generate chunk embeddings", goerr.V("chunks", len(chunks)))
	}
	if len(embeddings) != len(chunks) {
		return goerr.New("embedding count mismatch",
			goerr.V("expected", len(chunks)),
			goerr.V("actual", len(embeddings)))
	}

	vectors := make([][]float32, len(embeddings))
	for i, embedding := range embeddings {
		vectors[i] = normalize(embedding)
	}

	x.chunks = chunks
	x.vectors = vectors
	return nil
}

// Search embeds the query and scores every chunk by inner product. Chunks
// below the similarity threshold are dropped.
func (x *VectorIndex) Search(ctx context.Context, query string, topK int) ([]model.SearchResult, error) {
	if len(x.chunks) == 0 {
		return nil, nil
	}

	embeddings, err := x.llmClient.GenerateEmbedding(ctx, x.dimension, []string{query})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate query embedding")
	}
	if len(embeddings) == 0 {
		return nil, goerr.New("no query embedding returned")
	}
	queryVec := normalize(embeddings[0])

	var results []model.SearchResult
	for i, chunk := range x.chunks {
		score := dot(queryVec, x.vectors[i])
		if score < x.threshold {
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

// normalize converts an embedding to a unit-length float32 vector.
func normalize(embedding []float64) []float32 {
	var norm float64
	for _, v := range embedding {
		norm += v * v
	}
	norm = math.Sqrt(norm)

	vec := make([]float32, len(embedding))
	if norm == 0 {
		return vec
	}
	for i, v := range embedding {
		vec[i] = float32(v / norm)
	}
	return vec
}

func dot(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
