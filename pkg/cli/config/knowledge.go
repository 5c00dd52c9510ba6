package config

import (
	"log/slog"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/urfave/cli/v3"

	"github.com/makazi-lab/makazi/pkg/domain/interfaces"
	"github.com/makazi-lab/makazi/pkg/domain/types"
	"github.com/makazi-lab/makazi/pkg/service/chunker"
	"github.com/makazi-lab/makazi/pkg/service/knowledge"
)

// Knowledge holds CLI flags for the knowledge store
type Knowledge struct {
	root         string
	index        string
	extensions   string
	chunkSize    int
	chunkOverlap int
	topK         int
	threshold    float64
}

// Flags returns CLI flags for knowledge store configuration
func (x *Knowledge) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "knowledge-base-dir",
			Usage:       "Directory holding the knowledge base documents",
			Value:       "./knowledgebase",
			Sources:     cli.EnvVars("MAKAZI_KNOWLEDGE_BASE_DIR"),
			Destination: &x.root,
		},
		&cli.StringFlag{
			Name:        "knowledge-index",
			Usage:       "Search index strategy (lexical or vector)",
			Value:       types.IndexLexical.String(),
			Sources:     cli.EnvVars("MAKAZI_KNOWLEDGE_INDEX"),
			Destination: &x.index,
		},
		&cli.StringFlag{
			Name:        "knowledge-extensions",
			Usage:       "Comma-separated extensions loaded from the knowledge base",
			Value:       strings.Join(knowledge.DefaultExtensions, ","),
			Sources:     cli.EnvVars("MAKAZI_KNOWLEDGE_EXTENSIONS"),
			Destination: &x.extensions,
		},
		&cli.IntFlag{
			Name:        "chunk-size",
			Usage:       "Characters per document chunk",
			Value:       chunker.DefaultChunkSize,
			Sources:     cli.EnvVars("MAKAZI_CHUNK_SIZE"),
			Destination: &x.chunkSize,
		},
		&cli.IntFlag{
			Name:        "chunk-overlap",
			Usage:       "Characters repeated between adjacent chunks",
			Value:       chunker.DefaultOverlap,
			Sources:     cli.EnvVars("MAKAZI_CHUNK_OVERLAP"),
			Destination: &x.chunkOverlap,
		},
		&cli.IntFlag{
			Name:        "search-top-k",
			Usage:       "Maximum search results per query",
			Value:       knowledge.DefaultTopK,
			Sources:     cli.EnvVars("MAKAZI_SEARCH_TOP_K"),
			Destination: &x.topK,
		},
		&cli.FloatFlag{
			Name:        "similarity-threshold",
			Usage:       "Minimum cosine similarity for vector search results",
			Value:       knowledge.DefaultVectorThreshold,
			Sources:     cli.EnvVars("MAKAZI_SIMILARITY_THRESHOLD"),
			Destination: &x.threshold,
		},
	}
}

// LogAttrs returns log attributes for the knowledge configuration
func (x *Knowledge) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("root", x.root),
		slog.String("index", x.index),
		slog.String("extensions", x.extensions),
		slog.Int("chunk_size", x.chunkSize),
		slog.Int("chunk_overlap", x.chunkOverlap),
		slog.Int("top_k", x.topK),
		slog.Float64("threshold", x.threshold),
	}
}

// Configure builds the knowledge store from the configured flags. The vector
// strategy needs an LLM client for embeddings; llmClient may be nil for the
// lexical strategy.
func (x *Knowledge) Configure(llmClient gollem.LLMClient) (*knowledge.Store, error) {
	strategy, err := types.ParseIndexStrategy(x.index)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid knowledge index strategy")
	}

	var newIndex func() interfaces.SearchIndex
	switch strategy {
	case types.IndexVector:
		if _, err := knowledge.NewVectorIndex(llmClient, knowledge.WithVectorThreshold(x.threshold)); err != nil {
			return nil, goerr.Wrap(err, "vector index requires a configured LLM client")
		}
		newIndex = func() interfaces.SearchIndex {
			idx, _ := knowledge.NewVectorIndex(llmClient, knowledge.WithVectorThreshold(x.threshold))
			return idx
		}
	default:
		newIndex = func() interfaces.SearchIndex {
			return knowledge.NewLexicalIndex()
		}
	}

	split := chunker.New(
		chunker.WithChunkSize(x.chunkSize),
		chunker.WithOverlap(x.chunkOverlap),
	)

	return knowledge.New(x.root,
		newIndex,
		knowledge.WithChunker(split),
		knowledge.WithExtensions(x.extensionList()),
		knowledge.WithTopK(x.topK),
	)
}

// extensionList splits the comma-separated allow-list, dropping empty
// entries so a trailing comma keeps the defaults intact.
func (x *Knowledge) extensionList() []string {
	var exts []string
	for _, e := range strings.Split(x.extensions, ",") {
		if e = strings.TrimSpace(e); e != "" {
			exts = append(exts, e)
		}
	}
	return exts
}
