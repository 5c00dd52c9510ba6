package usecase

import (
	"sync"
	"time"

	"github.com/m-mizutani/gollem"

	"github.com/makazi-lab/makazi/pkg/domain/interfaces"
	"github.com/makazi-lab/makazi/pkg/domain/model"
	"github.com/makazi-lab/makazi/pkg/service/catalog"
	"github.com/makazi-lab/makazi/pkg/service/extract"
	"github.com/makazi-lab/makazi/pkg/service/knowledge"
	"github.com/makazi-lab/makazi/pkg/service/scoring"
)

const (
	// DefaultMaxContextLength bounds the retrieved-context section of a
	// prompt, in bytes.
	DefaultMaxContextLength = 4000

	// DefaultGenerationTimeout bounds one outbound generation call.
	DefaultGenerationTimeout = 30 * time.Second

	// DefaultMaxRecommendations caps the ranked listings attached to one
	// property search response.
	DefaultMaxRecommendations = 3
)

// UseCases bundles the conversational operations over the knowledge store,
// the property catalog and the session repository.
type UseCases struct {
	repo      interfaces.Repository
	store     *knowledge.Store
	catalog   *catalog.Catalog
	llmClient gollem.LLMClient
	extractor *extract.Extractor
	scorer    *scoring.Scorer

	maxContextLength   int
	generationTimeout  time.Duration
	maxRecommendations int

	gate *sessionGate
}

type Option func(*UseCases)

// WithLLMClient sets the generation client. Without one, every turn degrades
// to the fixed technical-difficulties response.
func WithLLMClient(client gollem.LLMClient) Option {
	return func(uc *UseCases) {
		uc.llmClient = client
	}
}

// WithExtractor overrides the requirement extractor. By default one is built
// over the configured LLM client.
func WithExtractor(extractor *extract.Extractor) Option {
	return func(uc *UseCases) {
		if extractor != nil {
			uc.extractor = extractor
		}
	}
}

// WithScorer overrides the listing scorer.
func WithScorer(scorer *scoring.Scorer) Option {
	return func(uc *UseCases) {
		if scorer != nil {
			uc.scorer = scorer
		}
	}
}

// WithMaxContextLength overrides the retrieved-context budget per prompt.
func WithMaxContextLength(n int) Option {
	return func(uc *UseCases) {
		if n > 0 {
			uc.maxContextLength = n
		}
	}
}

// WithGenerationTimeout overrides the per-call generation deadline.
func WithGenerationTimeout(d time.Duration) Option {
	return func(uc *UseCases) {
		if d > 0 {
			uc.generationTimeout = d
		}
	}
}

// WithMaxRecommendations overrides the recommendation count per response.
func WithMaxRecommendations(n int) Option {
	return func(uc *UseCases) {
		if n > 0 {
			uc.maxRecommendations = n
		}
	}
}

func New(repo interfaces.Repository, store *knowledge.Store, propertyCatalog *catalog.Catalog, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:               repo,
		store:              store,
		catalog:            propertyCatalog,
		maxContextLength:   DefaultMaxContextLength,
		generationTimeout:  DefaultGenerationTimeout,
		maxRecommendations: DefaultMaxRecommendations,
		gate:               newSessionGate(),
	}

	for _, opt := range opts {
		opt(uc)
	}

	if uc.extractor == nil {
		uc.extractor = extract.New(uc.llmClient)
	}
	if uc.scorer == nil {
		uc.scorer = scoring.New()
	}

	return uc
}

// sessionGate serializes turns per conversation ID so two concurrent turns
// on the same conversation cannot interleave their history writes.
type sessionGate struct {
	mu    sync.Mutex
	locks map[model.ConversationID]*sync.Mutex
}

func newSessionGate() *sessionGate {
	return &sessionGate{
		locks: make(map[model.ConversationID]*sync.Mutex),
	}
}

// acquire blocks until the conversation's gate is free and returns the
// release function.
func (g *sessionGate) acquire(id model.ConversationID) func() {
	g.mu.Lock()
	lock, ok := g.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		g.locks[id] = lock
	}
	g.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

// forget drops the gate of a cleared conversation. A turn already in flight
// keeps its old gate; only future turns contend on a fresh one.
func (g *sessionGate) forget(id model.ConversationID) {
	g.mu.Lock()
	delete(g.locks, id)
	g.mu.Unlock()
}
