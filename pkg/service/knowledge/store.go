package knowledge

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"

	"github.com/makazi-lab/makazi/pkg/domain/interfaces"
	"github.com/makazi-lab/makazi/pkg/domain/model"
	"github.com/makazi-lab/makazi/pkg/domain/types"
	"github.com/makazi-lab/makazi/pkg/service/chunker"
	"github.com/makazi-lab/makazi/pkg/utils/errutil"
	"github.com/makazi-lab/makazi/pkg/utils/logging"
)

const (
	// DefaultTopK is the maximum number of search results returned per query.
	DefaultTopK = 5

	// loadConcurrency bounds the number of files read in parallel.
	loadConcurrency = 8
)

// DefaultExtensions lists the file extensions loaded from the corpus root.
var DefaultExtensions = []string{".txt", ".md"}

// snapshot is an immutable view of a fully loaded corpus. A new snapshot is
// built off to the side and published atomically, so readers never observe a
// partially loaded corpus.
type snapshot struct {
	index    interfaces.SearchIndex
	files    []model.KnowledgeFileInfo
	chunks   int
	loadedAt time.Time
}

// Store manages the knowledge corpus lifecycle: scanning the corpus root,
// chunking documents, building a search index, and serving queries against
// the most recently published snapshot.
type Store struct {
	root       string
	extensions map[string]bool
	splitter   *chunker.Chunker
	newIndex   func() interfaces.SearchIndex
	topK       int

	loadMu  sync.Mutex
	stateMu sync.RWMutex
	state   types.StoreState
	current atomic.Pointer[snapshot]
}

// Option is a functional option for Store configuration.
type Option func(*Store)

// WithExtensions overrides the set of file extensions loaded from the
// corpus root. Extensions are matched case-insensitively.
func WithExtensions(extensions []string) Option {
	return func(s *Store) {
		if len(extensions) > 0 {
			s.extensions = extensionSet(extensions)
		}
	}
}

// WithChunker overrides the text splitter used for loaded documents.
func WithChunker(splitter *chunker.Chunker) Option {
	return func(s *Store) {
		if splitter != nil {
			s.splitter = splitter
		}
	}
}

// WithTopK overrides the maximum number of search results per query.
func WithTopK(topK int) Option {
	return func(s *Store) {
		if topK > 0 {
			s.topK = topK
		}
	}
}

// New creates a Store over the given corpus root. The index factory is
// invoked once per load so every snapshot gets a fresh index.
func New(root string, newIndex func() interfaces.SearchIndex, opts ...Option) (*Store, error) {
	if root == "" {
		return nil, goerr.New("knowledge root is required")
	}
	if newIndex == nil {
		return nil, goerr.New("index factory is required")
	}

	s := &Store{
		root:       root,
		extensions: extensionSet(DefaultExtensions),
		splitter:   chunker.New(),
		newIndex:   newIndex,
		topK:       DefaultTopK,
		state:      types.StoreUnloaded,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// State reports the current lifecycle state.
func (s *Store) State() types.StoreState {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.state
}

func (s *Store) setState(state types.StoreState) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	s.state = state
}

// Load scans the corpus root, chunks every supported document, builds a
// fresh index, and publishes the result as the new current snapshot. On
// failure nothing is published: a previously loaded snapshot stays visible,
// and with no prior snapshot the store reverts to unloaded.
func (s *Store) Load(ctx context.Context) error {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	s.setState(types.StoreLoading)

	snap, err := s.buildSnapshot(ctx)
	if err != nil {
		if s.current.Load() != nil {
			s.setState(types.StoreLoaded)
		} else {
			s.setState(types.StoreUnloaded)
		}
		return goerr.Wrap(err, "failed to load knowledge corpus", goerr.V("root", s.root))
	}

	s.current.Store(snap)
	s.setState(types.StoreLoaded)
	logging.From(ctx).Info("knowledge corpus loaded",
		"root", s.root,
		"documents", len(snap.files),
		"chunks", snap.chunks,
	)
	return nil
}

// Search returns the chunks most relevant to the query. If no corpus has
// been loaded yet, it loads lazily first; a failed load yields empty
// results rather than an error so callers can degrade gracefully.
func (s *Store) Search(ctx context.Context, query string) ([]model.SearchResult, error) {
	snap := s.current.Load()
	if snap == nil {
		if err := s.Load(ctx); err != nil {
			errutil.Handle(ctx, err)
			return nil, nil
		}
		snap = s.current.Load()
		if snap == nil {
			return nil, nil
		}
	}

	results, err := snap.index.Search(ctx, query, s.topK)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to search knowledge corpus")
	}
	return results, nil
}

// Status reports the lifecycle state and per-file statistics of the current
// snapshot.
func (s *Store) Status() model.KnowledgeStatus {
	status := model.KnowledgeStatus{
		State:     s.State(),
		Documents: []model.KnowledgeFileInfo{},
	}
	if snap := s.current.Load(); snap != nil {
		status.TotalDocuments = len(snap.files)
		status.TotalChunks = snap.chunks
		status.LastLoaded = snap.loadedAt
		status.Documents = snap.files
	}
	return status
}

type loadedFile struct {
	info   model.KnowledgeFileInfo
	chunks []model.DocumentChunk
}

func (s *Store) buildSnapshot(ctx context.Context) (*snapshot, error) {
	paths, err := s.collectFiles()
	if err != nil {
		return nil, err
	}

	loaded := make([]*loadedFile, len(paths))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(loadConcurrency)
	for i, path := range paths {
		eg.Go(func() error {
			file, err := s.loadFile(egCtx, path)
			if err != nil {
				return err
			}
			loaded[i] = file
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	snap := &snapshot{loadedAt: time.Now()}
	var chunks []model.DocumentChunk
	for _, file := range loaded {
		if file == nil {
			continue
		}
		snap.files = append(snap.files, file.info)
		chunks = append(chunks, file.chunks...)
	}

	index := s.newIndex()
	if err := index.Build(ctx, chunks); err != nil {
		return nil, goerr.Wrap(err, "failed to build search index")
	}
	snap.index = index
	snap.chunks = len(chunks)
	return snap, nil
}

func (s *Store) collectFiles() ([]string, error) {
	info, err := os.Stat(s.root)
	if err != nil {
		return nil, goerr.Wrap(err, "knowledge root is not accessible")
	}
	if !info.IsDir() {
		return nil, goerr.New("knowledge root is not a directory")
	}

	var paths []string
	err = filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if s.extensions[strings.ToLower(filepath.Ext(path))] {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to scan knowledge root")
	}

	sort.Strings(paths)
	return paths, nil
}

// loadFile reads and chunks a single document. Files whose format has no
// text extractor are skipped with a nil result.
func (s *Store) loadFile(ctx context.Context, path string) (*loadedFile, error) {
	ext := strings.ToLower(filepath.Ext(path))
	text, ok, err := extractText(path, ext)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read knowledge file", goerr.V("path", path))
	}
	if !ok {
		logging.From(ctx).Debug("skipping knowledge file without text extractor", "path", path)
		return nil, nil
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to stat knowledge file", goerr.V("path", path))
	}

	pieces := s.splitter.Split(text)
	name := filepath.Base(path)
	chunks := make([]model.DocumentChunk, 0, len(pieces))
	for i, piece := range pieces {
		chunks = append(chunks, model.DocumentChunk{
			Content:    piece,
			Source:     name,
			ChunkIndex: i,
			FileType:   ext,
			FileSize:   stat.Size(),
			ModifiedAt: stat.ModTime(),
		})
	}

	return &loadedFile{
		info: model.KnowledgeFileInfo{
			FileName:     name,
			FileType:     ext,
			Size:         stat.Size(),
			LastModified: stat.ModTime(),
			Chunks:       len(chunks),
		},
		chunks: chunks,
	}, nil
}

// extractText returns the plain text of a knowledge file. Formats without a
// text extractor report ok=false so the loader can skip them.
func extractText(path, ext string) (string, bool, error) {
	switch ext {
	case ".txt", ".md":
		raw, err := os.ReadFile(path)
		if err != nil {
			return "", false, err
		}
		return string(raw), true, nil
	default:
		return "", false, nil
	}
}

func extensionSet(extensions []string) map[string]bool {
	set := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[ext] = true
	}
	return set
}
