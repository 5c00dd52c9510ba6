package worker_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/makazi-lab/makazi/pkg/domain/interfaces"
	"github.com/makazi-lab/makazi/pkg/domain/model"
	"github.com/makazi-lab/makazi/pkg/domain/types"
	"github.com/makazi-lab/makazi/pkg/repository/memory"
	"github.com/makazi-lab/makazi/pkg/service/knowledge"
	"github.com/makazi-lab/makazi/pkg/service/worker"
)

func newStore(t *testing.T, root string) *knowledge.Store {
	t.Helper()

	store, err := knowledge.New(root, func() interfaces.SearchIndex {
		return knowledge.NewLexicalIndex()
	})
	gt.NoError(t, err).Required()
	return store
}

func putSession(t *testing.T, repo *memory.Memory, id string, updatedAt time.Time) {
	t.Helper()

	session := model.NewConversationSession(model.ConversationID(id))
	session.Append("hello", "hi there")
	session.UpdatedAt = updatedAt
	gt.NoError(t, repo.PutSession(context.Background(), session)).Required()
}

func TestMaintain(t *testing.T) {
	ctx := context.Background()

	t.Run("loads the corpus and prunes idle sessions", func(t *testing.T) {
		root := t.TempDir()
		content := "Ngong Road bedsitters go for KSH 12,000 per month."
		gt.NoError(t, os.WriteFile(filepath.Join(root, "ngong.txt"), []byte(content), 0o644)).Required()

		repo := memory.New()
		putSession(t, repo, "conv-stale", time.Now().Add(-2*time.Hour))
		putSession(t, repo, "conv-fresh", time.Now())

		store := newStore(t, root)
		w := worker.NewMaintenanceWorker(repo, store, time.Hour, time.Hour)

		gt.NoError(t, worker.Maintain(w, ctx)).Required()

		gt.Value(t, store.State()).Equal(types.StoreLoaded)

		ids, err := repo.ListSessionIDs(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, ids).Length(1).Required()
		gt.Value(t, ids[0].String()).Equal("conv-fresh")
	})

	t.Run("missing corpus does not stop session pruning", func(t *testing.T) {
		repo := memory.New()
		putSession(t, repo, "conv-stale", time.Now().Add(-2*time.Hour))

		store := newStore(t, filepath.Join(t.TempDir(), "missing"))
		w := worker.NewMaintenanceWorker(repo, store, time.Hour, time.Hour)

		gt.NoError(t, worker.Maintain(w, ctx)).Required()

		gt.Value(t, store.State()).Equal(types.StoreUnloaded)

		ids, err := repo.ListSessionIDs(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, ids).Length(0)
	})
}

func TestStartStop(t *testing.T) {
	root := t.TempDir()
	gt.NoError(t, os.WriteFile(filepath.Join(root, "corpus.txt"), []byte("Thika Road apartments."), 0o644)).Required()

	repo := memory.New()
	w := worker.NewMaintenanceWorker(repo, newStore(t, root), time.Hour, time.Hour)

	gt.NoError(t, w.Start(context.Background())).Required()
	w.Stop()
}
