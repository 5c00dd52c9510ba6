package usecase

import (
	"context"

	"github.com/makazi-lab/makazi/pkg/domain/model"
	"github.com/makazi-lab/makazi/pkg/domain/types"
	"github.com/makazi-lab/makazi/pkg/utils/errutil"
)

// KnowledgeStatus reports corpus statistics, loading lazily when nothing has
// been loaded yet. A failed lazy load is reported as the unloaded state
// rather than an error.
func (uc *UseCases) KnowledgeStatus(ctx context.Context) model.KnowledgeStatus {
	if uc.store.State() == types.StoreUnloaded {
		if err := uc.store.Load(ctx); err != nil {
			errutil.Handle(ctx, err, "lazy knowledge load failed")
		}
	}
	return uc.store.Status()
}

// ReloadKnowledge rebuilds the corpus snapshot from disk. Searches keep
// serving the previous snapshot until the new one is published.
func (uc *UseCases) ReloadKnowledge(ctx context.Context) error {
	return uc.store.Load(ctx)
}

// CatalogStatus reports the property catalog cache state.
func (uc *UseCases) CatalogStatus() model.CatalogStatus {
	return uc.catalog.Status()
}
