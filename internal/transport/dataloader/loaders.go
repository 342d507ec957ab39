package dataloader

import (
	"context"

	"github.com/google/uuid"
	"github.com/graph-gophers/dataloader/v7"

	"github.com/sidra/content-factory/internal/domain"
)

// ---------------------------------------------------------------------------
// Idea options by CardID
// ---------------------------------------------------------------------------

func newIdeasBatchFn(repo ideaRepo) dataloader.BatchFunc[uuid.UUID, []domain.IdeaOption] {
	return func(ctx context.Context, keys []uuid.UUID) []*dataloader.Result[[]domain.IdeaOption] {
		ideas, err := repo.GetByCardIDs(ctx, keys)
		if err != nil {
			return errorResults[[]domain.IdeaOption](len(keys), err)
		}

		grouped := make(map[uuid.UUID][]domain.IdeaOption, len(keys))
		for _, idea := range ideas {
			grouped[idea.CardID] = append(grouped[idea.CardID], idea)
		}

		return mapResults(keys, grouped, emptySlice[domain.IdeaOption])
	}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// errorResults returns n results that all carry err.
func errorResults[V any](n int, err error) []*dataloader.Result[V] {
	results := make([]*dataloader.Result[V], n)
	for i := range results {
		results[i] = &dataloader.Result[V]{Error: err}
	}
	return results
}

// mapResults maps grouped results back to key order, using defaultFn for missing keys.
func mapResults[V any](keys []uuid.UUID, grouped map[uuid.UUID]V, defaultFn func() V) []*dataloader.Result[V] {
	results := make([]*dataloader.Result[V], len(keys))
	for i, key := range keys {
		if v, ok := grouped[key]; ok {
			results[i] = &dataloader.Result[V]{Data: v}
		} else {
			results[i] = &dataloader.Result[V]{Data: defaultFn()}
		}
	}
	return results
}

// emptySlice returns a non-nil empty slice.
func emptySlice[T any]() []T {
	return []T{}
}
