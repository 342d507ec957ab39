// Package dataloader provides per-request loaders that batch idea-option
// lookups for card lists into single repository calls. Loaders call
// repositories directly, bypassing the service layer.
package dataloader

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/graph-gophers/dataloader/v7"

	"github.com/sidra/content-factory/internal/domain"
)

const (
	maxBatch = 100
	wait     = 2 * time.Millisecond
)

type ideaRepo interface {
	GetByCardIDs(ctx context.Context, cardIDs []uuid.UUID) ([]domain.IdeaOption, error)
}

// Repos holds the repositories required by the loaders.
type Repos struct {
	Ideas ideaRepo
}

// Loaders contains the per-request loaders. Created per-request via NewLoaders.
type Loaders struct {
	IdeasByCardID *dataloader.Loader[uuid.UUID, []domain.IdeaOption]
}

// NewLoaders creates a new set of loaders backed by the given repositories.
// Must be called per-request (loaders cache results within a single request).
func NewLoaders(repos *Repos) *Loaders {
	return &Loaders{
		IdeasByCardID: newLoader(newIdeasBatchFn(repos.Ideas)),
	}
}

// newLoader creates a dataloader.Loader with standard batch parameters.
func newLoader[V any](batchFn dataloader.BatchFunc[uuid.UUID, V]) *dataloader.Loader[uuid.UUID, V] {
	return dataloader.NewBatchedLoader(
		batchFn,
		dataloader.WithWait[uuid.UUID, V](wait),
		dataloader.WithBatchCapacity[uuid.UUID, V](maxBatch),
	)
}

// AttachIdeas fills the Ideas field of every card. All keys are queued
// before any thunk is resolved so they share batches.
func (l *Loaders) AttachIdeas(ctx context.Context, cards []*domain.ContentCard) error {
	thunks := make([]dataloader.Thunk[[]domain.IdeaOption], len(cards))
	for i, c := range cards {
		thunks[i] = l.IdeasByCardID.Load(ctx, c.ID)
	}
	for i, thunk := range thunks {
		ideas, err := thunk()
		if err != nil {
			return err
		}
		cards[i].Ideas = ideas
	}
	return nil
}

// ---------------------------------------------------------------------------
// Context helpers
// ---------------------------------------------------------------------------

type contextKey string

const loadersKey contextKey = "dataloaders"

// WithLoaders stores Loaders in the context.
func WithLoaders(ctx context.Context, l *Loaders) context.Context {
	return context.WithValue(ctx, loadersKey, l)
}

// FromContext retrieves Loaders from the context.
// Panics if loaders are not present (indicates middleware misconfiguration).
func FromContext(ctx context.Context) *Loaders {
	l, ok := ctx.Value(loadersKey).(*Loaders)
	if !ok || l == nil {
		panic("dataloader: loaders not found in context, is the middleware configured?")
	}
	return l
}
