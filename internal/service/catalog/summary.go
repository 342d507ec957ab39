package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/sidra/content-factory/internal/domain"
	"github.com/sidra/content-factory/pkg/ctxutil"
)

// Summary returns idea, approved idea and published post counts for every
// active category.
func (s *Service) Summary(ctx context.Context) ([]domain.CategorySummary, error) {
	if _, ok := ctxutil.PrincipalFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}

	var (
		categories []domain.ContentCategory
		ideas      map[uuid.UUID]domain.CategorySummary
		published  map[uuid.UUID]int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		categories, err = s.repo.ListActive(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		ideas, err = s.repo.IdeaCounts(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		published, err = s.repo.PublishedCounts(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("category summary: %w", err)
	}

	out := make([]domain.CategorySummary, 0, len(categories))
	for _, c := range categories {
		counts := ideas[c.ID]
		out = append(out, domain.CategorySummary{
			Category:       c,
			IdeasCount:     counts.IdeasCount,
			ApprovedIdeas:  counts.ApprovedIdeas,
			PublishedPosts: published[c.ID],
		})
	}
	return out, nil
}
