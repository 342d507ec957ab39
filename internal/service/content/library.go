package content

import (
	"context"
	"fmt"

	"github.com/sidra/content-factory/internal/domain"
	"github.com/sidra/content-factory/pkg/ctxutil"
)

// Library returns archived cards, oldest first.
func (s *Service) Library(ctx context.Context) ([]*domain.ContentCard, error) {
	if _, ok := ctxutil.PrincipalFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}

	cards, err := s.cards.ListByStatus(ctx, domain.CardStatusInLibrary, nil)
	if err != nil {
		return nil, fmt.Errorf("list library: %w", err)
	}
	return cards, nil
}
