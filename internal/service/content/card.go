package content

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/sidra/content-factory/internal/domain"
	"github.com/sidra/content-factory/pkg/ctxutil"
)

// CreateCard starts an empty draft card for the authenticated user.
func (s *Service) CreateCard(ctx context.Context, input CreateCardInput) (*domain.ContentCard, error) {
	principal, ok := ctxutil.PrincipalFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	card, err := s.cards.Create(ctx, s.newCard(principal, strings.TrimSpace(input.Topic), input.Platform))
	if err != nil {
		return nil, fmt.Errorf("create card: %w", err)
	}

	s.log.InfoContext(ctx, "card created",
		slog.String("card_id", card.ID.String()),
		slog.String("user", principal.Username),
	)
	card.Ideas = []domain.IdeaOption{}
	return card, nil
}

// GetCard returns a card with its idea options.
func (s *Service) GetCard(ctx context.Context, id uuid.UUID) (*domain.ContentCard, error) {
	if _, ok := ctxutil.PrincipalFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}

	card, err := s.cards.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get card: %w", err)
	}
	return s.withIdeas(ctx, card)
}

func (s *Service) newCard(author domain.Principal, topic string, platform domain.Platform) *domain.ContentCard {
	if platform == "" {
		platform = domain.DefaultPlatform
	}
	now := s.now().UTC()
	return &domain.ContentCard{
		ID:         uuid.New(),
		Topic:      topic,
		Platform:   platform,
		Status:     domain.CardStatusDraft,
		AuditTrail: []domain.AuditEntry{},
		AuthorID:   strPtr(author.ID),
		AuthorName: strPtr(author.Username),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
