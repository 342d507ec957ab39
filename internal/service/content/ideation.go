package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/sidra/content-factory/internal/domain"
	"github.com/sidra/content-factory/internal/lifecycle"
	"github.com/sidra/content-factory/pkg/ctxutil"
)

const (
	manualTopicRunes   = 100
	manualTopicDefault = "فكرة يدوية"
)

// GenerateIdeas creates a draft card for topic and stores the generated
// idea options on it.
func (s *Service) GenerateIdeas(ctx context.Context, input GenerateIdeasInput) (*domain.ContentCard, error) {
	principal, ok := ctxutil.PrincipalFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	topic := strings.TrimSpace(input.Topic)
	drafts, err := s.gen.GenerateIdeas(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("generate ideas: %w", err)
	}

	var card *domain.ContentCard
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		created, createErr := s.cards.Create(txCtx, s.newCard(principal, topic, domain.DefaultPlatform))
		if createErr != nil {
			return fmt.Errorf("create card: %w", createErr)
		}

		options := make([]domain.IdeaOption, len(drafts))
		for i, d := range drafts {
			options[i] = domain.IdeaOption{ID: uuid.New(), CardID: created.ID, Text: d.Text, Rationale: d.Rationale}
		}
		stored, ideaErr := s.ideas.CreateBatch(txCtx, options)
		if ideaErr != nil {
			return fmt.Errorf("create ideas: %w", ideaErr)
		}

		created.Ideas = stored
		card = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "ideas generated",
		slog.String("card_id", card.ID.String()),
		slog.Int("count", len(card.Ideas)),
		slog.String("user", principal.Username),
	)
	return card, nil
}

// CreateManualIdea stores a human-written idea. When the card id is absent
// or unknown a new draft card is created, titled from the idea text.
func (s *Service) CreateManualIdea(ctx context.Context, input ManualIdeaInput) (*domain.ContentCard, error) {
	principal, ok := ctxutil.PrincipalFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	text := strings.TrimSpace(input.IdeaText)

	var card *domain.ContentCard
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		existing, err := s.existingCard(txCtx, input.CardID)
		if err != nil {
			return err
		}
		if existing == nil {
			existing, err = s.cards.Create(txCtx, s.newCard(principal, topicFromIdea(text), domain.DefaultPlatform))
			if err != nil {
				return fmt.Errorf("create card: %w", err)
			}
		}

		idea := domain.IdeaOption{
			ID:         uuid.New(),
			CardID:     existing.ID,
			Text:       text,
			AuthorID:   strPtr(principal.ID),
			AuthorName: strPtr(principal.Username),
			IsManual:   true,
		}
		if _, err := s.ideas.CreateBatch(txCtx, []domain.IdeaOption{idea}); err != nil {
			return fmt.Errorf("create idea: %w", err)
		}

		manual := true
		updated, err := s.cards.Update(txCtx, existing.ID, domain.CardGuard{}, domain.CardPatch{
			IsManualIdea: &manual,
			AuthorID:     strPtr(principal.ID),
			AuthorName:   strPtr(principal.Username),
		}, nil)
		if err != nil {
			return fmt.Errorf("mark manual idea: %w", err)
		}

		card, err = s.withIdeas(txCtx, updated)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "manual idea added",
		slog.String("card_id", card.ID.String()),
		slog.String("user", principal.Username),
	)
	return card, nil
}

// SelectIdea records the chosen idea on a draft card.
func (s *Service) SelectIdea(ctx context.Context, input SelectIdeaInput) (*domain.ContentCard, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	return s.transition(ctx, lifecycle.StepSelectIdea, input.CardID, func(card *domain.ContentCard) (lifecycle.Transition, error) {
		idea, err := s.ideas.GetByID(ctx, card.ID, input.IdeaID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return lifecycle.Transition{}, domain.NewValidationError("ideaId", "idea does not belong to this card")
			}
			return lifecycle.Transition{}, fmt.Errorf("get idea: %w", err)
		}
		return lifecycle.SelectIdea(card, *idea)
	})
}

// existingCard returns nil, nil when id is nil or unknown.
func (s *Service) existingCard(ctx context.Context, id *uuid.UUID) (*domain.ContentCard, error) {
	if id == nil || *id == uuid.Nil {
		return nil, nil
	}
	card, err := s.cards.GetByID(ctx, *id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get card: %w", err)
	}
	return card, nil
}

func topicFromIdea(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return manualTopicDefault
	}
	if utf8.RuneCountInString(text) <= manualTopicRunes {
		return text
	}
	return strings.TrimSpace(string([]rune(text)[:manualTopicRunes]))
}
