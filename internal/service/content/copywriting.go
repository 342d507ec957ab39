package content

import (
	"context"
	"fmt"

	"github.com/sidra/content-factory/internal/domain"
	"github.com/sidra/content-factory/internal/lifecycle"
	"github.com/sidra/content-factory/pkg/ctxutil"
)

// ComposeCopy generates copy from an idea seed and stores it on a draft card.
func (s *Service) ComposeCopy(ctx context.Context, input ComposeCopyInput) (*domain.ContentCard, error) {
	if _, ok := ctxutil.PrincipalFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	text, err := s.gen.ComposeCopy(ctx, input.IdeaTextSeed, input.Tone, input.CultureContext)
	if err != nil {
		return nil, fmt.Errorf("compose copy: %w", err)
	}

	return s.transition(ctx, lifecycle.StepComposeCopy, input.CardID, func(card *domain.ContentCard) (lifecycle.Transition, error) {
		return lifecycle.ComposeCopy(card, text, input.Tone, input.CultureContext)
	})
}

// CreateManualCopy replaces the copy with text written by the caller and
// returns the card to draft.
func (s *Service) CreateManualCopy(ctx context.Context, input ManualCopyInput) (*domain.ContentCard, error) {
	principal, ok := ctxutil.PrincipalFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	return s.transition(ctx, lifecycle.StepManualCopy, input.CardID, func(card *domain.ContentCard) (lifecycle.Transition, error) {
		return lifecycle.ManualCopy(card, input.CopyText, principal)
	})
}

// ApproveCopy finalizes the copy and sends the card to moderation.
func (s *Service) ApproveCopy(ctx context.Context, input ApproveCopyInput) (*domain.ContentCard, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	return s.transition(ctx, lifecycle.StepApproveCopy, input.CardID, func(card *domain.ContentCard) (lifecycle.Transition, error) {
		return lifecycle.ApproveCopy(card, input.Edits)
	})
}
