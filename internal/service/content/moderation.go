package content

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/sidra/content-factory/internal/domain"
	"github.com/sidra/content-factory/internal/lifecycle"
	"github.com/sidra/content-factory/pkg/ctxutil"
)

// ModerationQueue returns cards awaiting a decision, oldest first.
func (s *Service) ModerationQueue(ctx context.Context) ([]*domain.ContentCard, error) {
	if _, ok := ctxutil.PrincipalFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}

	pending := domain.ModerationPending
	cards, err := s.cards.ListByStatus(ctx, domain.CardStatusUnderReview, &pending)
	if err != nil {
		return nil, fmt.Errorf("list moderation queue: %w", err)
	}
	return cards, nil
}

// ListByStatus returns every card in status, oldest first.
func (s *Service) ListByStatus(ctx context.Context, status domain.CardStatus) ([]*domain.ContentCard, error) {
	if _, ok := ctxutil.PrincipalFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}
	if !status.IsValid() {
		return nil, domain.NewValidationError("status", "unknown status")
	}

	cards, err := s.cards.ListByStatus(ctx, status, nil)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	return cards, nil
}

// Approve accepts a queued card, schedules it and records the decision in
// the audit trail.
func (s *Service) Approve(ctx context.Context, cardID uuid.UUID) (*domain.ContentCard, error) {
	principal, ok := ctxutil.PrincipalFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if cardID == uuid.Nil {
		return nil, domain.NewValidationError("cardId", "required")
	}

	now := s.now()
	return s.transition(ctx, lifecycle.StepApprove, cardID, func(card *domain.ContentCard) (lifecycle.Transition, error) {
		return lifecycle.Approve(card, principal.Username, now)
	})
}

// Reject refuses a queued card with a reason and records the decision in
// the audit trail.
func (s *Service) Reject(ctx context.Context, input RejectInput) (*domain.ContentCard, error) {
	principal, ok := ctxutil.PrincipalFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	return s.transition(ctx, lifecycle.StepReject, input.CardID, func(card *domain.ContentCard) (lifecycle.Transition, error) {
		return lifecycle.Reject(card, principal.Username, input.Reason, now)
	})
}
