package content

import (
	"context"

	"github.com/google/uuid"

	"github.com/sidra/content-factory/internal/domain"
	"github.com/sidra/content-factory/internal/lifecycle"
)

// Schedule assigns a publishing slot to the card.
func (s *Service) Schedule(ctx context.Context, input ScheduleInput) (*domain.ContentCard, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	date, _ := input.date()

	params := lifecycle.ScheduleParams{
		Date:     date,
		Time:     input.ScheduledTime,
		Platform: input.Platform,
		Notes:    input.Notes,
	}
	return s.transition(ctx, lifecycle.StepSchedule, input.CardID, func(card *domain.ContentCard) (lifecycle.Transition, error) {
		return lifecycle.Schedule(card, params)
	})
}

// SubmitForReview puts the card into the moderation queue.
func (s *Service) SubmitForReview(ctx context.Context, cardID uuid.UUID) (*domain.ContentCard, error) {
	return s.transition(ctx, lifecycle.StepSubmitForReview, cardID, lifecycle.SubmitForReview)
}

// AddToLibrary archives the card for later reuse.
func (s *Service) AddToLibrary(ctx context.Context, cardID uuid.UUID) (*domain.ContentCard, error) {
	return s.transition(ctx, lifecycle.StepAddToLibrary, cardID, lifecycle.AddToLibrary)
}
