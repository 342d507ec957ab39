package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sidra/content-factory/internal/domain"
	"github.com/sidra/content-factory/internal/generation"
	"github.com/sidra/content-factory/internal/lifecycle"
	"github.com/sidra/content-factory/internal/metrics"
	"github.com/sidra/content-factory/pkg/ctxutil"
)

type cardRepo interface {
	Create(ctx context.Context, card *domain.ContentCard) (*domain.ContentCard, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ContentCard, error)
	Update(ctx context.Context, id uuid.UUID, guard domain.CardGuard, patch domain.CardPatch, audit *domain.AuditEntry) (*domain.ContentCard, error)
	ListByStatus(ctx context.Context, status domain.CardStatus, moderation *domain.ModerationStatus) ([]*domain.ContentCard, error)
}

type ideaRepo interface {
	CreateBatch(ctx context.Context, ideas []domain.IdeaOption) ([]domain.IdeaOption, error)
	GetByID(ctx context.Context, cardID, ideaID uuid.UUID) (*domain.IdeaOption, error)
	GetByCardIDs(ctx context.Context, cardIDs []uuid.UUID) ([]domain.IdeaOption, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type transitionRecorder interface {
	RecordTransition(step, outcome string)
}

type noopRecorder struct{}

func (noopRecorder) RecordTransition(string, string) {}

// Service runs the content-card workflow: ideation, copywriting, visual
// design, scheduling and moderation.
type Service struct {
	cards   cardRepo
	ideas   ideaRepo
	tx      txManager
	gen     generation.Generator
	metrics transitionRecorder
	log     *slog.Logger
	now     func() time.Time
}

// NewService creates a new content service. rec may be nil.
func NewService(
	log *slog.Logger,
	cards cardRepo,
	ideas ideaRepo,
	tx txManager,
	gen generation.Generator,
	rec transitionRecorder,
) *Service {
	if rec == nil {
		rec = noopRecorder{}
	}
	return &Service{
		cards:   cards,
		ideas:   ideas,
		tx:      tx,
		gen:     gen,
		metrics: rec,
		log:     log.With("service", "content"),
		now:     time.Now,
	}
}

// decideFunc inspects the current card and returns the transition to apply.
type decideFunc func(card *domain.ContentCard) (lifecycle.Transition, error)

// transition loads the card, asks decide for a transition and applies it
// with a guarded update.
func (s *Service) transition(ctx context.Context, step string, cardID uuid.UUID, decide decideFunc) (*domain.ContentCard, error) {
	principal, ok := ctxutil.PrincipalFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	updated, err := s.applyTransition(ctx, cardID, decide)
	s.metrics.RecordTransition(step, outcome(err))
	if err != nil {
		s.log.DebugContext(ctx, "card transition refused",
			slog.String("step", step),
			slog.String("card_id", cardID.String()),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.log.InfoContext(ctx, "card transition",
		slog.String("step", step),
		slog.String("card_id", cardID.String()),
		slog.String("status", updated.Status.String()),
		slog.String("user", principal.Username),
	)
	return updated, nil
}

func (s *Service) applyTransition(ctx context.Context, cardID uuid.UUID, decide decideFunc) (*domain.ContentCard, error) {
	card, err := s.cards.GetByID(ctx, cardID)
	if err != nil {
		return nil, fmt.Errorf("get card: %w", err)
	}

	tr, err := decide(card)
	if err != nil {
		return nil, err
	}

	updated, err := s.cards.Update(ctx, cardID, tr.Guard, tr.Patch, tr.Audit)
	if err != nil {
		return nil, fmt.Errorf("update card: %w", err)
	}
	return updated, nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, domain.ErrValidation):
		return metrics.OutcomeRejected
	case errors.Is(err, domain.ErrConflict):
		return metrics.OutcomeConflict
	case errors.Is(err, domain.ErrNotFound):
		return metrics.OutcomeNotFound
	default:
		return metrics.OutcomeError
	}
}

// withIdeas attaches the card's idea options.
func (s *Service) withIdeas(ctx context.Context, card *domain.ContentCard) (*domain.ContentCard, error) {
	ideas, err := s.ideas.GetByCardIDs(ctx, []uuid.UUID{card.ID})
	if err != nil {
		return nil, fmt.Errorf("get ideas: %w", err)
	}
	card.Ideas = ideas
	return card, nil
}

func strPtr(s string) *string { return &s }
