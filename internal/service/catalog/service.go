package catalog

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sidra/content-factory/internal/domain"
)

type categoryRepo interface {
	ListActive(ctx context.Context) ([]domain.ContentCategory, error)
	GetActive(ctx context.Context, id uuid.UUID) (*domain.ContentCategory, error)
	Create(ctx context.Context, c *domain.ContentCategory) (*domain.ContentCategory, error)
	Update(ctx context.Context, id uuid.UUID, p domain.CategoryUpdateParams) (*domain.ContentCategory, error)
	CreateIdeas(ctx context.Context, ideas []domain.ContentIdea) ([]domain.ContentIdea, error)
	ApproveIdea(ctx context.Context, id uuid.UUID) (*domain.ContentIdea, error)
	IdeaCounts(ctx context.Context) (map[uuid.UUID]domain.CategorySummary, error)
	PublishedCounts(ctx context.Context) (map[uuid.UUID]int, error)
}

// Service manages content categories and the ideas planned under them.
type Service struct {
	log  *slog.Logger
	repo categoryRepo
	now  func() time.Time
}

// NewService creates a new catalog service.
func NewService(logger *slog.Logger, repo categoryRepo) *Service {
	return &Service{
		log:  logger.With("service", "catalog"),
		repo: repo,
		now:  time.Now,
	}
}
