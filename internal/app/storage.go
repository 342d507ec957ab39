package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/sidra/content-factory/internal/adapter/memory"
	"github.com/sidra/content-factory/internal/adapter/postgres"
	"github.com/sidra/content-factory/internal/adapter/postgres/category"
	"github.com/sidra/content-factory/internal/adapter/postgres/contentcard"
	"github.com/sidra/content-factory/internal/adapter/postgres/ideaoption"
	"github.com/sidra/content-factory/internal/config"
	"github.com/sidra/content-factory/internal/domain"
)

type cardStore interface {
	Create(ctx context.Context, card *domain.ContentCard) (*domain.ContentCard, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ContentCard, error)
	Update(ctx context.Context, id uuid.UUID, guard domain.CardGuard, patch domain.CardPatch, audit *domain.AuditEntry) (*domain.ContentCard, error)
	ListByStatus(ctx context.Context, status domain.CardStatus, moderation *domain.ModerationStatus) ([]*domain.ContentCard, error)
}

type ideaStore interface {
	CreateBatch(ctx context.Context, ideas []domain.IdeaOption) ([]domain.IdeaOption, error)
	GetByID(ctx context.Context, cardID, ideaID uuid.UUID) (*domain.IdeaOption, error)
	GetByCardIDs(ctx context.Context, cardIDs []uuid.UUID) ([]domain.IdeaOption, error)
}

type categoryStore interface {
	ListActive(ctx context.Context) ([]domain.ContentCategory, error)
	GetActive(ctx context.Context, id uuid.UUID) (*domain.ContentCategory, error)
	Create(ctx context.Context, c *domain.ContentCategory) (*domain.ContentCategory, error)
	Update(ctx context.Context, id uuid.UUID, p domain.CategoryUpdateParams) (*domain.ContentCategory, error)
	CreateIdeas(ctx context.Context, ideas []domain.ContentIdea) ([]domain.ContentIdea, error)
	ApproveIdea(ctx context.Context, id uuid.UUID) (*domain.ContentIdea, error)
	IdeaCounts(ctx context.Context) (map[uuid.UUID]domain.CategorySummary, error)
	PublishedCounts(ctx context.Context) (map[uuid.UUID]int, error)
}

type txRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type pinger interface {
	Ping(ctx context.Context) error
}

// storage is the repository set selected by storage.driver.
type storage struct {
	driver     string
	cards      cardStore
	ideas      ideaStore
	categories categoryStore
	tx         txRunner
	health     pinger
	close      func()
}

func openStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*storage, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		logger.Warn("using in-memory storage, data is lost on restart")
		store := memory.NewStore()
		return &storage{
			driver:     config.StorageDriverMemory,
			cards:      store.Cards(),
			ideas:      store.Ideas(),
			categories: store.Categories(),
			tx:         memory.TxManager{},
			health:     store,
			close:      func() {},
		}, nil

	case config.StorageDriverPostgres:
		if cfg.Database.AutoMigrate {
			if err := postgres.Migrate(ctx, cfg.Database.DSN, logger); err != nil {
				return nil, fmt.Errorf("migrate: %w", err)
			}
		}
		pool, err := postgres.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, err
		}
		return &storage{
			driver:     config.StorageDriverPostgres,
			cards:      contentcard.New(pool),
			ideas:      ideaoption.New(pool),
			categories: category.New(pool),
			tx:         postgres.NewTxManager(pool),
			health:     pool,
			close:      pool.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
