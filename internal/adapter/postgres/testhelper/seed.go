package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sidra/content-factory/internal/domain"
)

// SeedCard inserts a card in the given status and returns it.
// UnderReview cards are seeded with a Pending moderation status.
func SeedCard(t *testing.T, pool *pgxpool.Pool, status domain.CardStatus) domain.ContentCard {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	card := domain.ContentCard{
		ID:        uuid.New(),
		Topic:     "seed-" + uuid.New().String()[:8],
		Platform:  domain.PlatformFacebook,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}

	var moderation *string
	if status == domain.CardStatusUnderReview {
		pending := domain.ModerationPending
		card.ModerationStatus = &pending
		s := string(pending)
		moderation = &s
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO content_cards (id, topic, platform, status, moderation_status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		card.ID, card.Topic, string(card.Platform), string(card.Status), moderation, card.CreatedAt, card.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: seed card: %v", err)
	}

	return card
}

// SeedCategory inserts an active category with default lists.
func SeedCategory(t *testing.T, pool *pgxpool.Pool) domain.ContentCategory {
	t.Helper()

	cat := domain.ContentCategory{
		ID:              uuid.New(),
		Name:            "category-" + uuid.New().String()[:8],
		PrimaryGoal:     domain.GoalTrust,
		PrimaryAudience: domain.AudienceParent,
		Angles:          domain.DefaultCategoryAngles,
		Priority:        domain.PriorityMedium,
		IsActive:        true,
		CreatedAt:       time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO content_categories (id, name, primary_goal, primary_audience, angles, priority, is_active, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		cat.ID, cat.Name, string(cat.PrimaryGoal), string(cat.PrimaryAudience), cat.Angles,
		string(cat.Priority), cat.IsActive, cat.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: seed category: %v", err)
	}

	return cat
}
