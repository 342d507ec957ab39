// Package memory is an in-process storage backend with the same contract as
// the PostgreSQL repositories. Used when storage.driver is "memory" and by
// service tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sidra/content-factory/internal/domain"
)

// Store holds all tables behind one lock so guarded updates are atomic.
type Store struct {
	mu sync.RWMutex

	cards      map[uuid.UUID]*domain.ContentCard
	ideas      map[uuid.UUID][]domain.IdeaOption
	categories map[uuid.UUID]*domain.ContentCategory
	catIdeas   map[uuid.UUID]*domain.ContentIdea
	published  map[uuid.UUID]int

	// cardSeq records insertion order; it breaks created_at ties.
	cardSeq map[uuid.UUID]uint64
	nextSeq uint64

	now func() time.Time
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		cards:      make(map[uuid.UUID]*domain.ContentCard),
		ideas:      make(map[uuid.UUID][]domain.IdeaOption),
		categories: make(map[uuid.UUID]*domain.ContentCategory),
		catIdeas:   make(map[uuid.UUID]*domain.ContentIdea),
		published:  make(map[uuid.UUID]int),
		cardSeq:    make(map[uuid.UUID]uint64),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Cards returns the content-card repository view.
func (s *Store) Cards() *CardRepo { return &CardRepo{s: s} }

// Ideas returns the idea-option repository view.
func (s *Store) Ideas() *IdeaRepo { return &IdeaRepo{s: s} }

// Categories returns the category repository view.
func (s *Store) Categories() *CategoryRepo { return &CategoryRepo{s: s} }

// Ping always succeeds unless ctx is done.
func (s *Store) Ping(ctx context.Context) error { return ctx.Err() }

// TxManager runs fn directly. Each repository call is atomic on its own;
// multi-call sequences are not rolled back.
type TxManager struct{}

// RunInTx calls fn with ctx unchanged.
func (TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// ---------------------------------------------------------------------------
// Content cards
// ---------------------------------------------------------------------------

// CardRepo is the in-memory content-card repository.
type CardRepo struct{ s *Store }

// Create stores a copy of card.
func (r *CardRepo) Create(_ context.Context, card *domain.ContentCard) (*domain.ContentCard, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.cards[card.ID]; ok {
		return nil, fmt.Errorf("content_card %s: %w", card.ID, domain.ErrAlreadyExists)
	}

	stored := card.Clone()
	stored.Ideas = nil
	if stored.AuditTrail == nil {
		stored.AuditTrail = []domain.AuditEntry{}
	}
	r.s.cards[card.ID] = stored
	r.s.nextSeq++
	r.s.cardSeq[card.ID] = r.s.nextSeq
	return stored.Clone(), nil
}

// GetByID returns a copy of the card or domain.ErrNotFound.
func (r *CardRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.ContentCard, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	card, ok := r.s.cards[id]
	if !ok {
		return nil, fmt.Errorf("content_card %s: %w", id, domain.ErrNotFound)
	}
	return card.Clone(), nil
}

// Update applies patch and appends audit when the stored card satisfies guard.
func (r *CardRepo) Update(
	_ context.Context,
	id uuid.UUID,
	guard domain.CardGuard,
	patch domain.CardPatch,
	audit *domain.AuditEntry,
) (*domain.ContentCard, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	card, ok := r.s.cards[id]
	if !ok {
		return nil, fmt.Errorf("content_card %s: %w", id, domain.ErrNotFound)
	}
	if !guard.Matches(card) {
		return nil, fmt.Errorf("content_card %s: state changed: %w", id, domain.ErrConflict)
	}

	next := card.Clone()
	patch.Apply(next)
	if next.ModerationStatus != nil && *next.ModerationStatus == domain.ModerationRejected &&
		(next.ModerationReason == nil || *next.ModerationReason == "") {
		return nil, fmt.Errorf("content_card %s: rejected without reason: %w", id, domain.ErrValidation)
	}
	if audit != nil {
		next.AuditTrail = append(next.AuditTrail, *audit)
	}
	next.UpdatedAt = r.s.now()

	r.s.cards[id] = next
	return next.Clone(), nil
}

// ListByStatus returns cards in status in insertion order.
func (r *CardRepo) ListByStatus(_ context.Context, status domain.CardStatus, moderation *domain.ModerationStatus) ([]*domain.ContentCard, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []*domain.ContentCard{}
	for _, card := range r.s.cards {
		if card.Status != status {
			continue
		}
		if moderation != nil && (card.ModerationStatus == nil || *card.ModerationStatus != *moderation) {
			continue
		}
		out = append(out, card.Clone())
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return r.s.cardSeq[out[i].ID] < r.s.cardSeq[out[j].ID]
	})
	return out, nil
}

// ---------------------------------------------------------------------------
// Idea options
// ---------------------------------------------------------------------------

// IdeaRepo is the in-memory idea-option repository.
type IdeaRepo struct{ s *Store }

// CreateBatch appends ideas to their cards in slice order.
func (r *IdeaRepo) CreateBatch(_ context.Context, ideas []domain.IdeaOption) ([]domain.IdeaOption, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, idea := range ideas {
		if _, ok := r.s.cards[idea.CardID]; !ok {
			return nil, fmt.Errorf("idea_option %s: card %s: %w", idea.ID, idea.CardID, domain.ErrNotFound)
		}
	}
	for _, idea := range ideas {
		r.s.ideas[idea.CardID] = append(r.s.ideas[idea.CardID], idea)
	}
	return append([]domain.IdeaOption{}, ideas...), nil
}

// GetByID returns an idea owned by cardID or domain.ErrNotFound.
func (r *IdeaRepo) GetByID(_ context.Context, cardID, ideaID uuid.UUID) (*domain.IdeaOption, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, idea := range r.s.ideas[cardID] {
		if idea.ID == ideaID {
			out := idea
			return &out, nil
		}
	}
	return nil, fmt.Errorf("idea_option %s: %w", ideaID, domain.ErrNotFound)
}

// GetByCardIDs returns the ideas of the given cards, grouped by card.
func (r *IdeaRepo) GetByCardIDs(_ context.Context, cardIDs []uuid.UUID) ([]domain.IdeaOption, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []domain.IdeaOption{}
	for _, id := range cardIDs {
		out = append(out, r.s.ideas[id]...)
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Categories
// ---------------------------------------------------------------------------

// CategoryRepo is the in-memory category repository.
type CategoryRepo struct{ s *Store }

var priorityRank = map[domain.Priority]int{
	domain.PriorityHigh:   0,
	domain.PriorityMedium: 1,
	domain.PriorityLow:    2,
}

// ListActive returns active categories, highest priority first, then by name.
func (r *CategoryRepo) ListActive(_ context.Context) ([]domain.ContentCategory, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []domain.ContentCategory{}
	for _, c := range r.s.categories {
		if c.IsActive {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if pi, pj := priorityRank[out[i].Priority], priorityRank[out[j].Priority]; pi != pj {
			return pi < pj
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// GetActive returns an active category or domain.ErrNotFound.
func (r *CategoryRepo) GetActive(_ context.Context, id uuid.UUID) (*domain.ContentCategory, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.categories[id]
	if !ok || !c.IsActive {
		return nil, fmt.Errorf("category %s: %w", id, domain.ErrNotFound)
	}
	out := *c
	return &out, nil
}

// Create stores a category.
func (r *CategoryRepo) Create(_ context.Context, c *domain.ContentCategory) (*domain.ContentCategory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.categories[c.ID]; ok {
		return nil, fmt.Errorf("category %s: %w", c.ID, domain.ErrAlreadyExists)
	}
	stored := *c
	r.s.categories[c.ID] = &stored
	out := stored
	return &out, nil
}

// Update changes the non-nil fields of a category.
func (r *CategoryRepo) Update(_ context.Context, id uuid.UUID, p domain.CategoryUpdateParams) (*domain.ContentCategory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.categories[id]
	if !ok {
		return nil, fmt.Errorf("category %s: %w", id, domain.ErrNotFound)
	}
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.PrimaryGoal != nil {
		c.PrimaryGoal = *p.PrimaryGoal
	}
	if p.PrimaryAudience != nil {
		c.PrimaryAudience = *p.PrimaryAudience
	}
	if p.Priority != nil {
		c.Priority = *p.Priority
	}
	if p.IsActive != nil {
		c.IsActive = *p.IsActive
	}
	out := *c
	return &out, nil
}

// CreateIdeas stores category ideas.
func (r *CategoryRepo) CreateIdeas(_ context.Context, ideas []domain.ContentIdea) ([]domain.ContentIdea, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, idea := range ideas {
		if _, ok := r.s.categories[idea.CategoryID]; !ok {
			return nil, fmt.Errorf("content_idea %s: category %s: %w", idea.ID, idea.CategoryID, domain.ErrNotFound)
		}
	}
	for _, idea := range ideas {
		stored := idea
		r.s.catIdeas[idea.ID] = &stored
	}
	return append([]domain.ContentIdea{}, ideas...), nil
}

// ApproveIdea marks an idea approved or returns domain.ErrNotFound.
func (r *CategoryRepo) ApproveIdea(_ context.Context, id uuid.UUID) (*domain.ContentIdea, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	idea, ok := r.s.catIdeas[id]
	if !ok {
		return nil, fmt.Errorf("content_idea %s: %w", id, domain.ErrNotFound)
	}
	idea.Status = domain.IdeaStatusApproved
	out := *idea
	return &out, nil
}

// IdeaCounts returns total and approved idea counts per category.
func (r *CategoryRepo) IdeaCounts(_ context.Context) (map[uuid.UUID]domain.CategorySummary, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make(map[uuid.UUID]domain.CategorySummary)
	for _, idea := range r.s.catIdeas {
		sum := out[idea.CategoryID]
		sum.IdeasCount++
		if idea.Status == domain.IdeaStatusApproved {
			sum.ApprovedIdeas++
		}
		out[idea.CategoryID] = sum
	}
	return out, nil
}

// PublishedCounts returns published post counts per category.
func (r *CategoryRepo) PublishedCounts(_ context.Context) (map[uuid.UUID]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make(map[uuid.UUID]int, len(r.s.published))
	for id, n := range r.s.published {
		out[id] = n
	}
	return out, nil
}

// RecordPublished counts a published post against a category.
// Publishing has no API; tests use this to exercise summaries.
func (r *CategoryRepo) RecordPublished(categoryID uuid.UUID) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.published[categoryID]++
}
