package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/sidra/content-factory/internal/domain"
	"github.com/sidra/content-factory/pkg/ctxutil"
)

// ListActive returns active categories, highest priority first.
func (s *Service) ListActive(ctx context.Context) ([]domain.ContentCategory, error) {
	if _, ok := ctxutil.PrincipalFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}
	return s.repo.ListActive(ctx)
}

// Get returns an active category.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.ContentCategory, error) {
	if _, ok := ctxutil.PrincipalFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}
	return s.repo.GetActive(ctx, id)
}

// Create stores a new active category with medium priority and the default
// tone, content type, angle and guardrail lists.
func (s *Service) Create(ctx context.Context, input CreateCategoryInput) (*domain.ContentCategory, error) {
	principal, ok := ctxutil.PrincipalFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	category, err := s.repo.Create(ctx, &domain.ContentCategory{
		ID:                  uuid.New(),
		Name:                strings.TrimSpace(input.Name),
		Description:         strings.TrimSpace(input.Description),
		PrimaryGoal:         input.PrimaryGoal,
		PrimaryAudience:     input.PrimaryAudience,
		DefaultTone:         append([]string(nil), domain.DefaultCategoryTones...),
		DefaultContentTypes: append([]domain.ContentType(nil), domain.DefaultCategoryContentTypes...),
		Angles:              append([]string(nil), domain.DefaultCategoryAngles...),
		Guardrails:          append([]string(nil), domain.DefaultCategoryGuardrails...),
		Priority:            domain.PriorityMedium,
		IsActive:            true,
		CreatedAt:           s.now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	s.log.InfoContext(ctx, "category created",
		slog.String("category_id", category.ID.String()),
		slog.String("user", principal.Username),
	)
	return category, nil
}

// Update changes the supplied fields of a category. Deactivated categories
// can be reactivated through Update.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateCategoryInput) (*domain.ContentCategory, error) {
	principal, ok := ctxutil.PrincipalFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	params := domain.CategoryUpdateParams{
		Description:     input.Description,
		PrimaryGoal:     input.PrimaryGoal,
		PrimaryAudience: input.PrimaryAudience,
		Priority:        input.Priority,
		IsActive:        input.IsActive,
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		params.Name = &name
	}

	category, err := s.repo.Update(ctx, id, params)
	if err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}

	s.log.InfoContext(ctx, "category updated",
		slog.String("category_id", id.String()),
		slog.String("user", principal.Username),
	)
	return category, nil
}
