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

// angleTemplates are the idea texts offered per angle. Angles without
// templates generate nothing.
var angleTemplates = map[string][]string{
	"emotional appeal": {
		"Appeal to parents' emotions with compelling storytelling",
		"Create urgency with relatable parenting challenges",
		"Highlight the positive impact of your solution",
	},
	"problem-solution": {
		"Identify common parenting problems and solutions",
		"Show before/after scenarios",
		"Demonstrate clear benefits and outcomes",
	},
	"educational": {
		"Share valuable tips and insights",
		"Provide step-by-step guidance",
		"Emphasize educational value and skill development",
		"Focus on long-term learning outcomes",
		"Highlight safety and reliability",
	},
	"storytelling": {
		"Share relatable family stories and experiences",
		"Use cultural references and traditions",
		"Create engaging narratives with lessons",
	},
}

const maxGeneratedIdeas = 5

// GenerateIdeas stores draft ideas for a category from the templates of
// the requested angle.
func (s *Service) GenerateIdeas(ctx context.Context, input GenerateIdeasInput) ([]domain.ContentIdea, error) {
	principal, ok := ctxutil.PrincipalFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetActive(ctx, input.CategoryID); err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}

	angle := strings.ToLower(strings.TrimSpace(input.Angle))
	templates := angleTemplates[angle]
	if len(templates) > maxGeneratedIdeas {
		templates = templates[:maxGeneratedIdeas]
	}
	if len(templates) == 0 {
		return []domain.ContentIdea{}, nil
	}

	now := s.now().UTC()
	ideas := make([]domain.ContentIdea, len(templates))
	for i, text := range templates {
		ideas[i] = domain.ContentIdea{
			ID:          uuid.New(),
			CategoryID:  input.CategoryID,
			ContentType: input.ContentType,
			Angle:       angle,
			IdeaText:    text,
			Status:      domain.IdeaStatusDraft,
			CreatedBy:   &principal.Username,
			CreatedAt:   now,
		}
	}

	stored, err := s.repo.CreateIdeas(ctx, ideas)
	if err != nil {
		return nil, fmt.Errorf("create ideas: %w", err)
	}

	s.log.InfoContext(ctx, "category ideas generated",
		slog.String("category_id", input.CategoryID.String()),
		slog.String("angle", angle),
		slog.Int("count", len(stored)),
	)
	return stored, nil
}

// CreateManualIdea stores a human-written draft idea for a category.
func (s *Service) CreateManualIdea(ctx context.Context, input ManualIdeaInput) (*domain.ContentIdea, error) {
	principal, ok := ctxutil.PrincipalFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	stored, err := s.repo.CreateIdeas(ctx, []domain.ContentIdea{{
		ID:          uuid.New(),
		CategoryID:  input.CategoryID,
		ContentType: input.ContentType,
		Angle:       strings.TrimSpace(input.Angle),
		IdeaText:    strings.TrimSpace(input.IdeaText),
		Status:      domain.IdeaStatusDraft,
		CreatedBy:   &principal.Username,
		CreatedAt:   s.now().UTC(),
	}})
	if err != nil {
		return nil, fmt.Errorf("create idea: %w", err)
	}
	return &stored[0], nil
}

// ApproveIdea marks a category idea approved.
func (s *Service) ApproveIdea(ctx context.Context, id uuid.UUID) (*domain.ContentIdea, error) {
	principal, ok := ctxutil.PrincipalFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	idea, err := s.repo.ApproveIdea(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("approve idea: %w", err)
	}

	s.log.InfoContext(ctx, "category idea approved",
		slog.String("idea_id", id.String()),
		slog.String("user", principal.Username),
	)
	return idea, nil
}
