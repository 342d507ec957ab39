package catalog

import (
	"github.com/google/uuid"

	"github.com/sidra/content-factory/internal/domain"
	"github.com/sidra/content-factory/pkg/validate"
)

// CreateCategoryInput holds the caller-supplied fields of a new category.
// Tone, content type, angle and guardrail lists are filled with defaults.
type CreateCategoryInput struct {
	Name            string             `json:"name" validate:"notblank,max=200"`
	Description     string             `json:"description" validate:"max=2000"`
	PrimaryGoal     domain.PrimaryGoal `json:"primaryGoal" validate:"oneof=trust objections education conversion branding seasonal"`
	PrimaryAudience domain.Audience    `json:"primaryAudience" validate:"oneof=parent student teacher general"`
}

func (i CreateCategoryInput) Validate() error { return validate.Struct(i) }

// UpdateCategoryInput changes the non-nil fields of a category.
type UpdateCategoryInput struct {
	Name            *string             `json:"name" validate:"omitempty,notblank,max=200"`
	Description     *string             `json:"description" validate:"omitempty,max=2000"`
	PrimaryGoal     *domain.PrimaryGoal `json:"primaryGoal" validate:"omitempty,oneof=trust objections education conversion branding seasonal"`
	PrimaryAudience *domain.Audience    `json:"primaryAudience" validate:"omitempty,oneof=parent student teacher general"`
	Priority        *domain.Priority    `json:"priority" validate:"omitempty,oneof=high medium low"`
	IsActive        *bool               `json:"isActive"`
}

func (i UpdateCategoryInput) Validate() error { return validate.Struct(i) }

// GenerateIdeasInput requests template ideas for one angle of a category.
type GenerateIdeasInput struct {
	CategoryID  uuid.UUID          `json:"categoryId"`
	Angle       string             `json:"angle" validate:"notblank,max=200"`
	ContentType domain.ContentType `json:"contentType" validate:"oneof=text image_text carousel video"`
}

func (i GenerateIdeasInput) Validate() error {
	return result(requireCategory(validate.Fields(i), i.CategoryID))
}

// ManualIdeaInput stores a human-written category idea.
type ManualIdeaInput struct {
	CategoryID  uuid.UUID          `json:"categoryId"`
	Angle       string             `json:"angle" validate:"max=200"`
	ContentType domain.ContentType `json:"contentType" validate:"oneof=text image_text carousel video"`
	IdeaText    string             `json:"ideaText" validate:"notblank,max=2000"`
}

func (i ManualIdeaInput) Validate() error {
	return result(requireCategory(validate.Fields(i), i.CategoryID))
}

func requireCategory(errs []domain.FieldError, id uuid.UUID) []domain.FieldError {
	if id == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "categoryId", Message: "required"})
	}
	return errs
}

func result(errs []domain.FieldError) error {
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
