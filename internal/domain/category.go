package domain

import (
	"time"

	"github.com/google/uuid"
)

// ContentCategory groups ideas around a marketing goal and audience.
type ContentCategory struct {
	ID                  uuid.UUID
	Name                string
	Description         string
	PrimaryGoal         PrimaryGoal
	PrimaryAudience     Audience
	DefaultTone         []string
	DefaultContentTypes []ContentType
	Angles              []string
	Guardrails          []string
	Priority            Priority
	IsActive            bool
	CreatedAt           time.Time
}

// CategoryUpdateParams holds the fields of a category that may change.
type CategoryUpdateParams struct {
	Name            *string
	Description     *string
	PrimaryGoal     *PrimaryGoal
	PrimaryAudience *Audience
	Priority        *Priority
	IsActive        *bool
}

// ContentIdea is an idea planned under a category, independent of any card.
type ContentIdea struct {
	ID          uuid.UUID
	CategoryID  uuid.UUID
	ContentType ContentType
	Angle       string
	IdeaText    string
	Status      IdeaStatus
	CreatedBy   *string
	CreatedAt   time.Time
}

// CategorySummary aggregates idea counts for one category.
type CategorySummary struct {
	Category       ContentCategory
	IdeasCount     int
	ApprovedIdeas  int
	PublishedPosts int
}

// Category defaults applied on creation.
var (
	DefaultCategoryTones        = []string{"calm", "educational", "professional", "reassuring", "motivational"}
	DefaultCategoryContentTypes = []ContentType{ContentTypeText, ContentTypeImageText}
	DefaultCategoryAngles       = []string{"emotional appeal", "problem-solution", "benefit-feature", "storytelling"}
	DefaultCategoryGuardrails   = []string{"No offensive content", "Ensure brand alignment", "Include call-to-action"}
)
