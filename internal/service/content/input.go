package content

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sidra/content-factory/internal/domain"
	"github.com/sidra/content-factory/pkg/validate"
)

func requireCard(errs []domain.FieldError, id uuid.UUID) []domain.FieldError {
	if id == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "cardId", Message: "required"})
	}
	return errs
}

func result(errs []domain.FieldError) error {
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Cards and ideation
// ---------------------------------------------------------------------------

// CreateCardInput holds the parameters for creating an empty draft card.
type CreateCardInput struct {
	Topic    string          `json:"topic" validate:"notblank,max=500"`
	Platform domain.Platform `json:"platform" validate:"omitempty,oneof=facebook instagram twitter telegram"`
}

func (i CreateCardInput) Validate() error { return validate.Struct(i) }

// GenerateIdeasInput holds the topic to brainstorm on.
type GenerateIdeasInput struct {
	Topic string `json:"topic" validate:"notblank,max=500"`
}

func (i GenerateIdeasInput) Validate() error { return validate.Struct(i) }

// ManualIdeaInput adds a human-written idea. A nil or unknown CardID starts
// a new card.
type ManualIdeaInput struct {
	CardID   *uuid.UUID `json:"cardId"`
	IdeaText string     `json:"ideaText" validate:"notblank,max=2000"`
}

func (i ManualIdeaInput) Validate() error { return validate.Struct(i) }

// SelectIdeaInput picks one of a card's ideas.
type SelectIdeaInput struct {
	CardID uuid.UUID `json:"cardId"`
	IdeaID uuid.UUID `json:"ideaId"`
}

func (i SelectIdeaInput) Validate() error {
	errs := requireCard(nil, i.CardID)
	if i.IdeaID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "ideaId", Message: "required"})
	}
	return result(errs)
}

// ---------------------------------------------------------------------------
// Copywriting
// ---------------------------------------------------------------------------

// ComposeCopyInput requests generated copy for a card.
type ComposeCopyInput struct {
	CardID         uuid.UUID             `json:"cardId"`
	IdeaTextSeed   string                `json:"ideaTextSeed" validate:"notblank,max=2000"`
	Tone           domain.Tone           `json:"tone" validate:"oneof=friendly professional creative formal"`
	CultureContext domain.CultureContext `json:"cultureContext" validate:"oneof=sudanese british hybrid"`
}

func (i ComposeCopyInput) Validate() error {
	return result(requireCard(validate.Fields(i), i.CardID))
}

// ManualCopyInput stores human-written copy.
type ManualCopyInput struct {
	CardID   uuid.UUID `json:"cardId"`
	CopyText string    `json:"copyText" validate:"notblank,max=5000"`
}

func (i ManualCopyInput) Validate() error {
	return result(requireCard(validate.Fields(i), i.CardID))
}

// ApproveCopyInput finalizes copy. Edits, when non-blank, replaces the
// current copy.
type ApproveCopyInput struct {
	CardID uuid.UUID `json:"cardId"`
	Edits  *string   `json:"edits" validate:"omitempty,max=5000"`
}

func (i ApproveCopyInput) Validate() error {
	return result(requireCard(validate.Fields(i), i.CardID))
}

// ---------------------------------------------------------------------------
// Visual design
// ---------------------------------------------------------------------------

// GenerateImageInput requests a generated image.
type GenerateImageInput struct {
	Prompt string `json:"prompt" validate:"notblank,max=1000"`
	Style  string `json:"style" validate:"max=100"`
}

func (i GenerateImageInput) Validate() error { return validate.Struct(i) }

// UploadImageInput records an already-hosted image for a card.
type UploadImageInput struct {
	CardID   uuid.UUID `json:"cardId"`
	ImageURL string    `json:"imageUrl" validate:"required,url"`
	FileName string    `json:"fileName" validate:"max=255"`
}

func (i UploadImageInput) Validate() error {
	return result(requireCard(validate.Fields(i), i.CardID))
}

// ImageInput describes an image chosen for a card.
type ImageInput struct {
	ID     string             `json:"id" validate:"max=200"`
	URL    string             `json:"url" validate:"required,url"`
	Prompt string             `json:"prompt" validate:"max=1000"`
	Source domain.ImageSource `json:"source" validate:"oneof=generated library upload"`
}

// SelectImageInput attaches an image to a card.
type SelectImageInput struct {
	CardID uuid.UUID  `json:"cardId"`
	Image  ImageInput `json:"imageData"`
}

func (i SelectImageInput) Validate() error {
	return result(requireCard(validate.Fields(i), i.CardID))
}

// ---------------------------------------------------------------------------
// Scheduling and moderation
// ---------------------------------------------------------------------------

// ScheduleInput assigns a publishing slot. ScheduledDate accepts
// YYYY-MM-DD or an RFC 3339 timestamp.
type ScheduleInput struct {
	CardID        uuid.UUID       `json:"cardId"`
	ScheduledDate string          `json:"scheduledDate" validate:"required"`
	ScheduledTime string          `json:"scheduledTime" validate:"required,hhmm"`
	Platform      domain.Platform `json:"platform" validate:"oneof=facebook instagram twitter telegram"`
	Notes         *string         `json:"notes" validate:"omitempty,max=2000"`
}

func (i ScheduleInput) Validate() error {
	errs := requireCard(validate.Fields(i), i.CardID)
	if i.ScheduledDate != "" {
		if _, err := i.date(); err != nil {
			errs = append(errs, domain.FieldError{Field: "scheduledDate", Message: "must be YYYY-MM-DD"})
		}
	}
	return result(errs)
}

func (i ScheduleInput) date() (time.Time, error) {
	s := strings.TrimSpace(i.ScheduledDate)
	if d, err := time.Parse(time.DateOnly, s); err == nil {
		return d, nil
	}
	return time.Parse(time.RFC3339, s)
}

// RejectInput refuses a queued card.
type RejectInput struct {
	CardID uuid.UUID `json:"cardId"`
	Reason string    `json:"reason" validate:"notblank,max=1000"`
}

func (i RejectInput) Validate() error {
	return result(requireCard(validate.Fields(i), i.CardID))
}
