// Package lifecycle holds the content-card state machine. Every function is
// pure: it inspects a card, validates the request and returns the Transition
// a repository must apply. Nothing here reads the clock or touches storage.
package lifecycle

import (
	"fmt"
	"strings"
	"time"

	"github.com/sidra/content-factory/internal/domain"
)

// Step names, used as log and metric labels.
const (
	StepSelectIdea      = "select_idea"
	StepComposeCopy     = "compose_copy"
	StepManualCopy      = "manual_copy"
	StepApproveCopy     = "approve_copy"
	StepSelectImage     = "select_image"
	StepUploadImage     = "upload_image"
	StepSubmitForReview = "submit_for_review"
	StepApprove         = "approve"
	StepReject          = "reject"
	StepSchedule        = "schedule"
	StepAddToLibrary    = "add_to_library"
)

// Defaults applied when copy is approved without an explicit tone or culture.
const (
	DefaultTone    = domain.ToneFriendly
	DefaultCulture = domain.CultureSudanese
)

// Transition is the outcome of a successful lifecycle check. The repository
// applies Patch and appends Audit only if the stored card still satisfies Guard.
type Transition struct {
	Step  string
	Guard domain.CardGuard
	Patch domain.CardPatch
	Audit *domain.AuditEntry
}

// ScheduleParams carries the publishing slot for Schedule.
type ScheduleParams struct {
	Date     time.Time
	Time     string
	Platform domain.Platform
	Notes    *string
}

// SelectIdea records which of the card's ideas was chosen.
func SelectIdea(card *domain.ContentCard, idea domain.IdeaOption) (Transition, error) {
	if idea.CardID != card.ID {
		return Transition{}, domain.NewValidationError("ideaId", "idea does not belong to this card")
	}
	if card.Status != domain.CardStatusDraft {
		return Transition{}, invalid(StepSelectIdea, card)
	}

	id := idea.ID
	return Transition{
		Step:  StepSelectIdea,
		Guard: observed(card),
		Patch: domain.CardPatch{SelectedIdeaID: &id},
	}, nil
}

// ComposeCopy stores generated copy on a draft card.
func ComposeCopy(card *domain.ContentCard, text string, tone domain.Tone, culture domain.CultureContext) (Transition, error) {
	var errs []domain.FieldError
	text = strings.TrimSpace(text)
	if text == "" {
		errs = append(errs, domain.FieldError{Field: "copyText", Message: "required"})
	}
	if !tone.IsGenerated() {
		errs = append(errs, domain.FieldError{Field: "tone", Message: "unknown tone"})
	}
	if !culture.IsGenerated() {
		errs = append(errs, domain.FieldError{Field: "cultureContext", Message: "unknown culture context"})
	}
	if len(errs) > 0 {
		return Transition{}, domain.NewValidationErrors(errs)
	}

	if card.Status != domain.CardStatusDraft {
		return Transition{}, invalid(StepComposeCopy, card)
	}

	manual := false
	return Transition{
		Step:  StepComposeCopy,
		Guard: observed(card),
		Patch: domain.CardPatch{
			CopyText:       &text,
			Tone:           &tone,
			CultureContext: &culture,
			IsManualCopy:   &manual,
		},
	}, nil
}

// ManualCopy replaces the copy with human-written text and returns the card
// to Draft. Allowed while the card is still being edited.
func ManualCopy(card *domain.ContentCard, text string, author domain.Principal) (Transition, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Transition{}, domain.NewValidationError("copyText", "required")
	}

	switch card.Status {
	case domain.CardStatusDraft, domain.CardStatusReadyForReview, domain.CardStatusUnderReview:
	default:
		return Transition{}, invalid(StepManualCopy, card)
	}

	tone := domain.ToneManual
	culture := domain.CultureManual
	status := domain.CardStatusDraft
	manual := true
	authorID := author.ID
	authorName := author.Username

	return Transition{
		Step:  StepManualCopy,
		Guard: observed(card),
		Patch: domain.CardPatch{
			CopyText:              &text,
			Tone:                  &tone,
			CultureContext:        &culture,
			AuthorID:              &authorID,
			AuthorName:            &authorName,
			IsManualCopy:          &manual,
			Status:                &status,
			ClearModerationStatus: true,
		},
	}, nil
}

// ApproveCopy finalizes the copy and sends the card to review. edits, when
// non-blank, replaces the current copy.
func ApproveCopy(card *domain.ContentCard, edits *string) (Transition, error) {
	var final string
	if edits != nil {
		final = strings.TrimSpace(*edits)
	}
	if final == "" && card.CopyText != nil {
		final = strings.TrimSpace(*card.CopyText)
	}
	if final == "" {
		return Transition{}, domain.NewValidationError("copyText", "required")
	}

	if card.Status != domain.CardStatusDraft {
		return Transition{}, invalid(StepApproveCopy, card)
	}

	tone := DefaultTone
	if card.Tone != nil {
		tone = *card.Tone
	}
	culture := DefaultCulture
	if card.CultureContext != nil {
		culture = *card.CultureContext
	}
	status := domain.CardStatusUnderReview
	pending := domain.ModerationPending

	return Transition{
		Step:  StepApproveCopy,
		Guard: observed(card),
		Patch: domain.CardPatch{
			CopyText:         &final,
			Tone:             &tone,
			CultureContext:   &culture,
			Status:           &status,
			ModerationStatus: &pending,
		},
	}, nil
}

// SelectImage attaches an image and marks the card ready for review.
func SelectImage(card *domain.ContentCard, img domain.SelectedImage) (Transition, error) {
	var errs []domain.FieldError
	if strings.TrimSpace(img.URL) == "" {
		errs = append(errs, domain.FieldError{Field: "imageUrl", Message: "required"})
	}
	if !img.Source.IsValid() {
		errs = append(errs, domain.FieldError{Field: "imageSource", Message: "unknown image source"})
	}
	if len(errs) > 0 {
		return Transition{}, domain.NewValidationErrors(errs)
	}

	switch card.Status {
	case domain.CardStatusDraft, domain.CardStatusUnderReview:
	default:
		return Transition{}, invalid(StepSelectImage, card)
	}

	status := domain.CardStatusReadyForReview
	return Transition{
		Step:  StepSelectImage,
		Guard: observed(card),
		Patch: domain.CardPatch{
			SelectedImage:         &img,
			Status:                &status,
			ClearModerationStatus: true,
		},
	}, nil
}

// SubmitForReview puts the card in the moderation queue. Rejected cards
// cannot be resubmitted.
func SubmitForReview(card *domain.ContentCard) (Transition, error) {
	if card.Status == domain.CardStatusRejected {
		return Transition{}, invalid(StepSubmitForReview, card)
	}

	status := domain.CardStatusUnderReview
	pending := domain.ModerationPending
	return Transition{
		Step:  StepSubmitForReview,
		Guard: observed(card),
		Patch: domain.CardPatch{Status: &status, ModerationStatus: &pending},
	}, nil
}

// Approve accepts a queued card and schedules it.
func Approve(card *domain.ContentCard, actor string, now time.Time) (Transition, error) {
	if !card.InModerationQueue() {
		return Transition{}, invalid(StepApprove, card)
	}

	status := domain.CardStatusScheduled
	approved := domain.ModerationApproved
	return Transition{
		Step:  StepApprove,
		Guard: queued(),
		Patch: domain.CardPatch{Status: &status, ModerationStatus: &approved},
		Audit: &domain.AuditEntry{
			Action:    domain.AuditActionApproved,
			Timestamp: now.UTC(),
			User:      actor,
			Details:   fmt.Sprintf("%s: %s", domain.AuditActionApproved, card.Topic),
		},
	}, nil
}

// Reject refuses a queued card. reason is required.
func Reject(card *domain.ContentCard, actor, reason string, now time.Time) (Transition, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return Transition{}, domain.NewValidationError("reason", "required")
	}
	if !card.InModerationQueue() {
		return Transition{}, invalid(StepReject, card)
	}

	status := domain.CardStatusRejected
	rejected := domain.ModerationRejected
	return Transition{
		Step:  StepReject,
		Guard: queued(),
		Patch: domain.CardPatch{
			Status:           &status,
			ModerationStatus: &rejected,
			ModerationReason: &reason,
		},
		Audit: &domain.AuditEntry{
			Action:    domain.AuditActionRejected,
			Timestamp: now.UTC(),
			User:      actor,
			Details:   fmt.Sprintf("رفض المحتوى: %s - السبب: %s", card.Topic, reason),
		},
	}, nil
}

// Schedule assigns a publishing slot from any status.
func Schedule(card *domain.ContentCard, p ScheduleParams) (Transition, error) {
	var errs []domain.FieldError
	if p.Date.IsZero() {
		errs = append(errs, domain.FieldError{Field: "scheduledDate", Message: "required"})
	}
	if _, err := time.Parse("15:04", p.Time); err != nil {
		errs = append(errs, domain.FieldError{Field: "scheduledTime", Message: "must be HH:MM"})
	}
	if !p.Platform.IsValid() {
		errs = append(errs, domain.FieldError{Field: "platform", Message: "unknown platform"})
	}
	if len(errs) > 0 {
		return Transition{}, domain.NewValidationErrors(errs)
	}

	date := time.Date(p.Date.Year(), p.Date.Month(), p.Date.Day(), 0, 0, 0, 0, time.UTC)
	slot := p.Time
	platform := p.Platform
	status := domain.CardStatusScheduled

	patch := domain.CardPatch{
		ScheduledDate: &date,
		ScheduledTime: &slot,
		Platform:      &platform,
		Status:        &status,
	}
	if p.Notes != nil {
		notes := strings.TrimSpace(*p.Notes)
		patch.Notes = &notes
	}

	return Transition{Step: StepSchedule, Guard: observed(card), Patch: patch}, nil
}

// AddToLibrary archives the card for reuse, bypassing moderation.
func AddToLibrary(card *domain.ContentCard) (Transition, error) {
	status := domain.CardStatusInLibrary
	return Transition{
		Step:  StepAddToLibrary,
		Guard: observed(card),
		Patch: domain.CardPatch{Status: &status},
	}, nil
}

// UploadImage records an uploaded image URL without changing status.
func UploadImage(card *domain.ContentCard, url string) (Transition, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return Transition{}, domain.NewValidationError("imageUrl", "required")
	}
	return Transition{
		Step:  StepUploadImage,
		Guard: observed(card),
		Patch: domain.CardPatch{ImageUploadURL: &url},
	}, nil
}

// observed guards on the status the caller read, so a concurrent change
// between read and write surfaces as a conflict.
func observed(card *domain.ContentCard) domain.CardGuard {
	status := card.Status
	return domain.CardGuard{Status: &status}
}

func queued() domain.CardGuard {
	status := domain.CardStatusUnderReview
	pending := domain.ModerationPending
	return domain.CardGuard{Status: &status, ModerationStatus: &pending}
}

func invalid(step string, card *domain.ContentCard) error {
	state := string(card.Status)
	if card.ModerationStatus != nil {
		state += "/" + string(*card.ModerationStatus)
	}
	return fmt.Errorf("%s: card %s is %s: %w", step, card.ID, state, domain.ErrInvalidTransition)
}
