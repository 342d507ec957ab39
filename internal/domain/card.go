package domain

import (
	"time"

	"github.com/google/uuid"
)

// Audit labels written by moderation decisions.
const (
	AuditActionApproved = "تمت الموافقة على المحتوى"
	AuditActionRejected = "تم رفض المحتوى"
)

// ContentCard is the unit of work that moves through the content workflow.
type ContentCard struct {
	ID               uuid.UUID
	Topic            string
	SelectedIdeaID   *uuid.UUID
	CopyText         *string
	Tone             *Tone
	CultureContext   *CultureContext
	SelectedImage    *SelectedImage
	ImageUploadURL   *string
	Platform         Platform
	Status           CardStatus
	ModerationStatus *ModerationStatus
	ModerationReason *string
	AuditTrail       []AuditEntry
	ScheduledDate    *time.Time
	ScheduledTime    *string
	Notes            *string
	AuthorID         *string
	AuthorName       *string
	IsManualIdea     bool
	IsManualCopy     bool
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Ideas is populated by read views only.
	Ideas []IdeaOption
}

// InModerationQueue reports whether the card awaits a moderation decision.
func (c *ContentCard) InModerationQueue() bool {
	return c.Status == CardStatusUnderReview &&
		c.ModerationStatus != nil && *c.ModerationStatus == ModerationPending
}

// SelectedImage is the image attached to a card.
type SelectedImage struct {
	ID     string
	URL    string
	Prompt string
	Source ImageSource
}

// AuditEntry is one immutable record in a card's audit trail.
type AuditEntry struct {
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
	User      string    `json:"user"`
	Details   string    `json:"details"`
}

// IdeaOption is a candidate idea owned by exactly one card.
type IdeaOption struct {
	ID         uuid.UUID
	CardID     uuid.UUID
	Text       string
	Rationale  string
	AuthorID   *string
	AuthorName *string
	IsManual   bool
}

// IdeaDraft is an idea produced by the generator before it is persisted.
type IdeaDraft struct {
	Text      string
	Rationale string
}

// ImageDescriptor is an image produced by the generator.
type ImageDescriptor struct {
	ID     string
	URL    string
	Prompt string
	Source ImageSource
}

// CardGuard is the state a card must be in for an update to apply.
// Nil fields are not checked.
type CardGuard struct {
	Status           *CardStatus
	ModerationStatus *ModerationStatus
}

// CardPatch lists the fields to change on a card. Nil fields are left as is.
// ClearModerationStatus resets the moderation status to unset.
type CardPatch struct {
	SelectedIdeaID   *uuid.UUID
	CopyText         *string
	Tone             *Tone
	CultureContext   *CultureContext
	SelectedImage    *SelectedImage
	ImageUploadURL   *string
	Platform         *Platform
	Status           *CardStatus
	ModerationStatus *ModerationStatus
	ModerationReason *string
	ScheduledDate    *time.Time
	ScheduledTime    *string
	Notes            *string
	AuthorID         *string
	AuthorName       *string
	IsManualIdea     *bool
	IsManualCopy     *bool

	ClearModerationStatus bool
}

// IsEmpty reports whether the patch changes nothing.
func (p CardPatch) IsEmpty() bool {
	return p == CardPatch{}
}

// Apply writes the patch onto c in place.
func (p CardPatch) Apply(c *ContentCard) {
	if p.SelectedIdeaID != nil {
		id := *p.SelectedIdeaID
		c.SelectedIdeaID = &id
	}
	if p.CopyText != nil {
		c.CopyText = ptrCopy(p.CopyText)
	}
	if p.Tone != nil {
		c.Tone = ptrCopy(p.Tone)
	}
	if p.CultureContext != nil {
		c.CultureContext = ptrCopy(p.CultureContext)
	}
	if p.SelectedImage != nil {
		img := *p.SelectedImage
		c.SelectedImage = &img
	}
	if p.ImageUploadURL != nil {
		c.ImageUploadURL = ptrCopy(p.ImageUploadURL)
	}
	if p.Platform != nil {
		c.Platform = *p.Platform
	}
	if p.Status != nil {
		c.Status = *p.Status
	}
	if p.ClearModerationStatus {
		c.ModerationStatus = nil
	}
	if p.ModerationStatus != nil {
		c.ModerationStatus = ptrCopy(p.ModerationStatus)
	}
	if p.ModerationReason != nil {
		c.ModerationReason = ptrCopy(p.ModerationReason)
	}
	if p.ScheduledDate != nil {
		c.ScheduledDate = ptrCopy(p.ScheduledDate)
	}
	if p.ScheduledTime != nil {
		c.ScheduledTime = ptrCopy(p.ScheduledTime)
	}
	if p.Notes != nil {
		c.Notes = ptrCopy(p.Notes)
	}
	if p.AuthorID != nil {
		c.AuthorID = ptrCopy(p.AuthorID)
	}
	if p.AuthorName != nil {
		c.AuthorName = ptrCopy(p.AuthorName)
	}
	if p.IsManualIdea != nil {
		c.IsManualIdea = *p.IsManualIdea
	}
	if p.IsManualCopy != nil {
		c.IsManualCopy = *p.IsManualCopy
	}
}

// Matches reports whether c satisfies the guard.
func (g CardGuard) Matches(c *ContentCard) bool {
	if g.Status != nil && c.Status != *g.Status {
		return false
	}
	if g.ModerationStatus != nil {
		if c.ModerationStatus == nil || *c.ModerationStatus != *g.ModerationStatus {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the card.
func (c *ContentCard) Clone() *ContentCard {
	out := *c
	out.SelectedIdeaID = ptrCopy(c.SelectedIdeaID)
	out.CopyText = ptrCopy(c.CopyText)
	out.Tone = ptrCopy(c.Tone)
	out.CultureContext = ptrCopy(c.CultureContext)
	out.SelectedImage = ptrCopy(c.SelectedImage)
	out.ImageUploadURL = ptrCopy(c.ImageUploadURL)
	out.ModerationStatus = ptrCopy(c.ModerationStatus)
	out.ModerationReason = ptrCopy(c.ModerationReason)
	out.ScheduledDate = ptrCopy(c.ScheduledDate)
	out.ScheduledTime = ptrCopy(c.ScheduledTime)
	out.Notes = ptrCopy(c.Notes)
	out.AuthorID = ptrCopy(c.AuthorID)
	out.AuthorName = ptrCopy(c.AuthorName)
	out.AuditTrail = append([]AuditEntry(nil), c.AuditTrail...)
	out.Ideas = append([]IdeaOption(nil), c.Ideas...)
	return &out
}

func ptrCopy[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
