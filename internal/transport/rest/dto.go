package rest

import (
	"time"

	"github.com/sidra/content-factory/internal/domain"
)

type cardResponse struct {
	ID               string                   `json:"id"`
	Topic            string                   `json:"topic"`
	SelectedIdeaID   *string                  `json:"selectedIdeaId,omitempty"`
	CopyText         *string                  `json:"copyText,omitempty"`
	Tone             *domain.Tone             `json:"tone,omitempty"`
	CultureContext   *domain.CultureContext   `json:"cultureContext,omitempty"`
	SelectedImage    *imageResponse           `json:"selectedImage,omitempty"`
	ImageUploadURL   *string                  `json:"imageUploadUrl,omitempty"`
	Platform         domain.Platform          `json:"platform"`
	Status           domain.CardStatus        `json:"status"`
	ModerationStatus *domain.ModerationStatus `json:"moderationStatus,omitempty"`
	ModerationReason *string                  `json:"moderationReason,omitempty"`
	AuditTrail       []domain.AuditEntry      `json:"auditTrail"`
	ScheduledDate    *string                  `json:"scheduledDate,omitempty"`
	ScheduledTime    *string                  `json:"scheduledTime,omitempty"`
	Notes            *string                  `json:"notes,omitempty"`
	AuthorID         *string                  `json:"authorId,omitempty"`
	AuthorName       *string                  `json:"authorName,omitempty"`
	IsManualIdea     bool                     `json:"isManualIdea"`
	IsManualCopy     bool                     `json:"isManualCopy"`
	Ideas            []ideaResponse           `json:"ideas"`
	CreatedAt        time.Time                `json:"createdAt"`
	UpdatedAt        time.Time                `json:"updatedAt"`
}

type ideaResponse struct {
	ID         string  `json:"id"`
	Text       string  `json:"text"`
	Rationale  string  `json:"rationale,omitempty"`
	AuthorID   *string `json:"authorId,omitempty"`
	AuthorName *string `json:"authorName,omitempty"`
	IsManual   bool    `json:"isManual"`
}

type imageResponse struct {
	ID     string             `json:"id"`
	URL    string             `json:"url"`
	Prompt string             `json:"prompt,omitempty"`
	Source domain.ImageSource `json:"source"`
}

type categoryResponse struct {
	ID                  string               `json:"id"`
	Name                string               `json:"name"`
	Description         string               `json:"description"`
	PrimaryGoal         domain.PrimaryGoal   `json:"primaryGoal"`
	PrimaryAudience     domain.Audience      `json:"primaryAudience"`
	DefaultTone         []string             `json:"defaultTone"`
	DefaultContentTypes []domain.ContentType `json:"defaultContentTypes"`
	Angles              []string             `json:"angles"`
	Guardrails          []string             `json:"guardrails"`
	Priority            domain.Priority      `json:"priority"`
	IsActive            bool                 `json:"isActive"`
	CreatedAt           time.Time            `json:"createdAt"`
}

type contentIdeaResponse struct {
	ID          string             `json:"id"`
	CategoryID  string             `json:"categoryId"`
	ContentType domain.ContentType `json:"contentType"`
	Angle       string             `json:"angle"`
	IdeaText    string             `json:"ideaText"`
	Status      domain.IdeaStatus  `json:"status"`
	CreatedBy   *string            `json:"createdBy,omitempty"`
	CreatedAt   time.Time          `json:"createdAt"`
}

type summaryResponse struct {
	Category       categoryResponse `json:"category"`
	IdeasCount     int              `json:"ideasCount"`
	ApprovedIdeas  int              `json:"approvedIdeas"`
	PublishedPosts int              `json:"publishedPosts"`
}

func toCardResponse(c *domain.ContentCard) cardResponse {
	resp := cardResponse{
		ID:               c.ID.String(),
		Topic:            c.Topic,
		CopyText:         c.CopyText,
		Tone:             c.Tone,
		CultureContext:   c.CultureContext,
		ImageUploadURL:   c.ImageUploadURL,
		Platform:         c.Platform,
		Status:           c.Status,
		ModerationStatus: c.ModerationStatus,
		ModerationReason: c.ModerationReason,
		AuditTrail:       c.AuditTrail,
		ScheduledTime:    c.ScheduledTime,
		Notes:            c.Notes,
		AuthorID:         c.AuthorID,
		AuthorName:       c.AuthorName,
		IsManualIdea:     c.IsManualIdea,
		IsManualCopy:     c.IsManualCopy,
		Ideas:            make([]ideaResponse, 0, len(c.Ideas)),
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
	if resp.AuditTrail == nil {
		resp.AuditTrail = []domain.AuditEntry{}
	}
	if c.SelectedIdeaID != nil {
		s := c.SelectedIdeaID.String()
		resp.SelectedIdeaID = &s
	}
	if c.SelectedImage != nil {
		img := imageResponse(*c.SelectedImage)
		resp.SelectedImage = &img
	}
	if c.ScheduledDate != nil {
		s := c.ScheduledDate.Format(time.DateOnly)
		resp.ScheduledDate = &s
	}
	for _, idea := range c.Ideas {
		resp.Ideas = append(resp.Ideas, ideaResponse{
			ID:         idea.ID.String(),
			Text:       idea.Text,
			Rationale:  idea.Rationale,
			AuthorID:   idea.AuthorID,
			AuthorName: idea.AuthorName,
			IsManual:   idea.IsManual,
		})
	}
	return resp
}

func toCardResponses(cards []*domain.ContentCard) []cardResponse {
	out := make([]cardResponse, 0, len(cards))
	for _, c := range cards {
		out = append(out, toCardResponse(c))
	}
	return out
}

func toImageResponse(img domain.ImageDescriptor) imageResponse {
	return imageResponse(img)
}

func toCategoryResponse(c domain.ContentCategory) categoryResponse {
	return categoryResponse{
		ID:                  c.ID.String(),
		Name:                c.Name,
		Description:         c.Description,
		PrimaryGoal:         c.PrimaryGoal,
		PrimaryAudience:     c.PrimaryAudience,
		DefaultTone:         nonNil(c.DefaultTone),
		DefaultContentTypes: nonNil(c.DefaultContentTypes),
		Angles:              nonNil(c.Angles),
		Guardrails:          nonNil(c.Guardrails),
		Priority:            c.Priority,
		IsActive:            c.IsActive,
		CreatedAt:           c.CreatedAt,
	}
}

func toContentIdeaResponse(i domain.ContentIdea) contentIdeaResponse {
	return contentIdeaResponse{
		ID:          i.ID.String(),
		CategoryID:  i.CategoryID.String(),
		ContentType: i.ContentType,
		Angle:       i.Angle,
		IdeaText:    i.IdeaText,
		Status:      i.Status,
		CreatedBy:   i.CreatedBy,
		CreatedAt:   i.CreatedAt,
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
