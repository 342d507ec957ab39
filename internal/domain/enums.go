package domain

// CardStatus is the workflow position of a content card.
type CardStatus string

const (
	CardStatusDraft          CardStatus = "Draft"
	CardStatusReadyForReview CardStatus = "ReadyForReview"
	CardStatusUnderReview    CardStatus = "UnderReview"
	CardStatusScheduled      CardStatus = "Scheduled"
	CardStatusRejected       CardStatus = "Rejected"
	CardStatusInLibrary      CardStatus = "InLibrary"
)

func (s CardStatus) String() string { return string(s) }

func (s CardStatus) IsValid() bool {
	switch s {
	case CardStatusDraft, CardStatusReadyForReview, CardStatusUnderReview,
		CardStatusScheduled, CardStatusRejected, CardStatusInLibrary:
		return true
	}
	return false
}

// ModerationStatus is the reviewer decision attached to a card.
type ModerationStatus string

const (
	ModerationPending  ModerationStatus = "Pending"
	ModerationApproved ModerationStatus = "Approved"
	ModerationRejected ModerationStatus = "Rejected"
)

func (m ModerationStatus) String() string { return string(m) }

func (m ModerationStatus) IsValid() bool {
	switch m {
	case ModerationPending, ModerationApproved, ModerationRejected:
		return true
	}
	return false
}

// Tone is the voice used for generated copy.
// ToneManual is reserved for human-written copy.
type Tone string

const (
	ToneFriendly     Tone = "friendly"
	ToneProfessional Tone = "professional"
	ToneCreative     Tone = "creative"
	ToneFormal       Tone = "formal"
	ToneManual       Tone = "manual"
)

func (t Tone) String() string { return string(t) }

func (t Tone) IsValid() bool {
	switch t {
	case ToneFriendly, ToneProfessional, ToneCreative, ToneFormal, ToneManual:
		return true
	}
	return false
}

// IsGenerated reports whether the tone may be requested from the generator.
func (t Tone) IsGenerated() bool {
	return t.IsValid() && t != ToneManual
}

// CultureContext selects the cultural framing of copy.
type CultureContext string

const (
	CultureSudanese CultureContext = "sudanese"
	CultureBritish  CultureContext = "british"
	CultureHybrid   CultureContext = "hybrid"
	CultureManual   CultureContext = "manual"
)

func (c CultureContext) String() string { return string(c) }

func (c CultureContext) IsValid() bool {
	switch c {
	case CultureSudanese, CultureBritish, CultureHybrid, CultureManual:
		return true
	}
	return false
}

func (c CultureContext) IsGenerated() bool {
	return c.IsValid() && c != CultureManual
}

// Platform is the publishing target of a card.
type Platform string

const (
	PlatformFacebook  Platform = "facebook"
	PlatformInstagram Platform = "instagram"
	PlatformTwitter   Platform = "twitter"
	PlatformTelegram  Platform = "telegram"
)

// DefaultPlatform is applied when a card is created without one.
const DefaultPlatform = PlatformFacebook

func (p Platform) String() string { return string(p) }

func (p Platform) IsValid() bool {
	switch p {
	case PlatformFacebook, PlatformInstagram, PlatformTwitter, PlatformTelegram:
		return true
	}
	return false
}

// ImageSource records where a selected image came from.
type ImageSource string

const (
	ImageSourceGenerated ImageSource = "generated"
	ImageSourceLibrary   ImageSource = "library"
	ImageSourceUpload    ImageSource = "upload"
)

func (s ImageSource) String() string { return string(s) }

func (s ImageSource) IsValid() bool {
	switch s {
	case ImageSourceGenerated, ImageSourceLibrary, ImageSourceUpload:
		return true
	}
	return false
}

// PrimaryGoal is the marketing goal of a content category.
type PrimaryGoal string

const (
	GoalTrust      PrimaryGoal = "trust"
	GoalObjections PrimaryGoal = "objections"
	GoalEducation  PrimaryGoal = "education"
	GoalConversion PrimaryGoal = "conversion"
	GoalBranding   PrimaryGoal = "branding"
	GoalSeasonal   PrimaryGoal = "seasonal"
)

func (g PrimaryGoal) String() string { return string(g) }

func (g PrimaryGoal) IsValid() bool {
	switch g {
	case GoalTrust, GoalObjections, GoalEducation, GoalConversion, GoalBranding, GoalSeasonal:
		return true
	}
	return false
}

// Audience is the primary readership of a content category.
type Audience string

const (
	AudienceParent  Audience = "parent"
	AudienceStudent Audience = "student"
	AudienceTeacher Audience = "teacher"
	AudienceGeneral Audience = "general"
)

func (a Audience) String() string { return string(a) }

func (a Audience) IsValid() bool {
	switch a {
	case AudienceParent, AudienceStudent, AudienceTeacher, AudienceGeneral:
		return true
	}
	return false
}

// Priority orders categories on the planning board.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) String() string { return string(p) }

func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// ContentType is the post format a category idea targets.
type ContentType string

const (
	ContentTypeText      ContentType = "text"
	ContentTypeImageText ContentType = "image_text"
	ContentTypeCarousel  ContentType = "carousel"
	ContentTypeVideo     ContentType = "video"
)

func (c ContentType) String() string { return string(c) }

func (c ContentType) IsValid() bool {
	switch c {
	case ContentTypeText, ContentTypeImageText, ContentTypeCarousel, ContentTypeVideo:
		return true
	}
	return false
}

// IdeaStatus is the review state of a category idea.
type IdeaStatus string

const (
	IdeaStatusDraft    IdeaStatus = "draft"
	IdeaStatusApproved IdeaStatus = "approved"
	IdeaStatusArchived IdeaStatus = "archived"
)

func (s IdeaStatus) String() string { return string(s) }

func (s IdeaStatus) IsValid() bool {
	switch s {
	case IdeaStatusDraft, IdeaStatusApproved, IdeaStatusArchived:
		return true
	}
	return false
}
