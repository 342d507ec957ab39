package generation

import (
	"context"
	"log/slog"

	"github.com/sidra/content-factory/internal/domain"
)

// FallbackRecorder counts fallbacks per kind. *metrics.Metrics satisfies it.
type FallbackRecorder interface {
	RecordFallback(kind string)
}

// Fallback answers from secondary whenever primary fails, so generation
// errors never reach callers.
type Fallback struct {
	primary   Generator
	secondary Generator
	log       *slog.Logger
	rec       FallbackRecorder
}

// WithFallback wraps primary with secondary. rec may be nil.
func WithFallback(primary, secondary Generator, logger *slog.Logger, rec FallbackRecorder) *Fallback {
	return &Fallback{
		primary:   primary,
		secondary: secondary,
		log:       logger.With("component", "generation"),
		rec:       rec,
	}
}

// GenerateIdeas returns primary ideas, or secondary ones when primary fails or returns none.
func (f *Fallback) GenerateIdeas(ctx context.Context, topic string) ([]domain.IdeaDraft, error) {
	ideas, err := f.primary.GenerateIdeas(ctx, topic)
	if err == nil && len(ideas) > 0 {
		return ideas, nil
	}
	f.fellBack(ctx, KindIdeas, err)
	return f.secondary.GenerateIdeas(ctx, topic)
}

// ComposeCopy returns primary copy, or secondary copy when primary fails or returns empty text.
func (f *Fallback) ComposeCopy(ctx context.Context, seed string, tone domain.Tone, culture domain.CultureContext) (string, error) {
	text, err := f.primary.ComposeCopy(ctx, seed, tone, culture)
	if err == nil && text != "" {
		return text, nil
	}
	f.fellBack(ctx, KindCopy, err)
	return f.secondary.ComposeCopy(ctx, seed, tone, culture)
}

// GenerateImage returns the primary image, or the secondary one when primary has no URL.
func (f *Fallback) GenerateImage(ctx context.Context, prompt, style string) (domain.ImageDescriptor, error) {
	img, err := f.primary.GenerateImage(ctx, prompt, style)
	if err == nil && img.URL != "" {
		return img, nil
	}
	f.fellBack(ctx, KindImage, err)
	return f.secondary.GenerateImage(ctx, prompt, style)
}

func (f *Fallback) fellBack(ctx context.Context, kind string, err error) {
	reason := "empty result"
	if err != nil {
		reason = err.Error()
	}
	f.log.WarnContext(ctx, "generator fallback", slog.String("kind", kind), slog.String("reason", reason))
	if f.rec != nil {
		f.rec.RecordFallback(kind)
	}
}
