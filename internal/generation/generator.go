// Package generation provides the content generators used by the workflow:
// a deterministic mock, a fallback decorator and an idea cache.
package generation

import (
	"context"

	"github.com/sidra/content-factory/internal/domain"
)

// Kinds used as metric and log labels.
const (
	KindIdeas = "ideas"
	KindCopy  = "copy"
	KindImage = "image"
)

// Generator produces ideas, copy and images for a card.
type Generator interface {
	GenerateIdeas(ctx context.Context, topic string) ([]domain.IdeaDraft, error)
	ComposeCopy(ctx context.Context, seed string, tone domain.Tone, culture domain.CultureContext) (string, error)
	GenerateImage(ctx context.Context, prompt, style string) (domain.ImageDescriptor, error)
}
