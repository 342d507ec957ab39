package content

import (
	"context"
	"fmt"
	"strings"

	"github.com/sidra/content-factory/internal/domain"
	"github.com/sidra/content-factory/internal/lifecycle"
	"github.com/sidra/content-factory/pkg/ctxutil"
)

// GenerateImage asks the generator for an image. Nothing is stored until
// the image is selected.
func (s *Service) GenerateImage(ctx context.Context, input GenerateImageInput) (domain.ImageDescriptor, error) {
	if _, ok := ctxutil.PrincipalFromCtx(ctx); !ok {
		return domain.ImageDescriptor{}, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return domain.ImageDescriptor{}, err
	}

	img, err := s.gen.GenerateImage(ctx, strings.TrimSpace(input.Prompt), input.Style)
	if err != nil {
		return domain.ImageDescriptor{}, fmt.Errorf("generate image: %w", err)
	}
	return img, nil
}

// UploadImage records an already-hosted image URL on the card and returns
// a descriptor the caller can pass to SelectImage.
func (s *Service) UploadImage(ctx context.Context, input UploadImageInput) (domain.ImageDescriptor, error) {
	if err := input.Validate(); err != nil {
		return domain.ImageDescriptor{}, err
	}

	url := strings.TrimSpace(input.ImageURL)
	_, err := s.transition(ctx, lifecycle.StepUploadImage, input.CardID, func(card *domain.ContentCard) (lifecycle.Transition, error) {
		return lifecycle.UploadImage(card, url)
	})
	if err != nil {
		return domain.ImageDescriptor{}, err
	}

	return domain.ImageDescriptor{
		ID:     fmt.Sprintf("upload-%d", s.now().UnixMilli()),
		URL:    url,
		Prompt: input.FileName,
		Source: domain.ImageSourceUpload,
	}, nil
}

// SelectImage attaches an image and marks the card ready for review.
func (s *Service) SelectImage(ctx context.Context, input SelectImageInput) (*domain.ContentCard, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	img := domain.SelectedImage{
		ID:     input.Image.ID,
		URL:    strings.TrimSpace(input.Image.URL),
		Prompt: input.Image.Prompt,
		Source: input.Image.Source,
	}
	return s.transition(ctx, lifecycle.StepSelectImage, input.CardID, func(card *domain.ContentCard) (lifecycle.Transition, error) {
		return lifecycle.SelectImage(card, img)
	})
}
