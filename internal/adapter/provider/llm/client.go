// Package llm generates ideas and copy with Claude through the Anthropic
// Messages API. It implements generation.Generator; image generation is
// not offered by the API and is left to the fallback generator.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/sidra/content-factory/internal/domain"
)

const maxTokens = 2048

// ErrImagesUnsupported is returned by GenerateImage.
var ErrImagesUnsupported = errors.New("llm: image generation not supported")

// Client wraps an Anthropic client with the prompts used by the workflow.
type Client struct {
	api   anthropic.Client
	model string
	log   *slog.Logger
}

// New creates a Client. Extra options (base URL, HTTP client) are passed
// to the SDK as is.
func New(apiKey, model string, logger *slog.Logger, opts ...option.RequestOption) *Client {
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &Client{
		api:   anthropic.NewClient(opts...),
		model: model,
		log:   logger.With("adapter", "llm"),
	}
}

type ideasPayload struct {
	Ideas []struct {
		Text      string `json:"text"`
		Rationale string `json:"rationale"`
	} `json:"ideas"`
}

// GenerateIdeas asks for post ideas on topic as a JSON object.
func (c *Client) GenerateIdeas(ctx context.Context, topic string) ([]domain.IdeaDraft, error) {
	text, err := c.complete(ctx, ideasPrompt(topic))
	if err != nil {
		return nil, err
	}

	jsonStr, err := extractJSON(text)
	if err != nil {
		return nil, fmt.Errorf("llm: ideas for %q: %w", topic, err)
	}

	var payload ideasPayload
	if err := json.Unmarshal([]byte(jsonStr), &payload); err != nil {
		return nil, fmt.Errorf("llm: decode ideas for %q: %w", topic, err)
	}

	ideas := make([]domain.IdeaDraft, 0, len(payload.Ideas))
	for _, idea := range payload.Ideas {
		if strings.TrimSpace(idea.Text) == "" {
			continue
		}
		ideas = append(ideas, domain.IdeaDraft{Text: idea.Text, Rationale: idea.Rationale})
	}
	if len(ideas) == 0 {
		return nil, fmt.Errorf("llm: no ideas for %q", topic)
	}
	return ideas, nil
}

// ComposeCopy asks for a post body written from seed.
func (c *Client) ComposeCopy(ctx context.Context, seed string, tone domain.Tone, culture domain.CultureContext) (string, error) {
	text, err := c.complete(ctx, copyPrompt(seed, tone, culture))
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", errors.New("llm: empty copy")
	}
	return text, nil
}

// GenerateImage always fails with ErrImagesUnsupported.
func (c *Client) GenerateImage(context.Context, string, string) (domain.ImageDescriptor, error) {
	return domain.ImageDescriptor{}, ErrImagesUnsupported
}

func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	msg, err := c.api.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		c.log.ErrorContext(ctx, "llm api call failed", slog.String("error", err.Error()))
		return "", fmt.Errorf("llm: api call: %w", err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		b.WriteString(block.Text)
	}
	if b.Len() == 0 {
		return "", errors.New("llm: empty response")
	}

	c.log.DebugContext(ctx, "llm response",
		slog.Int64("input_tokens", msg.Usage.InputTokens),
		slog.Int64("output_tokens", msg.Usage.OutputTokens),
	)
	return b.String(), nil
}

func ideasPrompt(topic string) string {
	return fmt.Sprintf(`You plan social media posts for an Arabic-speaking school audience.

Suggest five post ideas on the topic "%s". Write the ideas in Arabic.

Output ONLY a valid JSON object matching this schema:
{"ideas": [{"text": "<idea>", "rationale": "<why it works>"}]}`, topic)
}

func copyPrompt(seed string, tone domain.Tone, culture domain.CultureContext) string {
	return fmt.Sprintf(`Write the body of a social media post in Arabic.

Idea: %s
Tone: %s
Cultural context: %s

Output ONLY the post text, without a title or commentary.`, seed, tone, culture)
}

// extractJSON returns the text between the first '{' and the last '}'.
func extractJSON(s string) (string, error) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return "", errors.New("no JSON object found in response")
	}
	return s[start : end+1], nil
}
