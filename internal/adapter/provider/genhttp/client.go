// Package genhttp is a JSON-over-HTTP client for an external content
// generator. It implements generation.Generator.
package genhttp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sidra/content-factory/internal/domain"
)

const retryDelay = 500 * time.Millisecond

// Client calls the generator service at baseURL.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// New creates a Client. timeout bounds each attempt.
func New(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "genhttp"),
	}
}

type ideasRequest struct {
	Topic string `json:"topic"`
}

type ideasResponse struct {
	Ideas []struct {
		Text      string `json:"text"`
		Rationale string `json:"rationale"`
	} `json:"ideas"`
}

type copyRequest struct {
	Seed    string `json:"seed"`
	Tone    string `json:"tone"`
	Culture string `json:"culture_context"`
}

type copyResponse struct {
	Text string `json:"text"`
}

type imageRequest struct {
	Prompt string `json:"prompt"`
	Style  string `json:"style"`
}

type imageResponse struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	Prompt string `json:"prompt"`
}

// GenerateIdeas posts the topic to /ideas.
func (c *Client) GenerateIdeas(ctx context.Context, topic string) ([]domain.IdeaDraft, error) {
	var resp ideasResponse
	if err := c.post(ctx, "/ideas", ideasRequest{Topic: topic}, &resp); err != nil {
		return nil, err
	}

	ideas := make([]domain.IdeaDraft, 0, len(resp.Ideas))
	for _, idea := range resp.Ideas {
		if strings.TrimSpace(idea.Text) == "" {
			continue
		}
		ideas = append(ideas, domain.IdeaDraft{Text: idea.Text, Rationale: idea.Rationale})
	}
	return ideas, nil
}

// ComposeCopy posts the seed to /copy.
func (c *Client) ComposeCopy(ctx context.Context, seed string, tone domain.Tone, culture domain.CultureContext) (string, error) {
	var resp copyResponse
	req := copyRequest{Seed: seed, Tone: string(tone), Culture: string(culture)}
	if err := c.post(ctx, "/copy", req, &resp); err != nil {
		return "", err
	}
	return resp.Text, nil
}

// GenerateImage posts the prompt to /images.
func (c *Client) GenerateImage(ctx context.Context, prompt, style string) (domain.ImageDescriptor, error) {
	var resp imageResponse
	if err := c.post(ctx, "/images", imageRequest{Prompt: prompt, Style: style}, &resp); err != nil {
		return domain.ImageDescriptor{}, err
	}

	if resp.Prompt == "" {
		resp.Prompt = prompt
	}
	return domain.ImageDescriptor{
		ID:     resp.ID,
		URL:    resp.URL,
		Prompt: resp.Prompt,
		Source: domain.ImageSourceGenerated,
	}, nil
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("genhttp: encode request: %w", err)
	}

	c.log.DebugContext(ctx, "genhttp request", slog.String("path", path))

	resp, err := c.doWithRetry(ctx, path, body)
	if err != nil {
		c.log.ErrorContext(ctx, "genhttp request failed", slog.String("path", path), slog.String("error", err.Error()))
		return fmt.Errorf("genhttp: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("genhttp: %s: unexpected status %d", path, resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("genhttp: read body: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("genhttp: decode json: %w", err)
	}
	return nil
}

// doWithRetry sends the request, retrying once on 5xx or network errors.
func (c *Client) doWithRetry(ctx context.Context, path string, body []byte) (*http.Response, error) {
	resp, err := c.send(ctx, path, body)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry || ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
		resp.Body.Close()
	}
	c.log.WarnContext(ctx, "genhttp retry", slog.String("path", path), slog.String("reason", reason))

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(retryDelay):
	}

	return c.send(ctx, path, body)
}

func (c *Client) send(ctx context.Context, path string, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.httpClient.Do(req)
}
