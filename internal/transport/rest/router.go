package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/sidra/content-factory/internal/config"
	"github.com/sidra/content-factory/internal/domain"
	"github.com/sidra/content-factory/internal/metrics"
	"github.com/sidra/content-factory/internal/transport/dataloader"
	"github.com/sidra/content-factory/internal/transport/middleware"
)

type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (domain.Principal, error)
}

// RouterDeps holds everything NewRouter wires together.
type RouterDeps struct {
	Auth       *AuthHandler
	Content    *ContentHandler
	Categories *CategoryHandler
	Health     *HealthHandler

	Tokens  tokenValidator
	Loaders *dataloader.Repos
	Metrics *metrics.Metrics

	// RateLimiter is nil when rate limiting is disabled.
	RateLimiter *middleware.RateLimiter
	RateLimit   config.RateLimitConfig
	CORS        config.CORSConfig
	Logger      *slog.Logger
}

// NewRouter builds the HTTP handler: ops routes, the public login route and
// the authenticated workflow routes behind the middleware chain.
func NewRouter(d RouterDeps) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", d.Health.Live)
	mux.HandleFunc("GET /ready", d.Health.Ready)
	mux.HandleFunc("GET /health", d.Health.Health)
	if d.Metrics != nil {
		mux.Handle("GET /metrics", d.Metrics.Handler())
	}

	mux.HandleFunc("POST /auth/login", d.Auth.Login)

	protected := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, middleware.RequireAuth(h))
	}

	protected("GET /auth/profile", d.Auth.Profile)

	c := d.Content
	protected("POST /content", c.CreateCard)
	protected("GET /content/library", c.Library)
	protected("GET /content/moderation-queue", c.ModerationQueue)
	protected("GET /content/cards", c.ListByStatus)
	protected("GET /content/{id}", c.GetCard)
	protected("POST /content/{id}/approve", c.Approve)
	protected("POST /content/{id}/reject", c.Reject)

	protected("POST /ideation/generate", c.GenerateIdeas)
	protected("POST /ideation/manual", c.CreateManualIdea)
	protected("POST /ideation/select", c.SelectIdea)

	protected("POST /copywriting/compose", c.ComposeCopy)
	protected("POST /copywriting/manual", c.ManualCopy)
	protected("POST /copywriting/approve", c.ApproveCopy)

	protected("POST /visual-design/generate", c.GenerateImage)
	protected("POST /visual-design/upload", c.UploadImage)
	protected("POST /visual-design/select", c.SelectImage)

	protected("POST /scheduling/schedule", c.Schedule)
	protected("POST /scheduling/submit-review", c.SubmitForReview)
	protected("POST /scheduling/add-library", c.AddToLibrary)

	cat := d.Categories
	protected("GET /content/categories", cat.List)
	protected("POST /content/categories", cat.Create)
	protected("GET /content/categories/summary", cat.Summary)
	protected("GET /content/categories/{id}", cat.Get)
	protected("PUT /content/categories/{id}", cat.Update)
	protected("POST /content/ideas", cat.CreateIdea)
	protected("POST /content/ideas/generate", cat.GenerateIdeas)
	protected("PUT /content/ideas/{id}/approve", cat.ApproveIdea)

	var limit, observe middleware.Middleware
	if d.RateLimiter != nil {
		limit = d.RateLimiter.Limit(d.RateLimit.RequestsPerMinute, d.RateLimit.Burst)
	}
	if d.Metrics != nil {
		observe = middleware.Metrics(d.Metrics)
	}

	return middleware.Chain(
		middleware.Recovery(d.Logger, d.Metrics),
		middleware.RequestID(),
		middleware.Auth(d.Tokens),
		middleware.Logger(d.Logger),
		middleware.CORS(d.CORS),
		limit,
		dataloader.Middleware(d.Loaders),
		observe,
	)(mux)
}
