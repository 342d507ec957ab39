package generation

import (
	"context"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/sidra/content-factory/internal/domain"
)

// Cached memoizes GenerateIdeas per normalized topic. Copy and images pass
// through uncached.
type Cached struct {
	Generator
	ideas *gocache.Cache
}

// WithCache wraps gen with an idea cache. Entries expire after ttl and are
// swept every cleanup interval.
func WithCache(gen Generator, ttl, cleanup time.Duration) *Cached {
	return &Cached{
		Generator: gen,
		ideas:     gocache.New(ttl, cleanup),
	}
}

// GenerateIdeas serves a copy of the cached ideas for topic, generating and
// storing them on a miss. Errors are not cached.
func (c *Cached) GenerateIdeas(ctx context.Context, topic string) ([]domain.IdeaDraft, error) {
	key := cacheKey(topic)
	if v, ok := c.ideas.Get(key); ok {
		return append([]domain.IdeaDraft(nil), v.([]domain.IdeaDraft)...), nil
	}

	ideas, err := c.Generator.GenerateIdeas(ctx, topic)
	if err != nil {
		return nil, err
	}
	c.ideas.SetDefault(key, append([]domain.IdeaDraft(nil), ideas...))
	return ideas, nil
}

func cacheKey(topic string) string {
	return strings.ToLower(strings.Join(strings.Fields(topic), " "))
}
