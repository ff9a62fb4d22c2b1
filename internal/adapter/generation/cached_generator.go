package generation

import (
	"context"
	"errors"
	"time"

	"flashgen/internal/cache"
	"flashgen/internal/domain"
	"flashgen/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// CachedGenerator memoizes raw generations per (model, prompt). Decoding is
// deterministic, so a stored generation is what the model would return again.
// Concurrent identical prompts share one model call. Cache failures are
// logged and never fail a generation.
type CachedGenerator struct {
	next    domain.TextGenerator
	store   domain.Cache
	model   string
	ttl     time.Duration
	sfGroup singleflight.Group
}

// NewCachedGenerator wraps next with store. A nil store returns next unchanged.
func NewCachedGenerator(next domain.TextGenerator, store domain.Cache, model string, ttl time.Duration) domain.TextGenerator {
	if store == nil {
		return next
	}
	return &CachedGenerator{next: next, store: store, model: model, ttl: ttl}
}

// Ready implements domain.TextGenerator.
func (c *CachedGenerator) Ready() error {
	return c.next.Ready()
}

func (c *CachedGenerator) key(prompt string) string {
	return cache.GenerateCacheKey("generation", "raw", cache.HashKey(c.model, prompt))
}

// Generate implements domain.TextGenerator.
func (c *CachedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if err := c.next.Ready(); err != nil {
		return "", err
	}
	l := logger.Get()
	key := c.key(prompt)

	cached, err := c.store.Get(ctx, key)
	switch {
	case err == nil:
		l.Debug("Generation cache hit", zap.String("key", key))
		return cached, nil
	case errors.Is(err, domain.ErrCacheMiss):
		l.Debug("Generation cache miss", zap.String("key", key))
	default:
		l.Warn("Generation cache read failed, calling model", zap.String("key", key), zap.Error(err))
	}

	// The shared call is detached from any one caller's cancellation; the
	// wrapped generator bounds it with llm.timeout.
	flightCtx := context.WithoutCancel(ctx)
	ch := c.sfGroup.DoChan(key, func() (interface{}, error) {
		raw, genErr := c.next.Generate(flightCtx, prompt)
		if genErr != nil {
			return "", genErr
		}
		if setErr := c.store.Set(flightCtx, key, raw, c.ttl); setErr != nil {
			l.Warn("Failed to store generation in cache", zap.String("key", key), zap.Error(setErr))
		}
		return raw, nil
	})

	select {
	case <-ctx.Done():
		l.Debug("Caller left before generation finished", zap.String("key", key), zap.Error(ctx.Err()))
		return "", domain.NewGenerationError(ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		if res.Shared {
			l.Debug("Generation shared with concurrent request", zap.String("key", key))
		}
		return res.Val.(string), nil
	}
}

var _ domain.TextGenerator = (*CachedGenerator)(nil)
