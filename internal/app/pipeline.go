// Package app wires configuration into a ready-to-use generation pipeline.
package app

import (
	"context"
	"fmt"

	"flashgen/internal/adapter"
	"flashgen/internal/adapter/extract"
	"flashgen/internal/adapter/generation"
	"flashgen/internal/cache"
	"flashgen/internal/config"
	"flashgen/internal/domain"
	"flashgen/internal/logger"
	"flashgen/internal/service"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Pipeline holds the long-lived components shared by the API and CLI.
type Pipeline struct {
	Service service.FlashcardService
	// Cache is nil when no Redis address is configured.
	Cache     domain.Cache
	ModelName string

	redisClient *redis.Client
}

// Build loads the model once and assembles the pipeline. A model that fails
// to load does not fail Build; the pipeline reports ModelUnavailable instead.
func Build(ctx context.Context, cfg *config.Config) (*Pipeline, error) {
	l := logger.Get()

	handle := generation.LoadModel(ctx, cfg.LLM)
	tokenizer := generation.NewTokenizer(cfg.LLM.TokenizerEncoding)
	llmGenerator, err := generation.NewLLMGenerator(handle, tokenizer, generation.OptionsFromConfig(cfg.LLM))
	if err != nil {
		return nil, fmt.Errorf("failed to create generator: %w", err)
	}

	p := &Pipeline{ModelName: handle.Name()}
	var generator domain.TextGenerator = llmGenerator

	if cfg.CacheEnabled() {
		client, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			// The cache is an optimization; run without it.
			l.Warn("Redis unavailable, running without cache", zap.String("address", cfg.Redis.Address), zap.Error(err))
		} else {
			l.Info("Successfully connected to Redis", zap.String("address", cfg.Redis.Address))
			p.redisClient = client
			p.Cache = adapter.NewRedisCacheAdapter(client)
			generator = generation.NewCachedGenerator(generator, p.Cache, handle.Name(), cfg.Cache.GenerationTTL)
		}
	} else {
		l.Info("Redis cache is not configured. Running without cache.")
	}

	p.Service = service.NewFlashcardService(
		generator,
		extract.NewExtractor(),
		service.NewResultStore(p.Cache, cfg.Cache.ResultTTL),
	)
	return p, nil
}

// Close releases the Redis connection, if any.
func (p *Pipeline) Close() error {
	if p.redisClient == nil {
		return nil
	}
	return p.redisClient.Close()
}
