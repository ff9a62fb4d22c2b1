package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"flashgen/internal/cache"
	"flashgen/internal/domain"
	"flashgen/internal/logger"

	"go.uber.org/zap"
)

// ResultStore keeps finished generation results retrievable by request ID.
type ResultStore interface {
	Put(ctx context.Context, result *domain.GenerationResult) error
	Get(ctx context.Context, requestID string) (*domain.GenerationResult, error)
}

type cacheResultStore struct {
	cache domain.Cache
	ttl   time.Duration
}

// NewResultStore returns a ResultStore backed by c. A nil cache yields a
// store that keeps nothing.
func NewResultStore(c domain.Cache, ttl time.Duration) ResultStore {
	if c == nil {
		logger.Get().Info("Result store disabled: no cache configured")
		return noopResultStore{}
	}
	return &cacheResultStore{cache: c, ttl: ttl}
}

func resultKey(requestID string) string {
	return cache.GenerateCacheKey("flashcards", "result", requestID)
}

func (s *cacheResultStore) Put(ctx context.Context, result *domain.GenerationResult) error {
	if result == nil || result.RequestID == "" {
		return domain.NewInvalidInputError("cannot store a result without a request ID")
	}

	key := resultKey(result.RequestID)
	data, err := json.Marshal(result)
	if err != nil {
		return domain.NewInternalError("failed to marshal result for storage", err)
	}
	if err := s.cache.Set(ctx, key, string(data), s.ttl); err != nil {
		logger.Get().Error("Failed to store generation result", zap.Error(err), zap.String("key", key))
		return domain.NewInternalError(fmt.Sprintf("failed to store result for key %s", key), err)
	}
	logger.Get().Debug("Stored generation result", zap.String("key", key), zap.Duration("ttl", s.ttl))
	return nil
}

func (s *cacheResultStore) Get(ctx context.Context, requestID string) (*domain.GenerationResult, error) {
	key := resultKey(requestID)
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return nil, domain.NewResultNotFoundError(requestID)
		}
		logger.Get().Error("Failed to read generation result", zap.Error(err), zap.String("key", key))
		return nil, domain.NewInternalError(fmt.Sprintf("failed to read result for key %s", key), err)
	}

	var result domain.GenerationResult
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		return nil, domain.NewInternalError(fmt.Sprintf("failed to decode stored result for key %s", key), err)
	}
	if result.Cards == nil {
		result.Cards = domain.FlashcardSet{}
	}
	return &result, nil
}

type noopResultStore struct{}

func (noopResultStore) Put(context.Context, *domain.GenerationResult) error { return nil }

func (noopResultStore) Get(_ context.Context, requestID string) (*domain.GenerationResult, error) {
	return nil, domain.NewResultNotFoundError(requestID)
}
