package app

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"flashgen/internal/config"
	"flashgen/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		LLM: config.LLMConfig{
			Provider:          config.ProviderOllama,
			ServerURL:         "http://127.0.0.1:1",
			Model:             "tiny",
			MaxInputTokens:    512,
			MaxOutputTokens:   512,
			Seed:              42,
			Timeout:           time.Second,
			TokenizerEncoding: "words",
		},
		Cache: config.CacheConfig{GenerationTTL: time.Hour, ResultTTL: time.Hour},
	}
}

func TestBuild_WithoutCache(t *testing.T) {
	p, err := Build(context.Background(), testConfig())
	require.NoError(t, err)
	defer p.Close()

	assert.Nil(t, p.Cache)
	assert.Equal(t, "tiny", p.ModelName)
	assert.NoError(t, p.Service.Ready())

	_, err = p.Service.Run(context.Background(), "too short", domain.SubjectGeneral)
	assert.True(t, errors.Is(err, domain.ErrInsufficientContent))
}

func TestBuild_FailedWarmUpMarksModelUnavailable(t *testing.T) {
	cfg := testConfig()
	cfg.LLM.WarmUp = true
	cfg.LLM.Timeout = 200 * time.Millisecond

	p, err := Build(context.Background(), cfg)
	require.NoError(t, err)

	assert.True(t, errors.Is(p.Service.Ready(), domain.ErrModelUnavailable))
	_, err = p.Service.Run(context.Background(), strings.Repeat("long enough ", 20), domain.SubjectGeneral)
	assert.True(t, errors.Is(err, domain.ErrModelUnavailable))
}

func TestBuild_UnreachableRedisRunsWithoutCache(t *testing.T) {
	cfg := testConfig()
	cfg.Redis.Address = "127.0.0.1:1"

	p, err := Build(context.Background(), cfg)
	require.NoError(t, err)
	assert.Nil(t, p.Cache)
	assert.NoError(t, p.Close())
}
