package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("REDIS_ADDRESS", "")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 8090, cfg.Server.Port)
	assert.Equal(t, ProviderOllama, cfg.LLM.Provider)
	assert.Equal(t, 512, cfg.LLM.MaxInputTokens)
	assert.Equal(t, 512, cfg.LLM.MaxOutputTokens)
	assert.Equal(t, 42, cfg.LLM.Seed)
	assert.Equal(t, 60*time.Second, cfg.LLM.Timeout)
	assert.True(t, cfg.LLM.WarmUp)
	assert.Equal(t, 24*time.Hour, cfg.Cache.GenerationTTL)
	assert.Equal(t, time.Hour, cfg.Cache.ResultTTL)
	assert.False(t, cfg.CacheEnabled())
}

func TestLoadConfig_FileAndEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
env: production
logger:
  level: debug
server:
  port: 9000
llm:
  provider: openai
  model: gpt-4o-mini
  max_input_tokens: 256
  timeout: 15s
redis:
  address: localhost:6379
cache:
  generation_ttl: 1h
`)
	t.Setenv("FLASHGEN_LLM_API_KEY", "sk-test")
	t.Setenv("FLASHGEN_SERVER_PORT", "9100")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Logger.Env)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, ProviderOpenAI, cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
	assert.Equal(t, 256, cfg.LLM.MaxInputTokens)
	assert.Equal(t, 15*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, time.Hour, cfg.Cache.GenerationTTL)
	assert.True(t, cfg.CacheEnabled())
}

func TestLoadConfig_RejectsUnknownProvider(t *testing.T) {
	path := writeConfig(t, "llm:\n  provider: t5-local\n")

	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "unsupported llm.provider")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server: ServerConfig{Port: 8090},
			LLM: LLMConfig{
				Provider:        ProviderOllama,
				ServerURL:       "http://localhost:11434",
				Model:           "m",
				MaxInputTokens:  512,
				MaxOutputTokens: 512,
				Timeout:         time.Second,
			},
		}
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing ollama url", func(c *Config) { c.LLM.ServerURL = "" }},
		{"empty model", func(c *Config) { c.LLM.Model = "" }},
		{"zero input cap", func(c *Config) { c.LLM.MaxInputTokens = 0 }},
		{"negative output cap", func(c *Config) { c.LLM.MaxOutputTokens = -1 }},
		{"zero timeout", func(c *Config) { c.LLM.Timeout = 0 }},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
