package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
)

type Config struct {
	Env    string
	Logger LoggerConfig
	Server ServerConfig
	LLM    LLMConfig
	Redis  RedisConfig
	Cache  CacheConfig
}

type LoggerConfig struct {
	Level string
	Env   string
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimitMB  int
}

// LLMConfig describes the generation backend and its decoding limits.
type LLMConfig struct {
	Provider          string
	ServerURL         string
	Model             string
	APIKey            string
	MaxInputTokens    int
	MaxOutputTokens   int
	Seed              int
	Timeout           time.Duration
	WarmUp            bool
	TokenizerEncoding string
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type CacheConfig struct {
	GenerationTTL time.Duration
	ResultTTL     time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")
	v.SetDefault("logger.level", "info")

	v.SetDefault("server.port", 8090)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "120s")
	v.SetDefault("server.body_limit_mb", 10)

	v.SetDefault("llm.provider", ProviderOllama)
	v.SetDefault("llm.server_url", "http://localhost:11434")
	v.SetDefault("llm.model", "qwen3:0.6b")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.max_input_tokens", 512)
	v.SetDefault("llm.max_output_tokens", 512)
	v.SetDefault("llm.seed", 42)
	v.SetDefault("llm.timeout", "60s")
	v.SetDefault("llm.warm_up", true)
	v.SetDefault("llm.tokenizer_encoding", "cl100k_base")

	v.SetDefault("redis.address", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("cache.generation_ttl", "24h")
	v.SetDefault("cache.result_ttl", "1h")
}

// LoadConfig reads config.yaml (from path when given, otherwise from "." and
// "./config"), a .env file if present, and FLASHGEN_* environment overrides.
// A missing config file is not an error.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("FLASHGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := v.ConfigFileUsed(); configFile != "" {
		if absPath, err := filepath.Abs(configFile); err == nil {
			fmt.Fprintf(os.Stderr, "Using config file: %s\n", absPath)
		}
	}

	cfg := &Config{
		Env: v.GetString("env"),
		Logger: LoggerConfig{
			Level: v.GetString("logger.level"),
			Env:   v.GetString("env"),
		},
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  v.GetDuration("server.read_timeout"),
			WriteTimeout: v.GetDuration("server.write_timeout"),
			BodyLimitMB:  v.GetInt("server.body_limit_mb"),
		},
		LLM: LLMConfig{
			Provider:          strings.ToLower(v.GetString("llm.provider")),
			ServerURL:         v.GetString("llm.server_url"),
			Model:             v.GetString("llm.model"),
			APIKey:            v.GetString("llm.api_key"),
			MaxInputTokens:    v.GetInt("llm.max_input_tokens"),
			MaxOutputTokens:   v.GetInt("llm.max_output_tokens"),
			Seed:              v.GetInt("llm.seed"),
			Timeout:           v.GetDuration("llm.timeout"),
			WarmUp:            v.GetBool("llm.warm_up"),
			TokenizerEncoding: v.GetString("llm.tokenizer_encoding"),
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Cache: CacheConfig{
			GenerationTTL: v.GetDuration("cache.generation_ttl"),
			ResultTTL:     v.GetDuration("cache.result_ttl"),
		},
	}

	// Conventional variables used by the backends themselves
	if llmServer := os.Getenv("LLM_SERVER"); llmServer != "" {
		cfg.LLM.ServerURL = llmServer
	}
	if openAIKey := os.Getenv("OPENAI_API_KEY"); openAIKey != "" && cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = openAIKey
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		cfg.Redis.Address = redisAddress
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings that would otherwise fail late at request time.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case ProviderOllama:
		if c.LLM.ServerURL == "" {
			return fmt.Errorf("llm.server_url is required for the %s provider", ProviderOllama)
		}
	case ProviderOpenAI:
	default:
		return fmt.Errorf("unsupported llm.provider %q (expected %s or %s)", c.LLM.Provider, ProviderOllama, ProviderOpenAI)
	}
	if c.LLM.Model == "" {
		return fmt.Errorf("llm.model cannot be empty")
	}
	if c.LLM.MaxInputTokens <= 0 {
		return fmt.Errorf("llm.max_input_tokens must be positive, got %d", c.LLM.MaxInputTokens)
	}
	if c.LLM.MaxOutputTokens <= 0 {
		return fmt.Errorf("llm.max_output_tokens must be positive, got %d", c.LLM.MaxOutputTokens)
	}
	if c.LLM.Timeout <= 0 {
		return fmt.Errorf("llm.timeout must be positive, got %s", c.LLM.Timeout)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	return nil
}

// CacheEnabled reports whether a Redis address is configured.
func (c *Config) CacheEnabled() bool {
	return c.Redis.Address != ""
}
