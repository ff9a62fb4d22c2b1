package generation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"flashgen/internal/config"
	"flashgen/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

const warmUpPrompt = "Reply with OK."

// ModelHandle holds the model resource loaded once per process, or the
// reason it could not be loaded. It is read-only after construction and safe
// for concurrent use.
type ModelHandle struct {
	name string
	llm  llms.Model
	err  error
}

// NewModelHandle wraps an already constructed model. A non-nil err marks the
// handle as unavailable.
func NewModelHandle(name string, llm llms.Model, err error) *ModelHandle {
	if err == nil && llm == nil {
		err = errors.New("model is nil")
	}
	return &ModelHandle{name: name, llm: llm, err: err}
}

// LoadModel builds the configured backend client and, when enabled, issues a
// short warm-up generation. It never fails; a load error is kept in the
// handle and reported by every generator built on it.
func LoadModel(ctx context.Context, cfg config.LLMConfig) *ModelHandle {
	l := logger.Get()
	l.Info("Loading generation model",
		zap.String("provider", cfg.Provider),
		zap.String("model", cfg.Model),
		zap.String("server_url", cfg.ServerURL))

	llm, err := newBackend(cfg)
	if err == nil && cfg.WarmUp {
		err = warmUp(ctx, llm, cfg.Timeout)
	}
	if err != nil {
		l.Error("Generation model unavailable", zap.String("model", cfg.Model), zap.Error(err))
		return NewModelHandle(cfg.Model, nil, err)
	}

	l.Info("Generation model loaded", zap.String("model", cfg.Model))
	return NewModelHandle(cfg.Model, llm, nil)
}

func newBackend(cfg config.LLMConfig) (llms.Model, error) {
	httpClient := &http.Client{
		Timeout: cfg.Timeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     30 * time.Second,
		},
	}

	switch cfg.Provider {
	case config.ProviderOllama:
		llm, err := ollama.New(
			ollama.WithServerURL(cfg.ServerURL),
			ollama.WithModel(cfg.Model),
			ollama.WithHTTPClient(httpClient),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create ollama client: %w", err)
		}
		return llm, nil
	case config.ProviderOpenAI:
		opts := []openai.Option{
			openai.WithToken(cfg.APIKey),
			openai.WithModel(cfg.Model),
			openai.WithHTTPClient(httpClient),
		}
		if cfg.ServerURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.ServerURL))
		}
		llm, err := openai.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create openai client: %w", err)
		}
		return llm, nil
	default:
		return nil, fmt.Errorf("unsupported provider %q", cfg.Provider)
	}
}

func warmUp(ctx context.Context, llm llms.Model, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if _, err := llms.GenerateFromSinglePrompt(ctx, llm, warmUpPrompt, llms.WithMaxTokens(8)); err != nil {
		return fmt.Errorf("warm-up generation failed: %w", err)
	}
	return nil
}

// Name returns the configured model name.
func (h *ModelHandle) Name() string {
	return h.name
}

// Err returns the load error, or nil when the model is ready.
func (h *ModelHandle) Err() error {
	return h.err
}
