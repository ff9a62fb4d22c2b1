package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"flashgen/internal/config"
	"flashgen/internal/domain"
	"flashgen/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

// Options bounds a single generation call.
type Options struct {
	MaxInputTokens  int
	MaxOutputTokens int
	Seed            int
	Timeout         time.Duration
}

// OptionsFromConfig copies the generation limits out of the LLM config.
func OptionsFromConfig(cfg config.LLMConfig) Options {
	return Options{
		MaxInputTokens:  cfg.MaxInputTokens,
		MaxOutputTokens: cfg.MaxOutputTokens,
		Seed:            cfg.Seed,
		Timeout:         cfg.Timeout,
	}
}

// LLMGenerator implements domain.TextGenerator on top of a langchaingo model.
// It is the failure boundary between the model backend and the pipeline:
// every backend error or panic comes back as a GenerationError.
type LLMGenerator struct {
	handle    *ModelHandle
	tokenizer Tokenizer
	opts      Options
}

// NewLLMGenerator creates a generator over handle. The handle may be
// unavailable; Ready and Generate then report ModelUnavailable.
func NewLLMGenerator(handle *ModelHandle, tokenizer Tokenizer, opts Options) (*LLMGenerator, error) {
	if handle == nil {
		return nil, errors.New("model handle cannot be nil")
	}
	if tokenizer == nil {
		return nil, errors.New("tokenizer cannot be nil")
	}
	if opts.MaxInputTokens <= 0 || opts.MaxOutputTokens <= 0 {
		return nil, fmt.Errorf("token limits must be positive (input %d, output %d)", opts.MaxInputTokens, opts.MaxOutputTokens)
	}
	return &LLMGenerator{handle: handle, tokenizer: tokenizer, opts: opts}, nil
}

// Ready implements domain.TextGenerator.
func (g *LLMGenerator) Ready() error {
	if err := g.handle.Err(); err != nil {
		return domain.NewModelUnavailableError(err)
	}
	return nil
}

// ModelName returns the name of the wrapped model.
func (g *LLMGenerator) ModelName() string {
	return g.handle.Name()
}

// Generate implements domain.TextGenerator.
func (g *LLMGenerator) Generate(ctx context.Context, prompt string) (raw string, err error) {
	if err := g.Ready(); err != nil {
		return "", err
	}
	l := logger.Get()

	input := prompt
	if n := g.tokenizer.Count(prompt); n > g.opts.MaxInputTokens {
		input = g.tokenizer.Truncate(prompt, g.opts.MaxInputTokens)
		l.Debug("Prompt truncated to input cap",
			zap.Int("max_input_tokens", g.opts.MaxInputTokens),
			zap.Int("prompt_tokens", n),
			zap.Int("prompt_bytes", len(prompt)),
			zap.Int("sent_bytes", len(input)))
	}

	defer func() {
		if r := recover(); r != nil {
			l.Error("Model backend panicked", zap.Any("panic", r))
			raw = ""
			err = domain.NewGenerationError(fmt.Errorf("model backend panicked: %v", r))
		}
	}()

	if g.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.opts.Timeout)
		defer cancel()
	}

	start := time.Now()
	response, callErr := llms.GenerateFromSinglePrompt(ctx, g.handle.llm, input,
		llms.WithMaxTokens(g.opts.MaxOutputTokens),
		llms.WithTemperature(0),
		llms.WithTopK(1),
		llms.WithSeed(g.opts.Seed),
	)
	if callErr != nil {
		if errors.Is(callErr, context.DeadlineExceeded) {
			l.Error("LLM request timed out", zap.Duration("timeout", g.opts.Timeout), zap.Error(callErr))
			return "", domain.NewGenerationError(fmt.Errorf("LLM request timed out: %w", callErr))
		}
		l.Error("Failed to get response from LLM", zap.Error(callErr))
		return "", domain.NewGenerationError(callErr)
	}

	l.Debug("Raw LLM response received",
		zap.Duration("duration", time.Since(start)),
		zap.String("raw_response", response))

	return stripThinking(response), nil
}

// stripThinking removes <think>...</think> blocks emitted by reasoning models.
func stripThinking(s string) string {
	for {
		start := strings.Index(s, "<think>")
		if start == -1 {
			return s
		}
		end := strings.Index(s[start:], "</think>")
		if end == -1 {
			return s
		}
		s = s[:start] + s[start+end+len("</think>"):]
	}
}

var _ domain.TextGenerator = (*LLMGenerator)(nil)
