package generation

import (
	"context"
	"errors"
	"sync"
	"time"

	"flashgen/internal/domain"

	"github.com/tmc/langchaingo/llms"
)

// stubModel is an llms.Model that records the prompt and decoding options of
// each call.
type stubModel struct {
	mu       sync.Mutex
	respond  func(ctx context.Context, prompt string) (string, error)
	prompts  []string
	lastOpts llms.CallOptions
}

func (m *stubModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	var opts llms.CallOptions
	for _, opt := range options {
		opt(&opts)
	}
	var prompt string
	for _, msg := range messages {
		for _, part := range msg.Parts {
			if text, ok := part.(llms.TextContent); ok {
				prompt += text.Text
			}
		}
	}

	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.lastOpts = opts
	m.mu.Unlock()

	if m.respond == nil {
		return nil, errors.New("no response configured")
	}
	out, err := m.respond(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: out}}}, nil
}

func (m *stubModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}

func (m *stubModel) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

func replyWith(s string) func(context.Context, string) (string, error) {
	return func(context.Context, string) (string, error) { return s, nil }
}

// memCache is a concurrency-safe domain.Cache that counts reads.
type memCache struct {
	mu    sync.Mutex
	data  map[string]string
	reads int
}

func newMemCache() *memCache {
	return &memCache{data: map[string]string{}}
}

func (c *memCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reads++
	v, ok := c.data[key]
	if !ok {
		return "", domain.ErrCacheMiss
	}
	return v, nil
}

func (c *memCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *memCache) Ping(context.Context) error { return nil }

func (c *memCache) readCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reads
}

// blockUntil returns a responder that waits for release before replying.
func blockUntil(release <-chan struct{}, out string) func(context.Context, string) (string, error) {
	return func(ctx context.Context, _ string) (string, error) {
		select {
		case <-release:
			return out, nil
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
}
