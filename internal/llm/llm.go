// Package llm talks to the chat-completion model behind the copilot.
package llm

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/config"
	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/domain"
	"golang.org/x/time/rate"
)

const (
	ProviderGroq   = "groq"
	ProviderGemini = "gemini"
)

// Client completes a single system + user exchange.
type Client interface {
	Complete(ctx context.Context, systemPrompt, userMessage string) (string, error)
}

// New builds the client selected by cfg.Provider.
func New(cfg config.LLMConfig) (Client, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", ProviderGroq:
		return NewGroq(cfg)
	case ProviderGemini:
		return NewGemini(context.Background(), cfg)
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", cfg.Provider)
	}
}

func newRequestLimiter(perMinute int) *rate.Limiter {
	if perMinute <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1)
}

// Lazy defers client construction until the first completion.
type Lazy struct {
	factory func() (Client, error)

	once sync.Once
	impl Client
	err  error
}

func NewLazy(factory func() (Client, error)) *Lazy {
	return &Lazy{factory: factory}
}

func (l *Lazy) Complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	l.once.Do(func() {
		l.impl, l.err = l.factory()
	})
	if l.err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUpstreamService, l.err)
	}
	return l.impl.Complete(ctx, systemPrompt, userMessage)
}

// Close releases the client if it was ever built. Later calls fail.
func (l *Lazy) Close() error {
	l.once.Do(func() {
		l.err = fmt.Errorf("llm client closed")
	})
	if c, ok := l.impl.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
