package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/config"
	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/domain"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Groq calls an OpenAI-compatible chat completions endpoint.
type Groq struct {
	client      *resty.Client
	model       string
	temperature float64
	maxTokens   int
	limiter     *rate.Limiter
}

func NewGroq(cfg config.LLMConfig) (*Groq, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("GROQ_API_KEY must be provided")
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("llm base url must be provided")
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetAuthToken(cfg.APIKey)

	return &Groq{
		client:      client,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		limiter:     newRequestLimiter(cfg.RequestsPerMinute),
	}, nil
}

func (g *Groq) Complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: wait for llm limit: %v", domain.ErrUpstreamService, err)
	}

	payload := chatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userMessage},
		},
		Temperature: g.temperature,
		MaxTokens:   g.maxTokens,
	}

	var (
		result  chatResponse
		failure apiError
	)
	start := time.Now()
	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(&result).
		SetError(&failure).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUpstreamService, err)
	}

	if resp.StatusCode() != http.StatusOK {
		msg := failure.Error.Message
		if msg == "" {
			msg = strings.TrimSpace(resp.String())
		}
		log.Error().Int("status_code", resp.StatusCode()).Str("model", g.model).Msg("LLM request failed")
		return "", fmt.Errorf("%w: status %d: %s", domain.ErrUpstreamService, resp.StatusCode(), msg)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("%w: empty completion", domain.ErrUpstreamService)
	}

	log.Debug().Str("model", g.model).Dur("took", time.Since(start)).Msg("LLM completion received")
	return result.Choices[0].Message.Content, nil
}
