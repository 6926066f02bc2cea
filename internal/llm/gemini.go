package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/config"
	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/domain"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// Gemini completes prompts with the Google Gemini API.
type Gemini struct {
	client      *genai.Client
	model       string
	temperature float32
	maxTokens   int32
	limiter     *rate.Limiter
}

func NewGemini(ctx context.Context, cfg config.LLMConfig) (*Gemini, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY must be provided")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Gemini{
		client:      client,
		model:       cfg.Model,
		temperature: float32(cfg.Temperature),
		maxTokens:   int32(cfg.MaxTokens),
		limiter:     newRequestLimiter(cfg.RequestsPerMinute),
	}, nil
}

func (g *Gemini) Complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: wait for llm limit: %v", domain.ErrUpstreamService, err)
	}

	contents := []*genai.Content{
		genai.NewContentFromText(userMessage, genai.RoleUser),
	}
	genCfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		Temperature:       genai.Ptr(g.temperature),
		MaxOutputTokens:   g.maxTokens,
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, genCfg)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUpstreamService, err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("%w: empty completion", domain.ErrUpstreamService)
	}
	return text, nil
}
