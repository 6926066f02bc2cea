package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/config"
	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/domain"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

// labelScore is one candidate returned by the inference API.
type labelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type inferenceRequest struct {
	Inputs string `json:"inputs"`
}

// HuggingFace calls a text-classification model on the Hugging Face Inference API.
type HuggingFace struct {
	client  *resty.Client
	model   string
	limiter *rate.Limiter
}

// NewHuggingFace builds a client from configuration.
func NewHuggingFace(cfg config.ClassifierConfig) (*HuggingFace, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("classifier base url must be provided")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, fmt.Errorf("classifier model must be provided")
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 20 * time.Second
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	if cfg.APIToken != "" {
		client.SetAuthToken(cfg.APIToken)
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	return &HuggingFace{
		client:  client,
		model:   cfg.Model,
		limiter: rate.NewLimiter(limit, 1),
	}, nil
}

// Classify returns the highest scoring label for text.
func (h *HuggingFace) Classify(ctx context.Context, text string) (domain.Classification, error) {
	if err := h.limiter.Wait(ctx); err != nil {
		return domain.Classification{}, fmt.Errorf("%w: %v", domain.ErrClassifierUnavailable, err)
	}

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(inferenceRequest{Inputs: text}).
		Post("/models/" + h.model)
	if err != nil {
		return domain.Classification{}, fmt.Errorf("%w: %v", domain.ErrClassifierUnavailable, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return domain.Classification{}, fmt.Errorf("%w: status %d: %s",
			domain.ErrClassifierUnavailable, resp.StatusCode(), strings.TrimSpace(resp.String()))
	}

	candidates, err := decodeCandidates(resp.Body())
	if err != nil {
		return domain.Classification{}, fmt.Errorf("%w: %v", domain.ErrClassifierUnavailable, err)
	}

	return best(candidates)
}

// decodeCandidates accepts both the nested [[...]] and the flat [...] response shapes.
func decodeCandidates(body []byte) ([]labelScore, error) {
	var nested [][]labelScore
	if err := json.Unmarshal(body, &nested); err == nil {
		if len(nested) == 0 {
			return nil, fmt.Errorf("empty classifier response")
		}
		return nested[0], nil
	}

	var flat []labelScore
	if err := json.Unmarshal(body, &flat); err != nil {
		return nil, fmt.Errorf("decode classifier response: %w", err)
	}
	return flat, nil
}

func best(candidates []labelScore) (domain.Classification, error) {
	var (
		top   labelScore
		found bool
	)
	for _, c := range candidates {
		if !found || c.Score > top.Score {
			top = c
			found = true
		}
	}
	if !found {
		return domain.Classification{}, fmt.Errorf("%w: no labels in response", domain.ErrClassifierUnavailable)
	}

	label, ok := domain.ParseSentimentLabel(top.Label)
	if !ok {
		return domain.Classification{}, fmt.Errorf("%w: unexpected label %q", domain.ErrClassifierUnavailable, top.Label)
	}

	score := top.Score
	if score < 0 {
		score = 0
	} else if score > 1 {
		score = 1
	}

	return domain.Classification{Label: label, Confidence: score}, nil
}
