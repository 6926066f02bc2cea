// Package sentiment classifies customer reviews and summarises the results.
package sentiment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/analytics"
	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/classifier"
	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/domain"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultWorkers  = 4
	DefaultMaxChars = 512
	maxSamples      = 10
)

// Aggregator runs every review through a classifier and builds the dashboard summary.
type Aggregator struct {
	classifier classifier.Classifier
	workers    int
	maxChars   int
}

// NewAggregator creates an Aggregator. Non-positive workers or maxChars use the defaults.
func NewAggregator(c classifier.Classifier, workers, maxChars int) *Aggregator {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	return &Aggregator{classifier: c, workers: workers, maxChars: maxChars}
}

// Truncate keeps at most n runes of text.
func Truncate(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}

// Classify labels every review. Results keep the order of reviews.
func (a *Aggregator) Classify(ctx context.Context, reviews []domain.ReviewRecord) ([]domain.SentimentResult, error) {
	results := make([]domain.SentimentResult, len(reviews))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)

	for i := range reviews {
		i := i
		g.Go(func() error {
			review := reviews[i]
			out, err := a.classifier.Classify(gctx, Truncate(review.ReviewText, a.maxChars))
			if err != nil {
				return fmt.Errorf("review %d (%s): %w", i, review.Product, err)
			}
			results[i] = domain.SentimentResult{
				Product:    review.Product,
				Review:     review.ReviewText,
				Sentiment:  out.Label,
				Confidence: out.Confidence,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if errors.Is(err, domain.ErrClassifierUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrClassifierUnavailable, err)
	}

	return results, nil
}

// Analyze classifies reviews and aggregates overall counts, top issues,
// per-product rates and a sample of the results.
func (a *Aggregator) Analyze(ctx context.Context, reviews []domain.ReviewRecord) (domain.SentimentAnalysis, error) {
	start := time.Now()

	results, err := a.Classify(ctx, reviews)
	if err != nil {
		log.Error().Err(err).Int("reviews", len(reviews)).Msg("Sentiment classification failed")
		return domain.SentimentAnalysis{}, err
	}

	analysis := Summarize(results)

	log.Debug().
		Int("reviews", len(results)).
		Int("negative", analysis.Overall.Negative).
		Dur("took", time.Since(start)).
		Msg("Sentiment analysis complete")

	return analysis, nil
}

// Summarize aggregates already classified results.
func Summarize(results []domain.SentimentResult) domain.SentimentAnalysis {
	analysis := domain.SentimentAnalysis{
		Overall:          domain.OverallSentiment{TotalReviews: len(results)},
		ProductSentiment: make(map[string]domain.ProductSentiment),
		ProductOrder:     []string{},
	}

	for _, r := range results {
		stats, seen := analysis.ProductSentiment[r.Product]
		if !seen {
			analysis.ProductOrder = append(analysis.ProductOrder, r.Product)
		}

		stats.Total++
		switch r.Sentiment {
		case domain.SentimentPositive:
			analysis.Overall.Positive++
			stats.Positive++
		case domain.SentimentNegative:
			analysis.Overall.Negative++
			stats.Negative++
		}
		analysis.ProductSentiment[r.Product] = stats
	}

	for product, stats := range analysis.ProductSentiment {
		stats.PositiveRate = analytics.RoundFloat(float64(stats.Positive)/float64(stats.Total)*100, 1)
		analysis.ProductSentiment[product] = stats
	}

	analysis.TopIssues = TopIssues(results)

	n := len(results)
	if n > maxSamples {
		n = maxSamples
	}
	analysis.SampleReviews = append([]domain.SentimentResult{}, results[:n]...)

	return analysis
}
