package service

import (
	"context"
	"fmt"
	"time"

	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/analytics/forecast"
	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/analytics/pricing"
	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/analytics/risk"
	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/domain"
	"github.com/rs/zerolog/log"
)

// Repository loads the four source tables. dataset.Loader satisfies it.
type Repository interface {
	LoadSales(ctx context.Context) ([]domain.SalesRecord, error)
	LoadInventory(ctx context.Context) ([]domain.InventoryRecord, error)
	LoadReviews(ctx context.Context) ([]domain.ReviewRecord, error)
	LoadPricing(ctx context.Context) ([]domain.PricingRecord, error)
}

// SentimentAnalyzer classifies reviews and aggregates the result.
type SentimentAnalyzer interface {
	Analyze(ctx context.Context, reviews []domain.ReviewRecord) (domain.SentimentAnalysis, error)
}

// DashboardService recomputes every dashboard view from the source tables on each call.
type DashboardService struct {
	repo       Repository
	forecaster *forecast.Engine
	pricer     *pricing.Engine
	sentiment  SentimentAnalyzer
}

func NewDashboardService(repo Repository, forecaster *forecast.Engine, pricer *pricing.Engine, analyzer SentimentAnalyzer) *DashboardService {
	if forecaster == nil {
		forecaster = forecast.NewEngine(forecast.DefaultHorizon, forecast.DefaultWindow)
	}
	if pricer == nil {
		pricer = pricing.NewEngine()
	}
	return &DashboardService{
		repo:       repo,
		forecaster: forecaster,
		pricer:     pricer,
		sentiment:  analyzer,
	}
}

func (s *DashboardService) DemandForecast(ctx context.Context) (domain.DemandForecast, error) {
	sales, err := s.repo.LoadSales(ctx)
	if err != nil {
		return domain.DemandForecast{}, err
	}
	return s.forecaster.DemandForecast(sales), nil
}

func (s *DashboardService) ProductForecastSummary(ctx context.Context) ([]domain.ProductForecastSummary, error) {
	sales, err := s.repo.LoadSales(ctx)
	if err != nil {
		return nil, err
	}
	return s.forecaster.ProductSummaries(sales), nil
}

func (s *DashboardService) StockAlerts(ctx context.Context) (domain.StockAlerts, error) {
	sales, err := s.repo.LoadSales(ctx)
	if err != nil {
		return domain.StockAlerts{}, err
	}
	inventory, err := s.repo.LoadInventory(ctx)
	if err != nil {
		return domain.StockAlerts{}, err
	}
	return risk.ComputeAlerts(inventory, s.forecaster.ProductSummaries(sales)), nil
}

func (s *DashboardService) PricingSuggestions(ctx context.Context) (domain.PricingSuggestions, error) {
	sales, err := s.repo.LoadSales(ctx)
	if err != nil {
		return domain.PricingSuggestions{}, err
	}
	rows, err := s.repo.LoadPricing(ctx)
	if err != nil {
		return domain.PricingSuggestions{}, err
	}
	return s.pricer.Suggest(rows, s.forecaster.ProductSummaries(sales)), nil
}

func (s *DashboardService) Sentiment(ctx context.Context) (domain.SentimentAnalysis, error) {
	reviews, err := s.repo.LoadReviews(ctx)
	if err != nil {
		return domain.SentimentAnalysis{}, err
	}
	if s.sentiment == nil {
		return domain.SentimentAnalysis{}, fmt.Errorf("%w: no sentiment analyzer configured", domain.ErrClassifierUnavailable)
	}
	return s.sentiment.Analyze(ctx, reviews)
}

// BusinessContext loads each table once and derives all four summaries.
func (s *DashboardService) BusinessContext(ctx context.Context) (domain.BusinessContext, error) {
	start := time.Now()

	sales, err := s.repo.LoadSales(ctx)
	if err != nil {
		return domain.BusinessContext{}, err
	}
	inventory, err := s.repo.LoadInventory(ctx)
	if err != nil {
		return domain.BusinessContext{}, err
	}
	rows, err := s.repo.LoadPricing(ctx)
	if err != nil {
		return domain.BusinessContext{}, err
	}

	sentiment, err := s.Sentiment(ctx)
	if err != nil {
		return domain.BusinessContext{}, err
	}

	summaries := s.forecaster.ProductSummaries(sales)
	bc := domain.BusinessContext{
		Forecast:  s.forecaster.DemandForecast(sales),
		Inventory: risk.ComputeAlerts(inventory, summaries),
		Sentiment: sentiment,
		Pricing:   s.pricer.Suggest(rows, summaries),
	}

	log.Debug().
		Int("products", len(summaries)).
		Int("alerts", len(bc.Inventory.Alerts)).
		Dur("took", time.Since(start)).
		Msg("Business context assembled")

	return bc, nil
}
