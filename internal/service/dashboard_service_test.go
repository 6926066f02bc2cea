package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/analytics/forecast"
	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/analytics/pricing"
	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/analytics/sentiment"
	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/classifier"
	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	sales     []domain.SalesRecord
	inventory []domain.InventoryRecord
	reviews   []domain.ReviewRecord
	pricing   []domain.PricingRecord
	failOn    string
}

func (m *memoryRepo) fail(table string) error {
	if m.failOn == table {
		return fmt.Errorf("%w: %s.csv not found", domain.ErrDataUnavailable, table)
	}
	return nil
}

func (m *memoryRepo) LoadSales(ctx context.Context) ([]domain.SalesRecord, error) {
	return m.sales, m.fail(domain.TableSales)
}

func (m *memoryRepo) LoadInventory(ctx context.Context) ([]domain.InventoryRecord, error) {
	return m.inventory, m.fail(domain.TableInventory)
}

func (m *memoryRepo) LoadReviews(ctx context.Context) ([]domain.ReviewRecord, error) {
	return m.reviews, m.fail(domain.TableReviews)
}

func (m *memoryRepo) LoadPricing(ctx context.Context) ([]domain.PricingRecord, error) {
	return m.pricing, m.fail(domain.TablePricing)
}

func widgetSales() []domain.SalesRecord {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	units := []float64{5, 5, 5, 5, 5, 5, 5, 6, 7, 8}
	records := make([]domain.SalesRecord, 0, len(units))
	for i, u := range units {
		records = append(records, domain.SalesRecord{Date: start.AddDate(0, 0, i), Product: "Widget", UnitsSold: u})
	}
	return records
}

func negativeIfContains(word string) classifier.Func {
	return func(ctx context.Context, text string) (domain.Classification, error) {
		if strings.Contains(strings.ToLower(text), word) {
			return domain.Classification{Label: domain.SentimentNegative, Confidence: 0.9}, nil
		}
		return domain.Classification{Label: domain.SentimentPositive, Confidence: 0.9}, nil
	}
}

func newTestService(repo *memoryRepo) *DashboardService {
	analyzer := sentiment.NewAggregator(negativeIfContains("late"), 2, 0)
	return NewDashboardService(repo, forecast.NewEngine(7, 7), pricing.NewEngine(), analyzer)
}

func fixtureRepo() *memoryRepo {
	return &memoryRepo{
		sales: widgetSales(),
		inventory: []domain.InventoryRecord{
			{Product: "Widget", StockLeft: 10},
			{Product: "Gadget", StockLeft: 3},
		},
		reviews: []domain.ReviewRecord{
			{Product: "Widget", ReviewText: "Great value"},
			{Product: "Widget", ReviewText: "Arrived late"},
			{Product: "Gadget", ReviewText: "Fine"},
		},
		pricing: []domain.PricingRecord{
			{Product: "Widget", CurrentPrice: 20, CompetitorPrice: 25},
		},
	}
}

func TestStockAlerts(t *testing.T) {
	svc := newTestService(fixtureRepo())

	got, err := svc.StockAlerts(context.Background())
	require.NoError(t, err)

	require.Len(t, got.Alerts, 1)
	alert := got.Alerts[0]
	assert.Equal(t, "Widget", alert.Product)
	assert.Equal(t, domain.RiskHigh, alert.RiskLevel)
	assert.Equal(t, 44, alert.ForecastedDemand7d)
	assert.Equal(t, 88, alert.ReorderQty)
	assert.Equal(t, 1, alert.DaysUntilStockout)
	assert.Equal(t, 1, got.CriticalCount)
	assert.Equal(t, 0, got.WarningCount)
}

func TestPricingSuggestions(t *testing.T) {
	svc := newTestService(fixtureRepo())

	got, err := svc.PricingSuggestions(context.Background())
	require.NoError(t, err)
	require.Len(t, got.Suggestions, 1)
	assert.Equal(t, 21.6, got.Suggestions[0].SuggestedPrice)
	assert.Equal(t, 8.0, got.Suggestions[0].PotentialChangePct)
}

func TestProductForecastSummary(t *testing.T) {
	svc := newTestService(fixtureRepo())

	got, err := svc.ProductForecastSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.ProductForecastSummary{{Product: "Widget", Next7DaysDemand: 44, DailyAvg: 6}}, got)
}

func TestDataErrorsPropagate(t *testing.T) {
	tests := []struct {
		name   string
		failOn string
		call   func(*DashboardService) error
	}{
		{name: "forecast", failOn: domain.TableSales, call: func(s *DashboardService) error {
			_, err := s.DemandForecast(context.Background())
			return err
		}},
		{name: "alerts", failOn: domain.TableInventory, call: func(s *DashboardService) error {
			_, err := s.StockAlerts(context.Background())
			return err
		}},
		{name: "pricing", failOn: domain.TablePricing, call: func(s *DashboardService) error {
			_, err := s.PricingSuggestions(context.Background())
			return err
		}},
		{name: "sentiment", failOn: domain.TableReviews, call: func(s *DashboardService) error {
			_, err := s.Sentiment(context.Background())
			return err
		}},
		{name: "context", failOn: domain.TableReviews, call: func(s *DashboardService) error {
			_, err := s.BusinessContext(context.Background())
			return err
		}},
		{name: "details", failOn: domain.TablePricing, call: func(s *DashboardService) error {
			_, err := s.ProductDetails(context.Background(), "Widget")
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := fixtureRepo()
			repo.failOn = tt.failOn
			err := tt.call(newTestService(repo))
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrDataUnavailable))
		})
	}
}

func TestSentimentWithoutAnalyzer(t *testing.T) {
	svc := NewDashboardService(fixtureRepo(), nil, nil, nil)

	_, err := svc.Sentiment(context.Background())
	assert.True(t, errors.Is(err, domain.ErrClassifierUnavailable))
}

func TestBusinessContext(t *testing.T) {
	svc := newTestService(fixtureRepo())

	got, err := svc.BusinessContext(context.Background())
	require.NoError(t, err)

	assert.Len(t, got.Forecast.Forecasts, 7)
	assert.Len(t, got.Inventory.Alerts, 1)
	assert.Len(t, got.Pricing.Suggestions, 1)
	assert.Equal(t, 3, got.Sentiment.Overall.TotalReviews)
	assert.Equal(t, 1, got.Sentiment.Overall.Negative)
	assert.Equal(t, []domain.IssueSummary{{Issue: "delivery", Count: 1, Percentage: 100}}, got.Sentiment.TopIssues)
}

func TestProductDetails(t *testing.T) {
	svc := newTestService(fixtureRepo())

	got, err := svc.ProductDetails(context.Background(), "Widget")
	require.NoError(t, err)

	assert.Equal(t, "Widget", got.Product)
	assert.Equal(t, 10, got.StockLeft)
	assert.Equal(t, domain.ProductPricing{CurrentPrice: 20, CompetitorPrice: 25}, got.Pricing)
	require.Len(t, got.SalesHistory, 10)
	assert.Equal(t, domain.SalesPoint{Date: "2024-01-10", UnitsSold: 8}, got.SalesHistory[9])
	assert.Len(t, got.Forecast, 7)
	assert.Equal(t, "2024-01-11", got.Forecast[0].Date)
	assert.Equal(t, domain.ProductMetrics{
		TotalSales:    56,
		AvgDailySales: 5.86,
		DaysOfStock:   1,
		TotalReviews:  2,
	}, got.Metrics)
	assert.Equal(t, []domain.ProductReview{{Text: "Great value"}, {Text: "Arrived late"}}, got.Reviews)
}

func TestProductDetailsLimitsHistory(t *testing.T) {
	repo := fixtureRepo()
	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 20; i++ {
		repo.sales = append(repo.sales, domain.SalesRecord{Date: start.AddDate(0, 0, i), Product: "Widget", UnitsSold: 4})
	}
	for i := 0; i < 12; i++ {
		repo.reviews = append(repo.reviews, domain.ReviewRecord{Product: "Widget", ReviewText: fmt.Sprintf("review %d", i)})
	}
	svc := newTestService(repo)

	got, err := svc.ProductDetails(context.Background(), "Widget")
	require.NoError(t, err)

	assert.Len(t, got.SalesHistory, 14)
	assert.Equal(t, "2024-02-20", got.SalesHistory[13].Date)
	assert.Len(t, got.Reviews, 10)
	assert.Equal(t, 14, got.Metrics.TotalReviews)
	assert.Equal(t, 4.0, got.Metrics.AvgDailySales)
	assert.Equal(t, 2, got.Metrics.DaysOfStock)
}

func TestProductDetailsWithoutSales(t *testing.T) {
	svc := newTestService(fixtureRepo())

	got, err := svc.ProductDetails(context.Background(), "Gadget")
	require.NoError(t, err)

	assert.Equal(t, 3, got.StockLeft)
	assert.Empty(t, got.SalesHistory)
	assert.Empty(t, got.Forecast)
	assert.Equal(t, 999, got.Metrics.DaysOfStock)
	assert.Equal(t, 0.0, got.Metrics.AvgDailySales)
	assert.Equal(t, 1, got.Metrics.TotalReviews)
}

func TestProductDetailsNotFound(t *testing.T) {
	svc := newTestService(fixtureRepo())

	_, err := svc.ProductDetails(context.Background(), "Nonexistent")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrProductNotFound))
}
