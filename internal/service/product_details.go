package service

import (
	"context"
	"fmt"

	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/analytics"
	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/analytics/forecast"
	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/analytics/risk"
	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/domain"
)

const (
	detailSalesDays    = 14
	detailForecastDays = 7
	detailAvgWindow    = 7
	detailMaxReviews   = 10
)

// ProductDetails joins every table for a single product.
func (s *DashboardService) ProductDetails(ctx context.Context, product string) (domain.ProductDetails, error) {
	sales, err := s.repo.LoadSales(ctx)
	if err != nil {
		return domain.ProductDetails{}, err
	}
	inventory, err := s.repo.LoadInventory(ctx)
	if err != nil {
		return domain.ProductDetails{}, err
	}
	prices, err := s.repo.LoadPricing(ctx)
	if err != nil {
		return domain.ProductDetails{}, err
	}
	reviews, err := s.repo.LoadReviews(ctx)
	if err != nil {
		return domain.ProductDetails{}, err
	}

	history := forecast.History(sales, product)
	found := len(history) > 0

	details := domain.ProductDetails{
		Product:      product,
		SalesHistory: []domain.SalesPoint{},
		Forecast:     []domain.ForecastPoint{},
		Reviews:      []domain.ProductReview{},
	}

	var stockLeft float64
	for _, row := range inventory {
		if row.Product == product {
			stockLeft = row.StockLeft
			details.StockLeft = int(row.StockLeft)
			found = true
			break
		}
	}

	for _, row := range prices {
		if row.Product == product {
			details.Pricing = domain.ProductPricing{
				CurrentPrice:    row.CurrentPrice,
				CompetitorPrice: row.CompetitorPrice,
			}
			found = true
			break
		}
	}

	for _, row := range reviews {
		if row.Product != product {
			continue
		}
		found = true
		details.Metrics.TotalReviews++
		if len(details.Reviews) < detailMaxReviews {
			details.Reviews = append(details.Reviews, domain.ProductReview{Text: row.ReviewText})
		}
	}

	if !found {
		return domain.ProductDetails{}, fmt.Errorf("%w: %s", domain.ErrProductNotFound, product)
	}

	var total float64
	units := make([]float64, 0, len(history))
	for _, rec := range history {
		total += rec.UnitsSold
		units = append(units, rec.UnitsSold)
	}
	for _, rec := range tailSales(history, detailSalesDays) {
		details.SalesHistory = append(details.SalesHistory, domain.SalesPoint{
			Date:      rec.Date.Format("2006-01-02"),
			UnitsSold: int(rec.UnitsSold),
		})
	}

	if points, ok := s.forecaster.Forecast(sales, product); ok {
		if len(points) > detailForecastDays {
			points = points[:detailForecastDays]
		}
		details.Forecast = points
	}

	avg := analytics.Mean(analytics.Tail(units, detailAvgWindow))
	details.Metrics.TotalSales = int(total)
	details.Metrics.AvgDailySales = analytics.RoundFloat(avg, 2)
	details.Metrics.DaysOfStock = risk.NoStockoutSentinel
	if avg > 0 {
		details.Metrics.DaysOfStock = int(stockLeft / avg)
	}

	return details, nil
}

func tailSales(records []domain.SalesRecord, n int) []domain.SalesRecord {
	if len(records) <= n {
		return records
	}
	return records[len(records)-n:]
}
