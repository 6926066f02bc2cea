package forecast

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/analytics"
	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/domain"
)

const (
	DefaultHorizon = 7
	DefaultWindow  = 7

	// trendSpan is how many values are averaged at each end of the history for the trend.
	trendSpan = 3
	// growthSpan is how many values are averaged at each end of the history for the growth rate.
	growthSpan = 7
	// risingThreshold is the growth rate (percent) a product must exceed to be rising.
	risingThreshold = 10.0
	maxRising       = 3

	dateLayout = "2006-01-02"
)

// Engine projects short-horizon demand from sales history with a moving average
// plus a linear trend.
type Engine struct {
	horizon int
	window  int
}

// NewEngine creates an engine; non-positive values fall back to the defaults.
func NewEngine(horizon, window int) *Engine {
	if horizon <= 0 {
		horizon = DefaultHorizon
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &Engine{horizon: horizon, window: window}
}

// Horizon returns the number of projected days.
func (e *Engine) Horizon() int {
	return e.horizon
}

// Baseline holds the two inputs of the projection.
type Baseline struct {
	RecentAvg float64
	Trend     float64
	LastDate  time.Time
}

// Forecast projects product over the engine's horizon. It returns false when
// the product has fewer sales records than the window.
func (e *Engine) Forecast(records []domain.SalesRecord, product string) ([]domain.ForecastPoint, bool) {
	return Forecast(records, product, e.horizon, e.window)
}

// Forecast projects product over horizon days. It returns false when the
// product has fewer than window sales records.
func Forecast(records []domain.SalesRecord, product string, horizon, window int) ([]domain.ForecastPoint, bool) {
	history := productHistory(records, product)
	base, ok := ComputeBaseline(history, window)
	if !ok {
		return nil, false
	}

	points := make([]domain.ForecastPoint, 0, horizon)
	for i := 1; i <= horizon; i++ {
		value := base.RecentAvg + base.Trend*float64(i)
		points = append(points, domain.ForecastPoint{
			Date:            base.LastDate.AddDate(0, 0, i).Format(dateLayout),
			Product:         product,
			ForecastedUnits: int(math.Max(0, math.Trunc(value))),
		})
	}
	return points, true
}

// ComputeBaseline derives the recent average and per-day trend from a
// date-sorted history.
func ComputeBaseline(history []domain.SalesRecord, window int) (Baseline, bool) {
	if window <= 0 || len(history) < window {
		return Baseline{}, false
	}

	units := unitsOf(history)
	recentAvg := analytics.Mean(analytics.Tail(units, window))
	trend := (analytics.Mean(analytics.Tail(units, trendSpan)) - analytics.Mean(analytics.Head(units, trendSpan))) / float64(len(units))

	return Baseline{
		RecentAvg: recentAvg,
		Trend:     trend,
		LastDate:  history[len(history)-1].Date,
	}, true
}

// DemandForecast projects every product and picks the fastest growing ones.
func (e *Engine) DemandForecast(records []domain.SalesRecord) domain.DemandForecast {
	result := domain.DemandForecast{
		Forecasts:      make([]domain.ForecastPoint, 0),
		RisingProducts: make([]domain.RisingProduct, 0),
		Alerts:         make([]string, 0),
	}

	var rising []domain.RisingProduct
	for _, product := range Products(records) {
		points, ok := e.Forecast(records, product)
		if !ok {
			continue
		}
		result.Forecasts = append(result.Forecasts, points...)

		// Growth compares the two ends of the history in file order
		units := unitsOf(filterProduct(records, product))
		recentAvg := analytics.Mean(analytics.Tail(units, growthSpan))
		growth := GrowthRate(recentAvg, analytics.Mean(analytics.Head(units, growthSpan)))
		if growth > risingThreshold {
			rising = append(rising, domain.RisingProduct{
				Product:        product,
				GrowthRate:     analytics.RoundFloat(growth, 2),
				AvgDailyDemand: int(recentAvg),
			})
		}
	}

	sort.SliceStable(rising, func(i, j int) bool {
		return rising[i].GrowthRate > rising[j].GrowthRate
	})
	if len(rising) > maxRising {
		rising = rising[:maxRising]
	}

	for _, p := range rising {
		result.RisingProducts = append(result.RisingProducts, p)
		result.Alerts = append(result.Alerts, fmt.Sprintf("Demand spike expected for %s", p.Product))
	}

	return result
}

// ProductSummaries totals each product's horizon. Products without enough
// history are left out.
func (e *Engine) ProductSummaries(records []domain.SalesRecord) []domain.ProductForecastSummary {
	summaries := make([]domain.ProductForecastSummary, 0)
	for _, product := range Products(records) {
		points, ok := e.Forecast(records, product)
		if !ok {
			continue
		}
		total := 0
		for _, p := range points {
			total += p.ForecastedUnits
		}
		summaries = append(summaries, domain.ProductForecastSummary{
			Product:         product,
			Next7DaysDemand: total,
			DailyAvg:        total / DefaultHorizon,
		})
	}
	return summaries
}

// GrowthRate returns the percentage change from older to recent, 0 when older is 0.
func GrowthRate(recent, older float64) float64 {
	if older <= 0 {
		return 0
	}
	return (recent - older) / older * 100
}

// Products lists distinct products in order of first appearance.
func Products(records []domain.SalesRecord) []string {
	seen := make(map[string]struct{})
	products := make([]string, 0)
	for _, r := range records {
		if _, ok := seen[r.Product]; ok {
			continue
		}
		seen[r.Product] = struct{}{}
		products = append(products, r.Product)
	}
	return products
}

// History returns the product's records sorted by date ascending.
func History(records []domain.SalesRecord, product string) []domain.SalesRecord {
	return productHistory(records, product)
}

func productHistory(records []domain.SalesRecord, product string) []domain.SalesRecord {
	history := filterProduct(records, product)
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].Date.Before(history[j].Date)
	})
	return history
}

func filterProduct(records []domain.SalesRecord, product string) []domain.SalesRecord {
	out := make([]domain.SalesRecord, 0)
	for _, r := range records {
		if r.Product == product {
			out = append(out, r)
		}
	}
	return out
}

func unitsOf(records []domain.SalesRecord) []float64 {
	units := make([]float64, len(records))
	for i, r := range records {
		units[i] = r.UnitsSold
	}
	return units
}
