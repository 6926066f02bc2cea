package risk

import (
	"sort"

	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/domain"
)

const (
	// NoStockoutSentinel is reported as days until stockout when there is no
	// daily demand. It is a literal placeholder, not a day count.
	NoStockoutSentinel = 999

	highRiskRatio    = 0.5
	highReorderRatio = 2
)

// Assessment is the risk verdict for one stock level against one forecast.
type Assessment struct {
	Level             domain.RiskLevel
	ReorderQty        int
	DaysUntilStockout int
}

// Assess classifies stockLeft against a product's 7-day forecast
func Assess(stockLeft float64, summary domain.ProductForecastSummary) Assessment {
	demand := float64(summary.Next7DaysDemand)
	a := Assessment{}

	// 1. Risk level and reorder quantity
	switch {
	case stockLeft < demand*highRiskRatio:
		a.Level = domain.RiskHigh
		a.ReorderQty = summary.Next7DaysDemand * highReorderRatio
	case stockLeft < demand:
		a.Level = domain.RiskMedium
		a.ReorderQty = summary.Next7DaysDemand
	default:
		a.Level = domain.RiskLow
		a.ReorderQty = 0
	}

	// 2. Days until stockout
	if summary.DailyAvg > 0 {
		a.DaysUntilStockout = int(stockLeft / float64(summary.DailyAvg))
	} else {
		a.DaysUntilStockout = NoStockoutSentinel
	}

	return a
}

// ComputeAlerts joins forecast summaries with inventory and ranks products by
// restocking urgency. Products without an inventory row are skipped.
func ComputeAlerts(inventory []domain.InventoryRecord, summaries []domain.ProductForecastSummary) domain.StockAlerts {
	stock := make(map[string]float64, len(inventory))
	for _, row := range inventory {
		// first row wins for duplicated products
		if _, ok := stock[row.Product]; !ok {
			stock[row.Product] = row.StockLeft
		}
	}

	result := domain.StockAlerts{Alerts: make([]domain.RiskAlert, 0, len(summaries))}
	for _, summary := range summaries {
		stockLeft, ok := stock[summary.Product]
		if !ok {
			continue
		}

		a := Assess(stockLeft, summary)
		result.Alerts = append(result.Alerts, domain.RiskAlert{
			Product:            summary.Product,
			StockLeft:          int(stockLeft),
			ForecastedDemand7d: summary.Next7DaysDemand,
			RiskLevel:          a.Level,
			ReorderQty:         a.ReorderQty,
			DaysUntilStockout:  a.DaysUntilStockout,
		})

		switch a.Level {
		case domain.RiskHigh:
			result.CriticalCount++
		case domain.RiskMedium:
			result.WarningCount++
		}
	}

	sort.SliceStable(result.Alerts, func(i, j int) bool {
		return result.Alerts[i].RiskLevel.Severity() < result.Alerts[j].RiskLevel.Severity()
	})

	return result
}
