package report

import (
	"fmt"
	"time"

	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/analytics"
	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/domain"
)

const summaryTopIssues = 3

// Summary is the printable digest served by the pdf export route.
type Summary struct {
	Title       string      `json:"title"`
	GeneratedAt string      `json:"generated_at"`
	Summary     interface{} `json:"summary"`
}

type ForecastSummary struct {
	TotalProducts  int                   `json:"total_products"`
	RisingProducts int                   `json:"rising_products"`
	TopGrowth      *domain.RisingProduct `json:"top_growth"`
	Alerts         []string              `json:"alerts"`
}

type InventorySummary struct {
	CriticalAlerts   int      `json:"critical_alerts"`
	WarningAlerts    int      `json:"warning_alerts"`
	TotalProducts    int      `json:"total_products"`
	HighRiskProducts []string `json:"high_risk_products"`
}

type SentimentSummary struct {
	TotalReviews     int      `json:"total_reviews"`
	PositiveReviews  int      `json:"positive_reviews"`
	NegativeReviews  int      `json:"negative_reviews"`
	SatisfactionRate float64  `json:"satisfaction_rate"`
	TopIssues        []string `json:"top_issues"`
}

// Summarize digests a forecast, inventory or sentiment payload.
// Pricing has no summary.
func Summarize(kind Kind, data interface{}, now time.Time) (Summary, error) {
	out := Summary{
		Title:       kind.Title(),
		GeneratedAt: now.Format("2006-01-02 15:04:05"),
	}

	switch kind {
	case KindForecast:
		d, ok := data.(domain.DemandForecast)
		if !ok {
			return Summary{}, mismatch(kind, data)
		}
		out.Summary = summarizeForecast(d)
	case KindInventory:
		d, ok := data.(domain.StockAlerts)
		if !ok {
			return Summary{}, mismatch(kind, data)
		}
		out.Summary = summarizeInventory(d)
	case KindSentiment:
		d, ok := data.(domain.SentimentAnalysis)
		if !ok {
			return Summary{}, mismatch(kind, data)
		}
		out.Summary = summarizeSentiment(d)
	default:
		return Summary{}, fmt.Errorf("%w: %q has no summary", domain.ErrInvalidReportType, kind)
	}

	return out, nil
}

func summarizeForecast(d domain.DemandForecast) ForecastSummary {
	products := make(map[string]struct{})
	for _, f := range d.Forecasts {
		products[f.Product] = struct{}{}
	}

	s := ForecastSummary{
		TotalProducts:  len(products),
		RisingProducts: len(d.RisingProducts),
		Alerts:         d.Alerts,
	}
	if s.Alerts == nil {
		s.Alerts = []string{}
	}
	if len(d.RisingProducts) > 0 {
		top := d.RisingProducts[0]
		s.TopGrowth = &top
	}
	return s
}

func summarizeInventory(d domain.StockAlerts) InventorySummary {
	s := InventorySummary{
		CriticalAlerts:   d.CriticalCount,
		WarningAlerts:    d.WarningCount,
		TotalProducts:    len(d.Alerts),
		HighRiskProducts: []string{},
	}
	for _, a := range d.Alerts {
		if a.RiskLevel == domain.RiskHigh {
			s.HighRiskProducts = append(s.HighRiskProducts, a.Product)
		}
	}
	return s
}

func summarizeSentiment(d domain.SentimentAnalysis) SentimentSummary {
	s := SentimentSummary{
		TotalReviews:    d.Overall.TotalReviews,
		PositiveReviews: d.Overall.Positive,
		NegativeReviews: d.Overall.Negative,
		TopIssues:       []string{},
	}
	if s.TotalReviews > 0 {
		s.SatisfactionRate = analytics.RoundFloat(float64(s.PositiveReviews)/float64(s.TotalReviews)*100, 2)
	}
	for i, issue := range d.TopIssues {
		if i == summaryTopIssues {
			break
		}
		s.TopIssues = append(s.TopIssues, issue.Issue)
	}
	return s
}
