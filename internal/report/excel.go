package report

import (
	"fmt"
	"io"

	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/domain"
	"github.com/xuri/excelize/v2"
)

type sheet struct {
	name   string
	header []interface{}
	rows   [][]interface{}
}

// Workbook renders data as an Excel file. data must be the payload matching kind.
func Workbook(kind Kind, data interface{}) (*excelize.File, error) {
	sheets, err := sheetsFor(kind, data)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.name); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to create sheet %s: %w", s.name, err)
		}

		if err := writeSheet(f, s, headerStyle); err != nil {
			f.Close()
			return nil, err
		}
	}

	f.SetActiveSheet(0)
	return f, nil
}

// WriteExcel renders data and streams the workbook to w.
func WriteExcel(kind Kind, data interface{}, w io.Writer) error {
	f, err := Workbook(kind, data)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, s sheet, headerStyle int) error {
	if err := f.SetSheetRow(s.name, "A1", &s.header); err != nil {
		return fmt.Errorf("failed to write header of %s: %w", s.name, err)
	}

	last, err := excelize.CoordinatesToCellName(len(s.header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(s.name, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to style header of %s: %w", s.name, err)
	}

	for i := range s.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(s.name, cell, &s.rows[i]); err != nil {
			return fmt.Errorf("failed to write row %d of %s: %w", i+2, s.name, err)
		}
	}
	return nil
}

func sheetsFor(kind Kind, data interface{}) ([]sheet, error) {
	switch kind {
	case KindForecast:
		d, ok := data.(domain.DemandForecast)
		if !ok {
			return nil, mismatch(kind, data)
		}
		return []sheet{forecastSheet(d.Forecasts), risingSheet(d.RisingProducts)}, nil
	case KindInventory:
		d, ok := data.(domain.StockAlerts)
		if !ok {
			return nil, mismatch(kind, data)
		}
		return []sheet{alertSheet(d.Alerts)}, nil
	case KindSentiment:
		d, ok := data.(domain.SentimentAnalysis)
		if !ok {
			return nil, mismatch(kind, data)
		}
		return []sheet{reviewSheet(d.SampleReviews), issueSheet(d.TopIssues)}, nil
	case KindPricing:
		d, ok := data.(domain.PricingSuggestions)
		if !ok {
			return nil, mismatch(kind, data)
		}
		return []sheet{suggestionSheet(d.Suggestions)}, nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidReportType, kind)
	}
}

func mismatch(kind Kind, data interface{}) error {
	return fmt.Errorf("report %s cannot render %T", kind, data)
}

func forecastSheet(points []domain.ForecastPoint) sheet {
	s := sheet{name: "Forecasts", header: []interface{}{"date", "product", "forecasted_units"}}
	for _, p := range points {
		s.rows = append(s.rows, []interface{}{p.Date, p.Product, p.ForecastedUnits})
	}
	return s
}

func risingSheet(products []domain.RisingProduct) sheet {
	s := sheet{name: "Rising Products", header: []interface{}{"product", "growth_rate", "avg_daily_demand"}}
	for _, p := range products {
		s.rows = append(s.rows, []interface{}{p.Product, p.GrowthRate, p.AvgDailyDemand})
	}
	return s
}

func alertSheet(alerts []domain.RiskAlert) sheet {
	s := sheet{name: "Alerts", header: []interface{}{
		"product", "stock_left", "forecasted_demand_7d", "risk_level", "reorder_qty", "days_until_stockout",
	}}
	for _, a := range alerts {
		s.rows = append(s.rows, []interface{}{
			a.Product, a.StockLeft, a.ForecastedDemand7d, string(a.RiskLevel), a.ReorderQty, a.DaysUntilStockout,
		})
	}
	return s
}

func reviewSheet(results []domain.SentimentResult) sheet {
	s := sheet{name: "Reviews", header: []interface{}{"product", "review", "sentiment", "confidence"}}
	for _, r := range results {
		s.rows = append(s.rows, []interface{}{r.Product, r.Review, string(r.Sentiment), r.Confidence})
	}
	return s
}

func issueSheet(issues []domain.IssueSummary) sheet {
	s := sheet{name: "Top Issues", header: []interface{}{"issue", "count", "percentage"}}
	for _, i := range issues {
		s.rows = append(s.rows, []interface{}{i.Issue, i.Count, i.Percentage})
	}
	return s
}

func suggestionSheet(suggestions []domain.PricingSuggestion) sheet {
	s := sheet{name: "Suggestions", header: []interface{}{
		"product", "current_price", "competitor_price", "suggested_price", "potential_change", "reason",
	}}
	for _, p := range suggestions {
		s.rows = append(s.rows, []interface{}{
			p.Product, p.CurrentPrice, p.CompetitorPrice, p.SuggestedPrice, p.PotentialChangePct, p.Reason,
		})
	}
	return s
}
