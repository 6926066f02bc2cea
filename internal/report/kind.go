// Package report turns dashboard payloads into Excel workbooks and JSON summaries.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/domain"
)

type Kind string

const (
	KindForecast  Kind = "forecast"
	KindInventory Kind = "inventory"
	KindSentiment Kind = "sentiment"
	KindPricing   Kind = "pricing"
)

// Kinds lists every exportable report.
var Kinds = []Kind{KindForecast, KindInventory, KindSentiment, KindPricing}

// ParseKind validates a report name from a URL or flag.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", domain.ErrInvalidReportType, s)
}

// Title is the display name, e.g. "Forecast Report".
func (k Kind) Title() string {
	s := string(k)
	if s == "" {
		return "Report"
	}
	return strings.ToUpper(s[:1]) + s[1:] + " Report"
}

// Filename returns "<kind>_report_<YYYYMMDD_HHMMSS>.xlsx".
func Filename(kind Kind, now time.Time) string {
	return fmt.Sprintf("%s_report_%s.xlsx", kind, now.Format("20060102_150405"))
}
