package domain

import "strings"

// RiskLevel is the restocking urgency of a product
type RiskLevel string

const (
	RiskHigh   RiskLevel = "HIGH"
	RiskMedium RiskLevel = "MEDIUM"
	RiskLow    RiskLevel = "LOW"
)

var riskSeverity = map[RiskLevel]int{
	RiskHigh:   0,
	RiskMedium: 1,
	RiskLow:    2,
}

// Severity returns the sort rank of a risk level, most urgent first.
func (r RiskLevel) Severity() int {
	if rank, ok := riskSeverity[r]; ok {
		return rank
	}

	return len(riskSeverity)
}

// SentimentLabel is the binary output of the sentiment classifier
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "POSITIVE"
	SentimentNegative SentimentLabel = "NEGATIVE"
)

var sentimentLabels = map[string]SentimentLabel{
	"positive": SentimentPositive,
	"pos":      SentimentPositive,
	"label_1":  SentimentPositive,
	"negative": SentimentNegative,
	"neg":      SentimentNegative,
	"label_0":  SentimentNegative,
}

// ParseSentimentLabel maps a classifier label (case-insensitive) to a SentimentLabel.
func ParseSentimentLabel(label string) (SentimentLabel, bool) {
	l, ok := sentimentLabels[strings.ToLower(strings.TrimSpace(label))]

	return l, ok
}
