package copilot

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticContext struct {
	bc  domain.BusinessContext
	err error
}

func (s staticContext) BusinessContext(ctx context.Context) (domain.BusinessContext, error) {
	return s.bc, s.err
}

type recordingLLM struct {
	system, user string
	answer       string
	err          error
}

func (r *recordingLLM) Complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	r.system = systemPrompt
	r.user = userMessage
	return r.answer, r.err
}

func sampleContext() domain.BusinessContext {
	return domain.BusinessContext{
		Forecast: domain.DemandForecast{
			RisingProducts: []domain.RisingProduct{{Product: "Rocket", GrowthRate: 42.5, AvgDailyDemand: 12}},
			Alerts:         []string{"Demand spike expected for Rocket"},
		},
		Inventory: domain.StockAlerts{
			Alerts: []domain.RiskAlert{
				{Product: "A", RiskLevel: domain.RiskHigh, ReorderQty: 60},
				{Product: "B", RiskLevel: domain.RiskHigh, ReorderQty: 40},
				{Product: "C", RiskLevel: domain.RiskHigh, ReorderQty: 20},
				{Product: "D", RiskLevel: domain.RiskHigh, ReorderQty: 10},
				{Product: "E", RiskLevel: domain.RiskMedium, ReorderQty: 5},
			},
			CriticalCount: 4,
			WarningCount:  1,
		},
		Sentiment: domain.SentimentAnalysis{
			Overall: domain.OverallSentiment{Positive: 7, Negative: 3, TotalReviews: 10},
			TopIssues: []domain.IssueSummary{
				{Issue: "delivery", Count: 2, Percentage: 66.7},
				{Issue: "price", Count: 1, Percentage: 33.3},
				{Issue: "quality", Count: 1, Percentage: 33.3},
			},
		},
		Pricing: domain.PricingSuggestions{Suggestions: []domain.PricingSuggestion{
			{Product: "A", PotentialChangePct: -5},
			{Product: "B", PotentialChangePct: 0},
		}},
	}
}

func TestAskBuildsPromptAndActions(t *testing.T) {
	model := &recordingLLM{answer: "Restock A and B first."}
	cp := New(staticContext{bc: sampleContext()}, model)

	resp := cp.Ask(context.Background(), "What should I restock, and what is the biggest problem?")

	assert.Equal(t, "Restock A and B first.", resp.Answer)
	assert.Equal(t, []string{
		"Reorder 60 units of A",
		"Reorder 40 units of B",
		"Reorder 20 units of C",
		"Address delivery issues",
		"Address price issues",
	}, resp.ActionItems)
	require.NotNil(t, resp.ContextUsed)
	assert.Equal(t, ContextUsed{ForecastProducts: 1, InventoryAlerts: 4, ReviewsAnalyzed: 10}, *resp.ContextUsed)
	assert.Empty(t, resp.Error)

	assert.Equal(t, "What should I restock, and what is the biggest problem?", model.user)
	assert.Contains(t, model.system, "- Rising products: Rocket (+42.5%)")
	assert.Contains(t, model.system, "- High-risk products: A, B, C, D")
	assert.Contains(t, model.system, "- Top issues: delivery (2 mentions), price (1 mentions), quality (1 mentions)")
	assert.Contains(t, model.system, "- Products needing price adjustment: 1")
	assert.Contains(t, model.system, "- Critical stock alerts: 4 products")
}

func TestActionItemsKeywords(t *testing.T) {
	bc := sampleContext()

	tests := []struct {
		question string
		want     []string
	}{
		{question: "How are sales going?", want: []string{}},
		{question: "Check INVENTORY", want: []string{"Reorder 60 units of A", "Reorder 40 units of B", "Reorder 20 units of C"}},
		{question: "Any complaints?", want: []string{"Address delivery issues", "Address price issues"}},
	}

	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			assert.Equal(t, tt.want, ActionItems(tt.question, bc))
		})
	}
}

func TestAskDataFailure(t *testing.T) {
	model := &recordingLLM{}
	cp := New(staticContext{err: fmt.Errorf("%w: sales.csv not found", domain.ErrDataUnavailable)}, model)

	resp := cp.Ask(context.Background(), "restock?")

	assert.Contains(t, resp.Answer, "I'm having trouble accessing the data: ")
	assert.Contains(t, resp.Answer, "sales.csv not found")
	assert.Empty(t, resp.ActionItems)
	assert.Nil(t, resp.ContextUsed)
	assert.Empty(t, model.system)
}

func TestAskLLMFailure(t *testing.T) {
	model := &recordingLLM{err: errors.New("status 401")}
	cp := New(staticContext{bc: sampleContext()}, model)

	resp := cp.Ask(context.Background(), "restock?")

	assert.Contains(t, resp.Answer, "I encountered an error: status 401")
	assert.NotNil(t, resp.ActionItems)
	assert.Empty(t, resp.ActionItems)
	assert.Equal(t, "status 401", resp.Error)
	assert.Nil(t, resp.ContextUsed)
}

func TestBuildPromptEmptyContext(t *testing.T) {
	prompt := BuildPrompt(domain.BusinessContext{})

	assert.Contains(t, prompt, "- Rising products: \n")
	assert.Contains(t, prompt, "- Positive reviews: 0\n")
	assert.Contains(t, prompt, "- Products needing price adjustment: 0\n")
}
