// Package copilot answers free-form business questions using the dashboard data.
package copilot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/domain"
	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/llm"
	"github.com/rs/zerolog/log"
)

const (
	maxReorderItems = 3
	maxIssueItems   = 2
)

var (
	stockWords = []string{"restock", "inventory", "stock"}
	issueWords = []string{"complaint", "issue", "problem"}
)

// ContextProvider gathers the four derived summaries. service.DashboardService satisfies it.
type ContextProvider interface {
	BusinessContext(ctx context.Context) (domain.BusinessContext, error)
}

// ContextUsed reports how much data backed an answer.
type ContextUsed struct {
	ForecastProducts int `json:"forecast_products"`
	InventoryAlerts  int `json:"inventory_alerts"`
	ReviewsAnalyzed  int `json:"reviews_analyzed"`
}

// Response is the chat answer. It is always returned, even when a collaborator failed.
type Response struct {
	Answer      string       `json:"answer"`
	ActionItems []string     `json:"action_items"`
	ContextUsed *ContextUsed `json:"context_used,omitempty"`
	Error       string       `json:"error,omitempty"`
}

type Copilot struct {
	data ContextProvider
	llm  llm.Client
}

func New(data ContextProvider, client llm.Client) *Copilot {
	return &Copilot{data: data, llm: client}
}

// Ask answers question. Failures are reported inside the Response.
func (c *Copilot) Ask(ctx context.Context, question string) Response {
	start := time.Now()

	bc, err := c.data.BusinessContext(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Copilot could not load business context")
		return Response{
			Answer:      fmt.Sprintf("I'm having trouble accessing the data: %v", err),
			ActionItems: []string{},
		}
	}

	answer, err := c.llm.Complete(ctx, BuildPrompt(bc), question)
	if err != nil {
		log.Error().Err(err).Msg("Copilot completion failed")
		return Response{
			Answer:      fmt.Sprintf("I encountered an error: %v. Please make sure your GROQ_API_KEY is configured.", err),
			ActionItems: []string{},
			Error:       err.Error(),
		}
	}

	log.Info().Dur("took", time.Since(start)).Int("question_len", len(question)).Msg("Copilot answered")

	return Response{
		Answer:      answer,
		ActionItems: ActionItems(question, bc),
		ContextUsed: &ContextUsed{
			ForecastProducts: len(bc.Forecast.RisingProducts),
			InventoryAlerts:  bc.Inventory.CriticalCount,
			ReviewsAnalyzed:  bc.Sentiment.Overall.TotalReviews,
		},
	}
}

// ActionItems derives follow-ups from keywords in the question.
func ActionItems(question string, bc domain.BusinessContext) []string {
	q := strings.ToLower(question)
	items := []string{}

	if mentionsAny(q, stockWords) {
		for _, a := range highRisk(bc.Inventory.Alerts) {
			if len(items) == maxReorderItems {
				break
			}
			items = append(items, fmt.Sprintf("Reorder %d units of %s", a.ReorderQty, a.Product))
		}
	}

	if mentionsAny(q, issueWords) {
		for i, issue := range bc.Sentiment.TopIssues {
			if i == maxIssueItems {
				break
			}
			items = append(items, fmt.Sprintf("Address %s issues", issue.Issue))
		}
	}

	return items
}

// BuildPrompt renders the system prompt describing the current business state.
func BuildPrompt(bc domain.BusinessContext) string {
	rising := make([]string, 0, len(bc.Forecast.RisingProducts))
	for _, p := range bc.Forecast.RisingProducts {
		rising = append(rising, fmt.Sprintf("%s (+%s%%)", p.Product, strconv.FormatFloat(p.GrowthRate, 'f', -1, 64)))
	}

	var highRiskNames []string
	for _, a := range highRisk(bc.Inventory.Alerts) {
		highRiskNames = append(highRiskNames, a.Product)
	}

	issues := make([]string, 0, len(bc.Sentiment.TopIssues))
	for _, i := range bc.Sentiment.TopIssues {
		issues = append(issues, fmt.Sprintf("%s (%d mentions)", i.Issue, i.Count))
	}

	adjustments := 0
	for _, s := range bc.Pricing.Suggestions {
		if s.PotentialChangePct != 0 {
			adjustments++
		}
	}

	var b strings.Builder
	b.WriteString("You are MarketMind AI, a retail intelligence assistant. Answer questions using the following business data:\n\n")
	b.WriteString("DEMAND FORECAST:\n")
	fmt.Fprintf(&b, "- Rising products: %s\n", strings.Join(rising, ", "))
	fmt.Fprintf(&b, "- Alerts: %s\n\n", strings.Join(bc.Forecast.Alerts, ", "))
	b.WriteString("INVENTORY STATUS:\n")
	fmt.Fprintf(&b, "- Critical stock alerts: %d products\n", bc.Inventory.CriticalCount)
	fmt.Fprintf(&b, "- Warning alerts: %d products\n", bc.Inventory.WarningCount)
	fmt.Fprintf(&b, "- High-risk products: %s\n\n", strings.Join(highRiskNames, ", "))
	b.WriteString("CUSTOMER SENTIMENT:\n")
	fmt.Fprintf(&b, "- Positive reviews: %d\n", bc.Sentiment.Overall.Positive)
	fmt.Fprintf(&b, "- Negative reviews: %d\n", bc.Sentiment.Overall.Negative)
	fmt.Fprintf(&b, "- Top issues: %s\n\n", strings.Join(issues, ", "))
	b.WriteString("PRICING INSIGHTS:\n")
	fmt.Fprintf(&b, "- Products needing price adjustment: %d\n\n", adjustments)
	b.WriteString("Answer the user's question with specific data and actionable recommendations.\n")
	return b.String()
}

func highRisk(alerts []domain.RiskAlert) []domain.RiskAlert {
	var out []domain.RiskAlert
	for _, a := range alerts {
		if a.RiskLevel == domain.RiskHigh {
			out = append(out, a)
		}
	}
	return out
}

func mentionsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
