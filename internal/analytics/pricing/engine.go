package pricing

import (
	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/analytics"
	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/domain"
)

// Engine runs an ordered rule chain over the pricing table. The first rule
// that applies decides the suggestion.
type Engine struct {
	rules []Rule
}

// NewEngine creates an engine with the default rule chain.
func NewEngine() *Engine {
	return &Engine{rules: DefaultRules()}
}

// NewEngineWithRules creates an engine with a custom chain. A chain that does
// not end in a catch-all gets Optimal appended.
func NewEngineWithRules(rules []Rule) *Engine {
	chain := append([]Rule(nil), rules...)
	if len(chain) == 0 || chain[len(chain)-1].Name != Optimal.Name {
		chain = append(chain, Optimal)
	}
	return &Engine{rules: chain}
}

// Match returns the first rule that applies to in.
func (e *Engine) Match(in Input) Rule {
	for _, rule := range e.rules {
		if rule.Applies(in) {
			return rule
		}
	}
	return Optimal
}

// Suggest produces one suggestion per pricing row, in row order.
func (e *Engine) Suggest(rows []domain.PricingRecord, summaries []domain.ProductForecastSummary) domain.PricingSuggestions {
	byProduct := make(map[string]domain.ProductForecastSummary, len(summaries))
	for _, s := range summaries {
		if _, ok := byProduct[s.Product]; !ok {
			byProduct[s.Product] = s
		}
	}

	result := domain.PricingSuggestions{Suggestions: make([]domain.PricingSuggestion, 0, len(rows))}
	for _, row := range rows {
		in := Input{CurrentPrice: row.CurrentPrice, CompetitorPrice: row.CompetitorPrice}
		if s, ok := byProduct[row.Product]; ok {
			in.Forecast = &s
		}

		rule := e.Match(in)
		suggested := rule.Price(in)

		result.Suggestions = append(result.Suggestions, domain.PricingSuggestion{
			Product:            row.Product,
			CurrentPrice:       analytics.RoundFloat(row.CurrentPrice, 2),
			CompetitorPrice:    analytics.RoundFloat(row.CompetitorPrice, 2),
			SuggestedPrice:     analytics.RoundFloat(suggested, 2),
			PotentialChangePct: ChangePct(row.CurrentPrice, suggested),
			Reason:             rule.Reason,
		})
	}
	return result
}

// ChangePct is the percentage move from current to suggested, rounded to 2
// decimals. A zero current price yields 0.
func ChangePct(current, suggested float64) float64 {
	if current == 0 {
		return 0
	}
	return analytics.RoundFloat((suggested-current)/current*100, 2)
}
