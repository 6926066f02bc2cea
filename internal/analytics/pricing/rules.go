package pricing

import "github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/domain"

// Input is everything a pricing rule may look at for one product.
type Input struct {
	CurrentPrice    float64
	CompetitorPrice float64
	// Forecast is nil when the product has no forecast summary.
	Forecast *domain.ProductForecastSummary
}

// Rule is one pricing heuristic. Applies decides whether it fires and Price
// computes the suggested price when it does.
type Rule struct {
	Name    string
	Reason  string
	Applies func(in Input) bool
	Price   func(in Input) float64
}

const highDemandDailyAvg = 50

var (
	CompetitorDiscount = Rule{
		Name:   "competitor_discount",
		Reason: "Competitor pricing lower - suggest discount to stay competitive",
		Applies: func(in Input) bool {
			return in.CompetitorPrice < in.CurrentPrice*0.95
		},
		Price: func(in Input) float64 {
			return in.CompetitorPrice - 0.01
		},
	}

	HighDemand = Rule{
		Name:   "high_demand",
		Reason: "High demand detected - opportunity for price increase",
		Applies: func(in Input) bool {
			return in.Forecast != nil && in.Forecast.DailyAvg > highDemandDailyAvg
		},
		Price: func(in Input) float64 {
			return in.CurrentPrice * 1.05
		},
	}

	BelowMarket = Rule{
		Name:   "below_market",
		Reason: "Priced below market - room for margin improvement",
		Applies: func(in Input) bool {
			return in.CompetitorPrice > in.CurrentPrice*1.1
		},
		Price: func(in Input) float64 {
			return in.CurrentPrice * 1.08
		},
	}

	// Optimal always matches and keeps the current price.
	Optimal = Rule{
		Name:   "optimal",
		Reason: "Current pricing is optimal",
		Applies: func(Input) bool {
			return true
		},
		Price: func(in Input) float64 {
			return in.CurrentPrice
		},
	}
)

// DefaultRules is the rule chain in evaluation order. The last rule always matches.
func DefaultRules() []Rule {
	return []Rule{CompetitorDiscount, HighDemand, BelowMarket, Optimal}
}
