// internal/domain/analytics.go
package domain

// ForecastPoint is a single projected day for a product
type ForecastPoint struct {
	Date            string `json:"date"`
	Product         string `json:"product"`
	ForecastedUnits int    `json:"forecasted_units"`
}

// ProductForecastSummary aggregates a product's forecast horizon
type ProductForecastSummary struct {
	Product         string `json:"product"`
	Next7DaysDemand int    `json:"next_7_days_demand"`
	DailyAvg        int    `json:"daily_avg"`
}

// RisingProduct is a product whose recent sales grew more than the rising threshold
type RisingProduct struct {
	Product        string  `json:"product"`
	GrowthRate     float64 `json:"growth_rate"`
	AvgDailyDemand int     `json:"avg_daily_demand"`
}

// DemandForecast is the payload of the forecast endpoint
type DemandForecast struct {
	Forecasts      []ForecastPoint `json:"forecasts"`
	RisingProducts []RisingProduct `json:"rising_products"`
	Alerts         []string        `json:"alerts"`
}

// RiskAlert is the reorder recommendation for one product
type RiskAlert struct {
	Product            string    `json:"product"`
	StockLeft          int       `json:"stock_left"`
	ForecastedDemand7d int       `json:"forecasted_demand_7d"`
	RiskLevel          RiskLevel `json:"risk_level"`
	ReorderQty         int       `json:"reorder_qty"`
	DaysUntilStockout  int       `json:"days_until_stockout"`
}

// StockAlerts is the payload of the stock alerts endpoint
type StockAlerts struct {
	Alerts        []RiskAlert `json:"alerts"`
	CriticalCount int         `json:"critical_count"`
	WarningCount  int         `json:"warning_count"`
}

// PricingSuggestion is the outcome of the pricing rule chain for one product
type PricingSuggestion struct {
	Product            string  `json:"product"`
	CurrentPrice       float64 `json:"current_price"`
	CompetitorPrice    float64 `json:"competitor_price"`
	SuggestedPrice     float64 `json:"suggested_price"`
	PotentialChangePct float64 `json:"potential_change"`
	Reason             string  `json:"reason"`
}

// PricingSuggestions is the payload of the pricing endpoint
type PricingSuggestions struct {
	Suggestions []PricingSuggestion `json:"suggestions"`
}

// Classification is the raw answer of the sentiment classifier
type Classification struct {
	Label      SentimentLabel `json:"label"`
	Confidence float64        `json:"score"`
}

// SentimentResult is the classification of one review
type SentimentResult struct {
	Product    string         `json:"product"`
	Review     string         `json:"review"`
	Sentiment  SentimentLabel `json:"sentiment"`
	Confidence float64        `json:"confidence"`
}

// IssueSummary counts negative reviews mentioning an issue category
type IssueSummary struct {
	Issue      string  `json:"issue"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// OverallSentiment holds review totals across all products
type OverallSentiment struct {
	Positive     int `json:"positive"`
	Negative     int `json:"negative"`
	TotalReviews int `json:"total_reviews"`
}

// ProductSentiment holds review totals for one product
type ProductSentiment struct {
	Positive     int     `json:"positive"`
	Negative     int     `json:"negative"`
	Total        int     `json:"total"`
	PositiveRate float64 `json:"positive_rate"`
}

// SentimentAnalysis is the payload of the sentiment endpoint
type SentimentAnalysis struct {
	Overall          OverallSentiment            `json:"overall_sentiment"`
	TopIssues        []IssueSummary              `json:"top_issues"`
	ProductSentiment map[string]ProductSentiment `json:"product_sentiment"`
	ProductOrder     []string                    `json:"-"`
	SampleReviews    []SentimentResult           `json:"sample_reviews"`
}

// SalesPoint is a historical sales day shown in product details
type SalesPoint struct {
	Date      string `json:"date"`
	UnitsSold int    `json:"units_sold"`
}

// ProductPricing is the price pair shown in product details
type ProductPricing struct {
	CurrentPrice    float64 `json:"current_price"`
	CompetitorPrice float64 `json:"competitor_price"`
}

// ProductMetrics are the headline numbers of product details
type ProductMetrics struct {
	TotalSales    int     `json:"total_sales"`
	AvgDailySales float64 `json:"avg_daily_sales"`
	DaysOfStock   int     `json:"days_of_stock"`
	TotalReviews  int     `json:"total_reviews"`
}

// ProductReview is a review excerpt shown in product details
type ProductReview struct {
	Text string `json:"text"`
}

// ProductDetails combines every dataset for a single product
type ProductDetails struct {
	Product      string          `json:"product"`
	StockLeft    int             `json:"stock_left"`
	Pricing      ProductPricing  `json:"pricing"`
	SalesHistory []SalesPoint    `json:"sales_history"`
	Forecast     []ForecastPoint `json:"forecast"`
	Metrics      ProductMetrics  `json:"metrics"`
	Reviews      []ProductReview `json:"reviews"`
}

// BusinessContext bundles the four derived summaries used by the chat assistant
type BusinessContext struct {
	Forecast  DemandForecast     `json:"forecast"`
	Inventory StockAlerts        `json:"inventory"`
	Sentiment SentimentAnalysis  `json:"sentiment"`
	Pricing   PricingSuggestions `json:"pricing"`
}
