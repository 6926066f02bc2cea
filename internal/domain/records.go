// internal/domain/records.go
package domain

import "time"

// Table names of the four source datasets.
const (
	TableSales     = "sales"
	TableInventory = "inventory"
	TableReviews   = "reviews"
	TablePricing   = "pricing"
)

// Tables lists every dataset the dashboard reads, in load order.
var Tables = []string{TableSales, TableInventory, TableReviews, TablePricing}

// SalesRecord represents one day of sales for a product
type SalesRecord struct {
	Date      time.Time `json:"date" validate:"required"`
	Product   string    `json:"product" validate:"required"`
	UnitsSold float64   `json:"units_sold" validate:"gte=0"`
}

// InventoryRecord represents the current stock of a product
type InventoryRecord struct {
	Product   string  `json:"product" validate:"required"`
	StockLeft float64 `json:"stock_left" validate:"gte=0"`
}

// PricingRecord represents our price and the competitor's price for a product
type PricingRecord struct {
	Product         string  `json:"product" validate:"required"`
	CurrentPrice    float64 `json:"current_price" validate:"gte=0"`
	CompetitorPrice float64 `json:"competitor_price" validate:"gte=0"`
}

// ReviewRecord represents a single customer review
type ReviewRecord struct {
	Product    string `json:"product" validate:"required"`
	ReviewText string `json:"review_text"`
}
