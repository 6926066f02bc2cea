package risk

import (
	"testing"

	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssess(t *testing.T) {
	tests := []struct {
		name    string
		stock   float64
		summary domain.ProductForecastSummary
		want    Assessment
	}{
		{
			name:    "high risk below half of demand",
			stock:   10,
			summary: domain.ProductForecastSummary{Next7DaysDemand: 30, DailyAvg: 4},
			want:    Assessment{Level: domain.RiskHigh, ReorderQty: 60, DaysUntilStockout: 2},
		},
		{
			name:    "exactly half of demand is medium",
			stock:   15,
			summary: domain.ProductForecastSummary{Next7DaysDemand: 30, DailyAvg: 4},
			want:    Assessment{Level: domain.RiskMedium, ReorderQty: 30, DaysUntilStockout: 3},
		},
		{
			name:    "stock equal to demand is low",
			stock:   30,
			summary: domain.ProductForecastSummary{Next7DaysDemand: 30, DailyAvg: 4},
			want:    Assessment{Level: domain.RiskLow, ReorderQty: 0, DaysUntilStockout: 7},
		},
		{
			name:    "zero daily demand uses sentinel",
			stock:   5,
			summary: domain.ProductForecastSummary{Next7DaysDemand: 6, DailyAvg: 0},
			want:    Assessment{Level: domain.RiskMedium, ReorderQty: 6, DaysUntilStockout: NoStockoutSentinel},
		},
		{
			name:    "zero demand and zero stock is low",
			stock:   0,
			summary: domain.ProductForecastSummary{},
			want:    Assessment{Level: domain.RiskLow, ReorderQty: 0, DaysUntilStockout: NoStockoutSentinel},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Assess(tt.stock, tt.summary))
		})
	}
}

func TestComputeAlerts_JoinAndOrder(t *testing.T) {
	inventory := []domain.InventoryRecord{
		{Product: "Low", StockLeft: 500},
		{Product: "High", StockLeft: 10},
		{Product: "Medium", StockLeft: 20},
		{Product: "High2", StockLeft: 1},
		{Product: "High", StockLeft: 999},
	}
	summaries := []domain.ProductForecastSummary{
		{Product: "Low", Next7DaysDemand: 30, DailyAvg: 4},
		{Product: "Medium", Next7DaysDemand: 30, DailyAvg: 4},
		{Product: "High", Next7DaysDemand: 30, DailyAvg: 4},
		{Product: "Unstocked", Next7DaysDemand: 30, DailyAvg: 4},
		{Product: "High2", Next7DaysDemand: 30, DailyAvg: 4},
	}

	result := ComputeAlerts(inventory, summaries)
	require.Len(t, result.Alerts, 4)

	var order []string
	for _, a := range result.Alerts {
		order = append(order, a.Product)
	}
	assert.Equal(t, []string{"High", "High2", "Medium", "Low"}, order)
	assert.Equal(t, 2, result.CriticalCount)
	assert.Equal(t, 1, result.WarningCount)

	high := result.Alerts[0]
	assert.Equal(t, 10, high.StockLeft)
	assert.Equal(t, 30, high.ForecastedDemand7d)
	assert.Equal(t, 60, high.ReorderQty)

	for i := 1; i < len(result.Alerts); i++ {
		assert.LessOrEqual(t, result.Alerts[i-1].RiskLevel.Severity(), result.Alerts[i].RiskLevel.Severity())
	}
}

func TestComputeAlerts_Empty(t *testing.T) {
	result := ComputeAlerts(nil, nil)
	assert.NotNil(t, result.Alerts)
	assert.Empty(t, result.Alerts)
	assert.Zero(t, result.CriticalCount)
}
