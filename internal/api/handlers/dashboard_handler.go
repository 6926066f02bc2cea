package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/domain"
	"github.com/gin-gonic/gin"
)

// DashboardReader is implemented by service.DashboardService.
type DashboardReader interface {
	DemandForecast(ctx context.Context) (domain.DemandForecast, error)
	ProductForecastSummary(ctx context.Context) ([]domain.ProductForecastSummary, error)
	StockAlerts(ctx context.Context) (domain.StockAlerts, error)
	PricingSuggestions(ctx context.Context) (domain.PricingSuggestions, error)
	Sentiment(ctx context.Context) (domain.SentimentAnalysis, error)
	ProductDetails(ctx context.Context, product string) (domain.ProductDetails, error)
}

type DashboardHandler struct {
	service DashboardReader
}

func NewDashboardHandler(service DashboardReader) *DashboardHandler {
	return &DashboardHandler{service: service}
}

func (h *DashboardHandler) GetForecast(c *gin.Context) {
	forecast, err := h.service.DemandForecast(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to compute demand forecast")
		return
	}
	c.JSON(http.StatusOK, forecast)
}

func (h *DashboardHandler) GetForecastSummary(c *gin.Context) {
	summaries, err := h.service.ProductForecastSummary(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to compute forecast summary")
		return
	}
	if summaries == nil {
		summaries = make([]domain.ProductForecastSummary, 0)
	}
	c.JSON(http.StatusOK, summaries)
}

func (h *DashboardHandler) GetStockAlerts(c *gin.Context) {
	alerts, err := h.service.StockAlerts(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to compute stock alerts")
		return
	}
	c.JSON(http.StatusOK, alerts)
}

func (h *DashboardHandler) GetSentiment(c *gin.Context) {
	analysis, err := h.service.Sentiment(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to analyze sentiment")
		return
	}
	c.JSON(http.StatusOK, analysis)
}

func (h *DashboardHandler) GetPricingSuggestions(c *gin.Context) {
	suggestions, err := h.service.PricingSuggestions(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to compute pricing suggestions")
		return
	}
	c.JSON(http.StatusOK, suggestions)
}

func (h *DashboardHandler) GetProduct(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product name is required"})
		return
	}

	details, err := h.service.ProductDetails(c.Request.Context(), name)
	if err != nil {
		respondError(c, err, fmt.Sprintf("failed to load product %s", name))
		return
	}
	c.JSON(http.StatusOK, details)
}
