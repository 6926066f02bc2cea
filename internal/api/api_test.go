package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/copilot"
	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/domain"
	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/report"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeDashboard struct {
	err error
}

func (f *fakeDashboard) DemandForecast(ctx context.Context) (domain.DemandForecast, error) {
	return domain.DemandForecast{
		Forecasts:      []domain.ForecastPoint{{Date: "2024-01-11", Product: "Widget", ForecastedUnits: 6}},
		RisingProducts: []domain.RisingProduct{},
		Alerts:         []string{},
	}, f.err
}

func (f *fakeDashboard) ProductForecastSummary(ctx context.Context) ([]domain.ProductForecastSummary, error) {
	return nil, f.err
}

func (f *fakeDashboard) StockAlerts(ctx context.Context) (domain.StockAlerts, error) {
	return domain.StockAlerts{Alerts: []domain.RiskAlert{}}, f.err
}

func (f *fakeDashboard) PricingSuggestions(ctx context.Context) (domain.PricingSuggestions, error) {
	return domain.PricingSuggestions{Suggestions: []domain.PricingSuggestion{
		{Product: "Widget", CurrentPrice: 100, CompetitorPrice: 90, SuggestedPrice: 89.99, PotentialChangePct: -10.01},
	}}, f.err
}

func (f *fakeDashboard) Sentiment(ctx context.Context) (domain.SentimentAnalysis, error) {
	if f.err != nil {
		return domain.SentimentAnalysis{}, f.err
	}
	return domain.SentimentAnalysis{}, fmt.Errorf("%w: model loading", domain.ErrClassifierUnavailable)
}

func (f *fakeDashboard) ProductDetails(ctx context.Context, product string) (domain.ProductDetails, error) {
	if product != "Widget" {
		return domain.ProductDetails{}, fmt.Errorf("%w: %s", domain.ErrProductNotFound, product)
	}
	return domain.ProductDetails{Product: product, StockLeft: 10}, f.err
}

type fakeAsker struct {
	question string
}

func (f *fakeAsker) Ask(ctx context.Context, question string) copilot.Response {
	f.question = question
	return copilot.Response{Answer: "Reorder Widget", ActionItems: []string{"Reorder 60 units of Widget"}}
}

type fakeExporter struct {
	path string
}

func (f *fakeExporter) Excel(ctx context.Context, kind report.Kind) (string, error) {
	return f.path, nil
}

func (f *fakeExporter) Summary(ctx context.Context, kind report.Kind) (report.Summary, error) {
	if kind == report.KindPricing {
		return report.Summary{}, fmt.Errorf("%w: pricing", domain.ErrInvalidReportType)
	}
	return report.Summary{Title: kind.Title(), Summary: map[string]int{"critical_alerts": 1}}, nil
}

type denyAll struct{}

func (denyAll) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	return false, 30 * time.Second, nil
}

func (denyAll) Close() error { return nil }

func newTestRouter(t *testing.T, dashboard *fakeDashboard) (*gin.Engine, *fakeAsker) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pricing_report_20240305_140709.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("xlsx"), 0644))

	asker := &fakeAsker{}
	router := NewRouter(&Services{
		Dashboard: dashboard,
		Copilot:   asker,
		Exporter:  &fakeExporter{path: path},
	}, []string{"*"})
	return router, asker
}

func perform(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestIndexAndHealth(t *testing.T) {
	router, _ := newTestRouter(t, &fakeDashboard{})

	w := perform(router, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "MarketMind AI")

	w = perform(router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestDashboardRoutesOnBothPrefixes(t *testing.T) {
	router, _ := newTestRouter(t, &fakeDashboard{})

	for _, prefix := range []string{"", "/api/v1"} {
		w := perform(router, http.MethodGet, prefix+"/pricing-suggestions", "")
		require.Equal(t, http.StatusOK, w.Code, prefix)

		var body domain.PricingSuggestions
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body.Suggestions, 1)
		assert.Equal(t, -10.01, body.Suggestions[0].PotentialChangePct)
		assert.Contains(t, w.Body.String(), `"potential_change":-10.01`)

		w = perform(router, http.MethodGet, prefix+"/forecast/summary", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]", w.Body.String())
	}
}

func TestErrorStatusMapping(t *testing.T) {
	router, _ := newTestRouter(t, &fakeDashboard{err: fmt.Errorf("%w: sales.csv", domain.ErrDataUnavailable)})

	tests := []struct {
		path   string
		status int
	}{
		{path: "/forecast", status: http.StatusServiceUnavailable},
		{path: "/stock-alerts", status: http.StatusServiceUnavailable},
		{path: "/api/v1/sentiment", status: http.StatusServiceUnavailable},
		{path: "/product/Nope", status: http.StatusNotFound},
		{path: "/export/weather/excel", status: http.StatusBadRequest},
		{path: "/export/pricing/pdf", status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := perform(router, http.MethodGet, tt.path, "")
			assert.Equal(t, tt.status, w.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
			assert.NotEmpty(t, body["details"])
		})
	}
}

func TestSentimentClassifierUnavailable(t *testing.T) {
	router, _ := newTestRouter(t, &fakeDashboard{})

	w := perform(router, http.MethodGet, "/sentiment", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "model loading")
}

func TestProductRoute(t *testing.T) {
	router, _ := newTestRouter(t, &fakeDashboard{})

	w := perform(router, http.MethodGet, "/api/v1/product/Widget", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"stock_left":10`)
}

func TestChat(t *testing.T) {
	router, asker := newTestRouter(t, &fakeDashboard{})

	w := perform(router, http.MethodPost, "/chat", `{"question":"What should I restock?"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "What should I restock?", asker.question)
	assert.JSONEq(t, `{"answer":"Reorder Widget","action_items":["Reorder 60 units of Widget"]}`, w.Body.String())

	w = perform(router, http.MethodPost, "/api/v1/chat", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatRateLimited(t *testing.T) {
	router := NewRouter(&Services{Copilot: &fakeAsker{}, ChatLimiter: denyAll{}}, nil)

	w := perform(router, http.MethodPost, "/chat", `{"question":"hi"}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "30", w.Header().Get("Retry-After"))
}

func TestExportRoutes(t *testing.T) {
	router, _ := newTestRouter(t, &fakeDashboard{})

	w := perform(router, http.MethodGet, "/export/pricing/excel", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "pricing_report_20240305_140709.xlsx")
	assert.Equal(t, "xlsx", w.Body.String())

	w = perform(router, http.MethodGet, "/api/v1/export/inventory/pdf", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"title":"Inventory Report"`)
}

func TestNormalizeAllowedOrigins(t *testing.T) {
	origins, all := normalizeAllowedOrigins([]string{"http://a.com, http://b.com", " ", "*"})
	assert.True(t, all)
	assert.Equal(t, []string{"http://a.com", "http://b.com"}, origins)
}
