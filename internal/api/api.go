package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/api/handlers"
	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/api/middleware"
	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/cache"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const (
	serviceName    = "MarketMind AI - Retail Intelligence API"
	serviceVersion = "1.0.0"
)

type Services struct {
	Dashboard   handlers.DashboardReader
	Copilot     handlers.Asker
	Exporter    handlers.ReportExporter
	ChatLimiter cache.RateLimiter
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	corsConfig := cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/", index)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if services != nil {
		// The dashboard frontend calls the unversioned paths.
		registerRoutes(router.Group("/api/v1"), services)
		registerRoutes(router.Group(""), services)
	}

	return router
}

func registerRoutes(group *gin.RouterGroup, services *Services) {
	if services.Dashboard != nil {
		dashboardHandler := handlers.NewDashboardHandler(services.Dashboard)
		group.GET("/forecast", dashboardHandler.GetForecast)
		group.GET("/forecast/summary", dashboardHandler.GetForecastSummary)
		group.GET("/stock-alerts", dashboardHandler.GetStockAlerts)
		group.GET("/sentiment", dashboardHandler.GetSentiment)
		group.GET("/pricing-suggestions", dashboardHandler.GetPricingSuggestions)
		group.GET("/product/:name", dashboardHandler.GetProduct)
	}

	if services.Copilot != nil {
		chatHandler := handlers.NewChatHandler(services.Copilot)
		group.POST("/chat", middleware.RateLimit(services.ChatLimiter), chatHandler.Chat)
	}

	if services.Exporter != nil {
		exportHandler := handlers.NewExportHandler(services.Exporter)
		exportGroup := group.Group("/export/:type")
		{
			exportGroup.GET("/excel", exportHandler.ExportExcel)
			exportGroup.GET("/pdf", exportHandler.ExportSummary)
		}
	}
}

func index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": serviceName,
		"version": serviceVersion,
		"endpoints": []string{
			"/forecast",
			"/forecast/summary",
			"/stock-alerts",
			"/sentiment",
			"/pricing-suggestions",
			"/chat",
			"/product/{name}",
			"/export/{type}/excel",
			"/export/{type}/pdf",
		},
	})
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
