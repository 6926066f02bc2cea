// Package app wires the configured collaborators into the dashboard, copilot and exporter.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/analytics/forecast"
	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/analytics/pricing"
	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/analytics/sentiment"
	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/cache"
	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/classifier"
	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/config"
	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/copilot"
	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/dataset"
	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/domain"
	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/drive"
	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/llm"
	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/report"
	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/service"
	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/storage"
	"github.com/rs/zerolog/log"
)

const (
	SourceLocal = "local"
	SourceS3    = "s3"
	SourceDrive = "drive"
)

// App holds the process-lifetime collaborators. Call Close on shutdown.
type App struct {
	Config      *config.Config
	Loader      *dataset.Loader
	Dashboard   *service.DashboardService
	Copilot     *copilot.Copilot
	Exporter    *report.Exporter
	ChatLimiter cache.RateLimiter
	Storage     storage.ObjectStorage

	classifier *classifier.Lazy
	llm        *llm.Lazy
}

// New builds the App. The classifier and LLM clients are constructed on first use.
func New(cfg *config.Config) (*App, error) {
	a := &App{Config: cfg}

	a.Loader = dataset.NewLoader(cfg.Data.Dir)

	a.classifier = classifier.NewLazy(func() (classifier.Classifier, error) {
		return classifier.NewHuggingFace(cfg.Classifier)
	})
	a.llm = llm.NewLazy(func() (llm.Client, error) {
		return llm.New(cfg.LLM)
	})

	aggregator := sentiment.NewAggregator(a.classifier, cfg.Analytics.SentimentWorkers, cfg.Analytics.ReviewMaxChars)
	a.Dashboard = service.NewDashboardService(
		a.Loader,
		forecast.NewEngine(cfg.Analytics.ForecastHorizon, cfg.Analytics.ForecastWindow),
		pricing.NewEngine(),
		aggregator,
	)
	a.Copilot = copilot.New(a.Dashboard, a.llm)

	if cfg.Storage.Endpoint != "" {
		s3, err := storage.NewS3Client(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to init storage: %w", err)
		}
		a.Storage = s3
	}

	var uploader report.Uploader
	if cfg.Export.Upload {
		if a.Storage == nil {
			return nil, fmt.Errorf("EXPORT_UPLOAD requires STORAGE_ENDPOINT")
		}
		uploader = a.Storage
	}
	a.Exporter = report.NewExporter(a.Dashboard, cfg.Export.Dir, uploader)

	limiter, err := cache.NewChatLimiter(cfg.Cache)
	if err != nil {
		log.Warn().Err(err).Msg("Chat rate limiter disabled")
		limiter = cache.NewNoopChatLimiter()
	}
	a.ChatLimiter = limiter

	return a, nil
}

// SyncDatasets refreshes the data dir from the configured remote source.
// It is a no-op for the local source.
func (a *App) SyncDatasets(ctx context.Context) ([]string, error) {
	switch strings.ToLower(a.Config.Data.Source) {
	case "", SourceLocal:
		return nil, nil
	case SourceS3:
		if a.Storage == nil {
			return nil, fmt.Errorf("DATA_SOURCE=s3 requires STORAGE_ENDPOINT")
		}
		return storage.SyncTables(ctx, a.Storage, a.Config.Data.Prefix, a.Config.Data.Dir, domain.Tables)
	case SourceDrive:
		svc, err := drive.NewService(ctx, a.Config.Data.DriveCredentialsJSON)
		if err != nil {
			return nil, err
		}
		return drive.NewDownloader(svc).SyncTables(ctx, a.Config.Data.DriveFolderID, a.Config.Data.Dir, domain.Tables)
	default:
		return nil, fmt.Errorf("unknown DATA_SOURCE %q", a.Config.Data.Source)
	}
}

// Close releases the chat limiter and any initialised remote clients.
func (a *App) Close() error {
	var errs []error
	if a.ChatLimiter != nil {
		errs = append(errs, a.ChatLimiter.Close())
	}
	if a.classifier != nil {
		errs = append(errs, a.classifier.Close())
	}
	if a.llm != nil {
		errs = append(errs, a.llm.Close())
	}
	return errors.Join(errs...)
}
