package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/domain"
	"github.com/rs/zerolog/log"
)

const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Source provides the payload behind each report kind.
type Source interface {
	DemandForecast(ctx context.Context) (domain.DemandForecast, error)
	StockAlerts(ctx context.Context) (domain.StockAlerts, error)
	Sentiment(ctx context.Context) (domain.SentimentAnalysis, error)
	PricingSuggestions(ctx context.Context) (domain.PricingSuggestions, error)
}

// Uploader stores a finished workbook remotely.
type Uploader interface {
	UploadFile(ctx context.Context, objectName, path, contentType string) error
}

// Exporter writes workbooks into a local directory and optionally uploads them.
type Exporter struct {
	source   Source
	dir      string
	uploader Uploader
	now      func() time.Time
}

// NewExporter creates an Exporter. uploader may be nil.
func NewExporter(source Source, dir string, uploader Uploader) *Exporter {
	return &Exporter{source: source, dir: dir, uploader: uploader, now: time.Now}
}

// Data loads the payload for kind.
func (e *Exporter) Data(ctx context.Context, kind Kind) (interface{}, error) {
	switch kind {
	case KindForecast:
		return e.source.DemandForecast(ctx)
	case KindInventory:
		return e.source.StockAlerts(ctx)
	case KindSentiment:
		return e.source.Sentiment(ctx)
	case KindPricing:
		return e.source.PricingSuggestions(ctx)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidReportType, kind)
	}
}

// Excel writes the workbook for kind and returns its local path.
func (e *Exporter) Excel(ctx context.Context, kind Kind) (string, error) {
	data, err := e.Data(ctx, kind)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export dir: %w", err)
	}

	name := Filename(kind, e.now())
	path := filepath.Join(e.dir, name)

	f, err := Workbook(kind, data)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save workbook %s: %w", path, err)
	}

	log.Info().Str("kind", string(kind)).Str("path", path).Msg("Report exported")

	if e.uploader != nil {
		if err := e.uploader.UploadFile(ctx, "exports/"+name, path, ContentTypeXLSX); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Report upload failed")
		}
	}

	return path, nil
}

// Summary builds the digest for kind. Pricing is rejected before any data is loaded.
func (e *Exporter) Summary(ctx context.Context, kind Kind) (Summary, error) {
	if kind != KindForecast && kind != KindInventory && kind != KindSentiment {
		return Summary{}, fmt.Errorf("%w: %q has no summary", domain.ErrInvalidReportType, kind)
	}

	data, err := e.Data(ctx, kind)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(kind, data, e.now())
}
