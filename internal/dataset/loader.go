package dataset

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/domain"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

// dateLayouts are tried in order when parsing the sales date column.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02",
}

// Loader reads the four dashboard tables from a directory of CSV or XLSX files.
// Every load reads the file again; nothing is kept between calls.
type Loader struct {
	dir      string
	validate *validator.Validate
}

// NewLoader creates a loader rooted at dir.
func NewLoader(dir string) *Loader {
	return &Loader{
		dir:      dir,
		validate: validator.New(),
	}
}

// Dir returns the directory the loader reads from.
func (l *Loader) Dir() string {
	return l.dir
}

// LoadTable loads a table by name and returns its row count.
func (l *Loader) LoadTable(ctx context.Context, table string) (int, error) {
	switch table {
	case domain.TableSales:
		rows, err := l.LoadSales(ctx)
		return len(rows), err
	case domain.TableInventory:
		rows, err := l.LoadInventory(ctx)
		return len(rows), err
	case domain.TableReviews:
		rows, err := l.LoadReviews(ctx)
		return len(rows), err
	case domain.TablePricing:
		rows, err := l.LoadPricing(ctx)
		return len(rows), err
	default:
		return 0, fmt.Errorf("%w: unknown table %q", domain.ErrDataUnavailable, table)
	}
}

// LoadSales reads the sales table. Rows keep file order.
func (l *Loader) LoadSales(ctx context.Context) ([]domain.SalesRecord, error) {
	t, idx, err := l.open(ctx, domain.TableSales, "date", "product", "units_sold")
	if err != nil {
		return nil, err
	}

	records := make([]domain.SalesRecord, 0, len(t.rows))
	for i, row := range t.rows {
		if isBlank(row) {
			continue
		}
		date, err := parseDate(cell(row, idx["date"]))
		if err != nil {
			return nil, l.rowError(t, i, err)
		}
		units, err := parseNumber(cell(row, idx["units_sold"]))
		if err != nil {
			return nil, l.rowError(t, i, fmt.Errorf("units_sold: %w", err))
		}
		rec := domain.SalesRecord{
			Date:      date,
			Product:   cell(row, idx["product"]),
			UnitsSold: units,
		}
		if err := l.validate.Struct(rec); err != nil {
			return nil, l.rowError(t, i, err)
		}
		records = append(records, rec)
	}

	log.Debug().Str("table", t.name).Int("rows", len(records)).Msg("dataset loaded")
	return records, nil
}

// LoadInventory reads the inventory table.
func (l *Loader) LoadInventory(ctx context.Context) ([]domain.InventoryRecord, error) {
	t, idx, err := l.open(ctx, domain.TableInventory, "product", "stock_left")
	if err != nil {
		return nil, err
	}

	records := make([]domain.InventoryRecord, 0, len(t.rows))
	for i, row := range t.rows {
		if isBlank(row) {
			continue
		}
		stock, err := parseNumber(cell(row, idx["stock_left"]))
		if err != nil {
			return nil, l.rowError(t, i, fmt.Errorf("stock_left: %w", err))
		}
		rec := domain.InventoryRecord{
			Product:   cell(row, idx["product"]),
			StockLeft: stock,
		}
		if err := l.validate.Struct(rec); err != nil {
			return nil, l.rowError(t, i, err)
		}
		records = append(records, rec)
	}

	log.Debug().Str("table", t.name).Int("rows", len(records)).Msg("dataset loaded")
	return records, nil
}

// LoadReviews reads the reviews table.
func (l *Loader) LoadReviews(ctx context.Context) ([]domain.ReviewRecord, error) {
	t, idx, err := l.open(ctx, domain.TableReviews, "product", "review_text")
	if err != nil {
		return nil, err
	}

	records := make([]domain.ReviewRecord, 0, len(t.rows))
	for i, row := range t.rows {
		if isBlank(row) {
			continue
		}
		rec := domain.ReviewRecord{
			Product:    cell(row, idx["product"]),
			ReviewText: cell(row, idx["review_text"]),
		}
		if err := l.validate.Struct(rec); err != nil {
			return nil, l.rowError(t, i, err)
		}
		records = append(records, rec)
	}

	log.Debug().Str("table", t.name).Int("rows", len(records)).Msg("dataset loaded")
	return records, nil
}

// LoadPricing reads the pricing table.
func (l *Loader) LoadPricing(ctx context.Context) ([]domain.PricingRecord, error) {
	t, idx, err := l.open(ctx, domain.TablePricing, "product", "current_price", "competitor_price")
	if err != nil {
		return nil, err
	}

	records := make([]domain.PricingRecord, 0, len(t.rows))
	for i, row := range t.rows {
		if isBlank(row) {
			continue
		}
		current, err := parseNumber(cell(row, idx["current_price"]))
		if err != nil {
			return nil, l.rowError(t, i, fmt.Errorf("current_price: %w", err))
		}
		competitor, err := parseNumber(cell(row, idx["competitor_price"]))
		if err != nil {
			return nil, l.rowError(t, i, fmt.Errorf("competitor_price: %w", err))
		}
		rec := domain.PricingRecord{
			Product:         cell(row, idx["product"]),
			CurrentPrice:    current,
			CompetitorPrice: competitor,
		}
		if err := l.validate.Struct(rec); err != nil {
			return nil, l.rowError(t, i, err)
		}
		records = append(records, rec)
	}

	log.Debug().Str("table", t.name).Int("rows", len(records)).Msg("dataset loaded")
	return records, nil
}

func (l *Loader) open(ctx context.Context, table string, columns ...string) (*rawTable, map[string]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	t, err := readTable(l.dir, table)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", domain.ErrDataUnavailable, table, err)
	}

	idx, err := t.requireColumns(columns...)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", domain.ErrDataUnavailable, table, err)
	}

	return t, idx, nil
}

// rowError reports i as a 1-based line number including the header line.
func (l *Loader) rowError(t *rawTable, i int, err error) error {
	return fmt.Errorf("%w: %s line %d: %v", domain.ErrDataUnavailable, t.name, i+2, err)
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func parseDate(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, fmt.Errorf("date is empty")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable date %q", v)
}

func parseNumber(v string) (float64, error) {
	if v == "" {
		return 0, fmt.Errorf("value is empty")
	}
	v = strings.ReplaceAll(v, ",", "")
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("unparsable number %q", v)
	}
	return f, nil
}
