package drive

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// FileSource is the subset of Service used by the Downloader.
type FileSource interface {
	ListFiles(ctx context.Context, folderID string) ([]File, error)
	DownloadFile(ctx context.Context, fileID string, w io.Writer) error
	ExportFile(ctx context.Context, fileID, mimeType string, w io.Writer) error
}

// Downloader pulls dataset tables from a Drive folder into a local directory as CSV.
type Downloader struct {
	source FileSource
}

func NewDownloader(source FileSource) *Downloader {
	return &Downloader{source: source}
}

// SyncTables writes <dir>/<table>.csv for every table found in folderID.
// A table may be stored as <table>.csv, <table>.xlsx or a Google Sheet named <table>.
// All tables must be present.
func (d *Downloader) SyncTables(ctx context.Context, folderID, dir string, tables []string) ([]string, error) {
	if dir == "" {
		return nil, fmt.Errorf("download dir is required")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create download dir: %w", err)
	}

	files, err := d.source.ListFiles(ctx, folderID)
	if err != nil {
		return nil, err
	}

	var written []string
	for _, table := range tables {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		file, ok := pickFile(files, table)
		if !ok {
			return written, fmt.Errorf("table %s not found in drive folder %s", table, folderID)
		}

		var buf bytes.Buffer
		if err := d.fetchCSV(ctx, file, &buf); err != nil {
			return written, fmt.Errorf("failed to fetch %s: %w", file.Name, err)
		}

		localPath := filepath.Join(dir, table+".csv")
		if err := os.WriteFile(localPath, buf.Bytes(), 0644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", localPath, err)
		}

		log.Info().Str("table", table).Str("file", file.Name).Str("path", localPath).Msg("Dataset synced from drive")
		written = append(written, localPath)
	}

	return written, nil
}

func (d *Downloader) fetchCSV(ctx context.Context, f File, w io.Writer) error {
	if f.MimeType == mimeGoogleSheet {
		return d.source.ExportFile(ctx, f.ID, mimeCSV, w)
	}

	if strings.EqualFold(filepath.Ext(f.Name), ".xlsx") {
		var raw bytes.Buffer
		if err := d.source.DownloadFile(ctx, f.ID, &raw); err != nil {
			return err
		}
		return convertXLSXToCSV(&raw, w)
	}

	return d.source.DownloadFile(ctx, f.ID, w)
}

// pickFile prefers <table>.csv, then <table>.xlsx, then a Google Sheet named <table>.
func pickFile(files []File, table string) (File, bool) {
	candidates := []func(File) bool{
		func(f File) bool { return strings.EqualFold(f.Name, table+".csv") },
		func(f File) bool { return strings.EqualFold(f.Name, table+".xlsx") },
		func(f File) bool { return f.MimeType == mimeGoogleSheet && strings.EqualFold(f.Name, table) },
	}
	for _, match := range candidates {
		for _, f := range files {
			if match(f) {
				return f, true
			}
		}
	}
	return File{}, false
}
