package handlers

import (
	"context"
	"net/http"
	"path/filepath"

	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/report"
	"github.com/gin-gonic/gin"
)

// ReportExporter is implemented by report.Exporter.
type ReportExporter interface {
	Excel(ctx context.Context, kind report.Kind) (string, error)
	Summary(ctx context.Context, kind report.Kind) (report.Summary, error)
}

type ExportHandler struct {
	exporter ReportExporter
}

func NewExportHandler(exporter ReportExporter) *ExportHandler {
	return &ExportHandler{exporter: exporter}
}

func (h *ExportHandler) ExportExcel(c *gin.Context) {
	kind, err := report.ParseKind(c.Param("type"))
	if err != nil {
		respondError(c, err, "invalid data type")
		return
	}

	path, err := h.exporter.Excel(c.Request.Context(), kind)
	if err != nil {
		respondError(c, err, "failed to export report")
		return
	}

	c.Header("Content-Type", report.ContentTypeXLSX)
	c.FileAttachment(path, filepath.Base(path))
}

func (h *ExportHandler) ExportSummary(c *gin.Context) {
	kind, err := report.ParseKind(c.Param("type"))
	if err != nil {
		respondError(c, err, "invalid report type")
		return
	}

	summary, err := h.exporter.Summary(c.Request.Context(), kind)
	if err != nil {
		respondError(c, err, "failed to build report summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}
