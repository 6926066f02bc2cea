package handlers

import (
	"errors"
	"net/http"

	"github.com/AdityaTidake/AI-for-retail-commerce-and-market-intelligence/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidReportType):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDataUnavailable), errors.Is(err, domain.ErrClassifierUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error, message string) {
	status := statusFor(err)
	evt := log.Warn()
	if status >= http.StatusInternalServerError {
		evt = log.Error()
	}
	evt.Err(err).Str("path", c.Request.URL.Path).Int("status", status).Msg(message)

	c.JSON(status, gin.H{
		"error":   message,
		"details": err.Error(),
	})
}
