package domain

import "errors"

var (
	// ErrDataUnavailable means a source table is missing or malformed.
	ErrDataUnavailable = errors.New("data unavailable")
	// ErrClassifierUnavailable means the sentiment classifier could not be reached.
	ErrClassifierUnavailable = errors.New("sentiment classifier unavailable")
	// ErrUpstreamService means the LLM provider call failed.
	ErrUpstreamService = errors.New("upstream service error")
	// ErrProductNotFound means no dataset has rows for the requested product.
	ErrProductNotFound = errors.New("product not found")
	// ErrInvalidReportType means the requested export kind is not supported.
	ErrInvalidReportType = errors.New("invalid report type")
)
