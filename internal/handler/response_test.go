package handler_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"invoicecheck/internal/analyzer"
	"invoicecheck/internal/domain"
	"invoicecheck/internal/handler"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrAnalysisNotFound, http.StatusNotFound, "ANALYSIS_NOT_FOUND"},
		{fmt.Errorf("loading: %w", domain.ErrAnalysisNotFound), http.StatusNotFound, "ANALYSIS_NOT_FOUND"},
		{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrNoStoredFile, http.StatusNotFound, "NO_STORED_FILE"},
		{domain.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{domain.ErrInvalidInvoiceType, http.StatusBadRequest, "INVALID_INVOICE_TYPE"},
		{domain.ErrInvalidLanguage, http.StatusBadRequest, "INVALID_LANGUAGE"},
		{domain.ErrInvalidReport, http.StatusBadRequest, "INVALID_REPORT"},
		{fmt.Errorf("%w: checks", domain.ErrMalformedReport), http.StatusBadRequest, "MALFORMED_REPORT"},
		{domain.ErrInvalidExportFormat, http.StatusBadRequest, "INVALID_EXPORT_FORMAT"},
		{domain.ErrUnsupportedFileType, http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE"},
		{domain.ErrFileTooLarge, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE"},
		{domain.ErrUploadFailed, http.StatusInternalServerError, "UPLOAD_FAILED"},
		{fmt.Errorf("%w: timeout", domain.ErrAnalyzerUnavailable), http.StatusBadGateway, "ANALYZER_UNAVAILABLE"},
		{domain.ErrRateLimited, http.StatusTooManyRequests, "RATE_LIMITED"},
		{&analyzer.RateLimitError{Provider: "claude", RetryAfter: time.Second, Err: errors.New("429")}, http.StatusTooManyRequests, "RATE_LIMITED"},
		{errors.New("anything else"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			status, code, msg := handler.MapDomainError(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, code)
			assert.NotEmpty(t, msg)
		})
	}
}
