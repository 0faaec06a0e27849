package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed        = errors.New("file upload to storage failed")
	ErrInvalidInvoiceType  = errors.New("invalid invoice type")
	ErrInvalidLanguage     = errors.New("invalid language")
	ErrInvalidReport       = errors.New("report is not a JSON object")
	ErrMalformedReport     = errors.New("report fields have unexpected types")
	ErrAnalysisNotFound    = errors.New("analysis not found")
	ErrAnalyzerUnavailable = errors.New("invoice analyzer unavailable")
	ErrRateLimited         = errors.New("rate limited")
	ErrInvalidExportFormat = errors.New("invalid export format")
	ErrNoStoredFile        = errors.New("analysis has no stored file")
)
