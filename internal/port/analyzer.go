package port

import (
	"context"

	"invoicecheck/internal/domain"
)

// AnalyzeInput carries the uploaded invoice and what it should be checked against.
type AnalyzeInput struct {
	FileBytes   []byte
	ContentType string
	InvoiceType domain.InvoiceType
	Language    domain.Language
}

// AnalyzeOutput contains the raw report produced by an LLM analyzer.
type AnalyzeOutput struct {
	// RawReport is the JSON object extracted from the model reply. It is
	// decoded and normalized by the caller.
	RawReport []byte
	ModelUsed string
}

// InvoiceAnalyzer abstracts LLM-based invoice validation.
type InvoiceAnalyzer interface {
	Analyze(ctx context.Context, input AnalyzeInput) (*AnalyzeOutput, error)
}
