package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"invoicecheck/internal/port"
)

// MockInvoiceAnalyzer is a mock implementation of port.InvoiceAnalyzer.
type MockInvoiceAnalyzer struct {
	mock.Mock
}

func (m *MockInvoiceAnalyzer) Analyze(ctx context.Context, input port.AnalyzeInput) (*port.AnalyzeOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.AnalyzeOutput), args.Error(1)
}
