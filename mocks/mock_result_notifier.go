package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"invoicecheck/internal/domain"
)

// MockResultNotifier is a mock implementation of port.ResultNotifier.
type MockResultNotifier struct {
	mock.Mock
}

func (m *MockResultNotifier) NotifyResult(ctx context.Context, toEmail string, analysis *domain.Analysis) error {
	args := m.Called(ctx, toEmail, analysis)
	return args.Error(0)
}
