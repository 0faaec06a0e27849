package port

import (
	"context"

	"invoicecheck/internal/domain"
)

// ResultNotifier delivers a finished analysis to a recipient.
type ResultNotifier interface {
	NotifyResult(ctx context.Context, toEmail string, analysis *domain.Analysis) error
}
