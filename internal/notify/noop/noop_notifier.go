package noop

import (
	"context"

	"go.uber.org/zap"

	"invoicecheck/internal/domain"
	"invoicecheck/internal/logger"
	"invoicecheck/internal/notify"
)

// Notifier logs result e-mails instead of sending them.
type Notifier struct{}

// NewNoopNotifier creates a ResultNotifier for local development.
func NewNoopNotifier() *Notifier {
	return &Notifier{}
}

func (n *Notifier) NotifyResult(_ context.Context, toEmail string, analysis *domain.Analysis) error {
	msg, err := notify.BuildMessage(analysis)
	if err != nil {
		return err
	}
	logger.Named("notify.noop").Info("[NOOP EMAIL] result notification",
		zap.String("to", toEmail),
		zap.String("analysis_id", analysis.ID.String()),
		zap.String("subject", msg.Subject))
	return nil
}
