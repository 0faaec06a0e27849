package port

import (
	"context"

	"github.com/google/uuid"

	"invoicecheck/internal/domain"
)

// AnalysisRepository defines the contract for analysis persistence.
type AnalysisRepository interface {
	Create(ctx context.Context, analysis *domain.Analysis) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Analysis, error)
	List(ctx context.Context, filter domain.AnalysisFilter, offset, limit int) ([]domain.Analysis, int, error)
	Ping(ctx context.Context) error
}
