package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"invoicecheck/internal/domain"
	"invoicecheck/internal/port"
)

const analysisColumns = "id, invoice_type, language, source, file_name, storage_key, overall_status, result, model_used, created_at"

type analysisRepo struct {
	db *sqlx.DB
}

// NewAnalysisRepo creates a new PostgreSQL-backed AnalysisRepository.
func NewAnalysisRepo(db *sqlx.DB) port.AnalysisRepository {
	return &analysisRepo{db: db}
}

func (r *analysisRepo) Create(ctx context.Context, a *domain.Analysis) error {
	query, args, err := psql.Insert("analyses").
		Columns("id", "invoice_type", "language", "source", "file_name", "storage_key",
			"overall_status", "result", "model_used", "created_at").
		Values(a.ID, a.InvoiceType, a.Language, a.Source, a.FileName, a.StorageKey,
			a.OverallStatus, a.Result, a.ModelUsed, a.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("analysisRepo.Create build: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("analysisRepo.Create: %w", err)
	}
	return nil
}

func (r *analysisRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Analysis, error) {
	var a domain.Analysis
	err := r.db.GetContext(ctx, &a,
		"SELECT "+analysisColumns+" FROM analyses WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAnalysisNotFound
		}
		return nil, fmt.Errorf("analysisRepo.GetByID: %w", err)
	}
	return &a, nil
}

func (r *analysisRepo) List(ctx context.Context, filter domain.AnalysisFilter, offset, limit int) ([]domain.Analysis, int, error) {
	where := filterConditions(filter)

	countSQL, countArgs, err := countQuery(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("analysisRepo.List build count: %w", err)
	}
	var total int
	if err := r.db.GetContext(ctx, &total, countSQL, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("analysisRepo.List count: %w", err)
	}

	query, args, err := listQuery(where, offset, limit).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("analysisRepo.List build: %w", err)
	}
	analyses := []domain.Analysis{}
	if err := r.db.SelectContext(ctx, &analyses, query, args...); err != nil {
		return nil, 0, fmt.Errorf("analysisRepo.List: %w", err)
	}
	return analyses, total, nil
}

func (r *analysisRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// filterConditions turns the set fields of filter into a WHERE clause.
func filterConditions(filter domain.AnalysisFilter) squirrel.And {
	where := squirrel.And{}
	if filter.OverallStatus != "" {
		where = append(where, squirrel.Eq{"overall_status": filter.OverallStatus})
	}
	if filter.InvoiceType != "" {
		where = append(where, squirrel.Eq{"invoice_type": filter.InvoiceType})
	}
	if filter.Source != "" {
		where = append(where, squirrel.Eq{"source": filter.Source})
	}
	if filter.Since != nil {
		where = append(where, squirrel.GtOrEq{"created_at": *filter.Since})
	}
	return where
}

func countQuery(where squirrel.And) squirrel.SelectBuilder {
	return applyWhere(psql.Select("COUNT(*)").From("analyses"), where)
}

func listQuery(where squirrel.And, offset, limit int) squirrel.SelectBuilder {
	return applyWhere(psql.Select(analysisColumns).From("analyses"), where).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset))
}

func applyWhere(b squirrel.SelectBuilder, where squirrel.And) squirrel.SelectBuilder {
	if len(where) == 0 {
		return b
	}
	return b.Where(where)
}
