package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"invoicecheck/internal/analyzer"
	"invoicecheck/internal/config"
	"invoicecheck/internal/domain"
	"invoicecheck/internal/export"
	"invoicecheck/internal/logger"
	"invoicecheck/internal/port"
	"invoicecheck/internal/report"
)

// exportLimit caps how many analyses a single export can contain.
const exportLimit = 10000

// AnalyzeRequest is the DTO for uploaded invoice analysis.
type AnalyzeRequest struct {
	File        multipart.File
	Header      *multipart.FileHeader
	InvoiceType domain.InvoiceType
	Language    domain.Language
	NotifyEmail string
}

// NormalizeRequest is the DTO for normalizing a report produced elsewhere.
type NormalizeRequest struct {
	Report      json.RawMessage
	InvoiceType domain.InvoiceType
	Language    domain.Language
	Persist     bool
}

// ListFilter narrows and paginates analysis listings.
type ListFilter struct {
	domain.AnalysisFilter
	Offset int
	Limit  int
}

// AnalysisService defines the invoice analysis contract.
type AnalysisService interface {
	Analyze(ctx context.Context, req AnalyzeRequest) (*domain.Analysis, error)
	NormalizeReport(ctx context.Context, req NormalizeRequest) (*domain.Analysis, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Analysis, error)
	List(ctx context.Context, filter ListFilter) ([]domain.Analysis, int, error)
	GetFileURL(ctx context.Context, id uuid.UUID) (string, error)
	Export(ctx context.Context, format export.Format, filter domain.AnalysisFilter, w io.Writer) error
}

type analysisService struct {
	repo          port.AnalysisRepository
	storage       port.ObjectStorage
	analyzer      port.InvoiceAnalyzer
	notifier      port.ResultNotifier
	normalizer    *report.Normalizer
	s3Cfg         *config.S3Config
	maxUploadSize int64
	log           *zap.Logger
}

// NewAnalysisService creates a new AnalysisService implementation.
func NewAnalysisService(
	repo port.AnalysisRepository,
	storage port.ObjectStorage,
	invoiceAnalyzer port.InvoiceAnalyzer,
	notifier port.ResultNotifier,
	normalizer *report.Normalizer,
	s3Cfg *config.S3Config,
	maxUploadSizeMB int64,
) AnalysisService {
	return &analysisService{
		repo:          repo,
		storage:       storage,
		analyzer:      invoiceAnalyzer,
		notifier:      notifier,
		normalizer:    normalizer,
		s3Cfg:         s3Cfg,
		maxUploadSize: maxUploadSizeMB * 1024 * 1024,
		log:           logger.Named("service.analysis"),
	}
}

// NewNormalizer builds the report normalizer from config, logging every
// line the log parser could not match.
func NewNormalizer(cfg *config.NormalizeConfig) (*report.Normalizer, error) {
	policy, err := report.ParseLinePolicy(cfg.UnrecognizedLines)
	if err != nil {
		return nil, err
	}
	log := logger.Named("report")
	return report.NewNormalizer(report.Options{
		OnUnrecognizedLine: policy,
		Observer: func(u report.UnrecognizedLine) {
			log.Debug("unrecognized report line", zap.Int("line", u.Number), zap.String("text", u.Text))
		},
	}), nil
}

func (s *analysisService) Analyze(ctx context.Context, req AnalyzeRequest) (*domain.Analysis, error) {
	if !req.InvoiceType.Valid() {
		return nil, domain.ErrInvalidInvoiceType
	}
	if !req.Language.Valid() {
		return nil, domain.ErrInvalidLanguage
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(req.Header.Filename), "."))
	fileType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}
	if req.Header.Size > s.maxUploadSize {
		return nil, domain.ErrFileTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(req.File, s.maxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	if int64(len(data)) > s.maxUploadSize {
		return nil, domain.ErrFileTooLarge
	}

	// Magic-byte detection must agree with the extension family.
	detected := http.DetectContentType(data)
	detectedType, validContent := domain.AllowedContentTypes[detected]
	if !validContent || detectedType != fileType {
		return nil, domain.ErrUnsupportedFileType
	}
	contentType := domain.AllowedFileTypes[fileType]

	id := uuid.New()
	key := fmt.Sprintf("analyses/%s/%s", id, filepath.Base(req.Header.Filename))

	s.log.Info("analyzing invoice",
		zap.String("analysis_id", id.String()),
		zap.String("file", req.Header.Filename),
		zap.String("invoice_type", string(req.InvoiceType)),
		zap.String("language", string(req.Language)),
		zap.Int("bytes", len(data)))

	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.s3Cfg.Bucket,
		Key:         key,
		Body:        bytes.NewReader(data),
		ContentType: contentType,
		Size:        int64(len(data)),
	}); err != nil {
		s.log.Error("archiving upload failed", zap.String("analysis_id", id.String()), zap.Error(err))
		return nil, domain.ErrUploadFailed
	}

	out, err := s.analyzer.Analyze(ctx, port.AnalyzeInput{
		FileBytes:   data,
		ContentType: contentType,
		InvoiceType: req.InvoiceType,
		Language:    req.Language,
	})
	if err != nil {
		s.log.Warn("analyzer failed", zap.String("analysis_id", id.String()), zap.Error(err))
		if delErr := s.storage.Delete(ctx, s.s3Cfg.Bucket, key); delErr != nil {
			s.log.Warn("removing archived upload failed", zap.String("key", key), zap.Error(delErr))
		}
		var rlErr *analyzer.RateLimitError
		if errors.As(err, &rlErr) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrAnalyzerUnavailable, err)
	}

	var result domain.ValidationResult
	r, err := report.Decode(out.RawReport)
	if err != nil {
		s.log.Warn("unparseable analyzer reply", zap.String("analysis_id", id.String()), zap.Error(err))
		result = InvalidResult(req.InvoiceType, req.Language, err)
	} else {
		result = s.normalizer.Normalize(r, req.InvoiceType)
	}

	analysis := &domain.Analysis{
		ID:            id,
		InvoiceType:   req.InvoiceType,
		Language:      req.Language,
		Source:        domain.AnalysisSourceUpload,
		FileName:      req.Header.Filename,
		StorageKey:    key,
		OverallStatus: result.OverallStatus,
		Result:        result,
		ModelUsed:     out.ModelUsed,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, analysis); err != nil {
		return nil, fmt.Errorf("saving analysis: %w", err)
	}

	s.log.Info("invoice analyzed",
		zap.String("analysis_id", id.String()),
		zap.String("overall_status", string(result.OverallStatus)),
		zap.Int("checks", len(result.Checks)))

	s.notify(ctx, req.NotifyEmail, analysis)
	return analysis, nil
}

func (s *analysisService) NormalizeReport(ctx context.Context, req NormalizeRequest) (*domain.Analysis, error) {
	if !req.InvoiceType.Valid() {
		return nil, domain.ErrInvalidInvoiceType
	}
	lang := req.Language
	if lang == "" {
		lang = domain.LanguageDanish
	}
	if !lang.Valid() {
		return nil, domain.ErrInvalidLanguage
	}

	r, err := report.Decode(req.Report)
	if err != nil {
		return nil, err
	}
	result := s.normalizer.Normalize(r, req.InvoiceType)

	analysis := &domain.Analysis{
		ID:            uuid.New(),
		InvoiceType:   req.InvoiceType,
		Language:      lang,
		Source:        domain.AnalysisSourceReport,
		OverallStatus: result.OverallStatus,
		Result:        result,
		CreatedAt:     time.Now().UTC(),
	}
	if !req.Persist {
		return analysis, nil
	}

	if err := s.repo.Create(ctx, analysis); err != nil {
		return nil, fmt.Errorf("saving analysis: %w", err)
	}
	s.log.Info("report normalized",
		zap.String("analysis_id", analysis.ID.String()),
		zap.String("kind", r.Kind().String()),
		zap.String("overall_status", string(result.OverallStatus)))
	return analysis, nil
}

func (s *analysisService) Get(ctx context.Context, id uuid.UUID) (*domain.Analysis, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *analysisService) List(ctx context.Context, filter ListFilter) ([]domain.Analysis, int, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.repo.List(ctx, filter.AnalysisFilter, filter.Offset, filter.Limit)
}

func (s *analysisService) GetFileURL(ctx context.Context, id uuid.UUID) (string, error) {
	analysis, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if analysis.StorageKey == "" {
		return "", domain.ErrNoStoredFile
	}
	return s.storage.GetPresignedURL(ctx, s.s3Cfg.Bucket, analysis.StorageKey, s.s3Cfg.PresignExpiry)
}

func (s *analysisService) Export(ctx context.Context, format export.Format, filter domain.AnalysisFilter, w io.Writer) error {
	analyses, total, err := s.repo.List(ctx, filter, 0, exportLimit)
	if err != nil {
		return fmt.Errorf("listing analyses for export: %w", err)
	}
	if total > len(analyses) {
		s.log.Warn("export truncated", zap.Int("total", total), zap.Int("exported", len(analyses)))
	}
	return export.Write(w, format, analyses)
}

// notify sends the result e-mail. Delivery failures are logged and never
// fail the analysis.
func (s *analysisService) notify(ctx context.Context, to string, analysis *domain.Analysis) {
	if to == "" || s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyResult(ctx, to, analysis); err != nil {
		s.log.Warn("result notification failed",
			zap.String("analysis_id", analysis.ID.String()),
			zap.Error(err))
	}
}

var parseFailureSummary = map[domain.Language]string{
	domain.LanguageDanish:  "Der opstod en fejl ved analyse af fakturaen. Prøv igen.",
	domain.LanguageEnglish: "An error occurred while analyzing the invoice. Please try again.",
}

// InvalidResult is the result recorded when the analyzer reply cannot be
// decoded into a report.
func InvalidResult(invoiceType domain.InvoiceType, lang domain.Language, cause error) domain.ValidationResult {
	summary, ok := parseFailureSummary[lang]
	if !ok {
		summary = parseFailureSummary[domain.LanguageDanish]
	}
	return domain.ValidationResult{
		OverallStatus:     domain.OverallStatusInvalid,
		InvoiceType:       invoiceType,
		Checks:            []domain.CheckResult{},
		MissingItems:      []string{},
		Warnings:          []string{fmt.Sprintf("Failed to parse AI response: %v", cause)},
		LayoutSuggestions: []domain.LayoutSuggestion{},
		Summary:           summary,
	}
}
