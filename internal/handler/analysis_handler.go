package handler

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"invoicecheck/internal/domain"
	"invoicecheck/internal/export"
	"invoicecheck/internal/service"
)

// AnalysisHandler handles invoice upload and analysis history endpoints.
type AnalysisHandler struct {
	analysisService service.AnalysisService
	now             func() time.Time
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(analysisService service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService, now: time.Now}
}

// Analyze handles POST /api/v1/analyze
// @Summary Analyze an invoice
// @Description Upload an invoice (PDF, JPG, PNG) and check it against the payout requirements
// @Tags analyses
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Invoice file (PDF, JPG, or PNG)"
// @Param invoice_type formData string true "Invoice type" Enums(paypal, bank_transfer)
// @Param language formData string false "Result language" Enums(da, en) default(da)
// @Param notify_email formData string false "Address to e-mail the result to"
// @Success 201 {object} Response{data=domain.Analysis} "Analysis result"
// @Failure 400 {object} ErrorResponseBody "Missing file, unsupported type or invalid parameters"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Failure 429 {object} ErrorResponseBody "Rate limited"
// @Failure 502 {object} ErrorResponseBody "Analyzer unavailable"
// @Security BearerAuth
// @Router /analyze [post]
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	invoiceType, err := domain.ParseInvoiceType(c.PostForm("invoice_type"))
	if err != nil {
		HandleError(c, err)
		return
	}
	language, err := domain.ParseLanguage(c.DefaultPostForm("language", string(domain.LanguageDanish)))
	if err != nil {
		HandleError(c, err)
		return
	}

	analysis, err := h.analysisService.Analyze(c.Request.Context(), service.AnalyzeRequest{
		File:        file,
		Header:      header,
		InvoiceType: invoiceType,
		Language:    language,
		NotifyEmail: strings.TrimSpace(c.PostForm("notify_email")),
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, analysis)
}

// List handles GET /api/v1/analyses
// @Summary List analyses
// @Description List stored analyses, newest first, with optional filters
// @Tags analyses
// @Produce json
// @Param status query string false "Overall status" Enums(approved, missing_information, invalid)
// @Param invoice_type query string false "Invoice type" Enums(paypal, bank_transfer)
// @Param source query string false "Source" Enums(upload, report)
// @Param since query string false "Only analyses created at or after this time (RFC3339 or YYYY-MM-DD)"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Analysis,meta=PagMeta} "List of analyses"
// @Failure 400 {object} ErrorResponseBody "Invalid filter"
// @Security BearerAuth
// @Router /analyses [get]
func (h *AnalysisHandler) List(c *gin.Context) {
	filter, ok := parseAnalysisFilter(c)
	if !ok {
		return
	}

	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	analyses, total, err := h.analysisService.List(c.Request.Context(), service.ListFilter{
		AnalysisFilter: filter,
		Offset:         offset,
		Limit:          limit,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, analyses, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/analyses/:id
// @Summary Get an analysis
// @Tags analyses
// @Produce json
// @Param id path string true "Analysis ID"
// @Success 200 {object} Response{data=domain.Analysis} "Analysis"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "Not found"
// @Security BearerAuth
// @Router /analyses/{id} [get]
func (h *AnalysisHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	analysis, err := h.analysisService.Get(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, analysis)
}

// FileURL handles GET /api/v1/analyses/:id/file
// @Summary Get a download URL for the analysed file
// @Description Returns a presigned URL for the archived upload
// @Tags analyses
// @Produce json
// @Param id path string true "Analysis ID"
// @Success 200 {object} Response{data=FileURLResponse} "Presigned URL"
// @Failure 404 {object} ErrorResponseBody "Not found or no stored file"
// @Security BearerAuth
// @Router /analyses/{id}/file [get]
func (h *AnalysisHandler) FileURL(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	url, err := h.analysisService.GetFileURL(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, FileURLResponse{URL: url})
}

// Export handles GET /api/v1/analyses/export
// @Summary Export analyses
// @Description Download analyses matching the filters as CSV or XLSX
// @Tags analyses
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param format query string false "Export format" Enums(csv, xlsx) default(csv)
// @Param status query string false "Overall status" Enums(approved, missing_information, invalid)
// @Param invoice_type query string false "Invoice type" Enums(paypal, bank_transfer)
// @Param source query string false "Source" Enums(upload, report)
// @Param since query string false "Only analyses created at or after this time (RFC3339 or YYYY-MM-DD)"
// @Success 200 {file} file "Export file"
// @Failure 400 {object} ErrorResponseBody "Invalid format or filter"
// @Security BearerAuth
// @Router /analyses/export [get]
func (h *AnalysisHandler) Export(c *gin.Context) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		HandleError(c, err)
		return
	}
	filter, ok := parseAnalysisFilter(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.analysisService.Export(c.Request.Context(), format, filter, &buf); err != nil {
		HandleError(c, err)
		return
	}

	filename := export.BuildFilename(format, h.now())
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid analysis ID")
		return uuid.Nil, false
	}
	return id, true
}

// parseAnalysisFilter reads the shared list/export query filters.
// Returns false if a filter is invalid (error response already written).
func parseAnalysisFilter(c *gin.Context) (domain.AnalysisFilter, bool) {
	var filter domain.AnalysisFilter

	if s := c.Query("status"); s != "" {
		status := domain.OverallStatus(s)
		if !status.Valid() {
			RespondError(c, http.StatusBadRequest, "INVALID_STATUS", "invalid status; allowed: approved, missing_information, invalid")
			return filter, false
		}
		filter.OverallStatus = status
	}

	if s := c.Query("invoice_type"); s != "" {
		t, err := domain.ParseInvoiceType(s)
		if err != nil {
			HandleError(c, err)
			return filter, false
		}
		filter.InvoiceType = t
	}

	if s := c.Query("source"); s != "" {
		src := domain.AnalysisSource(s)
		if src != domain.AnalysisSourceUpload && src != domain.AnalysisSourceReport {
			RespondError(c, http.StatusBadRequest, "INVALID_SOURCE", "invalid source; allowed: upload, report")
			return filter, false
		}
		filter.Source = src
	}

	if s := c.Query("since"); s != "" {
		since, err := parseSince(s)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_SINCE", "since must be RFC3339 or YYYY-MM-DD")
			return filter, false
		}
		filter.Since = &since
	}

	return filter, true
}

func parseSince(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
