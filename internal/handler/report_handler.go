package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"invoicecheck/internal/domain"
	"invoicecheck/internal/service"
)

// ReportHandler handles normalization of reports produced outside the service.
type ReportHandler struct {
	analysisService service.AnalysisService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(analysisService service.AnalysisService) *ReportHandler {
	return &ReportHandler{analysisService: analysisService}
}

// NormalizeReportRequest is the request body for POST /api/v1/reports/normalize.
type NormalizeReportRequest struct {
	InvoiceType string          `json:"invoice_type" binding:"required" example:"paypal"`
	Language    string          `json:"language" example:"da"`
	Report      json.RawMessage `json:"report" binding:"required" swaggertype:"object"`
	Persist     bool            `json:"persist" example:"false"`
}

// Normalize handles POST /api/v1/reports/normalize
// @Summary Normalize a validation report
// @Description Convert a structured or log-style report into the canonical validation result
// @Tags reports
// @Accept json
// @Produce json
// @Param body body NormalizeReportRequest true "Report to normalize"
// @Success 200 {object} Response{data=domain.Analysis} "Normalized result (not stored)"
// @Success 201 {object} Response{data=domain.Analysis} "Normalized result (stored)"
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Security BearerAuth
// @Router /reports/normalize [post]
func (h *ReportHandler) Normalize(c *gin.Context) {
	var req NormalizeReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	invoiceType, err := domain.ParseInvoiceType(req.InvoiceType)
	if err != nil {
		HandleError(c, err)
		return
	}

	analysis, err := h.analysisService.NormalizeReport(c.Request.Context(), service.NormalizeRequest{
		Report:      req.Report,
		InvoiceType: invoiceType,
		Language:    domain.Language(req.Language),
		Persist:     req.Persist,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	if req.Persist {
		RespondCreated(c, analysis)
		return
	}
	RespondOK(c, analysis)
}
