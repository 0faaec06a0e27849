package handler

import (
	"github.com/gin-gonic/gin"

	"invoicecheck/internal/domain"
	"invoicecheck/internal/requirements"
)

// RequirementsHandler exposes the requirement catalogue.
type RequirementsHandler struct {
	catalogue *requirements.Catalogue
}

// NewRequirementsHandler creates a new RequirementsHandler.
func NewRequirementsHandler(catalogue *requirements.Catalogue) *RequirementsHandler {
	return &RequirementsHandler{catalogue: catalogue}
}

// Get handles GET /api/v1/requirements
// @Summary Get invoice requirements
// @Description List the fields an invoice of the given type must contain
// @Tags requirements
// @Produce json
// @Param invoice_type query string false "Invoice type" Enums(paypal, bank_transfer) default(paypal)
// @Success 200 {object} Response{data=requirements.Set} "Requirements"
// @Failure 400 {object} ErrorResponseBody "Invalid invoice type"
// @Router /requirements [get]
func (h *RequirementsHandler) Get(c *gin.Context) {
	invoiceType, err := domain.ParseInvoiceType(c.DefaultQuery("invoice_type", string(domain.InvoiceTypePayPal)))
	if err != nil {
		HandleError(c, err)
		return
	}

	set, err := h.catalogue.ForType(invoiceType)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, set)
}
