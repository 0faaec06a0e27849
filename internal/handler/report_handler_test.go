package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"invoicecheck/internal/domain"
	"invoicecheck/internal/handler"
	"invoicecheck/internal/service"
	"invoicecheck/mocks"
)

func jsonRequest(method, path, body string) *http.Request {
	req, _ := http.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestNormalize_NotPersisted(t *testing.T) {
	svc := new(mocks.MockAnalysisService)
	h := handler.NewReportHandler(svc)

	analysis := &domain.Analysis{
		ID:            uuid.New(),
		InvoiceType:   domain.InvoiceTypePayPal,
		Source:        domain.AnalysisSourceReport,
		OverallStatus: domain.OverallStatusMissingInformation,
	}
	svc.On("NormalizeReport", mock.Anything, mock.MatchedBy(func(req service.NormalizeRequest) bool {
		return req.InvoiceType == domain.InvoiceTypePayPal &&
			req.Language == domain.Language("") &&
			!req.Persist &&
			json.Valid(req.Report)
	})).Return(analysis, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/api/v1/reports/normalize",
		`{"invoice_type":"paypal","report":{"validation_logs":"MISSING: Tax number"}}`)

	h.Normalize(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "missing_information", data["overall_status"])
	svc.AssertExpectations(t)
}

func TestNormalize_Persisted(t *testing.T) {
	svc := new(mocks.MockAnalysisService)
	h := handler.NewReportHandler(svc)

	svc.On("NormalizeReport", mock.Anything, mock.MatchedBy(func(req service.NormalizeRequest) bool {
		return req.Persist && req.Language == domain.LanguageEnglish
	})).Return(&domain.Analysis{ID: uuid.New()}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/api/v1/reports/normalize",
		`{"invoice_type":"bank_transfer","language":"en","persist":true,"report":{"overall_status":"approved","checks":[]}}`)

	h.Normalize(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestNormalize_BadRequests(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		svcErr  error
		code    string
		callSvc bool
	}{
		{name: "malformed json", body: `{"invoice_type":`, code: "INVALID_REQUEST"},
		{name: "missing report", body: `{"invoice_type":"paypal"}`, code: "INVALID_REQUEST"},
		{name: "bad invoice type", body: `{"invoice_type":"cash","report":{}}`, code: "INVALID_INVOICE_TYPE"},
		{name: "report not an object", body: `{"invoice_type":"paypal","report":[1,2]}`, svcErr: domain.ErrInvalidReport, code: "INVALID_REPORT", callSvc: true},
		{name: "report fields mistyped", body: `{"invoice_type":"paypal","report":{"checks":"oops"}}`, svcErr: domain.ErrMalformedReport, code: "MALFORMED_REPORT", callSvc: true},
		{name: "bad language", body: `{"invoice_type":"paypal","language":"fr","report":{}}`, svcErr: domain.ErrInvalidLanguage, code: "INVALID_LANGUAGE", callSvc: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mocks.MockAnalysisService)
			h := handler.NewReportHandler(svc)
			if tt.callSvc {
				svc.On("NormalizeReport", mock.Anything, mock.Anything).Return(nil, tt.svcErr)
			}

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = jsonRequest(http.MethodPost, "/api/v1/reports/normalize", tt.body)

			h.Normalize(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.code, errorCode(t, w))
			if !tt.callSvc {
				svc.AssertNotCalled(t, "NormalizeReport", mock.Anything, mock.Anything)
			}
		})
	}
}
