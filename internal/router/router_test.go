package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"invoicecheck/internal/auth"
	"invoicecheck/internal/domain"
	"invoicecheck/internal/handler"
	"invoicecheck/internal/requirements"
	"invoicecheck/internal/router"
	"invoicecheck/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setup(t *testing.T, opts router.Options) (*gin.Engine, *mocks.MockAnalysisService) {
	t.Helper()
	svc := new(mocks.MockAnalysisService)
	repo := new(mocks.MockAnalysisRepo)
	repo.On("Ping", mock.Anything).Return(nil).Maybe()
	catalogue, err := requirements.Default()
	require.NoError(t, err)

	r := router.Setup(opts,
		handler.NewAnalysisHandler(svc),
		handler.NewReportHandler(svc),
		handler.NewRequirementsHandler(catalogue),
		handler.NewHealthHandler(repo),
	)
	return r, svc
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRoutes_Public(t *testing.T) {
	r, _ := setup(t, router.Options{})

	assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/healthz", nil)).Code)
	assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/readyz", nil)).Code)
	assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/api/v1/requirements?invoice_type=paypal", nil)).Code)
	assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil)).Code)
}

func TestRoutes_ExportIsNotAnID(t *testing.T) {
	r, svc := setup(t, router.Options{})
	svc.On("Export", mock.Anything, mock.Anything, domain.AnalysisFilter{}, mock.Anything).Return("", nil)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/api/v1/analyses/export", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
	svc.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestRoutes_BearerAuth(t *testing.T) {
	tm := auth.NewTokenManager("secret", "invoicecheck")
	r, svc := setup(t, router.Options{TokenValidator: tm})

	id := uuid.New()
	svc.On("Get", mock.Anything, id).Return(&domain.Analysis{ID: id}, nil)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/api/v1/analyses/"+id.String(), nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := tm.Issue("agent", time.Hour)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyses/"+id.String(), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = serve(r, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Requirements stay public.
	w = serve(r, httptest.NewRequest(http.MethodGet, "/api/v1/requirements", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
