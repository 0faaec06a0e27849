package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "invoicecheck/docs"
	"invoicecheck/internal/handler"
	"invoicecheck/internal/middleware"
)

// Options holds the cross-cutting settings applied to the API routes.
type Options struct {
	AllowedOrigins []string
	// TokenValidator enables bearer authentication on /api/v1 when non-nil.
	TokenValidator middleware.TokenValidator
	// AnalyzeLimiter throttles POST /api/v1/analyze when non-nil.
	AnalyzeLimiter *middleware.RateLimiter
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	opts Options,
	analysisH *handler.AnalysisHandler,
	reportH *handler.ReportHandler,
	requirementsH *handler.RequirementsHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.CORS(opts.AllowedOrigins))
	r.Use(middleware.Logger())

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	v1.GET("/requirements", requirementsH.Get)

	protected := v1.Group("")
	if opts.TokenValidator != nil {
		protected.Use(middleware.BearerAuth(opts.TokenValidator))
	}

	analyze := []gin.HandlerFunc{}
	if opts.AnalyzeLimiter != nil {
		analyze = append(analyze, opts.AnalyzeLimiter.Middleware())
	}
	analyze = append(analyze, analysisH.Analyze)
	protected.POST("/analyze", analyze...)

	protected.POST("/reports/normalize", reportH.Normalize)

	analyses := protected.Group("/analyses")
	analyses.GET("", analysisH.List)
	analyses.GET("/export", analysisH.Export)
	analyses.GET("/:id", analysisH.GetByID)
	analyses.GET("/:id/file", analysisH.FileURL)

	return r
}
