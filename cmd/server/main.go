package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"invoicecheck/internal/analyzer"
	_ "invoicecheck/internal/analyzer/claude"
	_ "invoicecheck/internal/analyzer/gemini"
	_ "invoicecheck/internal/analyzer/openai"
	"invoicecheck/internal/auth"
	"invoicecheck/internal/config"
	"invoicecheck/internal/handler"
	"invoicecheck/internal/logger"
	"invoicecheck/internal/middleware"
	"invoicecheck/internal/notify/noop"
	"invoicecheck/internal/notify/ses"
	"invoicecheck/internal/port"
	"invoicecheck/internal/repository/postgres"
	"invoicecheck/internal/requirements"
	"invoicecheck/internal/router"
	"invoicecheck/internal/service"
	s3storage "invoicecheck/internal/storage/s3"
)

// @title Invoice Check API
// @version 1.0
// @description Checks artist payout invoices against the PayPal and bank transfer requirements.
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the API token.

const shutdownTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()
	appLog := logger.Named("server")

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	analysisRepo := postgres.NewAnalysisRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(ctx, &cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize analyzer chain
	invoiceAnalyzer, err := analyzer.Build(&cfg.Analyzer)
	if err != nil {
		return fmt.Errorf("failed to initialize analyzer: %w", err)
	}

	notifier, err := buildNotifier(ctx, &cfg.Email)
	if err != nil {
		return fmt.Errorf("failed to initialize notifier: %w", err)
	}

	normalizer, err := service.NewNormalizer(&cfg.Normalize)
	if err != nil {
		return fmt.Errorf("failed to initialize normalizer: %w", err)
	}

	catalogue, err := requirements.Default()
	if err != nil {
		return fmt.Errorf("failed to load requirements: %w", err)
	}

	// Initialize services
	analysisSvc := service.NewAnalysisService(
		analysisRepo, s3Client, invoiceAnalyzer, notifier, normalizer,
		&cfg.S3, cfg.Server.MaxUploadSizeMB,
	)

	// Initialize handlers
	analysisH := handler.NewAnalysisHandler(analysisSvc)
	reportH := handler.NewReportHandler(analysisSvc)
	requirementsH := handler.NewRequirementsHandler(catalogue)
	healthH := handler.NewHealthHandler(analysisRepo)

	opts := router.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AnalyzeLimiter: middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst),
	}
	if cfg.Auth.Enabled() {
		opts.TokenValidator = auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
	} else {
		appLog.Warn("auth.jwt_secret is empty; API routes are unauthenticated")
	}

	r := router.Setup(opts, analysisH, reportH, requirementsH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		appLog.Info("server starting",
			zap.String("addr", cfg.Server.Port),
			zap.String("analyzer", cfg.Analyzer.Primary.Provider),
			zap.String("email", cfg.Email.Provider))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	appLog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

func buildNotifier(ctx context.Context, cfg *config.EmailConfig) (port.ResultNotifier, error) {
	switch cfg.Provider {
	case "ses":
		return ses.NewSESNotifier(ctx, cfg.Region, cfg.FromAddress, cfg.FromName)
	case "noop", "":
		return noop.NewNoopNotifier(), nil
	default:
		return nil, fmt.Errorf("unknown email provider: %s", cfg.Provider)
	}
}
