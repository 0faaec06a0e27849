package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	DB        DBConfig
	S3        S3Config
	Log       LogConfig
	Analyzer  AnalyzerConfig
	Normalize NormalizeConfig
	CORS      CORSConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Email     EmailConfig
}

// EmailConfig holds result notification settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// AuthConfig holds bearer token settings for API callers.
// An empty Secret disables authentication.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	Issuer    string `mapstructure:"issuer"`
}

// Enabled reports whether bearer authentication is required.
func (a *AuthConfig) Enabled() bool {
	return a.JWTSecret != ""
}

// RateLimitConfig throttles the analyze endpoint.
type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"rps"`
	Burst             int     `mapstructure:"burst"`
}

// NormalizeConfig controls the report normalizer.
type NormalizeConfig struct {
	// UnrecognizedLines is "skip" or "warn".
	UnrecognizedLines string `mapstructure:"unrecognized_lines"`
}

// AnalyzerProviderConfig holds settings for a single LLM analyzer provider.
type AnalyzerProviderConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	MaxTokens    int    `mapstructure:"max_tokens"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// AnalyzerConfig holds the ordered analyzer providers.
type AnalyzerConfig struct {
	Primary   AnalyzerProviderConfig `mapstructure:"primary"`
	Secondary AnalyzerProviderConfig `mapstructure:"secondary"`
}

// SecondaryConfig returns the secondary provider config, or nil if not configured.
func (a *AnalyzerConfig) SecondaryConfig() *AnalyzerProviderConfig {
	if a.Secondary.Provider != "" {
		return &a.Secondary
	}
	return nil
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	Environment     string        `mapstructure:"environment"`
	MaxUploadSizeMB int64         `mapstructure:"max_upload_size_mb"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds AWS S3 settings for archived uploads.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from an optional .env file and environment
// variables with the INVOICECHECK_ prefix.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("INVOICECHECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8000")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "180s")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.max_upload_size_mb", 20)

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "invoicecheck")
	v.SetDefault("db.password", "invoicecheck_secret")
	v.SetDefault("db.name", "invoicecheck")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 10)
	v.SetDefault("db.max_idle", 5)

	// S3 defaults
	v.SetDefault("s3.region", "eu-north-1")
	v.SetDefault("s3.bucket", "invoicecheck-uploads")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 900)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (frontend dev servers)
	v.SetDefault("cors.allowed_origins", "http://localhost:5173,http://localhost:3000")

	// Auth defaults
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.issuer", "invoicecheck")

	// Rate limit defaults
	v.SetDefault("ratelimit.rps", 1.0)
	v.SetDefault("ratelimit.burst", 5)

	// Normalizer defaults
	v.SetDefault("normalize.unrecognized_lines", "skip")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "eu-north-1")
	v.SetDefault("email.from_address", "noreply@thelabelsunday.com")
	v.SetDefault("email.from_name", "Invoice Checker")

	// Analyzer defaults
	v.SetDefault("analyzer.primary.provider", "claude")
	v.SetDefault("analyzer.primary.api_key", "")
	v.SetDefault("analyzer.primary.default_model", "claude-sonnet-4-20250514")
	v.SetDefault("analyzer.primary.max_tokens", 4096)
	v.SetDefault("analyzer.primary.timeout_secs", 120)
	v.SetDefault("analyzer.secondary.provider", "")
	v.SetDefault("analyzer.secondary.api_key", "")
	v.SetDefault("analyzer.secondary.default_model", "")
	v.SetDefault("analyzer.secondary.max_tokens", 4096)
	v.SetDefault("analyzer.secondary.timeout_secs", 120)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                      "INVOICECHECK_SERVER_PORT",
		"server.read_timeout":              "INVOICECHECK_SERVER_READ_TIMEOUT",
		"server.write_timeout":             "INVOICECHECK_SERVER_WRITE_TIMEOUT",
		"server.environment":               "INVOICECHECK_SERVER_ENVIRONMENT",
		"server.max_upload_size_mb":        "INVOICECHECK_SERVER_MAX_UPLOAD_SIZE_MB",
		"db.host":                          "INVOICECHECK_DB_HOST",
		"db.port":                          "INVOICECHECK_DB_PORT",
		"db.user":                          "INVOICECHECK_DB_USER",
		"db.password":                      "INVOICECHECK_DB_PASSWORD",
		"db.name":                          "INVOICECHECK_DB_NAME",
		"db.sslmode":                       "INVOICECHECK_DB_SSLMODE",
		"db.max_open":                      "INVOICECHECK_DB_MAX_OPEN",
		"db.max_idle":                      "INVOICECHECK_DB_MAX_IDLE",
		"s3.region":                        "INVOICECHECK_S3_REGION",
		"s3.bucket":                        "INVOICECHECK_S3_BUCKET",
		"s3.endpoint":                      "INVOICECHECK_S3_ENDPOINT",
		"s3.access_key":                    "INVOICECHECK_S3_ACCESS_KEY",
		"s3.secret_key":                    "INVOICECHECK_S3_SECRET_KEY",
		"s3.presign_expiry":                "INVOICECHECK_S3_PRESIGN_EXPIRY",
		"log.level":                        "INVOICECHECK_LOG_LEVEL",
		"log.format":                       "INVOICECHECK_LOG_FORMAT",
		"cors.allowed_origins":             "INVOICECHECK_CORS_ALLOWED_ORIGINS",
		"auth.jwt_secret":                  "INVOICECHECK_AUTH_JWT_SECRET",
		"auth.issuer":                      "INVOICECHECK_AUTH_ISSUER",
		"ratelimit.rps":                    "INVOICECHECK_RATELIMIT_RPS",
		"ratelimit.burst":                  "INVOICECHECK_RATELIMIT_BURST",
		"normalize.unrecognized_lines":     "INVOICECHECK_NORMALIZE_UNRECOGNIZED_LINES",
		"email.provider":                   "INVOICECHECK_EMAIL_PROVIDER",
		"email.region":                     "INVOICECHECK_EMAIL_REGION",
		"email.from_address":               "INVOICECHECK_EMAIL_FROM_ADDRESS",
		"email.from_name":                  "INVOICECHECK_EMAIL_FROM_NAME",
		"analyzer.primary.provider":        "INVOICECHECK_ANALYZER_PRIMARY_PROVIDER",
		"analyzer.primary.api_key":         "INVOICECHECK_ANALYZER_PRIMARY_API_KEY",
		"analyzer.primary.default_model":   "INVOICECHECK_ANALYZER_PRIMARY_DEFAULT_MODEL",
		"analyzer.primary.max_tokens":      "INVOICECHECK_ANALYZER_PRIMARY_MAX_TOKENS",
		"analyzer.primary.timeout_secs":    "INVOICECHECK_ANALYZER_PRIMARY_TIMEOUT_SECS",
		"analyzer.secondary.provider":      "INVOICECHECK_ANALYZER_SECONDARY_PROVIDER",
		"analyzer.secondary.api_key":       "INVOICECHECK_ANALYZER_SECONDARY_API_KEY",
		"analyzer.secondary.default_model": "INVOICECHECK_ANALYZER_SECONDARY_DEFAULT_MODEL",
		"analyzer.secondary.max_tokens":    "INVOICECHECK_ANALYZER_SECONDARY_MAX_TOKENS",
		"analyzer.secondary.timeout_secs":  "INVOICECHECK_ANALYZER_SECONDARY_TIMEOUT_SECS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if INVOICECHECK_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("INVOICECHECK_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:            serverPort,
		ReadTimeout:     v.GetDuration("server.read_timeout"),
		WriteTimeout:    v.GetDuration("server.write_timeout"),
		Environment:     v.GetString("server.environment"),
		MaxUploadSizeMB: v.GetInt64("server.max_upload_size_mb"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	cfg.Auth = AuthConfig{
		JWTSecret: v.GetString("auth.jwt_secret"),
		Issuer:    v.GetString("auth.issuer"),
	}
	cfg.RateLimit = RateLimitConfig{
		RequestsPerSecond: v.GetFloat64("ratelimit.rps"),
		Burst:             v.GetInt("ratelimit.burst"),
	}
	cfg.Normalize = NormalizeConfig{
		UnrecognizedLines: v.GetString("normalize.unrecognized_lines"),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}
	cfg.Analyzer = AnalyzerConfig{
		Primary: AnalyzerProviderConfig{
			Provider:     v.GetString("analyzer.primary.provider"),
			APIKey:       v.GetString("analyzer.primary.api_key"),
			DefaultModel: v.GetString("analyzer.primary.default_model"),
			MaxTokens:    v.GetInt("analyzer.primary.max_tokens"),
			TimeoutSecs:  v.GetInt("analyzer.primary.timeout_secs"),
		},
		Secondary: AnalyzerProviderConfig{
			Provider:     v.GetString("analyzer.secondary.provider"),
			APIKey:       v.GetString("analyzer.secondary.api_key"),
			DefaultModel: v.GetString("analyzer.secondary.default_model"),
			MaxTokens:    v.GetInt("analyzer.secondary.max_tokens"),
			TimeoutSecs:  v.GetInt("analyzer.secondary.timeout_secs"),
		},
	}

	// The upstream analyzer key is commonly provided as ANTHROPIC_API_KEY.
	if cfg.Analyzer.Primary.APIKey == "" && cfg.Analyzer.Primary.Provider == "claude" {
		cfg.Analyzer.Primary.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	}

	return cfg, nil
}
