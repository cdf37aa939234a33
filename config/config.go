// Package config provides centralized configuration management for the
// messaging service with validation and type safety.
//
// Configuration Sources (12-factor app principles):
//  1. Default values (hardcoded)
//  2. .env file (local development via godotenv)
//  3. Environment variables (Kubernetes runtime)
//
// Usage:
//
//	cfg := config.Load()
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//	// Use cfg.Service.Port, cfg.Database.URL, etc.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the service
type Config struct {
	Service         ServiceConfig   // Service-specific settings (port, name, version)
	Tracing         TracingConfig   // OpenTelemetry configuration
	Profiling       ProfilingConfig // Pyroscope continuous profiling
	Logging         LoggingConfig   // Structured logging (Zap)
	Metrics         MetricsConfig   // Prometheus metrics
	Database        DatabaseConfig  // MongoDB connection configuration
	ShutdownTimeout int             // Graceful shutdown timeout in seconds - from SHUTDOWN_TIMEOUT env (default: 10)
	// ReadinessDrainDelay: delay after failing readiness before shutting down the HTTP server.
	// This gives Kubernetes/Service routing time to stop sending new traffic.
	// From READINESS_DRAIN_DELAY env (default: 5s, max: 30s).
	ReadinessDrainDelay int
}

// ServiceConfig defines basic service configuration
type ServiceConfig struct {
	Name    string // Service name - from SERVICE_NAME env
	Port    string // HTTP server port (default: "8000") - from PORT env
	Version string // Service version (optional) - from VERSION env
	Env     string // Environment (dev/staging/production) - from ENV env
}

// TracingConfig defines OpenTelemetry tracing configuration
type TracingConfig struct {
	Enabled            bool    // Enable tracing (default: true) - from TRACING_ENABLED env
	Endpoint           string  // OTel Collector endpoint - from OTEL_COLLECTOR_ENDPOINT env
	SampleRate         float64 // Trace sampling rate (0.0-1.0) - from OTEL_SAMPLE_RATE env
	ServiceName        string  // Service name for traces (defaults to ServiceConfig.Name)
	MaxExportBatchSize int     // Max spans per batch (default: 512)
}

// ProfilingConfig defines Pyroscope continuous profiling configuration
type ProfilingConfig struct {
	Enabled     bool   // Enable profiling (default: true) - from PROFILING_ENABLED env
	Endpoint    string // Pyroscope endpoint - from PYROSCOPE_ENDPOINT env
	ServiceName string // Service name for profiling (defaults to ServiceConfig.Name)
}

// LoggingConfig defines structured logging configuration
type LoggingConfig struct {
	Level  string // Log level: debug, info, warn, error (default: "info") - from LOG_LEVEL env
	Format string // Log format: json, console (default: "json") - from LOG_FORMAT env
}

// MetricsConfig defines Prometheus metrics configuration
type MetricsConfig struct {
	Enabled bool   // Enable metrics (default: true) - from METRICS_ENABLED env
	Path    string // Metrics endpoint path (default: "/metrics") - from METRICS_PATH env
}

// DatabaseConfig defines MongoDB connection configuration.
// The /test diagnostic endpoint only checks presence of these variables;
// the database package validates them again at connect time.
type DatabaseConfig struct {
	URL  string // Connection string - from DATABASE_URL env
	Name string // Database name - from DATABASE_NAME env
}

// Load reads configuration from environment variables with defaults.
// It automatically loads a .env file if present (for local development).
//
// Priority: .env file < environment variables
func Load() *Config {
	// godotenv.Load() fails silently if .env doesn't exist - fine for production
	_ = godotenv.Load()

	return &Config{
		Service: ServiceConfig{
			Name:    getEnv("SERVICE_NAME", "messaging"),
			Port:    getEnv("PORT", "8000"),
			Version: getEnv("VERSION", "dev"),
			Env:     getEnv("ENV", "development"),
		},
		Tracing: TracingConfig{
			Enabled:            getEnvBool("TRACING_ENABLED", true),
			Endpoint:           getEnv("OTEL_COLLECTOR_ENDPOINT", "otel-collector-opentelemetry-collector.monitoring.svc.cluster.local:4318"),
			SampleRate:         getEnvFloat("OTEL_SAMPLE_RATE", 0.1), // 10% default (production)
			ServiceName:        getEnv("SERVICE_NAME", "messaging"),
			MaxExportBatchSize: getEnvInt("OTEL_BATCH_SIZE", 512),
		},
		Profiling: ProfilingConfig{
			Enabled:     getEnvBool("PROFILING_ENABLED", true),
			Endpoint:    getEnv("PYROSCOPE_ENDPOINT", "http://pyroscope.monitoring.svc.cluster.local:4040"),
			ServiceName: getEnv("SERVICE_NAME", "messaging"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvBool("METRICS_ENABLED", true),
			Path:    getEnv("METRICS_PATH", "/metrics"),
		},
		Database: DatabaseConfig{
			URL:  getEnv("DATABASE_URL", ""),
			Name: getEnv("DATABASE_NAME", ""),
		},
		ShutdownTimeout:     getEnvDurationSeconds("SHUTDOWN_TIMEOUT", 10, 60),
		ReadinessDrainDelay: getEnvDurationSeconds("READINESS_DRAIN_DELAY", 5, 30),
	}
}

// Validate performs validation of all configuration fields.
// Returns detailed error messages for SRE/DevOps troubleshooting.
func (c *Config) Validate() error {
	var errs []string

	if c.Service.Port == "" {
		errs = append(errs, "PORT is required (e.g., '8000')")
	}
	if _, err := strconv.Atoi(c.Service.Port); err != nil {
		errs = append(errs, fmt.Sprintf("PORT must be a valid number, got: %s", c.Service.Port))
	}
	validEnvs := []string{"development", "dev", "staging", "stage", "production", "prod"}
	if !contains(validEnvs, c.Service.Env) {
		errs = append(errs, fmt.Sprintf("ENV must be one of %v, got: %s", validEnvs, c.Service.Env))
	}

	if c.Tracing.Enabled {
		if c.Tracing.Endpoint == "" {
			errs = append(errs, "OTEL_COLLECTOR_ENDPOINT is required when tracing is enabled")
		}
		if c.Tracing.SampleRate < 0 || c.Tracing.SampleRate > 1.0 {
			errs = append(errs, fmt.Sprintf("OTEL_SAMPLE_RATE must be between 0.0 and 1.0, got: %.2f", c.Tracing.SampleRate))
		}
	}

	if c.Profiling.Enabled && c.Profiling.Endpoint == "" {
		errs = append(errs, "PYROSCOPE_ENDPOINT is required when profiling is enabled")
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, strings.ToLower(c.Logging.Level)) {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL must be one of %v, got: %s", validLogLevels, c.Logging.Level))
	}
	validLogFormats := []string{"json", "console"}
	if !contains(validLogFormats, strings.ToLower(c.Logging.Format)) {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT must be one of %v, got: %s", validLogFormats, c.Logging.Format))
	}

	// Database URL/name are fully checked at connect time; DATABASE_NAME
	// without DATABASE_URL is the only combination that is always a mistake.
	if c.Database.Name != "" && c.Database.URL == "" {
		errs = append(errs, "DATABASE_URL is required when DATABASE_NAME is set")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.Service.Env)
	return env == "development" || env == "dev"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Service.Env)
	return env == "production" || env == "prod"
}

// GetShutdownTimeoutDuration returns shutdown timeout as time.Duration
func (c *Config) GetShutdownTimeoutDuration() time.Duration {
	return time.Duration(c.ShutdownTimeout) * time.Second
}

// GetReadinessDrainDelayDuration returns readiness drain delay as time.Duration.
func (c *Config) GetReadinessDrainDelayDuration() time.Duration {
	return time.Duration(c.ReadinessDrainDelay) * time.Second
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool accepts: "true", "1", "yes" for true | "false", "0", "no" for false
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	value = strings.ToLower(value)
	return value == "true" || value == "1" || value == "yes"
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return floatValue
}

// getEnvDurationSeconds reads a duration environment variable and returns seconds as int.
// Accepts Go duration format (e.g., "10s", "30s", "1m").
// Returns default on invalid or out-of-range values (silent fallback for startup safety).
func getEnvDurationSeconds(key string, defaultValueSeconds, maxSeconds int) int {
	timeoutStr := os.Getenv(key)
	if timeoutStr == "" {
		return defaultValueSeconds
	}

	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return defaultValueSeconds
	}

	seconds := int(timeout.Seconds())
	if seconds <= 0 || seconds > maxSeconds {
		return defaultValueSeconds
	}

	return seconds
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if strings.EqualFold(s, item) {
			return true
		}
	}
	return false
}
