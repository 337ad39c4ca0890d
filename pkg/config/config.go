// Package config loads application configuration from environment variables,
// with a .env file honored when present.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Server        ServerConfig
	Database      DatabaseConfig
	Extraction    ExtractionConfig
	Observability ObservabilityConfig
}

type ServerConfig struct {
	Host               string
	Port               int
	RateLimitPerSecond int
	RateLimitBurst     int
	// MaxUploadBytes caps one multipart upload request.
	MaxUploadBytes int64
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	// Enabled toggles persistence; the CLI and stateless deployments run
	// without a database.
	Enabled bool
}

type ExtractionConfig struct {
	// FileTimeout bounds processing of one statement file.
	FileTimeout time.Duration
	// BatchWorkers caps concurrent files in one batch.
	BatchWorkers int
	// ReferenceYear resolves year-less statement dates; 0 means current year.
	ReferenceYear int
	// OCRLanguage is the tesseract language code for scanned statements.
	OCRLanguage string
	OCREnabled  bool
}

type ObservabilityConfig struct {
	MetricsEnabled bool
}

// Load reads configuration from the environment. A .env file in the working
// directory is merged in first; missing values fall back to defaults.
func Load() (*Config, error) {
	// Absence of a .env file is the normal production case.
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:               getEnv("SERVER_HOST", "localhost"),
			Port:               getEnvAsInt("SERVER_PORT", 8080),
			RateLimitPerSecond: getEnvAsInt("SERVER_RATE_LIMIT_PER_SECOND", 10),
			RateLimitBurst:     getEnvAsInt("SERVER_RATE_LIMIT_BURST", 20),
			MaxUploadBytes:     getEnvAsInt64("SERVER_MAX_UPLOAD_BYTES", 25<<20),
			AllowedOrigins:     []string{getEnv("SERVER_ALLOWED_ORIGIN", "*")},
		},
		Database: DatabaseConfig{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnvAsInt("POSTGRES_PORT", 5432),
			User:     getEnv("POSTGRES_USER", "postgres"),
			Password: getEnv("POSTGRES_PASSWORD", "postgres"),
			Database: getEnv("POSTGRES_DB", "expenses"),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
			Enabled:  getEnvAsBool("POSTGRES_ENABLED", false),
		},
		Extraction: ExtractionConfig{
			FileTimeout:   getEnvAsDuration("EXTRACTION_FILE_TIMEOUT", 30*time.Second),
			BatchWorkers:  getEnvAsInt("EXTRACTION_BATCH_WORKERS", 4),
			ReferenceYear: getEnvAsInt("EXTRACTION_REFERENCE_YEAR", 0),
			OCRLanguage:   getEnv("EXTRACTION_OCR_LANGUAGE", "eng"),
			OCREnabled:    getEnvAsBool("EXTRACTION_OCR_ENABLED", true),
		},
		Observability: ObservabilityConfig{
			MetricsEnabled: getEnvAsBool("METRICS_ENABLED", true),
		},
	}

	if cfg.Extraction.BatchWorkers < 1 {
		return nil, fmt.Errorf("EXTRACTION_BATCH_WORKERS must be positive, got %d", cfg.Extraction.BatchWorkers)
	}
	if cfg.Extraction.FileTimeout <= 0 {
		return nil, fmt.Errorf("EXTRACTION_FILE_TIMEOUT must be positive, got %s", cfg.Extraction.FileTimeout)
	}
	return cfg, nil
}

// DSN returns the database connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// Addr returns the host:port listen address.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, err := strconv.ParseInt(os.Getenv(key), 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}
