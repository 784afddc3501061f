// Package config loads runtime settings from the environment and an optional .env file.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Port    string
	GinMode string

	StoreDriver  string
	DatabasePath string
	DatabaseDSN  string
	StateKey     string

	LogLevel  string
	LogFormat string
	LogFile   string

	MaxUploadSizeBytes int64
	ReportCacheTTL     time.Duration
	DefaultConfirmRate decimal.Decimal
	DefaultDeliverRate decimal.Decimal
	DisplayLocale      string
	ReferenceDataPath  string

	// JWTSecret enables bearer-token auth on the API when set.
	JWTSecret string

	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
}

// AuthEnabled reports whether requests must carry a signed operator token.
func (c *Config) AuthEnabled() bool {
	return c.JWTSecret != ""
}

// Load reads .env (if present) and the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: no .env file loaded, relying on environment variables and defaults")
	}

	cfg := &Config{
		Port:    getEnv("PORT", "8080"),
		GinMode: getEnv("GIN_MODE", "debug"),

		StoreDriver:  strings.ToLower(getEnv("STORE_DRIVER", DriverSQLite)),
		DatabasePath: getEnv("DATABASE_PATH", "./coinnecta.db"),
		DatabaseDSN:  getEnv("DATABASE_DSN", ""),
		StateKey:     getEnv("STATE_KEY", "coinnecta_data_v5"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
		LogFile:   getEnv("LOG_FILE", ""),

		MaxUploadSizeBytes: int64(getEnvAsInt("MAX_UPLOAD_SIZE_BYTES", 10<<20)),
		ReportCacheTTL:     getEnvAsDuration("REPORT_CACHE_TTL", 15*time.Minute),
		DefaultConfirmRate: decimal.NewFromFloat(getEnvAsFloat("DEFAULT_CONFIRM_RATE", 90)),
		DefaultDeliverRate: decimal.NewFromFloat(getEnvAsFloat("DEFAULT_DELIVER_RATE", 60)),
		DisplayLocale:      getEnv("DISPLAY_LOCALE", "es-ES"),
		ReferenceDataPath:  getEnv("REFERENCE_DATA_PATH", ""),

		JWTSecret: getEnv("JWT_SECRET", ""),

		CORSOrigins:    splitList(getEnv("CORS_ORIGINS", "http://localhost:5173,http://127.0.0.1:5173")),
		RateLimitRPS:   getEnvAsFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst: getEnvAsInt("RATE_LIMIT_BURST", 30),
	}

	if cfg.StoreDriver == DriverPostgres && cfg.DatabaseDSN == "" {
		cfg.DatabaseDSN = postgresDSNFromParts()
	}
	if cfg.JWTSecret == "" && cfg.GinMode == "release" {
		log.Println("WARNING: JWT_SECRET is not set; the API is open to anyone who can reach it.")
	}

	return cfg
}

// Validate reports settings that cannot work together.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q (want %s or %s)", c.StoreDriver, DriverSQLite, DriverPostgres)
	}
	if c.StateKey == "" {
		return fmt.Errorf("STATE_KEY must not be empty")
	}
	if c.MaxUploadSizeBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_SIZE_BYTES must be positive")
	}
	if len(c.CORSOrigins) == 0 {
		return fmt.Errorf("CORS_ORIGINS must list at least one origin")
	}
	return nil
}

func postgresDSNFromParts() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", "postgres"),
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_NAME", "postgres"),
		getEnv("DB_SSLMODE", "disable"),
	)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("WARNING: invalid integer for %s: %q, using default %d", key, valueStr, fallback)
		return fallback
	}
	return value
}

func getEnvAsFloat(key string, fallback float64) float64 {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("WARNING: invalid number for %s: %q, using default %v", key, valueStr, fallback)
		return fallback
	}
	return value
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("WARNING: invalid duration for %s: %q, using default %s", key, valueStr, fallback)
		return fallback
	}
	return value
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
