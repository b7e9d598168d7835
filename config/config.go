package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	InputDir     string
	OutputPath   string
	IDColumn     string
	SourceColumn string

	CompressThresholdMB int
	PreviewRows         int
	Debug               bool

	ExportPostgres   bool
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
	PostgresTable    string
	MaxRetries       int
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() *Config {
	return &Config{
		InputDir:     getEnv("DATA_DIR", "data/"),
		OutputPath:   getEnv("OUTPUT_FILE", "processed_data/airbnb_complete.csv"),
		IDColumn:     getEnv("ID_COLUMN", ""),
		SourceColumn: getEnv("SOURCE_COLUMN", "city"),

		CompressThresholdMB: getEnvInt("COMPRESS_THRESHOLD_MB", 25),
		PreviewRows:         getEnvInt("PREVIEW_ROWS", 3),
		Debug:               getEnvBool("LOG_DEBUG", false),

		ExportPostgres:   getEnvBool("EXPORT_POSTGRES", false),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "airbnb"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "airbnb123"),
		PostgresDB:       getEnv("POSTGRES_DB", "rental_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		PostgresTable:    getEnv("POSTGRES_TABLE", "listings_merged"),
		MaxRetries:       getEnvInt("MAX_RETRIES", 3),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

// CompressThresholdBytes converts the configured threshold to bytes.
func (c *Config) CompressThresholdBytes() int64 {
	return int64(c.CompressThresholdMB) * 1024 * 1024
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
