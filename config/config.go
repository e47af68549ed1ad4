package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Listing source kinds.
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	ListingsSource  string
	ListingsCSVPath string
	ListingsTable   string
	ListingsOrderBy string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	MaxRetries      int
	RetryBaseMs     int
	MaxConcurrency  int
	DefaultMaxPrice int

	HTTPAddr string
	LogLevel string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}
	return fromEnv()
}

func fromEnv() *Config {
	return &Config{
		ListingsSource:  getEnv("LISTINGS_SOURCE", SourceCSV),
		ListingsCSVPath: getEnv("LISTINGS_CSV_PATH", "./data/tokyo_airbnb_listings.csv"),
		ListingsTable:   getEnv("LISTINGS_TABLE", "listings"),
		ListingsOrderBy: getEnv("LISTINGS_ORDER_BY", "id"),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "webmap"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "webmap123"),
		PostgresDB:       getEnv("POSTGRES_DB", "rental_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		MaxRetries:      getEnvInt("MAX_RETRIES", 5),
		RetryBaseMs:     getEnvInt("RETRY_BASE_MS", 500),
		MaxConcurrency:  getEnvInt("MAX_CONCURRENCY", 4),
		DefaultMaxPrice: getEnvInt("DEFAULT_MAX_PRICE", 500000),

		HTTPAddr: getEnv("HTTP_ADDR", ":8050"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
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
