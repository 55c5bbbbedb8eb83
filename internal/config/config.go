package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const PROD_STRING = "prod"

// Config holds all application configuration loaded from environment.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	HTTPAddr     string
	JWTSecret    string

	BookingAPIURL     string
	BookingListPath   string
	BookingAPITimeout time.Duration
	BookingAPIRPS     float64
	BookingAPIBurst   int

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	ShowAuspicious   bool
	FirstDayOfWeek   time.Weekday
	BadgeCap         int
	MobileBreakpoint int

	ExportDir string
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		log.Printf("failed to load .env file: %v", err)
	}

	cfg := &Config{}

	// Production origin (default: empty)
	cfg.ProdOrigins = getEnv("PROD_ORIGINS", "")

	// Application environment (default: dev)
	appEnvStr := getEnv("APP_ENV", "dev")
	cfg.IsProduction = appEnvStr == PROD_STRING

	// HTTP listen address (default: :8080)
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")

	// JWT secret verifies dashboard tokens; only the server requires it
	cfg.JWTSecret = os.Getenv("JWT_SECRET")

	// Booking API
	cfg.BookingAPIURL = getEnv("BOOKING_API_URL", "https://regalia-backend.vercel.app")
	cfg.BookingListPath = getEnv("BOOKING_LIST_PATH", "/api/bookings")

	cfg.BookingAPITimeout, err = getEnvAsDuration("BOOKING_API_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}

	cfg.BookingAPIRPS, err = getEnvAsFloat("BOOKING_API_RPS", 5)
	if err != nil {
		return nil, err
	}

	cfg.BookingAPIBurst, err = getEnvAsInt("BOOKING_API_BURST", 5)
	if err != nil {
		return nil, err
	}

	// Redis cache is optional; empty address disables it
	cfg.RedisAddr = getEnv("REDIS_ADDR", "")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	cfg.RedisDB, err = getEnvAsInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}

	cfg.CacheTTL, err = getEnvAsDuration("CACHE_TTL", 30*time.Second)
	if err != nil {
		return nil, err
	}

	// Calendar presentation
	cfg.ShowAuspicious, err = getEnvAsBool("SHOW_AUSPICIOUS", true)
	if err != nil {
		return nil, err
	}

	firstDay, err := getEnvAsInt("FIRST_DAY_OF_WEEK", int(time.Sunday))
	if err != nil {
		return nil, err
	}
	if firstDay < 0 || firstDay > 6 {
		return nil, fmt.Errorf("FIRST_DAY_OF_WEEK must be between 0 (Sunday) and 6 (Saturday), got %d", firstDay)
	}
	cfg.FirstDayOfWeek = time.Weekday(firstDay)

	cfg.BadgeCap, err = getEnvAsInt("BADGE_CAP", 9)
	if err != nil {
		return nil, err
	}

	cfg.MobileBreakpoint, err = getEnvAsInt("MOBILE_BREAKPOINT", 768)
	if err != nil {
		return nil, err
	}

	// PNG snapshots written by the terminal viewer
	cfg.ExportDir = getEnv("EXPORT_DIR", "exports")

	return cfg, nil
}

// LoadServer loads the configuration and additionally requires the
// settings only the HTTP server needs.
func LoadServer() (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	return cfg, nil
}

// getEnv returns the value of the environment variable if set,
// otherwise returns the provided default value.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer.
// It returns the default value if the variable is not set.
// It returns an error if the variable is set but is not a valid integer.
func getEnvAsInt(key string, defaultValue int) (int, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid integer: %w", key, valStr, err)
	}

	return val, nil
}

func getEnvAsFloat(key string, defaultValue float64) (float64, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseFloat(valStr, 64)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid number: %w", key, valStr, err)
	}

	return val, nil
}

// getEnvAsDuration parses values like "15s" or "1m".
func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := time.ParseDuration(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid duration: %w", key, valStr, err)
	}

	return val, nil
}

func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	valStr := strings.TrimSpace(getEnv(key, ""))
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(valStr)
	if err != nil {
		return false, fmt.Errorf("env %s value %q is not a valid boolean: %w", key, valStr, err)
	}

	return val, nil
}
