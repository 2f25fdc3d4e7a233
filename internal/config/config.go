package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Queue    QueueConfig
	Schedule ScheduleConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds token verification configuration.
type JWTConfig struct {
	Secret string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// QueueConfig holds offline-queue configuration.
type QueueConfig struct {
	// Path to the local sqlite file backing the durable queue.
	StorePath string
	// MaxRetries is the per-operation retry ceiling before dropping.
	MaxRetries int
	// SettleDelay debounces connectivity-restored drain triggers.
	SettleDelay time.Duration
	// DrainInterval is the periodic drain fallback.
	DrainInterval time.Duration
}

// ScheduleConfig holds company-level schedule defaults applied when no
// schedule row exists yet.
type ScheduleConfig struct {
	DefaultStartTime        string
	DefaultEndTime          string
	DefaultToleranceMinutes int
	AutoOvertimeEnabled     bool
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file found, using environment")
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "presenze"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret: getEnv("JWT_SECRET_KEY", ""),
	}

	// Offline queue configuration
	maxRetries, err := strconv.Atoi(getEnv("QUEUE_MAX_RETRIES", "3"))
	if err != nil {
		return nil, fmt.Errorf("invalid QUEUE_MAX_RETRIES: %w", err)
	}

	settleDelay, err := time.ParseDuration(getEnv("QUEUE_SETTLE_DELAY", "2s"))
	if err != nil {
		return nil, fmt.Errorf("invalid QUEUE_SETTLE_DELAY: %w", err)
	}

	drainInterval, err := time.ParseDuration(getEnv("QUEUE_DRAIN_INTERVAL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid QUEUE_DRAIN_INTERVAL: %w", err)
	}

	config.Queue = QueueConfig{
		StorePath:     getEnv("QUEUE_STORE_PATH", "offline_queue.db"),
		MaxRetries:    maxRetries,
		SettleDelay:   settleDelay,
		DrainInterval: drainInterval,
	}

	// Schedule defaults
	tolerance, err := strconv.Atoi(getEnv("SCHEDULE_TOLERANCE_MINUTES", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid SCHEDULE_TOLERANCE_MINUTES: %w", err)
	}

	config.Schedule = ScheduleConfig{
		DefaultStartTime:        getEnv("SCHEDULE_START_TIME", "09:00"),
		DefaultEndTime:          getEnv("SCHEDULE_END_TIME", "18:00"),
		DefaultToleranceMinutes: tolerance,
		AutoOvertimeEnabled:     getEnv("AUTO_OVERTIME_ENABLED", "false") == "true",
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Queue.MaxRetries < 1 {
		return fmt.Errorf("QUEUE_MAX_RETRIES must be at least 1")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
