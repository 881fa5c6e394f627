package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Payroll  PayrollConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// PayrollConfig holds the statutory computation constants.
type PayrollConfig struct {
	// StandardWorkingDays is the default billable days per pay period and
	// the divisor used to derive a daily rate from a monthly salary.
	StandardWorkingDays int
	// MonetizableDaysCap is the maximum leave days convertible to cash
	// per leave type per computation.
	MonetizableDaysCap int
	// TerminalLeaveFactor is the statutory constant for terminal leave
	// benefit computation.
	TerminalLeaveFactor decimal.Decimal
}

func Load() (*Config, error) {
	// A missing .env file is fine in deployed environments; values come
	// from the process environment there.
	_ = godotenv.Load()

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
		Name:     getEnv("DB_NAME", "lgu_hris"),
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
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Payroll configuration
	standardDays, err := strconv.Atoi(getEnv("PAYROLL_STANDARD_WORKING_DAYS", "22"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_STANDARD_WORKING_DAYS: %w", err)
	}
	monetizableCap, err := strconv.Atoi(getEnv("PAYROLL_MONETIZABLE_DAYS_CAP", "29"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_MONETIZABLE_DAYS_CAP: %w", err)
	}
	tlbFactor, err := decimal.NewFromString(getEnv("PAYROLL_TERMINAL_LEAVE_FACTOR", "0.0481927"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_TERMINAL_LEAVE_FACTOR: %w", err)
	}

	config.Payroll = PayrollConfig{
		StandardWorkingDays: standardDays,
		MonetizableDaysCap:  monetizableCap,
		TerminalLeaveFactor: tlbFactor,
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
	if c.Payroll.StandardWorkingDays <= 0 {
		return fmt.Errorf("PAYROLL_STANDARD_WORKING_DAYS must be positive")
	}
	if c.Payroll.MonetizableDaysCap <= 0 {
		return fmt.Errorf("PAYROLL_MONETIZABLE_DAYS_CAP must be positive")
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
