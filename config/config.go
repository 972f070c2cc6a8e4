package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPHost               string
	HTTPPort               string
	MySQLDSN               string
	JWTSecret              string
	AccessTokenExpireMins  int64
	RefreshTokenExpireDays int64
	InviteCodeMaxAttempts  int
	AutoMigrate            bool
	LogFormat              string
	LogLevel               string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignores error if not found)
	_ = godotenv.Load()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, errors.New("JWT_SECRET environment variable is required")
	}

	mysqlDSN := os.Getenv("MYSQL_DSN")
	if mysqlDSN == "" {
		return nil, errors.New("MYSQL_DSN environment variable is required")
	}

	return &Config{
		HTTPHost:               getEnv("HTTP_HOST", ""),
		HTTPPort:               getEnv("HTTP_PORT", "8080"),
		MySQLDSN:               mysqlDSN,
		JWTSecret:              jwtSecret,
		AccessTokenExpireMins:  getInt64Env("ACCESS_TOKEN_EXPIRE_MINUTES", 120),
		RefreshTokenExpireDays: getInt64Env("REFRESH_TOKEN_EXPIRE_DAYS", 14),
		InviteCodeMaxAttempts:  getIntEnv("INVITE_CODE_MAX_ATTEMPTS", 10),
		AutoMigrate:            getBoolEnv("AUTO_MIGRATE", true),
		LogFormat:              getEnv("LOG_FORMAT", "text"),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
	}, nil
}

func (c *Config) DSN() string {
	return c.MySQLDSN
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
