package database

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config represents database configuration
type Config struct {
	Driver          string        `mapstructure:"db_driver"`
	Host            string        `mapstructure:"db_host"`
	Port            int           `mapstructure:"db_port"`
	Username        string        `mapstructure:"db_username"`
	Password        string        `mapstructure:"db_password"`
	Database        string        `mapstructure:"db_name"`
	SSLMode         string        `mapstructure:"db_ssl_mode"`
	SQLitePath      string        `mapstructure:"db_sqlite_path"`
	FallbackSQLite  bool          `mapstructure:"db_fallback_sqlite"`
	MaxOpenConns    int           `mapstructure:"db_max_open_conns"`
	MaxIdleConns    int           `mapstructure:"db_max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"db_conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"db_conn_max_idle_time"`
	QueryTimeout    time.Duration `mapstructure:"db_query_timeout"`
	LogLevel        string        `mapstructure:"db_log_level"`
	RetryAttempts   int           `mapstructure:"db_retry_attempts"`
	RetryDelay      int           `mapstructure:"db_retry_delay"`
}

// DefaultConfig returns a Config with default values.
// No credentials are hardcoded; they must come from the environment.
// When no Postgres host is configured and the sqlite fallback is on,
// the manager runs against a local file instead.
func DefaultConfig() *Config {
	return &Config{
		Driver:          configEnvOrDefault("SHOP_DB_DRIVER", "postgres"),
		Host:            configEnv("SHOP_DB_HOST"),
		Port:            configEnvAsInt("SHOP_DB_PORT", 5432),
		Username:        configEnv("SHOP_DB_USERNAME"),
		Password:        configEnv("SHOP_DB_PASSWORD"),
		Database:        configEnv("SHOP_DB_NAME"),
		SSLMode:         configEnvOrDefault("SHOP_DB_SSL_MODE", "disable"),
		SQLitePath:      configEnvOrDefault("SHOP_DB_SQLITE_PATH", "storefront.db"),
		FallbackSQLite:  configEnvOrDefault("SHOP_DB_FALLBACK_SQLITE", "true") == "true",
		MaxOpenConns:    configEnvAsInt("SHOP_DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:    configEnvAsInt("SHOP_DB_MAX_IDLE_CONNS", 25),
		ConnMaxLifetime: time.Duration(configEnvAsInt("SHOP_DB_CONN_MAX_LIFETIME_MINUTES", 5)) * time.Minute,
		ConnMaxIdleTime: time.Duration(configEnvAsInt("SHOP_DB_CONN_MAX_IDLE_TIME_MINUTES", 5)) * time.Minute,
		QueryTimeout:    time.Duration(configEnvAsInt("SHOP_DB_QUERY_TIMEOUT_SECONDS", 10)) * time.Second,
		LogLevel:        configEnvOrDefault("SHOP_LOGGER_LEVEL", "info"),
		RetryAttempts:   configEnvAsInt("SHOP_DB_RETRY_ATTEMPTS", 3),
		RetryDelay:      configEnvAsInt("SHOP_DB_RETRY_DELAY_SECONDS", 5),
	}
}

// HostedConfigured reports whether enough Postgres settings are present
// to even attempt a hosted connection
func (c *Config) HostedConfigured() bool {
	return c.Host != "" && c.Username != "" && c.Database != ""
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Driver {
	case "postgres":
		if !c.HostedConfigured() && !c.FallbackSQLite {
			return errors.New("postgres connection settings are required when the sqlite fallback is disabled")
		}
	case "sqlite":
		if c.SQLitePath == "" {
			return errors.New("sqlite path is required")
		}
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Driver)
	}

	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port number: %d", c.Port)
	}

	validSSLModes := map[string]bool{
		"disable":     true,
		"require":     true,
		"verify-ca":   true,
		"verify-full": true,
		"prefer":      true,
	}
	if !validSSLModes[c.SSLMode] {
		return fmt.Errorf("invalid SSL mode: %s", c.SSLMode)
	}

	if c.MaxOpenConns <= 0 {
		return fmt.Errorf("max open connections must be positive, got: %d", c.MaxOpenConns)
	}
	if c.MaxIdleConns <= 0 {
		return fmt.Errorf("max idle connections must be positive, got: %d", c.MaxIdleConns)
	}
	if c.QueryTimeout <= 0 {
		return errors.New("query timeout must be positive")
	}
	if c.RetryAttempts < 0 {
		return fmt.Errorf("retry attempts must be non-negative, got: %d", c.RetryAttempts)
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("retry delay must be non-negative, got: %d", c.RetryDelay)
	}

	validLogLevels := map[string]bool{
		"debug":  true,
		"info":   true,
		"warn":   true,
		"error":  true,
		"silent": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}

	return nil
}

// PostgresDSN returns the Postgres connection string
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.Username, c.Password, c.Database, c.SSLMode,
	)
}

// configEnv gets a value from environment variables with no default
func configEnv(key string) string {
	return os.Getenv(key)
}

// configEnvOrDefault gets a value from environment variables with a default value
func configEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// configEnvAsInt gets an integer value from environment variables with a default
func configEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
