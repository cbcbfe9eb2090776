package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// devJWTSecret is tolerated outside production so the server can run locally
// without any configuration.
const devJWTSecret = "honeybadger-dev-secret-change-me"

// Config holds server settings
type Config struct {
	ListenAddr  string `yaml:"listen_addr" json:"listen_addr"`   // Bind address, e.g. ":3000"
	DatabaseURL string `yaml:"database_url" json:"database_url"` // postgres:// DSN or sqlite file path
	Environment string `yaml:"environment" json:"environment"`   // "development" or "production"
	JWTSecret   string `yaml:"jwt_secret" json:"jwt_secret"`     // HMAC secret for signing tokens

	EnableSMS  bool   `yaml:"enable_sms" json:"enable_sms"`     // Notify recipients on gift creation
	ChatAPIKey string `yaml:"chat_api_key" json:"chat_api_key"` // Key for the chat-completion backend

	// Logging configuration
	LogLevel   string `yaml:"log_level" json:"log_level"`     // Log level: DEBUG, INFO, WARN, ERROR
	LogFile    string `yaml:"log_file" json:"log_file"`       // Path to log file
	LogConsole bool   `yaml:"log_console" json:"log_console"` // Enable console logging
}

// DefaultConfig returns default settings
func DefaultConfig() *Config {
	return &Config{
		ListenAddr:  getEnv("HONEYBADGER_ADDR", ":3000"),
		DatabaseURL: getEnv("DATABASE_URL", "honeybadger.db"),
		Environment: getEnv("HONEYBADGER_ENV", "development"),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		EnableSMS:   getEnv("ENABLE_SMS", "false") == "true",
		ChatAPIKey:  getEnv("CHAT_API_KEY", ""),
		LogLevel:    getEnv("HONEYBADGER_LOG_LEVEL", "INFO"),
		LogFile:     getEnv("HONEYBADGER_LOG_FILE", ""),
		LogConsole:  getEnv("HONEYBADGER_LOG_CONSOLE", "true") == "true",
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Load loads config from the given path, falling back to defaults
// when no file exists
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// IsProduction reports whether the process runs in a production configuration
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Validate checks that the configuration is usable. A missing JWT secret is
// fatal in production; development falls back to a built-in secret.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		if c.IsProduction() {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		c.JWTSecret = devJWTSecret
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("database URL must not be empty")
	}
	return nil
}
