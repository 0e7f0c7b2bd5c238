package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the service
type Config struct {
	Server  ServerConfig
	Backend BackendConfig
	Payment PaymentConfig
	Redis   RedisConfig
	Logging LoggingConfig
}

// ServerConfig holds server specific configuration
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// BackendConfig holds configuration for the platform REST backend
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

// PaymentConfig holds payment gateway specific configuration
type PaymentConfig struct {
	PrimaryBasePath  string
	FallbackBasePath string
	SuccessURL       string
	FailURL          string
	Currency         string
	DefaultOrderName string
	ConfirmTimeout   time.Duration
	SuccessDelay     time.Duration
}

// RedisConfig holds Redis specific configuration
type RedisConfig struct {
	Enabled    bool
	Addr       string
	Password   string
	DB         int
	SessionTTL time.Duration
}

// LoggingConfig holds logging specific configuration
type LoggingConfig struct {
	Level string
}

// LoadConfig loads the configuration from file and environment variables
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Read config file
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Read from environment variables
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.readTimeout", "10s")
	v.SetDefault("server.writeTimeout", "10s")
	v.SetDefault("server.idleTimeout", "120s")

	// Backend defaults
	v.SetDefault("backend.timeout", "10s")

	// Payment defaults
	v.SetDefault("payment.primaryBasePath", "/api/payments")
	v.SetDefault("payment.fallbackBasePath", "/api/v1/payments")
	v.SetDefault("payment.successURL", "/payments/success")
	v.SetDefault("payment.failURL", "/payments/fail")
	v.SetDefault("payment.currency", "KRW")
	v.SetDefault("payment.defaultOrderName", "프로젝트 파트너 결제")
	v.SetDefault("payment.confirmTimeout", "15s")
	v.SetDefault("payment.successDelay", "2s")

	// Redis defaults
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.sessionTTL", "24h")

	// Logging defaults
	v.SetDefault("logging.level", "info")
}
