package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config contains all configuration parameters for the application.
// Note: Password is prompted at runtime and stored in memory - use GetPasswordBytes()
type Config struct {
	Port          string `envconfig:"PORT" default:"8080"`
	OutputDir     string `envconfig:"WALLET_OUTPUT_DIR" default:"wallets"`
	QRSize        int    `envconfig:"WALLET_QR_SIZE" default:"256"`
	IdenticonSize int    `envconfig:"WALLET_IDENTICON_SIZE" default:"420"`
	MaxBatch      int    `envconfig:"WALLET_MAX_BATCH" default:"1000"`
	LogLevel      string `envconfig:"WALLET_LOG_LEVEL" default:"info"`
}

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from environment variables.
func Init() error {
	c := &Config{}
	if err := envconfig.Process("", c); err != nil {
		return fmt.Errorf("failed to process config: %w", err)
	}
	if err := c.validate(); err != nil {
		return err
	}
	cfg = c
	return nil
}

func (c *Config) validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("WALLET_OUTPUT_DIR must not be empty")
	}
	if c.QRSize < 21 {
		return fmt.Errorf("WALLET_QR_SIZE must be at least 21 pixels, got %d", c.QRSize)
	}
	if c.IdenticonSize < 16 {
		return fmt.Errorf("WALLET_IDENTICON_SIZE must be at least 16 pixels, got %d", c.IdenticonSize)
	}
	if c.MaxBatch < 1 {
		return fmt.Errorf("WALLET_MAX_BATCH must be positive, got %d", c.MaxBatch)
	}
	return nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// GetPort returns port from configuration
func GetPort() string {
	return Get().Port
}

// GetOutputDir returns the directory wallets are exported to
func GetOutputDir() string {
	return Get().OutputDir
}

// GetQRSize returns QR image size in pixels
func GetQRSize() int {
	return Get().QRSize
}

// GetIdenticonSize returns identicon image size in pixels
func GetIdenticonSize() int {
	return Get().IdenticonSize
}

// GetMaxBatch returns the largest wallet count accepted in one request
func GetMaxBatch() int {
	return Get().MaxBatch
}

// GetLogLevel returns the log level name
func GetLogLevel() string {
	return Get().LogLevel
}
