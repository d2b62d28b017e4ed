// Package common provides shared configuration, logging, and version
// utilities across the application.
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string            `toml:"environment" validate:"omitempty,oneof=development production"`
	Server      ServerConfig      `toml:"server"`
	Logging     LoggingConfig     `toml:"logging"`
	Interpreter InterpreterConfig `toml:"interpreter"`
}

type ServerConfig struct {
	Port      int     `toml:"port" validate:"gte=1,lte=65535"`
	Host      string  `toml:"host"`
	RateLimit float64 `toml:"rate_limit" validate:"gt=0"` // Requests per second per client
	RateBurst int     `toml:"rate_burst" validate:"gte=1"`
}

type LoggingConfig struct {
	Level      string   `toml:"level" validate:"omitempty,oneof=debug info warn error"`
	Output     []string `toml:"output"`      // "stdout", "file"
	TimeFormat string   `toml:"time_format"` // Time format for logs
}

// InterpreterConfig controls the query-interpretation pipeline.
type InterpreterConfig struct {
	DefaultTicker string `toml:"default_ticker" validate:"omitempty,uppercase"` // Substituted when no ticker resolves
	PreferFiscal  bool   `toml:"prefer_fiscal"`                                 // Bare periods resolve on a fiscal basis
	ReferenceFile string `toml:"reference_file"`                                // TOML/YAML reference dataset (empty = built-in)
}

// NewDefaultConfig returns the configuration defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port:      8085,
			Host:      "localhost",
			RateLimit: 10,
			RateBurst: 20,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Output:     []string{"stdout"},
			TimeFormat: "15:04:05",
		},
		Interpreter: InterpreterConfig{
			DefaultTicker: "AAPL",
			PreferFiscal:  true,
		},
	}
}

// LoadFromFiles loads configuration with priority: defaults -> file1 ->
// file2 -> ... -> environment variables. Later files override earlier
// files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("INTERPRES_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	if port := os.Getenv("INTERPRES_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("INTERPRES_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if level := os.Getenv("INTERPRES_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if output := os.Getenv("INTERPRES_LOG_OUTPUT"); output != "" {
		var outputs []string
		for _, o := range strings.Split(output, ",") {
			if trimmed := strings.TrimSpace(o); trimmed != "" {
				outputs = append(outputs, trimmed)
			}
		}
		if len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}
	if ticker := os.Getenv("INTERPRES_DEFAULT_TICKER"); ticker != "" {
		config.Interpreter.DefaultTicker = strings.ToUpper(ticker)
	}
	if ref := os.Getenv("INTERPRES_REFERENCE_FILE"); ref != "" {
		config.Interpreter.ReferenceFile = ref
	}
}

// ApplyFlagOverrides applies CLI flag overrides (highest priority)
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// IsProduction returns true when running in production mode
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}
