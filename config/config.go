// Package config loads gotrans settings from the environment and an optional
// .env file. Command-line flags are layered on top by cmd/gotrans.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config is the full process configuration.
type Config struct {
	Server ServerConfig
	Engine EngineConfig
	Cache  CacheConfig
	OpenAI OpenAIConfig
	Log    LogConfig
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Address       string        `env:"GOTRANS_ADDRESS"        envDefault:"127.0.0.1:8000"`
	LookupTimeout time.Duration `env:"GOTRANS_LOOKUP_TIMEOUT" envDefault:"30s"`
	ReadTimeout   time.Duration `env:"GOTRANS_READ_TIMEOUT"   envDefault:"10s"`
	WriteTimeout  time.Duration `env:"GOTRANS_WRITE_TIMEOUT"  envDefault:"60s"`
	IdleTimeout   time.Duration `env:"GOTRANS_IDLE_TIMEOUT"   envDefault:"120s"`
}

// EngineConfig locates translate-shell and bounds each run.
type EngineConfig struct {
	Binary  string        `env:"GOTRANS_BIN"            envDefault:"/usr/bin/trans"`
	Timeout time.Duration `env:"GOTRANS_ENGINE_TIMEOUT" envDefault:"10s"`
}

// CacheConfig selects and configures the translation cache.
type CacheConfig struct {
	RedisURL     string        `env:"GOTRANS_REDIS"         envDefault:"redis://127.0.0.1/"`
	KeyPrefix    string        `env:"GOTRANS_KEY_PREFIX"`
	DialTimeout  time.Duration `env:"GOTRANS_REDIS_TIMEOUT" envDefault:"5s"`
	Memory       bool          `env:"GOTRANS_MEMORY_CACHE"`
	SingleFlight bool          `env:"GOTRANS_SINGLE_FLIGHT"`
}

// OpenAIConfig enables the "openai" engine when APIKey is set.
type OpenAIConfig struct {
	APIKey            string `env:"OPENAI_API_KEY"`
	Model             string `env:"OPENAI_MODEL"               envDefault:"gpt-4o-mini"`
	BaseURL           string `env:"OPENAI_BASE_URL"`
	RequestsPerMinute int    `env:"OPENAI_REQUESTS_PER_MINUTE" envDefault:"60"`
}

// LogConfig controls the logrus logger.
type LogConfig struct {
	Level  string `env:"LOG_LEVEL"  envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"text"` // text or json
}

// Load reads .env (if present) and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv parses the process environment without touching .env files.
func FromEnv() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	if c.Server.Address == "" {
		return errors.New("address must not be empty")
	}
	if c.Engine.Binary == "" {
		return errors.New("translate-shell binary must not be empty")
	}
	if c.Server.LookupTimeout <= 0 {
		return fmt.Errorf("lookup timeout must be positive, got %v", c.Server.LookupTimeout)
	}
	if c.Engine.Timeout < 0 {
		return fmt.Errorf("engine timeout must not be negative, got %v", c.Engine.Timeout)
	}
	if !c.Cache.Memory && c.Cache.RedisURL == "" {
		return errors.New("redis URL must not be empty unless the memory cache is used")
	}
	if c.OpenAI.APIKey != "" && c.OpenAI.RequestsPerMinute <= 0 {
		return fmt.Errorf("openai requests per minute must be positive, got %d", c.OpenAI.RequestsPerMinute)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// NewLogger builds the process logger from the log settings.
func (c LogConfig) NewLogger() (*logrus.Logger, error) {
	logger := logrus.New()

	level, err := logrus.ParseLevel(c.Level)
	if err != nil {
		return nil, err
	}
	logger.SetLevel(level)

	if c.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger, nil
}
