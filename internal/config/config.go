// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/alexanderramin/roastery/internal/db"
	"github.com/alexanderramin/roastery/internal/storage"
)

// DefaultEnvFiles are loaded, when present, before the environment is parsed.
var DefaultEnvFiles = []string{".env", ".env.local"}

type Config struct {
	DBPath         string         `env:"ROASTERY_DB"`
	HTTPAddr       string         `env:"ROASTERY_HTTP_ADDR" envDefault:":8080"`
	AllowedOrigins []string       `env:"ROASTERY_ALLOWED_ORIGINS" envSeparator:","`
	LogLevel       string         `env:"ROASTERY_LOG_LEVEL" envDefault:"info"`
	LogFormat      string         `env:"ROASTERY_LOG_FORMAT" envDefault:"text"`
	MaxUploadBytes int64          `env:"ROASTERY_MAX_UPLOAD_BYTES" envDefault:"10485760"`
	MetricsPath    string         `env:"ROASTERY_METRICS_PATH" envDefault:"/metrics"`
	Storage        storage.Config `envPrefix:"ROASTERY_S3_"`
}

// LoadEnv loads the env files that exist and returns how many were loaded.
// Variables already set in the process environment win.
func LoadEnv(files []string) (int, error) {
	existing := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return 0, nil
	}
	return len(existing), godotenv.Load(existing...)
}

// Load reads env files, parses the environment and validates the result.
func Load(envFiles []string) (*Config, error) {
	if _, err := LoadEnv(envFiles); err != nil {
		return nil, fmt.Errorf("loading env files: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	if cfg.DBPath == "" {
		path, err := db.DefaultPath()
		if err != nil {
			return nil, err
		}
		cfg.DBPath = path
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.DBPath == "" {
		errs = append(errs, errors.New("ROASTERY_DB must not be empty"))
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("ROASTERY_LOG_LEVEL: %w", err))
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("ROASTERY_LOG_FORMAT must be text or json, got %q", c.LogFormat))
	}
	if c.MaxUploadBytes <= 0 {
		errs = append(errs, errors.New("ROASTERY_MAX_UPLOAD_BYTES must be positive"))
	}
	if c.Storage.Partial() {
		errs = append(errs, errors.New("ROASTERY_S3_BUCKET, ROASTERY_S3_ACCESS_KEY and ROASTERY_S3_SECRET_KEY must be set together"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// NewLogger builds the process logger. Logs go to stderr so command output
// on stdout stays parseable.
func NewLogger(c *Config) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)

	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if c.LogFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return log
}
