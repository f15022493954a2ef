// Package config loads the service configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"creditrisk/ml"

	"gopkg.in/yaml.v2"
)

// Config is the full service configuration.
type Config struct {
	Http  HTTPConfig  `yaml:"http"`
	Model ModelConfig `yaml:"model"`
	Log   LogConfig   `yaml:"log"`
}

// HTTPConfig holds listener settings.
type HTTPConfig struct {
	Port         int           `yaml:"port"`
	Timeout      time.Duration `yaml:"timeout"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
}

// ModelConfig names the classifier artifact loaded at startup.
type ModelConfig struct {
	Type string `yaml:"type"`
	Path string `yaml:"path"`
}

// LogConfig controls the zap logger. An empty File logs to stderr only.
type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// Default returns the configuration used when the file omits a value.
func Default() *Config {
	return &Config{
		Http: HTTPConfig{
			Port:         8080,
			Timeout:      15 * time.Second,
			MaxBodyBytes: 64 << 10,
		},
		Model: ModelConfig{
			Type: ml.ModelTypeDecisionTree,
			Path: "./models/credit_risk_model.json",
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  50,
			MaxBackups: 5,
			MaxAgeDays: 28,
		},
	}
}

// Load overlays the file at path on Default, applies environment overrides
// and validates the result.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	config := Default()
	if err := yaml.NewDecoder(file).Decode(config); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if err := config.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) applyEnvOverrides() error {
	if port := os.Getenv("CREDITRISK_PORT"); port != "" {
		n, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("CREDITRISK_PORT: %w", err)
		}
		c.Http.Port = n
	}
	if path := os.Getenv("CREDITRISK_MODEL_PATH"); path != "" {
		c.Model.Path = path
	}
	if modelType := os.Getenv("CREDITRISK_MODEL_TYPE"); modelType != "" {
		c.Model.Type = modelType
	}
	if level := os.Getenv("CREDITRISK_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Http.Port <= 0 || c.Http.Port > 65535 {
		return fmt.Errorf("http.port %d out of range", c.Http.Port)
	}
	if c.Http.Timeout <= 0 {
		return errors.New("http.timeout must be positive")
	}
	if c.Http.MaxBodyBytes <= 0 {
		return errors.New("http.max_body_bytes must be positive")
	}
	if c.Model.Path == "" {
		return errors.New("model.path is required")
	}
	if !ml.SupportedModelType(c.Model.Type) {
		return fmt.Errorf("model.type %q is not supported", c.Model.Type)
	}
	return nil
}
