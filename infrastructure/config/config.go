// Package config loads photorank's YAML configuration.
//
// Values are layered: the embedded defaults, then an optional user file, then
// PHOTORANK_* environment variables. The result is validated with struct tags.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"photorank/infrastructure/logging"
	"photorank/infrastructure/repository"
	"photorank/resources"
)

// Environment variables that override file values.
const (
	EnvArchiveURI = "PHOTORANK_ARCHIVE_URI"
	EnvLogLevel   = "PHOTORANK_LOG_LEVEL"
)

var validate = validator.New()

// Config is the root configuration document.
type Config struct {
	Window   WindowConfig  `yaml:"window"`
	Criteria []string      `yaml:"criteria" validate:"dive,required"`
	Logging  LoggingConfig `yaml:"logging"`
	Archive  ArchiveConfig `yaml:"archive"`
	Export   ExportConfig  `yaml:"export"`
}

// WindowConfig sets the initial main window size.
type WindowConfig struct {
	Width  float32 `yaml:"width" validate:"gte=320"`
	Height float32 `yaml:"height" validate:"gte=240"`
}

// LoggingConfig mirrors logging.Config with YAML-friendly fields.
type LoggingConfig struct {
	Level      string `yaml:"level" validate:"omitempty,oneof=debug info warn warning error DEBUG INFO WARN WARNING ERROR"`
	Dir        string `yaml:"dir"`
	MaxSizeMB  int    `yaml:"max_size_mb" validate:"gte=0"`
	MaxBackups int    `yaml:"max_backups" validate:"gte=0"`
	MaxAgeDays int    `yaml:"max_age_days" validate:"gte=0"`
	Compress   bool   `yaml:"compress"`
	AddSource  bool   `yaml:"add_source"`
}

// ArchiveConfig enables saving completed sessions to MongoDB.
type ArchiveConfig struct {
	Enabled        bool   `yaml:"enabled"`
	URI            string `yaml:"uri" validate:"required_if=Enabled true"`
	Database       string `yaml:"database" validate:"required_if=Enabled true"`
	TimeoutSeconds int    `yaml:"timeout_seconds" validate:"gte=0"`
}

// ExportConfig sets defaults for the results export dialog.
type ExportConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format" validate:"omitempty,oneof=yaml parquet"`
}

// Default returns the embedded default configuration.
func Default() (*Config, error) {
	cfg := &Config{}
	if err := decode(bytes.NewReader(resources.DefaultConfig), cfg); err != nil {
		return nil, fmt.Errorf("embedded config: %w", err)
	}
	return cfg, nil
}

// Load reads the embedded defaults, overlays path if non-empty, applies
// environment overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		defer f.Close()

		if err := decode(f, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	cfg.ApplyEnv(os.LookupEnv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ApplyEnv overrides file values from the environment.
// A non-empty archive URI also enables the archive.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvArchiveURI); ok && strings.TrimSpace(v) != "" {
		c.Archive.URI = strings.TrimSpace(v)
		c.Archive.Enabled = true
	}
	if v, ok := lookup(EnvLogLevel); ok && strings.TrimSpace(v) != "" {
		c.Logging.Level = strings.TrimSpace(v)
	}
}

// Validate checks the struct tags.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// LoggingOptions converts the logging section for logging.Setup.
func (c *Config) LoggingOptions() (*logging.Config, error) {
	level, err := logging.ParseLevel(c.Logging.Level)
	if err != nil {
		return nil, err
	}

	opts := logging.DefaultConfig()
	opts.Level = level
	opts.Dir = c.Logging.Dir
	opts.Compress = c.Logging.Compress
	opts.AddSource = c.Logging.AddSource
	if c.Logging.MaxSizeMB > 0 {
		opts.MaxSizeMB = c.Logging.MaxSizeMB
	}
	if c.Logging.MaxBackups > 0 {
		opts.MaxBackups = c.Logging.MaxBackups
	}
	if c.Logging.MaxAgeDays > 0 {
		opts.MaxAgeDays = c.Logging.MaxAgeDays
	}
	return opts, nil
}

// MongoOptions converts the archive section for repository.NewMongoDB.
func (c *Config) MongoOptions() *repository.MongoDBConfig {
	opts := repository.DefaultMongoDBConfig()
	if c.Archive.URI != "" {
		opts.URI = c.Archive.URI
	}
	if c.Archive.Database != "" {
		opts.Database = c.Archive.Database
	}
	if c.Archive.TimeoutSeconds > 0 {
		opts.ConnectTimeout = time.Duration(c.Archive.TimeoutSeconds) * time.Second
	}
	return opts
}
