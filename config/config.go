package config

import (
	"fmt"
	"os"

	"github.com/iamNilotpal/kit/internal/adapters/compression"
	"github.com/iamNilotpal/kit/internal/core/domain"
	"github.com/iamNilotpal/kit/pkg/gzipfile"
	"github.com/iamNilotpal/kit/pkg/ident"
	"github.com/iamNilotpal/kit/pkg/stream"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Gzip   GzipConfig   `yaml:"gzip"`
	Stream StreamConfig `yaml:"stream"`
	ID     IDConfig     `yaml:"id"`
	Log    LogConfig    `yaml:"log"`
}

// Holds gzip defaults for the gzip and gunzip commands.
type GzipConfig struct {
	Level   int    `yaml:"level"`   // Compression level (-2-9, 0 selects the default)
	Charset string `yaml:"charset"` // Charset of embedded filenames
}

type StreamConfig struct {
	SegmentSize int `yaml:"segment_size"` // Segment length of in-memory buffers
}

type IDConfig struct {
	Length int `yaml:"length"` // Default identifier length
}

type LogConfig struct {
	Level       string `yaml:"level"`       // debug, info, warn or error
	Development bool   `yaml:"development"` // Human readable output
}

// Returns a Config struct with reasonable default values.
func DefaultConfig() *Config {
	return &Config{
		Gzip: GzipConfig{
			Level:   6,
			Charset: gzipfile.DefaultCharset,
		},
		Stream: StreamConfig{
			SegmentSize: stream.DefaultSegmentSize, // 32KB
		},
		ID: IDConfig{
			Length: 10,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Loads configuration from a YAML file. Keys missing from the file keep their
// default values.
func LoadConfig(filename string) (*Config, error) {
	// Read the config file
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	config := DefaultConfig()

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := Validate(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Validate checks every section of config.
func Validate(config *Config) error {
	if err := validateGzipConfig(&config.Gzip); err != nil {
		return fmt.Errorf("invalid gzip configuration: %w", err)
	}

	if config.Stream.SegmentSize <= 0 {
		return fmt.Errorf("stream.segment_size must be greater than 0")
	}

	if config.ID.Length < ident.MinLength {
		return fmt.Errorf("id.length must be at least %d", ident.MinLength)
	}

	switch config.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn or error")
	}

	return nil
}

func validateGzipConfig(config *GzipConfig) error {
	if err := compression.Validate(compression.NameGzip, &domain.CompressionOptions{Level: config.Level}); err != nil {
		return err
	}

	if err := gzipfile.ValidateCharset(config.Charset); err != nil {
		return err
	}

	return nil
}
