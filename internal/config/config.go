// Package config provides file-based configuration for the port scanner
// with defaults, YAML loading, and validation.
package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/Nikesh24/portscanner/internal/errors"
	"github.com/Nikesh24/portscanner/internal/target"
)

const (
	configDirPerm  = 0o750
	configFilePerm = 0o600
)

var validate = validator.New()

// Config represents the complete scanner configuration.
type Config struct {
	// Scanning configuration
	Scanning ScanningConfig `yaml:"scanning" json:"scanning"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`

	// Export configuration
	Export ExportConfig `yaml:"export" json:"export"`
}

// ScanningConfig holds scan orchestration settings.
type ScanningConfig struct {
	// Per-probe connect timeout
	Timeout time.Duration `yaml:"timeout" json:"timeout" validate:"gt=0"`

	// Maximum number of concurrently executing probes
	MaxWorkers int `yaml:"max_workers" json:"max_workers" validate:"gt=0,lte=4096"`

	// Default port selection mode: quick, full, or custom
	DefaultMode string `yaml:"default_mode" json:"default_mode" validate:"oneof=quick full custom"`

	// Port spec used when default_mode is custom
	DefaultPorts string `yaml:"default_ports" json:"default_ports"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Log level: debug, info, warn, error
	Level string `yaml:"level" json:"level" validate:"oneof=debug info warn error"`

	// Log format: text or json
	Format string `yaml:"format" json:"format" validate:"oneof=text json"`

	// Output destination: stdout, stderr, or a file path
	Output string `yaml:"output" json:"output" validate:"required"`
}

// ExportConfig holds result export settings.
type ExportConfig struct {
	// Directory scan documents are written to when no explicit path is given
	OutputDir string `yaml:"output_dir" json:"output_dir"`

	// Pretty-print exported JSON
	Indent bool `yaml:"indent" json:"indent"`
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Scanning: ScanningConfig{
			Timeout:      800 * time.Millisecond,
			MaxWorkers:   200,
			DefaultMode:  string(target.ModeQuick),
			DefaultPorts: "",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
		Export: ExportConfig{
			OutputDir: ".",
			Indent:    true,
		},
	}
}

// Load loads configuration from a file. A missing file is not an error:
// defaults are returned so the scanner works without any config on disk.
func Load(path string) (*Config, error) {
	config := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil
	}

	data, err := os.ReadFile(path) // #nosec G304 - path comes from the operator
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Save writes the configuration to a file as YAML.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, configDirPerm); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, configFilePerm); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var invalid validator.ValidationErrors
		if stderrors.As(err, &invalid) && len(invalid) > 0 {
			first := invalid[0]
			return errors.ErrConfigInvalid(first.Namespace(),
				fmt.Errorf("failed validation on '%s'", first.Tag()))
		}
		return errors.ErrConfigInvalid("config", err)
	}

	// Custom mode needs a parseable port spec up front, not at scan time.
	if c.Scanning.DefaultMode == string(target.ModeCustom) {
		if _, err := target.ParsePorts(target.ModeCustom, c.Scanning.DefaultPorts); err != nil {
			return errors.ErrConfigInvalid("scanning.default_ports", err)
		}
	}

	return nil
}

// PortMode returns the configured default port selection mode.
func (c *Config) PortMode() target.Mode {
	return target.Mode(c.Scanning.DefaultMode)
}
