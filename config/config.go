// Package config loads the optional configuration of the hosted hello program.
//
// Configuration comes from a single YAML file named by:
//   - the HOMEBREW_CONFIG environment variable, or
//   - the --config flag.
//
// Without a file the defaults apply, and the defaults reproduce the program's fixed behavior: a 100ms redraw interval,
// a one second farewell, and a 16 line by 128 column console.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the config file when no --config flag is given.
const EnvironmentVariable = "HOMEBREW_CONFIG"

// Config is the configuration for the hello program.
type Config struct {
	// Lifecycle configures the run loop timing.
	Lifecycle LifecycleConfig `yaml:"lifecycle"`

	// Console configures the on-screen log console.
	Console ConsoleConfig `yaml:"console"`

	// Log configures the structured logger.
	Log LogConfig `yaml:"log"`

	// Metrics configures the Prometheus endpoint.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LifecycleConfig configures the run loop timing. Durations use time.ParseDuration syntax.
type LifecycleConfig struct {
	// PollInterval is the sleep between two redraws.
	// Default: 100ms
	PollInterval string `yaml:"poll_interval"`

	// LingerDuration is how long the farewell stays on screen.
	// Default: 1s
	LingerDuration string `yaml:"linger_duration"`
}

// ConsoleConfig configures the on-screen log console.
type ConsoleConfig struct {
	// Lines is the number of lines kept on screen.
	// Default: 16
	Lines int `yaml:"lines"`

	// Columns is the maximum line width. Zero sizes the console to the terminal.
	// Default: 128
	Columns int `yaml:"columns"`

	// Foreground and Background are ANSI color indexes or hex colors.
	Foreground string `yaml:"foreground"`
	Background string `yaml:"background"`

	// Color enables colored output when the terminal supports it.
	// Default: true
	Color bool `yaml:"color"`
}

// LogConfig configures the structured logger.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	// Default: info
	Level string `yaml:"level"`

	// Format is text, json, or auto (text on a terminal, json otherwise).
	// Default: auto
	Format string `yaml:"format"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	// Address is the listen address for /metrics. Empty disables the endpoint.
	Address string `yaml:"address"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Lifecycle: LifecycleConfig{
			PollInterval:   "100ms",
			LingerDuration: "1s",
		},
		Console: ConsoleConfig{
			Lines:      16,
			Columns:    128,
			Foreground: "15",
			Background: "0",
			Color:      true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "auto",
		},
	}
}

// Load reads the config file at path on top of the defaults. An empty path falls back to HOMEBREW_CONFIG, and if that
// is unset too the defaults are returned as is.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvironmentVariable)
	}

	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := cfg.decode(data); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate checks that every value is usable.
func (c *Config) Validate() error {
	var errs []error

	if _, err := c.Lifecycle.ParsePollInterval(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Lifecycle.ParseLingerDuration(); err != nil {
		errs = append(errs, err)
	}

	if c.Console.Lines <= 0 {
		errs = append(errs, fmt.Errorf("console.lines must be positive, got %d", c.Console.Lines))
	}
	if c.Console.Columns < 0 {
		errs = append(errs, fmt.Errorf("console.columns must not be negative, got %d", c.Console.Columns))
	}

	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	switch c.Log.Format {
	case "auto", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be auto, text or json, got %q", c.Log.Format))
	}

	return errors.Join(errs...)
}

func (l LifecycleConfig) ParsePollInterval() (time.Duration, error) {
	return parsePositiveDuration("lifecycle.poll_interval", l.PollInterval)
}

func (l LifecycleConfig) ParseLingerDuration() (time.Duration, error) {
	return parsePositiveDuration("lifecycle.linger_duration", l.LingerDuration)
}

func parsePositiveDuration(field, value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s must not be negative, got %s", field, value)
	}
	return d, nil
}

func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(l.Level))); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}
