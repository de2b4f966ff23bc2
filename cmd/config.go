package cmd

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/Rhymond/go-money"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config holds the settings of the fifo application.
type Config struct {
	Currency string    `yaml:"currency"` // ISO 4217 code used to display amounts.
	Style    string    `yaml:"style"`    // glamour style, or "raw" to print plain markdown.
	Log      LogConfig `yaml:"log"`
}

// LogConfig holds the logger settings.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console or json
}

// Styles lists the accepted values for Config.Style.
var Styles = []string{"auto", "dark", "light", "notty", "ascii", "dracula", "pink", "tokyo-night", "raw"}

// DefaultConfig returns the settings used when nothing else is configured.
func DefaultConfig() Config {
	return Config{
		Currency: "USD",
		Style:    "auto",
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig reads a YAML configuration file. Missing keys keep their default value.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file %q: %w", path, err)
	}
	return cfg, nil
}

// applyEnv overrides the settings with the FIFO_* environment variables that are set.
func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv(EnvCurrency); v != "" {
		c.Currency = v
	}
	if v := getenv(EnvStyle); v != "" {
		c.Style = v
	}
	if v := getenv(EnvVerbose); v != "" {
		verbose, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvVerbose, v, err)
		}
		if verbose {
			c.Log.Level = "debug"
		}
	}
	return nil
}

// Validate returns all the problems found in the settings.
func (c Config) Validate() error {
	var errs []error
	c.Currency = strings.ToUpper(c.Currency)
	if money.GetCurrency(c.Currency) == nil {
		errs = append(errs, fmt.Errorf("unknown currency %q", c.Currency))
	}
	if !slices.Contains(Styles, c.Style) {
		errs = append(errs, fmt.Errorf("unknown style %q, want one of %s", c.Style, strings.Join(Styles, ", ")))
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("invalid log level: %w", err))
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		errs = append(errs, fmt.Errorf("unknown log format %q, want console or json", c.Log.Format))
	}
	return errors.Join(errs...)
}
