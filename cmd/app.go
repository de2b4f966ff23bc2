// Package cmd implements the CLI application to track shares bought and sold in lots.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&sessionCmd{}, "tracking")
	c.Register(&menuCmd{}, "tracking")
	c.Register(&runCmd{}, "tracking")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "", "Path to a YAML configuration file")
var currency = flag.String("currency", "", "Currency used to display amounts (ISO 4217 code)")
var style = flag.String("style", "", "Terminal style: "+strings.Join(Styles, ", "))

// Verbose enables debug logs.
var Verbose = flag.Bool("v", false, "Enable debug logs")

// Flags holds the global command line flags that override the configuration.
type Flags struct {
	Config   string
	Currency string
	Style    string
	Verbose  bool
}

// globalFlags returns the values of the global flags.
func globalFlags() Flags {
	return Flags{
		Config:   *configFile,
		Currency: *currency,
		Style:    *style,
		Verbose:  *Verbose,
	}
}

// Settings computes the configuration, from the lowest to the highest priority:
// defaults, configuration file, environment variables, and flags.
func Settings(flags Flags, getenv func(string) string) (Config, error) {
	cfg := DefaultConfig()

	path := flags.Config
	if path == "" {
		path = getenv(EnvConfig)
	}
	if path != "" {
		var err error
		if cfg, err = LoadConfig(path); err != nil {
			return cfg, err
		}
	}

	if err := cfg.applyEnv(getenv); err != nil {
		return cfg, err
	}

	if flags.Currency != "" {
		cfg.Currency = flags.Currency
	}
	if flags.Style != "" {
		cfg.Style = flags.Style
	}
	if flags.Verbose {
		cfg.Log.Level = "debug"
	}
	cfg.Currency = strings.ToUpper(cfg.Currency)

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// setup loads the configuration and creates the logger writing to the standard error.
func setup() (Config, *zap.Logger, error) {
	cfg, err := Settings(globalFlags(), os.Getenv)
	if err != nil {
		return cfg, nil, err
	}
	logger, err := NewLogger(cfg.Log, zapcore.Lock(os.Stderr))
	if err != nil {
		return cfg, nil, err
	}
	logger.Debug("configuration loaded",
		zap.String("currency", cfg.Currency),
		zap.String("style", cfg.Style),
		zap.String("config", globalFlags().Config),
	)
	return cfg, logger, nil
}
