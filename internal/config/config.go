// Package config holds runtime settings for the lemur CLI.
//
// Settings come from, in increasing priority: DefaultConfig, LEMUR_*
// environment variables, then command-line flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
)

// ErrInvalidConfig is returned for malformed flags or environment values.
var ErrInvalidConfig = errors.New("invalid config")

// Environment variables read by Load.
const (
	EnvLogLevel  = "LEMUR_LOG_LEVEL"
	EnvLogFormat = "LEMUR_LOG_FORMAT"
	EnvSeed      = "LEMUR_SEED"
)

// Config is the CLI configuration.
type Config struct {
	LogLevel    string  // DEBUG, INFO, WARN, ERROR or OFF
	LogFormat   string  // console or json
	MetricsAddr string  // Prometheus listen address, empty to disable
	Seed        uint64  // Global RNG seed
	Scientific  bool    // Print tensors in %e notation
	Epochs      int     // Training steps for fit
	LR          float64 // Learning rate for fit
	Parallel    bool    // Split elementwise kernels across CPUs
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		LogLevel:  "INFO",
		LogFormat: "console",
		Seed:      1,
		Epochs:    200,
		LR:        0.1,
	}
}

// Load builds a Config from the environment and args (without the program
// name). It returns the positional arguments left after the flags.
func Load(args []string) (Config, []string, error) {
	return load(args, os.Getenv, io.Discard)
}

func load(args []string, getenv func(string) string, output io.Writer) (Config, []string, error) {
	cfg := DefaultConfig()
	if err := cfg.applyEnv(getenv); err != nil {
		return cfg, nil, err
	}

	fs := flag.NewFlagSet("lemur", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (DEBUG, INFO, WARN, ERROR, OFF)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (console or json)")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "Serve Prometheus metrics on this address")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed")
	fs.BoolVar(&cfg.Scientific, "scientific", cfg.Scientific, "Print tensors in scientific notation")
	fs.IntVar(&cfg.Epochs, "epochs", cfg.Epochs, "Training steps for fit")
	fs.Float64Var(&cfg.LR, "lr", cfg.LR, "Learning rate for fit")
	fs.BoolVar(&cfg.Parallel, "parallel", cfg.Parallel, "Split elementwise kernels across CPUs")
	if err := fs.Parse(args); err != nil {
		return cfg, nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, nil, err
	}
	return cfg, fs.Args(), nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := getenv(EnvLogFormat); v != "" {
		c.LogFormat = v
	}
	if v := getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, EnvSeed, v, err)
		}
		c.Seed = seed
	}
	return nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	switch {
	case c.LogFormat != "console" && c.LogFormat != "json":
		return fmt.Errorf("%w: log format %q", ErrInvalidConfig, c.LogFormat)
	case c.Epochs <= 0:
		return fmt.Errorf("%w: epochs %d", ErrInvalidConfig, c.Epochs)
	case c.LR <= 0:
		return fmt.Errorf("%w: learning rate %v", ErrInvalidConfig, c.LR)
	}
	return nil
}
