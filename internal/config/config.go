// Package config loads server settings. Later sources override earlier ones:
// built-in defaults, then the YAML file, then CHESS5D_* environment variables,
// then command-line flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const envPrefix = "CHESS5D_"

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Addr              string        `yaml:"addr"`
	ReadHeaderTimeout time.Duration `yaml:"readHeaderTimeout"`
	ReadTimeout       time.Duration `yaml:"readTimeout"`
	WriteTimeout      time.Duration `yaml:"writeTimeout"`
	IdleTimeout       time.Duration `yaml:"idleTimeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdownTimeout"`
	LogLevel          string        `yaml:"logLevel"`
	LogFormat         string        `yaml:"logFormat"`
	// Position is an optional YAML position fixture to start from.
	Position string `yaml:"position"`
}

func Default() Config {
	return Config{
		Addr:              ":8080",
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		LogLevel:          "info",
		LogFormat:         "console",
	}
}

// Load builds the configuration from args and the environment seen through
// lookup. The file path comes from -config or CHESS5D_CONFIG.
func Load(args []string, lookup func(string) (string, bool)) (Config, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	var (
		path      string
		overrides Config
	)
	fs := flag.NewFlagSet("chess5d", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "path to a YAML config file")
	fs.StringVar(&overrides.Addr, "addr", "", "listen address")
	fs.DurationVar(&overrides.ReadHeaderTimeout, "read-header-timeout", 0, "HTTP read header timeout")
	fs.DurationVar(&overrides.ReadTimeout, "read-timeout", 0, "HTTP read timeout")
	fs.DurationVar(&overrides.WriteTimeout, "write-timeout", 0, "HTTP write timeout")
	fs.DurationVar(&overrides.IdleTimeout, "idle-timeout", 0, "HTTP idle timeout")
	fs.DurationVar(&overrides.ShutdownTimeout, "shutdown-timeout", 0, "graceful shutdown timeout")
	fs.StringVar(&overrides.LogLevel, "log-level", "", "trace, debug, info, warn or error")
	fs.StringVar(&overrides.LogFormat, "log-format", "", "console or json")
	fs.StringVar(&overrides.Position, "position", "", "YAML position fixture to start from")
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	cfg := Default()
	if path == "" {
		path, _ = lookup(envPrefix + "CONFIG")
	}
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.applyEnv(lookup); err != nil {
		return Config{}, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "addr":
			cfg.Addr = overrides.Addr
		case "read-header-timeout":
			cfg.ReadHeaderTimeout = overrides.ReadHeaderTimeout
		case "read-timeout":
			cfg.ReadTimeout = overrides.ReadTimeout
		case "write-timeout":
			cfg.WriteTimeout = overrides.WriteTimeout
		case "idle-timeout":
			cfg.IdleTimeout = overrides.IdleTimeout
		case "shutdown-timeout":
			cfg.ShutdownTimeout = overrides.ShutdownTimeout
		case "log-level":
			cfg.LogLevel = overrides.LogLevel
		case "log-format":
			cfg.LogFormat = overrides.LogFormat
		case "position":
			cfg.Position = overrides.Position
		}
	})

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("'%s': %w", path, err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("%w: '%s': %v", ErrInvalidConfig, path, err)
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	getenv := func(key string, dst *string) {
		if v, ok := lookup(envPrefix + key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	getdur := func(key string, dst *time.Duration) error {
		v, ok := lookup(envPrefix + key)
		if !ok || strings.TrimSpace(v) == "" {
			return nil
		}
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s%s: %v", ErrInvalidConfig, envPrefix, key, err)
		}
		*dst = d
		return nil
	}

	getenv("ADDR", &c.Addr)
	getenv("LOG_LEVEL", &c.LogLevel)
	getenv("LOG_FORMAT", &c.LogFormat)
	getenv("POSITION", &c.Position)
	for key, dst := range map[string]*time.Duration{
		"READ_HEADER_TIMEOUT": &c.ReadHeaderTimeout,
		"READ_TIMEOUT":        &c.ReadTimeout,
		"WRITE_TIMEOUT":       &c.WriteTimeout,
		"IDLE_TIMEOUT":        &c.IdleTimeout,
		"SHUTDOWN_TIMEOUT":    &c.ShutdownTimeout,
	} {
		if err := getdur(key, dst); err != nil {
			return err
		}
	}
	return nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%w: empty listen address", ErrInvalidConfig)
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		return fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "console", "json":
	default:
		return fmt.Errorf("%w: log format %q", ErrInvalidConfig, c.LogFormat)
	}
	for name, d := range map[string]time.Duration{
		"readHeaderTimeout": c.ReadHeaderTimeout,
		"readTimeout":       c.ReadTimeout,
		"writeTimeout":      c.WriteTimeout,
		"idleTimeout":       c.IdleTimeout,
		"shutdownTimeout":   c.ShutdownTimeout,
	} {
		if d < 0 {
			return fmt.Errorf("%w: negative %s", ErrInvalidConfig, name)
		}
	}
	return nil
}

// Logger builds the root logger writing to w.
func (c Config) Logger(w io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.LogLevel)
	}
	if strings.EqualFold(c.LogFormat, "console") {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}
