package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/monorepo-rocks/monorepo-rocks/apps/minigrep/src/go/types"
)

// IgnoreCaseEnv turns on case-insensitive search when set to a true value
const IgnoreCaseEnv = "MINIGREP_IGNORE_CASE"

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Color modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config represents one resolved invocation. It is not modified after Load
// returns it.
type Config struct {
	Query       string
	Path        string
	IgnoreCase  bool
	LineNumbers bool
	InvertMatch bool
	WholeWord   bool
	Output      OutputConfig
	Watcher     WatcherConfig
	Log         LogConfig
}

// OutputConfig holds rendering settings
type OutputConfig struct {
	Format string
	Color  string
}

// WatcherConfig holds file watcher settings
type WatcherConfig struct {
	Enabled    bool
	DebounceMs int
}

// LogConfig holds diagnostic logging settings
type LogConfig struct {
	Level string
	File  string
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Format: FormatText,
			Color:  ColorAuto,
		},
		Watcher: WatcherConfig{
			DebounceMs: 250,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Load finalizes a configuration built from command-line input. Environment
// defaults are applied through lookupEnv (os.LookupEnv when nil) for options
// not given on the command line; ignoreCaseSet reports whether the
// ignore-case flag was given, whatever its value. Paths are expanded and the
// result is validated. Every failure is an ArgumentError.
func Load(base *Config, ignoreCaseSet bool, lookupEnv func(string) (string, bool)) (*Config, error) {
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}

	cfg := *base

	if !ignoreCaseSet {
		if v, ok := lookupEnv(IgnoreCaseEnv); ok && v != "" {
			on, err := strconv.ParseBool(v)
			if err != nil {
				return nil, types.NewArgumentError("invalid %s value %q", IgnoreCaseEnv, v)
			}
			cfg.IgnoreCase = on
		}
	}

	cfg.Output.Format = strings.ToLower(cfg.Output.Format)
	cfg.Output.Color = strings.ToLower(cfg.Output.Color)
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)

	cfg.expandPaths()

	if err := cfg.Validate(); err != nil {
		return nil, types.NewArgumentError("invalid arguments: %v", err)
	}

	return &cfg, nil
}

// expandPaths expands a leading ~ in paths
func (c *Config) expandPaths() {
	c.Path = expandPath(c.Path)
	c.Log.File = expandPath(c.Log.File)
}

// expandPath expands a leading ~ to the home directory. Environment variables
// are left alone: the shell has already had its chance at them.
func expandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(homeDir, path[1:])
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Query == "" {
		return fmt.Errorf("query cannot be empty")
	}

	if c.Path == "" {
		return fmt.Errorf("path cannot be empty")
	}

	switch c.Output.Format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("format must be one of text, json, yaml; got %q", c.Output.Format)
	}

	switch c.Output.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("color must be one of auto, always, never; got %q", c.Output.Color)
	}

	if c.Watcher.DebounceMs < 0 {
		return fmt.Errorf("debounce must be non-negative")
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log level must be one of debug, info, warn, error; got %q", c.Log.Level)
	}

	return nil
}
