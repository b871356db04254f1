// Package config provides configuration management for astrosched.
// Configuration is loaded from ~/.config/astrosched/config.yaml with sensible defaults.
// Relative paths are resolved from the executable's directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

var (
	// executableDir caches the executable's directory
	executableDir     string
	executableDirOnce sync.Once
)

// Config holds the astrosched configuration.
type Config struct {
	Log     LogConfig     `yaml:"log"`
	Display DisplayConfig `yaml:"display"`
	Day     DayConfig     `yaml:"day"`
}

// LogConfig controls where notifications and failures are logged.
type LogConfig struct {
	// Path is the log file; "-" means stderr, "" disables logging.
	Path string `yaml:"path"`
}

// DisplayConfig controls console output.
type DisplayConfig struct {
	Color  string `yaml:"color"`
	Prompt string `yaml:"prompt"`
	Banner *bool  `yaml:"banner"`
}

// DayConfig is a template of tasks loaded at startup.
type DayConfig struct {
	Tasks []TaskConfig `yaml:"tasks"`
}

// TaskConfig is one raw task entry, validated by the schedule parser.
type TaskConfig struct {
	Description string `yaml:"description"`
	Start       string `yaml:"start"`
	End         string `yaml:"end"`
	Priority    string `yaml:"priority"`
}

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

var (
	globalConfig *Config
	configOnce   sync.Once
	configErr    error
)

const (
	// DefaultConfigPath is the default location for the config file.
	DefaultConfigPath = "~/.config/astrosched/config.yaml"

	// DefaultLogPath is the default log file when no config is present.
	DefaultLogPath = "~/.astrosched/astrosched.log"

	// DefaultPrompt is printed before each command is read.
	DefaultPrompt = "> "
)

// Defaults returns the configuration used when no file is present.
func Defaults() *Config {
	banner := true
	return &Config{
		Log: LogConfig{Path: DefaultLogPath},
		Display: DisplayConfig{
			Color:  ColorAuto,
			Prompt: DefaultPrompt,
			Banner: &banner,
		},
	}
}

// Load loads the configuration from the default path.
// It returns the cached config on subsequent calls.
func Load() (*Config, error) {
	configOnce.Do(func() {
		globalConfig, configErr = LoadFile(DefaultConfigPath)
	})
	return globalConfig, configErr
}

// LoadFile loads configuration from a specific file path. A missing file
// yields the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(ExpandPath(path))
	if err != nil {
		if os.IsNotExist(err) {
			// Config file doesn't exist - use defaults
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// normalize fills blanks left by a partial file and rejects unknown values.
func (c *Config) normalize() error {
	c.Display.Color = strings.ToLower(strings.TrimSpace(c.Display.Color))
	switch c.Display.Color {
	case "":
		c.Display.Color = ColorAuto
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("display.color must be auto, always or never, got %q", c.Display.Color)
	}
	if c.Display.Prompt == "" {
		c.Display.Prompt = DefaultPrompt
	}
	if c.Display.Banner == nil {
		banner := true
		c.Display.Banner = &banner
	}
	return nil
}

// ShowBanner reports whether the startup banner is enabled.
func (c *Config) ShowBanner() bool {
	return c.Display.Banner == nil || *c.Display.Banner
}

// LogPath returns the configured log path, resolved with ResolveLogPath.
func (c *Config) LogPath() string {
	return ResolveLogPath(c.Log.Path)
}

// ResolveLogPath applies the log path rules shared by the config file and the
// --log-file flag: "" (discard) and "-" (stderr) pass through, anything else
// goes through ExpandPath.
func ResolveLogPath(path string) string {
	switch path {
	case "", "-":
		return path
	}
	return ExpandPath(path)
}

// GetExecutableDir returns the directory containing the astrosched executable.
// The result is cached after the first call.
func GetExecutableDir() string {
	executableDirOnce.Do(func() {
		execPath, err := os.Executable()
		if err != nil {
			// Fall back to current working directory
			executableDir, _ = os.Getwd()
			return
		}
		// Resolve symlinks to get the real executable location
		execPath, err = filepath.EvalSymlinks(execPath)
		if err != nil {
			executableDir, _ = os.Getwd()
			return
		}
		executableDir = filepath.Dir(execPath)
	})
	return executableDir
}

// ExpandPath expands ~ to home directory and resolves relative paths.
// Relative paths are resolved from the executable's directory, not the cwd.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	if !filepath.IsAbs(path) {
		return filepath.Join(GetExecutableDir(), path)
	}
	return path
}

// ResetForTesting resets the global config state. Only use in tests.
func ResetForTesting() {
	configOnce = sync.Once{}
	globalConfig = nil
	configErr = nil
	executableDirOnce = sync.Once{}
	executableDir = ""
}

// SetExecutableDirForTesting allows tests to override the executable directory.
func SetExecutableDirForTesting(dir string) {
	executableDirOnce.Do(func() {
		executableDir = dir
	})
}
