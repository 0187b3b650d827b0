// Package config manages the hostbud configuration file at ~/.hostbud/config.yaml.
// Values from HOSTBUD_* environment variables override the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v10"
	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

var (
	ErrNotFound = errors.New("config file not found")
	ErrNoHome   = errors.New("home directory not found")
)

const (
	OutputText = "text"
	OutputYAML = "yaml"

	DefaultOutput   = OutputText
	DefaultLogLevel = "warn"
)

// DefaultStatusCommand is the platform status query run on Windows hosts.
var DefaultStatusCommand = []string{"sc", "query"}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

type Config struct {
	// OSName replaces the host-reported OS name when non-empty.
	OSName        string   `yaml:"os_name,omitempty" env:"HOSTBUD_OS_NAME"`
	StatusCommand []string `yaml:"status_command" env:"HOSTBUD_STATUS_COMMAND" envSeparator:" "`
	Output        string   `yaml:"output" env:"HOSTBUD_OUTPUT"`
	Log           Log      `yaml:"log"`
}

type Log struct {
	Level string `yaml:"level" env:"HOSTBUD_LOG_LEVEL"`
	File  string `yaml:"file,omitempty" env:"HOSTBUD_LOG_FILE"`
}

var pathOverride string

// homeDir is injectable for testing.
var homeDir = homedir.Dir

func init() {
	// Re-read HOME on every call instead of caching the first answer.
	homedir.DisableCache = true
}

// Dir returns the config directory path (~/.hostbud). It fails rather than
// fall back to a relative path when the home directory cannot be found.
func Dir() (string, error) {
	if pathOverride != "" {
		return filepath.Dir(pathOverride), nil
	}
	home, err := homeDir()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNoHome, err)
	}
	if home == "" {
		return "", ErrNoHome
	}
	return filepath.Join(home, ".hostbud"), nil
}

// Path returns the config file path (~/.hostbud/config.yaml unless overridden).
func Path() (string, error) {
	if pathOverride != "" {
		return pathOverride, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// SetPath points Load and Save at p. A leading ~ is expanded; an empty p
// restores the default location.
func SetPath(p string) error {
	if p == "" {
		pathOverride = ""
		return nil
	}
	expanded, err := homedir.Expand(p)
	if err != nil {
		return fmt.Errorf("expanding config path %q: %w", p, err)
	}
	pathOverride = expanded
	return nil
}

// Exists checks if the config file exists.
func Exists() bool {
	p, err := Path()
	if err != nil {
		return false
	}
	_, err = os.Stat(p)
	return err == nil
}

// Load reads and parses the config file, then applies environment
// overrides. Returns ErrNotFound if the file doesn't exist.
func Load() (*Config, error) {
	cfg, err := LoadFile()
	if err != nil {
		return nil, err
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault is Load, falling back to Default plus environment
// overrides when no config file exists or there is no home directory to
// hold one.
func LoadOrDefault() (*Config, error) {
	cfg, err := Load()
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrNoHome) {
		return nil, err
	}
	cfg = Default()
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads the config file without applying environment overrides.
func LoadFile() (*Config, error) {
	p, err := Path()
	if err != nil {
		return nil, err
	}
	return loadFrom(p)
}

func loadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parsing environment: %w", err)
	}
	return nil
}

// Save writes the config to disk, creating the directory if needed.
func Save(cfg *Config) error {
	p, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	data, err := marshalConfig(cfg)
	if err != nil {
		return err
	}

	if err := os.WriteFile(p, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

func marshalConfig(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return data, nil
}

// Validate checks that every field holds a usable value.
func (c *Config) Validate() error {
	switch c.Output {
	case OutputText, OutputYAML:
	default:
		return fmt.Errorf("invalid output %q (want %s or %s)", c.Output, OutputText, OutputYAML)
	}
	if len(c.StatusCommand) == 0 || strings.TrimSpace(c.StatusCommand[0]) == "" {
		return fmt.Errorf("status command cannot be empty")
	}
	if !validLogLevels[c.Log.Level] {
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	return nil
}

// Default returns a config with sensible defaults.
func Default() *Config {
	return &Config{
		StatusCommand: append([]string(nil), DefaultStatusCommand...),
		Output:        DefaultOutput,
		Log: Log{
			Level: DefaultLogLevel,
		},
	}
}
