package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultChromaStyle   = "catppuccin-mocha"
	DefaultToastDuration = 3 * time.Second
	DefaultDebounce      = 100 * time.Millisecond
)

// Config represents the codeblock viewer configuration
type Config struct {
	Theme         ThemeConfig `yaml:"theme"`
	Keys          KeyConfig   `yaml:"keys"`
	LineNumbers   bool        `yaml:"line_numbers"`
	Gate          *bool       `yaml:"gate,omitempty"`           // Skip recomputing unchanged blocks (default: true)
	ToastDuration string      `yaml:"toast_duration,omitempty"` // e.g. "3s"
	Debounce      string      `yaml:"debounce,omitempty"`       // Watch mode debounce, e.g. "100ms"
	LogFile       string      `yaml:"log_file,omitempty"`       // Empty discards logs while the TUI runs
}

type ThemeConfig struct {
	ChromaStyle string `yaml:"chroma_style"`
}

// KeyConfig overrides key bindings. Empty lists keep the defaults.
type KeyConfig struct {
	Copy        []string `yaml:"copy,omitempty"`
	Wrap        []string `yaml:"wrap,omitempty"`
	Next        []string `yaml:"next,omitempty"`
	Previous    []string `yaml:"previous,omitempty"`
	Quit        []string `yaml:"quit,omitempty"`
	ScrollLeft  []string `yaml:"scroll_left,omitempty"`
	ScrollRight []string `yaml:"scroll_right,omitempty"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Theme: ThemeConfig{
			ChromaStyle: DefaultChromaStyle,
		},
		Keys: KeyConfig{
			Quit: []string{"q", "ctrl+c"},
		},
	}
}

// DefaultPath returns ~/.config/codeblock/config.yaml, or "" when the home
// directory is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "codeblock", "config.yaml")
}

// Load loads configuration from a YAML file.
// If the file doesn't exist, returns the default configuration.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		return DefaultConfig(), nil
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// GetChromaStyle returns the chroma style name (default: catppuccin-mocha)
func (c *Config) GetChromaStyle() string {
	if c.Theme.ChromaStyle == "" {
		return DefaultChromaStyle
	}
	return c.Theme.ChromaStyle
}

// GetToastDuration returns how long notifications stay visible (default: 3s)
func (c *Config) GetToastDuration() time.Duration {
	return parseDuration(c.ToastDuration, DefaultToastDuration)
}

// GetDebounce returns the watch mode debounce (default: 100ms)
func (c *Config) GetDebounce() time.Duration {
	return parseDuration(c.Debounce, DefaultDebounce)
}

// IsGateEnabled reports whether unchanged blocks keep their computed output.
func (c *Config) IsGateEnabled() bool {
	return c.Gate == nil || *c.Gate
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
