package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all grimoire configuration.
type Config struct {
	// Intro pacing and behaviour
	Intro IntroConfig `yaml:"intro"`

	// Terminal presentation
	UI UIConfig `yaml:"ui"`

	// Run history database
	History HistoryConfig `yaml:"history"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// IntroConfig configures the intro sequence.
type IntroConfig struct {
	Skip bool `yaml:"skip"`
	// Speed multiplies every duration in the timing table. 1 is the stock
	// pacing, 0 collapses all waits.
	Speed float64 `yaml:"speed"`
	// PassProbability is the chance each calibration rune aligns.
	PassProbability float64 `yaml:"pass_probability"`
	// ContentPath points at a YAML override for the narrative tables.
	ContentPath string `yaml:"content_path,omitempty"`
	// Seed fixes calibration outcomes. 0 draws a fresh seed each run.
	Seed uint64 `yaml:"seed,omitempty"`
}

// HistoryConfig configures the sqlite run history.
type HistoryConfig struct {
	Enabled      bool   `yaml:"enabled"`
	DatabasePath string `yaml:"database_path"`
	// Keep is the number of runs retained; older runs are pruned.
	Keep int `yaml:"keep"`
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() *Config {
	return &Config{
		Intro: IntroConfig{
			Speed:           1.0,
			PassProbability: 0.65,
		},
		UI: *DefaultUIConfig(),
		History: HistoryConfig{
			Enabled:      true,
			DatabasePath: filepath.Join(DirName, "history.db"),
			Keep:         200,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides are applied either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	var errs []error
	if c.Intro.Speed < 0 {
		errs = append(errs, fmt.Errorf("intro.speed must be >= 0, got %v", c.Intro.Speed))
	}
	if c.Intro.PassProbability < 0 || c.Intro.PassProbability > 1 {
		errs = append(errs, fmt.Errorf("intro.pass_probability must be within [0, 1], got %v", c.Intro.PassProbability))
	}
	if !IsTheme(c.UI.Theme) {
		errs = append(errs, fmt.Errorf("ui.theme %q is not one of %v", c.UI.Theme, Themes))
	}
	if c.History.Enabled && c.History.DatabasePath == "" {
		errs = append(errs, errors.New("history.database_path is required when history is enabled"))
	}
	if c.History.Keep < 0 {
		errs = append(errs, fmt.Errorf("history.keep must be >= 0, got %d", c.History.Keep))
	}
	return errors.Join(errs...)
}

// Resolve makes relative paths absolute against root.
func (c *Config) Resolve(root string) {
	if c.History.DatabasePath != "" && !filepath.IsAbs(c.History.DatabasePath) {
		c.History.DatabasePath = filepath.Join(root, c.History.DatabasePath)
	}
	if c.Intro.ContentPath != "" && !filepath.IsAbs(c.Intro.ContentPath) {
		c.Intro.ContentPath = filepath.Join(root, c.Intro.ContentPath)
	}
}
