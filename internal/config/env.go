package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// envOverrides are the environment variables that win over the config
// file. Pointer fields stay nil when the variable is unset.
type envOverrides struct {
	SkipIntro       *bool    `env:"GRIMOIRE_SKIP_INTRO"`
	Speed           *float64 `env:"GRIMOIRE_SPEED"`
	PassProbability *float64 `env:"GRIMOIRE_PASS_PROBABILITY"`
	Seed            *uint64  `env:"GRIMOIRE_SEED"`
	ContentPath     string   `env:"GRIMOIRE_CONTENT"`
	Theme           string   `env:"GRIMOIRE_THEME"`
	Debug           *bool    `env:"GRIMOIRE_DEBUG"`
	LogLevel        string   `env:"GRIMOIRE_LOG_LEVEL"`
	HistoryDB       string   `env:"GRIMOIRE_HISTORY_DB"`
	NoHistory       bool     `env:"GRIMOIRE_NO_HISTORY"`
}

func (c *Config) applyEnvOverrides() error {
	var o envOverrides
	if err := ParseEnv(&o); err != nil {
		return err
	}

	if o.SkipIntro != nil {
		c.Intro.Skip = *o.SkipIntro
	}
	if o.Speed != nil {
		c.Intro.Speed = *o.Speed
	}
	if o.PassProbability != nil {
		c.Intro.PassProbability = *o.PassProbability
	}
	if o.Seed != nil {
		c.Intro.Seed = *o.Seed
	}
	if o.ContentPath != "" {
		c.Intro.ContentPath = o.ContentPath
	}
	if o.Theme != "" {
		c.UI.Theme = o.Theme
	}
	if o.Debug != nil {
		c.Logging.DebugMode = *o.Debug
	}
	if o.LogLevel != "" {
		c.Logging.Level = o.LogLevel
	}
	if o.HistoryDB != "" {
		c.History.DatabasePath = o.HistoryDB
	}
	if o.NoHistory {
		c.History.Enabled = false
	}
	return nil
}
