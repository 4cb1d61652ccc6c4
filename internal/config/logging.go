package config

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level      string          `yaml:"level" json:"level,omitempty"`           // debug, info, warn, error
	Format     string          `yaml:"format" json:"format,omitempty"`         // json, console
	DebugMode  bool            `yaml:"debug_mode" json:"debug_mode,omitempty"` // false = no log files
	Categories map[string]bool `yaml:"categories,omitempty" json:"categories,omitempty"`
}

// IsCategoryEnabled returns whether logging is enabled for a category.
// Nothing is enabled unless debug_mode is on; in debug mode a category is
// enabled unless explicitly switched off.
func (c *LoggingConfig) IsCategoryEnabled(category string) bool {
	if !c.DebugMode {
		return false
	}
	enabled, exists := c.Categories[category]
	if !exists {
		return true
	}
	return enabled
}
