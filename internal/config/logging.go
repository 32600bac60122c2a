package config

import "lifeupmcp/internal/logging"

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level      string          `yaml:"level"`                // debug, info, warn, error
	Format     string          `yaml:"format"`               // json, console
	Categories map[string]bool `yaml:"categories,omitempty"` // Per-category toggles; unlisted categories stay on
}

// Options converts the section into logging backend options.
func (c *LoggingConfig) Options() logging.Options {
	return logging.Options{
		Level:      c.Level,
		Format:     c.Format,
		Categories: c.Categories,
	}
}
