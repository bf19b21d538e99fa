package config

import (
	"fmt"

	"github.com/rs/zerolog"
)

type LogConfig struct {
	// Level is one of trace, debug, info, warn, error.
	Level string `json:"level"`
	// Format is "json" or "console".
	Format string `json:"format"`
	// File, when set, receives log lines instead of stderr.
	File string `json:"file"`
}

func (c *LogConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "console"
	}
}

func (c LogConfig) Validate() error {
	if _, err := zerolog.ParseLevel(c.Level); err != nil {
		return fmt.Errorf("unknown level %q", c.Level)
	}
	if c.Format != "json" && c.Format != "console" {
		return fmt.Errorf("unknown format %q", c.Format)
	}
	return nil
}
