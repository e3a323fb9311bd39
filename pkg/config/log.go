package config

import (
	"fmt"
	"strings"
)

const defaultLogLevel = "info"

// LogConfig selects the slog level: debug, info, warn or error.
type LogConfig struct {
	Level string `koanf:"level"`
}

func (c *LogConfig) String() string {
	return section("Log", field{"level", c.Level})
}

// Validate normalizes the level and rejects unknown ones. An empty level means info.
func (c *LogConfig) Validate() error {
	c.Level = strings.ToLower(strings.TrimSpace(c.Level))
	switch c.Level {
	case "":
		c.Level = defaultLogLevel
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Level)
	}
	return nil
}
