package config

import (
	"fmt"
	"time"
)

// ShutdownConfig bounds how long servers and workers get to drain on SIGTERM.
type ShutdownConfig struct {
	Timeout time.Duration `koanf:"timeout"`
}

func (c *ShutdownConfig) String() string {
	return section("Shutdown", field{"timeout", c.Timeout})
}

func (c *ShutdownConfig) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("shutdown.timeout must be greater than zero")
	}
	return nil
}
