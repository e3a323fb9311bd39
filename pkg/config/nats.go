package config

import (
	"fmt"
	"strings"
	"time"
)

// NATSConfig locates the broker sale events go through.
type NATSConfig struct {
	Url     string        `koanf:"url"`
	Timeout time.Duration `koanf:"timeout"`
}

func (c *NATSConfig) String() string {
	url := c.Url
	if strings.Contains(url, "@") {
		url = MaskURL(url)
	}
	return section("NATS", field{"url", url}, field{"timeout", c.Timeout})
}

func (c *NATSConfig) Validate() error {
	if c.Url == "" {
		return fmt.Errorf("nats.url is not configured")
	}
	if !strings.HasPrefix(c.Url, "nats://") && !strings.HasPrefix(c.Url, "tls://") {
		return fmt.Errorf("nats.url must start with 'nats://' or 'tls://'")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("nats.timeout must be greater than zero")
	}
	return nil
}
