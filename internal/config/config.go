// Package config holds the configuration of the shop and receipts services.
package config

import (
	"fmt"
	"strings"

	"github.com/abgdnv/musicshop/pkg/config"
	"github.com/abgdnv/musicshop/pkg/config/configloader"
)

var _ configloader.Validator = (*Config)(nil)

// Config is the configuration of the shop service.
type Config struct {
	HTTPServer config.HTTPConfig           `koanf:"server"`
	Database   config.DatabaseConfig       `koanf:"database"`
	Log        config.LogConfig            `koanf:"log"`
	PProf      config.PProfConfig          `koanf:"pprof"`
	GRPC       config.GrpcServerConfig     `koanf:"grpc"`
	Nats       config.NATSConfig           `koanf:"nats"`
	Events     EventsConfig                `koanf:"events"`
	Breaker    config.CircuitBreakerConfig `koanf:"circuitbreaker"`
	Telemetry  config.TelemetryConfig      `koanf:"telemetry"`
	Metrics    config.MetricsConfig        `koanf:"metrics"`
	Data       DataConfig                  `koanf:"data"`
	Shutdown   config.ShutdownConfig       `koanf:"shutdown"`
}

// DataConfig points at the catalog and roster data files.
type DataConfig struct {
	Catalog string `koanf:"catalog"`
	Roster  string `koanf:"roster"`
}

// EventsConfig controls publishing of sale events. When disabled no broker is contacted.
type EventsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Stream  string `koanf:"stream"`
}

const defaultStream = "SALES"

func (c *Config) String() string {
	var b strings.Builder

	b.WriteString(c.HTTPServer.String())
	b.WriteString(c.GRPC.String())

	b.WriteString("\n--- Data ---\n")
	b.WriteString(fmt.Sprintf("  data.catalog: %s\n", c.Data.Catalog))
	b.WriteString(fmt.Sprintf("  data.roster: %s\n", c.Data.Roster))

	if c.Database.Enabled() {
		b.WriteString(c.Database.String())
	} else {
		b.WriteString("\n--- Database ---\n  <not configured, sales kept in memory>\n")
	}

	b.WriteString("\n--- Events ---\n")
	b.WriteString(fmt.Sprintf("  events.enabled: %t\n", c.Events.Enabled))
	if c.Events.Enabled {
		b.WriteString(fmt.Sprintf("  events.stream: %s\n", c.Events.Stream))
		b.WriteString(c.Nats.String())
		b.WriteString(c.Breaker.String())
	}

	b.WriteString("\n--- Observability & Logging ---\n")
	b.WriteString(fmt.Sprintf("  log.level: %s\n", c.Log.Level))
	b.WriteString(fmt.Sprintf("  pprof.enabled: %t\n", c.PProf.Enabled))
	b.WriteString(fmt.Sprintf("  pprof.address: %s\n", c.PProf.Addr))
	b.WriteString(c.Metrics.String())
	b.WriteString(c.Telemetry.String())

	b.WriteString("\n--- Application Behavior ---\n")
	b.WriteString(fmt.Sprintf("  shutdown.timeout: %s\n", c.Shutdown.Timeout))

	return b.String()
}

// Validate checks if the configuration values are valid
func (c *Config) Validate() error {
	if err := c.HTTPServer.Validate(); err != nil {
		return err
	}
	if c.Database.Enabled() {
		if err := c.Database.Validate(); err != nil {
			return err
		}
	}
	if err := c.Log.Validate(); err != nil {
		return err
	}
	if err := c.PProf.Validate(); err != nil {
		return err
	}
	if err := c.GRPC.Validate(); err != nil {
		return err
	}
	if err := c.Events.Validate(); err != nil {
		return err
	}
	if c.Events.Enabled {
		if err := c.Nats.Validate(); err != nil {
			return err
		}
		if err := c.Breaker.Validate(); err != nil {
			return err
		}
	}
	if err := c.Telemetry.Validate(); err != nil {
		return err
	}
	if err := c.Metrics.Validate(); err != nil {
		return err
	}
	if c.Data.Catalog == "" {
		return fmt.Errorf("data.catalog is not configured")
	}
	if c.Data.Roster == "" {
		return fmt.Errorf("data.roster is not configured")
	}
	if err := c.Shutdown.Validate(); err != nil {
		return err
	}
	return nil
}

// Validate fills in the default stream of an enabled event configuration.
func (c *EventsConfig) Validate() error {
	if c.Enabled && c.Stream == "" {
		c.Stream = defaultStream
	}
	return nil
}
