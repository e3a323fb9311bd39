package config

import (
	"fmt"
	"time"
)

// CircuitBreakerConfig configures the breaker guarding calls to the message broker.
type CircuitBreakerConfig struct {
	ConsecutiveFailures uint32        `koanf:"consecutivefailures"`
	ErrorRatePercent    int           `koanf:"errorratepercent"`
	OpenTimeout         time.Duration `koanf:"opentimeout"`
	HalfOpenRequests    uint32        `koanf:"halfopenrequests"`
}

func (c *CircuitBreakerConfig) String() string {
	return section("Circuit Breaker",
		field{"consecutivefailures", c.ConsecutiveFailures},
		field{"errorratepercent", c.ErrorRatePercent},
		field{"opentimeout", c.OpenTimeout},
		field{"halfopenrequests", c.HalfOpenRequests},
	)
}

func (c *CircuitBreakerConfig) Validate() error {
	if c.ConsecutiveFailures == 0 {
		return fmt.Errorf("circuitbreaker.consecutivefailures must be greater than 0")
	}
	if c.ErrorRatePercent < 0 || c.ErrorRatePercent > 100 {
		return fmt.Errorf("circuitbreaker.errorratepercent must be between 0 and 100")
	}
	if c.OpenTimeout <= 0 {
		return fmt.Errorf("circuitbreaker.opentimeout must be greater than 0")
	}
	if c.HalfOpenRequests == 0 {
		c.HalfOpenRequests = 1
	}
	return nil
}
