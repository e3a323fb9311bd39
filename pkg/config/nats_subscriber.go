package config

import (
	"fmt"
	"log"
	"time"
)

// SubscriberConfig describes the durable JetStream consumer of the receipts worker.
type SubscriberConfig struct {
	Stream   string        `koanf:"stream"`
	Subject  string        `koanf:"subject"`
	Consumer string        `koanf:"consumer"`
	Batch    int           `koanf:"batch"`
	Timeout  time.Duration `koanf:"timeout"`
	Interval time.Duration `koanf:"interval"`
	Workers  int           `koanf:"workers"`
}

func (c *SubscriberConfig) String() string {
	return section("NATS Subscriber",
		field{"stream", c.Stream},
		field{"subject", c.Subject},
		field{"consumer", c.Consumer},
		field{"batch", c.Batch},
		field{"timeout", c.Timeout},
		field{"interval", c.Interval},
		field{"workers", c.Workers},
	)
}

// Validate requires the stream, subject, consumer and timings. Batch and workers default to one.
func (c *SubscriberConfig) Validate() error {
	switch {
	case c.Stream == "":
		return fmt.Errorf("subscriber.stream is not configured")
	case c.Subject == "":
		return fmt.Errorf("subscriber.subject is not configured")
	case c.Consumer == "":
		return fmt.Errorf("subscriber.consumer is not configured")
	case c.Timeout <= 0:
		return fmt.Errorf("subscriber.timeout must be greater than zero")
	case c.Interval <= 0:
		return fmt.Errorf("subscriber.interval must be greater than zero")
	case c.Batch < 0, c.Workers < 0:
		return fmt.Errorf("subscriber.batch and subscriber.workers must not be negative")
	}
	if c.Batch == 0 {
		log.Println("Using default value for subscriber.batch")
		c.Batch = 1
	}
	if c.Workers == 0 {
		log.Println("Using default value for subscriber.workers")
		c.Workers = 1
	}
	return nil
}
