package config

import (
	"fmt"
	"log"
	"time"
)

// ProbesConfig names the files the receipts worker uses as readiness and liveness probes.
type ProbesConfig struct {
	ReadinessFileName string        `koanf:"readinessfilename"`
	LivenessFileName  string        `koanf:"livenessfilename"`
	LivenessInterval  time.Duration `koanf:"livenessinterval"`
}

const (
	defaultReadinessFileName = "/tmp/receipts-ready"
	defaultLivenessFileName  = "/tmp/receipts-live"
	defaultLivenessInterval  = 20 * time.Second
)

func (c *ProbesConfig) String() string {
	return section("Probes",
		field{"readinessfilename", c.ReadinessFileName},
		field{"livenessfilename", c.LivenessFileName},
		field{"livenessinterval", c.LivenessInterval},
	)
}

// Validate fills in defaults and rejects a single file used for both probes.
func (c *ProbesConfig) Validate() error {
	if c.ReadinessFileName == "" {
		log.Println("Using default value for probes.readinessfilename")
		c.ReadinessFileName = defaultReadinessFileName
	}
	if c.LivenessFileName == "" {
		log.Println("Using default value for probes.livenessfilename")
		c.LivenessFileName = defaultLivenessFileName
	}
	if c.LivenessInterval <= 0 {
		log.Println("Using default value for probes.livenessinterval")
		c.LivenessInterval = defaultLivenessInterval
	}
	if c.ReadinessFileName == c.LivenessFileName {
		return fmt.Errorf("probes.readinessfilename and probes.livenessfilename must differ")
	}
	return nil
}
