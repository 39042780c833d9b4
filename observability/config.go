package observability

import (
	"time"

	"github.com/kbukum/hostkit/validation"
)

// Config selects the OTLP/HTTP exporters. Disabled leaves the global
// providers as no-ops.
type Config struct {
	Enabled        bool          `yaml:"enabled" mapstructure:"enabled" json:"enabled"`
	Endpoint       string        `yaml:"endpoint" mapstructure:"endpoint" json:"endpoint" validate:"required_if=Enabled true"`
	Insecure       bool          `yaml:"insecure" mapstructure:"insecure" json:"insecure"`
	SampleRate     float64       `yaml:"sample_rate" mapstructure:"sample_rate" json:"sample_rate" validate:"gte=0,lte=1"`
	ExportInterval time.Duration `yaml:"export_interval" mapstructure:"export_interval" json:"export_interval" validate:"gte=0"`
}

// DefaultConfig points at a local collector and samples every trace.
func DefaultConfig() Config {
	return Config{
		Endpoint:       "localhost:4318",
		Insecure:       true,
		SampleRate:     1.0,
		ExportInterval: 15 * time.Second,
	}
}

func (c *Config) Validate() error {
	return validation.Validate(c)
}

// Service is the identity attached to every exported span and metric.
type Service struct {
	Name        string
	Version     string
	Environment string
}
