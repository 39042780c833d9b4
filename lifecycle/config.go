package lifecycle

import (
	"time"

	"github.com/kbukum/hostkit/validation"
)

// Config controls the startup action runner.
type Config struct {
	// Enabled turns the runner on. A disabled runner starts without running
	// any action.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	// ReportRoutes registers the route report action.
	ReportRoutes bool `yaml:"report_routes" mapstructure:"report_routes"`
	// Timeout bounds a whole run. Zero means no limit.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout" json:"timeout" validate:"gte=0"`
}

// DefaultConfig returns a config with the runner and the route report enabled.
func DefaultConfig() Config {
	return Config{
		Enabled:      true,
		ReportRoutes: true,
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	return validation.Validate(c)
}
