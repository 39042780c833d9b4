package server

import (
	"time"

	"github.com/kbukum/hostkit/server/middleware"
	"github.com/kbukum/hostkit/validation"
)

// Config describes the HTTP listener. Zero durations take the defaults.
type Config struct {
	Host            string                `yaml:"host" mapstructure:"host" json:"host"`
	Port            int                   `yaml:"port" mapstructure:"port" json:"port" validate:"gte=0,lte=65535"`
	Mode            string                `yaml:"mode" mapstructure:"mode" json:"mode" validate:"oneof=debug release test"`
	ReadTimeout     time.Duration         `yaml:"read_timeout" mapstructure:"read_timeout" json:"read_timeout" validate:"gte=0"`
	WriteTimeout    time.Duration         `yaml:"write_timeout" mapstructure:"write_timeout" json:"write_timeout" validate:"gte=0"`
	IdleTimeout     time.Duration         `yaml:"idle_timeout" mapstructure:"idle_timeout" json:"idle_timeout" validate:"gte=0"`
	ShutdownTimeout time.Duration         `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout" json:"shutdown_timeout" validate:"gte=0"`
	Tracing         bool                  `yaml:"tracing" mapstructure:"tracing" json:"tracing"`
	CORS            middleware.CORSConfig `yaml:"cors" mapstructure:"cors" json:"cors"`
}

const (
	defaultPort            = 8080
	defaultReadTimeout     = 15 * time.Second
	defaultWriteTimeout    = 15 * time.Second
	defaultIdleTimeout     = 60 * time.Second
	defaultShutdownTimeout = 5 * time.Second
)

func (c *Config) ApplyDefaults() {
	if c.Port == 0 {
		c.Port = defaultPort
	}
	if c.Mode == "" {
		c.Mode = "release"
	}
	setDefault(&c.ReadTimeout, defaultReadTimeout)
	setDefault(&c.WriteTimeout, defaultWriteTimeout)
	setDefault(&c.IdleTimeout, defaultIdleTimeout)
	setDefault(&c.ShutdownTimeout, defaultShutdownTimeout)
}

func setDefault(d *time.Duration, def time.Duration) {
	if *d == 0 {
		*d = def
	}
}

func (c *Config) Validate() error {
	return validation.Validate(c)
}
