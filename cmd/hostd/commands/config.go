package commands

import (
	"fmt"

	"github.com/kbukum/hostkit/config"
	"github.com/kbukum/hostkit/lifecycle"
	"github.com/kbukum/hostkit/observability"
	"github.com/kbukum/hostkit/server"
	"github.com/kbukum/hostkit/version"
)

// Config is the hostd configuration file.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Server    server.Config        `yaml:"server" mapstructure:"server"`
	Lifecycle lifecycle.Config     `yaml:"lifecycle" mapstructure:"lifecycle"`
	Telemetry observability.Config `yaml:"telemetry" mapstructure:"telemetry"`
	Catalog   CatalogConfig        `yaml:"catalog" mapstructure:"catalog"`
}

// CatalogConfig holds the names seeded into an empty store at startup.
type CatalogConfig struct {
	Seed []string `yaml:"seed" mapstructure:"seed"`
}

// defaultConfig returns the values used when neither the file nor the
// environment sets them.
func defaultConfig() Config {
	return Config{
		ServiceConfig: config.ServiceConfig{
			Name:    serviceName,
			Version: version.Get().Short(),
		},
		Lifecycle: lifecycle.DefaultConfig(),
		Telemetry: observability.DefaultConfig(),
		Catalog: CatalogConfig{Seed: []string{"alpha", "beta"}},
	}
}

// ApplyDefaults fills the service and server sections.
func (c *Config) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	c.Server.ApplyDefaults()
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("config.server: %w", err)
	}
	if err := c.Lifecycle.Validate(); err != nil {
		return fmt.Errorf("config.lifecycle: %w", err)
	}
	if err := c.Telemetry.Validate(); err != nil {
		return fmt.Errorf("config.telemetry: %w", err)
	}
	return nil
}

// envPrefix scopes environment overrides, e.g. HOSTD_SERVER_PORT=9000.
const envPrefix = "HOSTD"

// loadConfig reads the configuration named by the persistent flags.
func loadConfig() (*Config, error) {
	cfg := defaultConfig()

	opts := []config.LoaderOption{config.WithEnvPrefix(envPrefix)}
	if cfgFile != "" {
		opts = append(opts, config.WithConfigFile(cfgFile))
	}
	if envFile != "" {
		opts = append(opts, config.WithEnvFile(envFile))
	}
	if err := config.LoadConfig(serviceName, &cfg, opts...); err != nil {
		return nil, err
	}
	return &cfg, nil
}
