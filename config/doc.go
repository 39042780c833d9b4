// Package config loads service configuration from YAML files, .env files and
// the process environment.
//
// Application configs embed ServiceConfig and add their own sections:
//
//	type Config struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Server    server.Config    `yaml:"server" mapstructure:"server"`
//	    Lifecycle lifecycle.Config `yaml:"lifecycle" mapstructure:"lifecycle"`
//	}
//
//	cfg := Config{Lifecycle: lifecycle.DefaultConfig()}
//	err := config.LoadConfig("hostd", &cfg)
//
// Values already set on cfg survive when neither the file nor the
// environment provides them. Environment variables are bound under every
// nesting variant of their name, so LIFECYCLE_TIMEOUT sets lifecycle.timeout.
package config
