package bootstrap

import (
	"github.com/kbukum/hostkit/config"
)

// Config is satisfied by any struct embedding config.ServiceConfig by value
// that adds its own ApplyDefaults and Validate for extra sections:
//
//	type HostConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Lifecycle lifecycle.Config `yaml:"lifecycle" mapstructure:"lifecycle"`
//	}
type Config interface {
	GetServiceConfig() *config.ServiceConfig
	ApplyDefaults()
	Validate() error
}
