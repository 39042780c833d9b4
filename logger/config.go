package logger

import "github.com/kbukum/hostkit/validation"

// Config is the logging section of a service config.
type Config struct {
	Level       string `yaml:"level" mapstructure:"level" json:"level" validate:"oneof=trace debug info warn error fatal"`
	Format      string `yaml:"format" mapstructure:"format" json:"format" validate:"oneof=json console pretty text"`
	Output      string `yaml:"output" mapstructure:"output" json:"output" validate:"oneof=stdout stderr"`
	NoColor     bool   `yaml:"no_color" mapstructure:"no_color" json:"no_color"`
	Timestamp   bool   `yaml:"timestamp" mapstructure:"timestamp" json:"timestamp"`
	Caller      bool   `yaml:"caller" mapstructure:"caller" json:"caller"`
	ServiceName string `yaml:"service_name" mapstructure:"service_name" json:"service_name"`
}

// ApplyDefaults fills empty fields with info/console/stdout and turns
// timestamps on.
func (c *Config) ApplyDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = FormatConsole
	}
	if c.Output == "" {
		c.Output = "stdout"
	}
	c.Timestamp = true
}

func (c *Config) Validate() error {
	return validation.Validate(c)
}
