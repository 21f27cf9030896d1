package main

import (
	"errors"
	"fmt"

	"github.com/kbukum/procout/config"
	"github.com/kbukum/procout/observability"
	"github.com/kbukum/procout/process"
	"github.com/kbukum/procout/validation"
)

const serviceName = "procout"

// AppConfig is the configuration file layout of procout.
//
//	name: procout
//	logger:
//	  level: info
//	process:
//	  drain_timeout: 2s
//	  priority: below_normal
//	telemetry:
//	  tracing: true
//	  endpoint: collector:4318
type AppConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Process              process.Config       `yaml:"process" mapstructure:"process"`
	Telemetry            observability.Config `yaml:"telemetry" mapstructure:"telemetry"`
}

func (c *AppConfig) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	c.Process.ApplyDefaults()
	c.Telemetry.ApplyDefaults()
}

func (c *AppConfig) Validate() error {
	var errs []error
	if err := c.ServiceConfig.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Process.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("process: %w", err))
	}
	if err := validation.Validate(&c.Telemetry); err != nil {
		errs = append(errs, fmt.Errorf("telemetry: %w", err))
	}
	return errors.Join(errs...)
}

// loadConfig reads the configuration file and PROCOUT_* environment
// variables. Only warnings are logged unless configured otherwise; debug
// mode wins over the configured level.
func loadConfig(opts *globalOptions) (*AppConfig, error) {
	loaderOpts := []config.LoaderOption{
		config.WithDefaults(map[string]interface{}{
			"name":          serviceName,
			"logger.level":  "warn",
			"logger.format": "console",
			"logger.output": "stderr",
		}),
	}
	if opts.configFile != "" {
		loaderOpts = append(loaderOpts, config.WithConfigFile(opts.configFile))
	}

	cfg := &AppConfig{}
	if err := config.LoadConfig(serviceName, cfg, loaderOpts...); err != nil {
		return nil, err
	}
	if opts.debug || cfg.Debug {
		cfg.Debug = true
		cfg.Logger.Level = "debug"
	}
	return cfg, nil
}
