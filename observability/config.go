package observability

import (
	"context"
	"errors"
	"time"
)

// Config selects which telemetry pipelines a command starts. Both are off
// by default.
type Config struct {
	Tracing    bool          `yaml:"tracing" mapstructure:"tracing"`
	Metrics    bool          `yaml:"metrics" mapstructure:"metrics"`
	Endpoint   string        `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure   bool          `yaml:"insecure" mapstructure:"insecure"`
	SampleRate float64       `yaml:"sample_rate" mapstructure:"sample_rate" validate:"gte=0,lte=1"`
	Interval   time.Duration `yaml:"interval" mapstructure:"interval" validate:"gte=0"`
}

// ApplyDefaults fills in the development defaults of DefaultTracerConfig
// and DefaultMeterConfig.
func (c *Config) ApplyDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = "localhost:4318"
		c.Insecure = true
	}
	if c.SampleRate == 0 {
		c.SampleRate = 1.0
	}
	if c.Interval == 0 {
		c.Interval = 15 * time.Second
	}
}

// Telemetry holds the providers started by Setup.
type Telemetry struct {
	// Metrics is nil unless metrics are enabled.
	Metrics  *Metrics
	shutdown []func(context.Context) error
}

// Shutdown flushes and stops every started provider.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error
	for i := len(t.shutdown) - 1; i >= 0; i-- {
		errs = append(errs, t.shutdown[i](ctx))
	}
	return errors.Join(errs...)
}

// Setup starts the pipelines enabled in cfg for the named service.
func Setup(ctx context.Context, cfg Config, serviceName, serviceVersion, environment string) (*Telemetry, error) {
	cfg.ApplyDefaults()
	t := &Telemetry{}

	if cfg.Tracing {
		tp, err := InitTracer(ctx, &TracerConfig{
			ServiceName:    serviceName,
			ServiceVersion: serviceVersion,
			Environment:    environment,
			Endpoint:       cfg.Endpoint,
			Insecure:       cfg.Insecure,
			SampleRate:     cfg.SampleRate,
		})
		if err != nil {
			return nil, err
		}
		t.shutdown = append(t.shutdown, tp.Shutdown)
	}

	if cfg.Metrics {
		mp, err := InitMeter(ctx, &MeterConfig{
			ServiceName:    serviceName,
			ServiceVersion: serviceVersion,
			Environment:    environment,
			Endpoint:       cfg.Endpoint,
			Insecure:       cfg.Insecure,
			Interval:       cfg.Interval,
		})
		if err != nil {
			_ = t.Shutdown(ctx)
			return nil, err
		}
		t.shutdown = append(t.shutdown, mp.Shutdown)

		m, err := NewMetrics(mp.Meter(serviceName))
		if err != nil {
			_ = t.Shutdown(ctx)
			return nil, err
		}
		t.Metrics = m
	}

	return t, nil
}
