package process

import (
	"time"

	"github.com/kbukum/procout/logger"
	"github.com/kbukum/procout/validation"
)

const (
	defaultDrainTimeout = 2 * time.Second
	defaultChunkSize    = 4096
)

func init() {
	if err := validation.RegisterValidation("priority", func(s string) bool {
		_, err := ParsePriority(s)
		return err == nil
	}); err != nil {
		panic(err)
	}
}

// Config configures a Launcher.
type Config struct {
	// Name identifies this launcher instance (used by provider.Provider interface).
	Name string `yaml:"name,omitempty" mapstructure:"name"`
	// DrainTimeout bounds how long output is read after the process exits,
	// for grandchildren that keep the pipes open. Negative waits forever.
	DrainTimeout time.Duration `yaml:"drain_timeout,omitempty" mapstructure:"drain_timeout"`
	// ChunkSize is the read buffer size of each stream reader.
	ChunkSize int `yaml:"chunk_size,omitempty" mapstructure:"chunk_size" validate:"gte=0,lte=1048576"`
	// CarryPartialLines turns on LaunchSpec.CarryPartialLines for every launch.
	CarryPartialLines bool `yaml:"carry_partial_lines,omitempty" mapstructure:"carry_partial_lines"`
	// Priority is applied right after a successful start unless it is normal.
	Priority string `yaml:"priority,omitempty" mapstructure:"priority" validate:"priority"`
	// Timeout is the default deadline of Run. Zero means no deadline.
	Timeout time.Duration `yaml:"timeout,omitempty" mapstructure:"timeout" validate:"gte=0"`
}

// ApplyDefaults fills in unset values.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = logger.ComponentProcess
	}
	if c.DrainTimeout == 0 {
		c.DrainTimeout = defaultDrainTimeout
	}
	if c.ChunkSize == 0 {
		c.ChunkSize = defaultChunkSize
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	return validation.Validate(c)
}
