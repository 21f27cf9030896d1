package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kbukum/procout/logger"
)

// App carries the configuration and logger of one command invocation and
// runs its task between start and stop hooks.
// The type parameter C is the config type, which must satisfy the Config interface.
type App[C Config] struct {
	Name    string
	Version string
	Cfg     C
	Logger  *logger.Logger

	gracefulTimeout time.Duration
	signals         []os.Signal

	onStart []Hook
	onStop  []Hook
}

// NewApp creates a new application instance from a typed config.
// It applies defaults, validates the config, and initializes the logger
// along with the component loggers of logger.DefaultComponents.
func NewApp[C Config](cfg C, opts ...Option) (*App[C], error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	base := cfg.GetServiceConfig()
	o := resolveOptions(opts)

	app := &App[C]{
		Name:            base.Name,
		Version:         o.version,
		Cfg:             cfg,
		gracefulTimeout: 5 * time.Second,
		signals:         []os.Signal{syscall.SIGINT, syscall.SIGTERM},
	}
	if o.gracefulTimeout != nil {
		app.gracefulTimeout = *o.gracefulTimeout
	}

	if o.logger != nil {
		app.Logger = o.logger
	} else {
		logger.Init(&base.Logger)
		logger.RegisterDefaults()
		app.Logger = logger.GetGlobalLogger()
	}

	return app, nil
}

// RunTask runs the start hooks, then task, then the stop hooks. The first
// SIGINT or SIGTERM cancels the context passed to task; stop hooks run
// regardless. The task error takes precedence over hook errors.
func (a *App[C]) RunTask(ctx context.Context, task func(ctx context.Context) error) error {
	a.Logger.Debug("starting", logger.Fields("name", a.Name, "version", a.Version))

	if err := runHooks(ctx, a.onStart); err != nil {
		_ = a.stop()
		return fmt.Errorf("onStart hook failed: %w", err)
	}

	taskCtx, stopSignals := signal.NotifyContext(ctx, a.signals...)
	defer stopSignals()

	start := time.Now()
	taskErr := task(taskCtx)
	fields := logger.MergeWithDuration(nil, time.Since(start))
	if taskCtx.Err() != nil && ctx.Err() == nil {
		a.Logger.Info("task canceled by signal", fields)
	} else {
		a.Logger.Debug("task finished", fields)
	}

	if stopErr := a.stop(); stopErr != nil && taskErr == nil {
		return stopErr
	}
	return taskErr
}

// Shutdown runs the stop hooks. Use it when managing the lifecycle yourself.
func (a *App[C]) Shutdown(ctx context.Context) error {
	return a.stop()
}

// stop runs the stop hooks within the graceful timeout.
func (a *App[C]) stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()

	if err := runStopHooks(ctx, a.onStop); err != nil {
		a.Logger.Error("shutdown completed with errors", logger.Fields(logger.FieldError, err.Error()))
		return err
	}
	return nil
}
