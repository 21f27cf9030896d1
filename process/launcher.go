package process

import (
	"context"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	goerrors "github.com/kbukum/procout/errors"
	"github.com/kbukum/procout/logger"
	"github.com/kbukum/procout/observability"
)

// Span and attribute names recorded for every launch.
const (
	SpanLaunch      = "process.launch"
	AttrID          = "process.id"
	AttrExecutable  = "process.executable"
	AttrCommandLine = "process.command_line"
	AttrPID         = "process.pid"
	AttrExitCode    = "process.exit_code"
	AttrRedirected  = "process.redirected"
)

// Launcher starts processes with shared configuration, logging and
// instrumentation.
type Launcher struct {
	cfg      Config
	log      *logger.Logger
	metrics  *observability.Metrics
	priority Priority
}

// LauncherOption configures a Launcher.
type LauncherOption func(*Launcher)

// WithLogger sets the logger used for lifecycle events.
func WithLogger(l *logger.Logger) LauncherOption {
	return func(la *Launcher) { la.log = l }
}

// WithMetrics records launches, failures and run durations on m.
func WithMetrics(m *observability.Metrics) LauncherOption {
	return func(la *Launcher) { la.metrics = m }
}

// NewLauncher creates a Launcher. Defaults are applied to cfg; an unknown
// priority name falls back to normal.
func NewLauncher(cfg Config, opts ...LauncherOption) *Launcher {
	cfg.ApplyDefaults()
	l := &Launcher{cfg: cfg}
	l.priority, _ = ParsePriority(cfg.Priority)
	for _, opt := range opts {
		opt(l)
	}
	if l.log == nil {
		l.log = logger.Get(cfg.Name)
	}
	return l
}

// Config returns the effective configuration.
func (l *Launcher) Config() Config { return l.cfg }

// Launch starts the process described by spec using a default Launcher.
func Launch(ctx context.Context, spec LaunchSpec) *Output {
	return NewLauncher(Config{}).Launch(ctx, spec)
}

// Launch starts the process described by spec and returns at once.
//
// Launch never fails: if the process cannot be started, the returned Output
// is in StateFailedToStart, its Stderr holds one line describing the
// failure and LaunchError returns it. ctx only carries trace and logging
// context; use Kill to stop the process.
func (l *Launcher) Launch(ctx context.Context, spec LaunchSpec) *Output {
	o := &Output{
		id:          uuid.NewString(),
		path:        spec.Path,
		arguments:   spec.Arguments(),
		commandLine: spec.CommandLine(),
		redirector:  spec.Redirector,
		onExit:      spec.OnExit,
		done:        make(chan struct{}),
	}
	if spec.Redirector != nil {
		o.sink = &liveSink{r: spec.Redirector}
	} else {
		o.sink = &bufferedSink{}
	}

	_, span := observability.StartSpan(ctx, SpanLaunch, trace.WithAttributes(
		attribute.String(AttrID, o.id),
		attribute.String(AttrExecutable, spec.Path),
		attribute.String(AttrCommandLine, o.commandLine),
		attribute.Bool(AttrRedirected, spec.redirected()),
	))
	log := l.log.WithContext(ctx).WithFields(logger.Fields(logger.FieldProcessID, o.id, logger.FieldExecutable, spec.Path))

	var err error
	if err = spec.Validate(); err == nil {
		o.h, err = startHandle(&spec, readOptions{
			chunkSize: l.cfg.ChunkSize,
			carry:     spec.CarryPartialLines || l.cfg.CarryPartialLines,
			deliver:   o.sink.deliver,
			log:       log,
		})
	}
	if err != nil {
		l.failed(ctx, o, err, span, log)
		return o
	}

	o.mu.Lock()
	o.state = StateRunning
	o.startedAt = time.Now()
	o.mu.Unlock()

	span.SetAttributes(attribute.Int(AttrPID, o.h.pid()))
	if l.metrics != nil {
		l.metrics.RecordLaunch(ctx, executableName(spec.Path))
	}
	log.Debug("process started", logger.Fields(logger.FieldPID, o.h.pid(), logger.FieldCommandLine, o.commandLine))

	if l.priority != PriorityNormal {
		if perr := o.SetPriority(l.priority); perr != nil {
			log.Warn("set priority failed", logger.Fields("priority", l.priority.String(), logger.FieldError, perr.Error()))
		}
	}

	go l.monitor(context.WithoutCancel(ctx), o, span, log)
	return o
}

// failed moves o to StateFailedToStart. The failure is reported through the
// buffered stderr path even when a Redirector was given.
func (l *Launcher) failed(ctx context.Context, o *Output, err error, span trace.Span, log *logger.Logger) {
	o.launchErr = goerrors.LaunchFailed(o.path, err)
	buffered := &bufferedSink{}
	buffered.stderr.append(err.Error())
	o.sink = buffered

	o.mu.Lock()
	o.state = StateFailedToStart
	o.mu.Unlock()
	close(o.done)

	span.RecordError(err)
	span.SetStatus(codes.Error, "launch failed")
	span.End()
	if l.metrics != nil {
		l.metrics.RecordLaunchFailure(ctx, executableName(o.path))
	}
	log.Warn("process launch failed", logger.Fields(logger.FieldError, err.Error()))
}

// monitor waits for the process to exit, fixes the exit code and fires the
// exit notification.
func (l *Launcher) monitor(ctx context.Context, o *Output, span trace.Span, log *logger.Logger) {
	state := o.h.wait(l.cfg.DrainTimeout)
	code := exitStatus(state)
	o.exited(code)

	duration := o.Duration()
	span.SetAttributes(attribute.Int(AttrExitCode, code))
	if code != 0 {
		span.SetStatus(codes.Error, "non-zero exit")
	}
	span.End()
	if l.metrics != nil {
		l.metrics.RecordExit(ctx, executableName(o.path), code, duration)
	}
	log.Info("process exited", logger.MergeWithDuration(logger.Fields(logger.FieldExitCode, code), duration))

	if o.onExit != nil {
		o.onExit(code)
	}
}

func executableName(path string) string {
	return filepath.Base(path)
}
