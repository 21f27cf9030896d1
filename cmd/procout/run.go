package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/kbukum/procout/bootstrap"
	goerrors "github.com/kbukum/procout/errors"
	"github.com/kbukum/procout/logger"
	"github.com/kbukum/procout/observability"
	"github.com/kbukum/procout/process"
	"github.com/kbukum/procout/provider"
	"github.com/kbukum/procout/redirect"
)

type runOptions struct {
	hidden   bool
	inherit  bool
	dir      string
	env      []string
	timeout  time.Duration
	noQuote  bool
	priority string
	carry    bool
	format   string
	prefix   string
	logLines bool
	bell     bool
}

func newRunCmd(g *globalOptions, s streams) *cobra.Command {
	o := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run [flags] [--] executable [args...]",
		Short: "Run a program and capture its output",
		Long: `Run a program and capture its stdout and stderr line by line.

Output formats:
  text   print lines live as they arrive (default)
  json   print the collected result as JSON once the program exits
  yaml   print the collected result as YAML once the program exits
  jsonl  stream one JSON object per line: {"stream":"stdout","text":"..."}

procout exits with the exit code of the program, 124 when --timeout
expired, 127 when the program could not be started and 130 when
interrupted.

Examples:
  procout run -- go build ./...
  procout run --format yaml --env GOOS=windows -- go env GOOS
  procout run --prefix "[test] " --timeout 5m -- go test ./...
  procout run --format jsonl -- make | jq -r 'select(.stream=="stderr").text'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.validate(); err != nil {
				return err
			}
			spec, err := o.spec(args)
			if err != nil {
				return err
			}
			app, tel, err := newApp(g)
			if err != nil {
				return err
			}
			r := &runner{opts: o, app: app, tel: tel, s: s}
			return app.RunTask(cmd.Context(), func(ctx context.Context) error {
				return r.run(ctx, spec)
			})
		},
	}

	// Flags after the executable belong to it.
	cmd.Flags().SetInterspersed(false)

	f := cmd.Flags()
	f.BoolVar(&o.hidden, "hidden", false, "detach the program from the console")
	f.BoolVar(&o.inherit, "inherit", false, "let the program write to the terminal directly (text format only)")
	f.StringVarP(&o.dir, "dir", "C", "", "working directory of the program")
	f.StringArrayVarP(&o.env, "env", "e", nil, "set an environment variable, NAME=VALUE (repeatable)")
	f.DurationVarP(&o.timeout, "timeout", "t", 0, "kill the program after this long")
	f.BoolVar(&o.noQuote, "no-quote", false, "join arguments verbatim instead of quoting them")
	f.StringVar(&o.priority, "priority", "", "scheduling priority: lowest, below_normal, normal, above_normal, highest, realtime")
	f.BoolVar(&o.carry, "carry-partial-lines", false, "join lines split across reads")
	f.StringVarP(&o.format, "format", "f", "text", "output format: text, json, yaml, jsonl")
	f.StringVarP(&o.prefix, "prefix", "p", "", "prefix every printed line (text format)")
	f.BoolVar(&o.logLines, "log-lines", false, "also log every line at debug level")
	f.BoolVar(&o.bell, "bell", false, "ring the terminal bell when the program fails")
	cmd.MarkFlagsMutuallyExclusive("inherit", "hidden")

	return cmd
}

func (o *runOptions) validate() error {
	if err := checkFormat(o.format, "text", "json", "yaml", "jsonl"); err != nil {
		return err
	}
	if o.inherit && o.format != "text" {
		return errors.New("--inherit only works with --format text")
	}
	if _, err := process.ParsePriority(o.priority); err != nil {
		return fmt.Errorf("--priority: %w", err)
	}
	if o.timeout < 0 {
		return errors.New("--timeout must not be negative")
	}
	return nil
}

func (o *runOptions) spec(args []string) (process.LaunchSpec, error) {
	var env map[string]string
	for _, kv := range o.env {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			return process.LaunchSpec{}, fmt.Errorf("--env %q: want NAME=VALUE", kv)
		}
		if env == nil {
			env = make(map[string]string, len(o.env))
		}
		env[name] = value
	}

	spec := process.LaunchSpec{
		Path:              args[0],
		Args:              args[1:],
		Dir:               o.dir,
		Env:               env,
		Hidden:            o.hidden,
		NoQuote:           o.noQuote,
		CarryPartialLines: o.carry,
	}
	if err := spec.Validate(); err != nil {
		return process.LaunchSpec{}, err
	}
	return spec, nil
}

// runner executes one run command inside the bootstrap task.
type runner struct {
	opts *runOptions
	app  *bootstrap.App[*AppConfig]
	tel  *observability.Telemetry
	s    streams
}

// runReport is what the json and yaml formats print.
type runReport struct {
	Result *process.Result       `json:"result,omitempty" yaml:"result,omitempty"`
	Error  *goerrors.ErrorReport `json:"error,omitempty" yaml:"error,omitempty"`
}

func (r *runner) run(ctx context.Context, spec process.LaunchSpec) error {
	cfg := r.app.Cfg.Process
	if r.opts.priority != "" {
		cfg.Priority = r.opts.priority
	}
	if r.opts.timeout > 0 {
		cfg.Timeout = r.opts.timeout
	}

	switch r.opts.format {
	case "json", "yaml":
		return r.collect(ctx, cfg, spec)
	case "jsonl":
		return r.stream(ctx, cfg, spec)
	default:
		return r.live(ctx, cfg, spec)
	}
}

func (r *runner) launcherOptions() []process.LauncherOption {
	opts := []process.LauncherOption{process.WithLogger(logger.Get(logger.ComponentProcess))}
	if r.tel.Metrics != nil {
		opts = append(opts, process.WithMetrics(r.tel.Metrics))
	}
	return opts
}

// live prints lines as they arrive.
func (r *runner) live(ctx context.Context, cfg process.Config, spec process.LaunchSpec) error {
	if !r.opts.inherit {
		var wopts []redirect.WriterOption
		if r.opts.prefix != "" {
			wopts = append(wopts, redirect.WithPrefix(r.opts.prefix))
		}
		if r.opts.bell {
			wopts = append(wopts, redirect.WithBell())
		}
		var red process.Redirector = redirect.NewWriter(r.s.out, r.s.err, wopts...)
		if r.opts.logLines {
			red = redirect.NewMulti(red, redirect.NewLog(logger.Get(logger.ComponentOutput),
				redirect.WithLevels(zerolog.DebugLevel, zerolog.DebugLevel)))
		}
		spec.Redirector = red
	}

	ctx, cancel := withTimeout(ctx, cfg.Timeout)
	defer cancel()

	out := process.NewLauncher(cfg, r.launcherOptions()...).Launch(ctx, spec)
	defer out.Close() //nolint:errcheck

	if out.LaunchError() != nil {
		for _, line := range out.Stderr() {
			fmt.Fprintln(r.s.err, line)
		}
		return &exitError{code: exitNotLaunched}
	}

	if !out.WaitContext(ctx) {
		_ = out.Kill()
		out.Wait()
		return r.stopped(ctx)
	}

	code, _ := out.ExitCode()
	if code != 0 {
		out.RequestAttention()
	}
	return exitStatus(code)
}

// collect runs the program to completion through the instrumented provider
// chain and prints the result.
func (r *runner) collect(ctx context.Context, cfg process.Config, spec process.LaunchSpec) error {
	type (
		in  = process.LaunchSpec
		out = *process.Result
	)
	middlewares := []provider.Middleware[in, out]{
		provider.WithLogging[in, out](logger.Get(logger.ComponentProvider)),
		provider.WithTracing[in, out](r.app.Name),
	}
	if r.tel.Metrics != nil {
		middlewares = append(middlewares, provider.WithMetrics[in, out](r.tel.Metrics))
	}
	exec := provider.Chain(middlewares...)(process.NewAdapter(cfg, r.launcherOptions()...))

	// Buffered capture needs pipes even without a Redirector.
	spec.Hidden = true
	result, err := exec.Execute(ctx, spec)

	report := runReport{Result: result}
	appErr, isAppErr := goerrors.AsAppError(err)
	if isAppErr && appErr.Code != goerrors.ErrCodeNonZeroExit {
		rep := appErr.ToReport()
		report.Error = &rep
	}
	if encErr := encode(r.s.out, r.opts.format, report); encErr != nil {
		return encErr
	}

	switch {
	case err == nil:
		return nil
	case !isAppErr:
		return err
	case appErr.Code == goerrors.ErrCodeNonZeroExit:
		return exitStatus(result.ExitCode)
	case appErr.Code == goerrors.ErrCodeLaunchFailed:
		return &exitError{code: exitNotLaunched}
	case appErr.Code == goerrors.ErrCodeTimeout && ctx.Err() == nil:
		return &exitError{code: exitTimeout}
	case appErr.Code == goerrors.ErrCodeTimeout:
		return r.stopped(ctx)
	default:
		return err
	}
}

// stream prints one JSON object per line as lines arrive.
func (r *runner) stream(ctx context.Context, cfg process.Config, spec process.LaunchSpec) error {
	ctx, cancel := withTimeout(ctx, cfg.Timeout)
	defer cancel()

	it, err := process.NewStreamer(cfg, 64, r.launcherOptions()...).Start(ctx, spec)
	if err != nil {
		if appErr, ok := goerrors.AsAppError(err); ok && appErr.Code == goerrors.ErrCodeLaunchFailed {
			fmt.Fprintln(r.s.err, appErr.Error())
			return &exitError{code: exitNotLaunched}
		}
		return err
	}
	defer it.Close() //nolint:errcheck

	enc := json.NewEncoder(r.s.out)
	for {
		line, ok, err := it.Next(ctx)
		if err != nil {
			_ = it.Close()
			return r.stopped(ctx)
		}
		if !ok {
			break
		}
		if err := enc.Encode(line); err != nil {
			return err
		}
	}

	code, _ := it.Output().ExitCode()
	return exitStatus(code)
}

// stopped reports a run that was killed because ctx ended, either by the
// timeout or by a signal.
func (r *runner) stopped(ctx context.Context) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		r.app.Logger.Warn("program killed after timeout")
		return &exitError{code: exitTimeout}
	}
	return &exitError{code: exitInterrupted}
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d > 0 {
		return context.WithTimeout(ctx, d)
	}
	return context.WithCancel(ctx)
}

func exitStatus(code int) error {
	if code == 0 {
		return nil
	}
	return &exitError{code: code}
}
