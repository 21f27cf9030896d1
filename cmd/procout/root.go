package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kbukum/procout/bootstrap"
	"github.com/kbukum/procout/observability"
	"github.com/kbukum/procout/version"
)

// Exit codes for runs that produced no child exit code, following the
// shell conventions.
const (
	exitFailure     = 1
	exitTimeout     = 124
	exitNotLaunched = 127
	exitInterrupted = 130
)

// exitError makes procout exit with code without printing anything more.
type exitError struct {
	code int
}

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

type globalOptions struct {
	configFile string
	debug      bool
}

// streams are the standard streams of the procout process itself.
type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

func newRootCmd(s streams) *cobra.Command {
	opts := &globalOptions{}
	root := &cobra.Command{
		Use:   serviceName,
		Short: "Run programs and capture their output line by line",
		Long: `procout launches external programs and captures stdout and stderr as
discrete lines, either printed live, collected into a structured result or
streamed as JSON lines.`,
		Version:       version.Get().Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(s.in)
	root.SetOut(s.out)
	root.SetErr(s.err)

	root.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "",
		"config file (default: ./procout.yml or the user config directory)")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "log at debug level")

	root.AddCommand(
		newRunCmd(opts, s),
		newQuoteCmd(s),
		newSplitCmd(s),
		newVersionCmd(s),
	)
	return root
}

// execute runs the command line and returns the process exit code.
func execute(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	root := newRootCmd(streams{in: in, out: out, err: errOut})
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	var ee *exitError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &ee):
		return ee.code
	default:
		fmt.Fprintln(errOut, "Error:", err)
		return exitFailure
	}
}

// newApp loads the configuration and prepares the telemetry hooks around a
// command task.
func newApp(opts *globalOptions) (*bootstrap.App[*AppConfig], *observability.Telemetry, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, nil, err
	}
	app, err := bootstrap.NewApp(cfg, bootstrap.WithVersion(version.Get().Short()))
	if err != nil {
		return nil, nil, err
	}

	tel := &observability.Telemetry{}
	app.OnStart(func(ctx context.Context) error {
		started, err := observability.Setup(ctx, cfg.Telemetry, cfg.Name, app.Version, cfg.Environment)
		if err != nil {
			return err
		}
		*tel = *started
		return nil
	})
	app.OnStop(tel.Shutdown)
	return app, tel, nil
}

// encode writes v to w as indented JSON or YAML.
func encode(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func checkFormat(format string, allowed ...string) error {
	if slices.Contains(allowed, format) {
		return nil
	}
	return fmt.Errorf("--format must be one of %v (got: %s)", allowed, format)
}
