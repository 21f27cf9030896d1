package process

import (
	"context"
	"os/exec"

	"github.com/kbukum/procout/provider"
)

// compile-time assertions
var _ provider.RequestResponse[LaunchSpec, *Result] = (*Adapter)(nil)

// Adapter wraps process execution as a provider.RequestResponse.
type Adapter struct {
	launcher *Launcher
}

// NewAdapter creates a new process adapter.
func NewAdapter(cfg Config, opts ...LauncherOption) *Adapter {
	return &Adapter{launcher: NewLauncher(cfg, opts...)}
}

// Name returns the adapter name (implements provider.Provider).
func (a *Adapter) Name() string {
	return a.launcher.cfg.Name
}

// IsAvailable always returns true for process adapters (implements provider.Provider).
func (a *Adapter) IsAvailable(_ context.Context) bool {
	return true
}

// Execute runs spec to completion (implements provider.RequestResponse[LaunchSpec, *Result]).
func (a *Adapter) Execute(ctx context.Context, spec LaunchSpec) (*Result, error) {
	return a.launcher.Run(ctx, spec)
}

// ExecutableProvider is a RequestResponse provider bound to one executable.
// buildArgs turns the input into arguments and parseOut turns the Result
// into the output, which is not called for a failed run. The process runs
// hidden with buffered output.
type ExecutableProvider[I, O any] struct {
	provider.RequestResponse[I, O]
	path string
}

// NewExecutableProvider creates a RequestResponse provider backed by path.
func NewExecutableProvider[I, O any](
	name, path string,
	adapter *Adapter,
	buildArgs func(I) []string,
	parseOut func(*Result) (O, error),
) *ExecutableProvider[I, O] {
	if adapter == nil {
		adapter = NewAdapter(Config{Name: name})
	}
	rr := provider.Adapt[I, O, LaunchSpec, *Result](
		adapter,
		name,
		func(_ context.Context, input I) (LaunchSpec, error) {
			return LaunchSpec{Path: path, Args: buildArgs(input), Hidden: true}, nil
		},
		parseOut,
	)
	return &ExecutableProvider[I, O]{RequestResponse: rr, path: path}
}

// IsAvailable reports whether the executable can be found.
func (p *ExecutableProvider[I, O]) IsAvailable(_ context.Context) bool {
	_, err := exec.LookPath(p.path)
	return err == nil
}
