package process

import (
	"context"
	"time"

	goerrors "github.com/kbukum/procout/errors"
)

// Run launches spec, waits for it to exit and returns the result.
// If ctx is done first, the process is killed and a TIMEOUT error returned.
func Run(ctx context.Context, spec LaunchSpec) (*Result, error) {
	return NewLauncher(Config{}).Run(ctx, spec)
}

// Run launches spec, waits for it to exit and returns the result. The
// launcher's Timeout, when set, bounds the wait in addition to ctx.
//
// Errors are *errors.AppError with code LAUNCH_FAILED, TIMEOUT or
// NON_ZERO_EXIT. The Result is returned alongside every error so captured
// output is never lost.
func (l *Launcher) Run(ctx context.Context, spec LaunchSpec) (*Result, error) {
	if l.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.cfg.Timeout)
		defer cancel()
	}

	o := l.Launch(ctx, spec)
	defer o.Close() //nolint:errcheck

	if err := o.LaunchError(); err != nil {
		return o.Result(), err
	}

	if !o.WaitContext(ctx) {
		_ = o.Kill()
		o.Wait()
		return o.Result(), goerrors.Timeout("run " + executableName(spec.Path)).WithCause(ctx.Err())
	}

	result := o.Result()
	if result.ExitCode != 0 {
		return result, goerrors.NonZeroExit(executableName(spec.Path), result.ExitCode)
	}
	return result, nil
}

// KillAfter waits up to timeout for o to exit and kills it otherwise. It
// reports whether the process exited on its own.
func KillAfter(o *Output, timeout time.Duration) bool {
	if o.WaitTimeout(timeout) {
		return true
	}
	_ = o.Kill()
	o.Wait()
	return false
}
