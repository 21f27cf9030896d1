package process

import (
	"context"
	"sync"
	"time"

	goerrors "github.com/kbukum/procout/errors"
)

// Output is one launched process together with its captured output.
//
// Without a Redirector, stdout and stderr lines are buffered and available
// from Stdout and Stderr. With a Redirector, lines are forwarded to it and
// nothing is buffered. The mode is fixed at launch.
//
// Output is safe for concurrent use.
type Output struct {
	id          string
	path        string
	arguments   string
	commandLine string

	sink       sink
	redirector Redirector
	h          *handle
	launchErr  *goerrors.AppError
	onExit     func(exitCode int)

	mu        sync.RWMutex
	state     State
	exitCode  int
	startedAt time.Time
	exitedAt  time.Time

	done      chan struct{}
	closeOnce sync.Once
	closeErr  error
}

// ID returns the unique identifier assigned at launch.
func (o *Output) ID() string { return o.id }

// Path returns the executable the Output was launched with.
func (o *Output) Path() string { return o.path }

// Arguments returns the argument string handed to the process.
func (o *Output) Arguments() string { return o.arguments }

// CommandLine returns the quoted executable and arguments, for diagnostics.
func (o *Output) CommandLine() string { return o.commandLine }

// State returns the current lifecycle state.
func (o *Output) State() State {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.state
}

// ExitCode returns the exit code and true once the process has exited and
// both output streams have been drained. A grandchild holding a pipe open
// can delay this by up to the drain timeout after the process itself ended.
// The code never changes once reported. A process killed by a signal
// reports 128+signal on unix.
func (o *Output) ExitCode() (int, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.state != StateExited {
		return 0, false
	}
	return o.exitCode, true
}

// PID returns the OS process ID, or -1 if the launch failed. It keeps
// returning the ID after the process has exited.
func (o *Output) PID() int {
	if o.h == nil {
		return -1
	}
	return o.h.pid()
}

// StartTime returns when the process was started. Zero if it never was.
func (o *Output) StartTime() time.Time {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.startedAt
}

// Duration returns how long the process ran, or has been running so far.
func (o *Output) Duration() time.Duration {
	o.mu.RLock()
	defer o.mu.RUnlock()
	switch {
	case o.startedAt.IsZero():
		return 0
	case o.exitedAt.IsZero():
		return time.Since(o.startedAt)
	default:
		return o.exitedAt.Sub(o.startedAt)
	}
}

// LaunchError returns why the process could not be started, or nil.
func (o *Output) LaunchError() *goerrors.AppError { return o.launchErr }

// Redirector returns the Redirector given at launch, or nil.
func (o *Output) Redirector() Redirector { return o.redirector }

// IsBuffered reports whether output lines are captured in memory.
func (o *Output) IsBuffered() bool {
	_, ok := o.sink.(*bufferedSink)
	return ok
}

// Stdout returns a snapshot of the stdout lines captured so far. It is nil
// when a Redirector receives the output.
func (o *Output) Stdout() []string {
	if b, ok := o.sink.(*bufferedSink); ok {
		return b.stdout.Snapshot()
	}
	return nil
}

// Stderr returns a snapshot of the stderr lines captured so far. It is nil
// when a Redirector receives the output. After a failed launch it holds the
// failure description.
func (o *Output) Stderr() []string {
	if b, ok := o.sink.(*bufferedSink); ok {
		return b.stderr.Snapshot()
	}
	return nil
}

// StdoutLines returns the live stdout buffer, or nil with a Redirector.
func (o *Output) StdoutLines() *Lines {
	if b, ok := o.sink.(*bufferedSink); ok {
		return &b.stdout
	}
	return nil
}

// StderrLines returns the live stderr buffer, or nil with a Redirector.
func (o *Output) StderrLines() *Lines {
	if b, ok := o.sink.(*bufferedSink); ok {
		return &b.stderr
	}
	return nil
}

// Done returns a channel that is closed once the Output reaches a terminal
// state: the process exited and its output was drained, or the launch
// failed.
func (o *Output) Done() <-chan struct{} { return o.done }

// Wait blocks until the process has exited and its output has been read.
// It returns immediately if the launch failed. It always reports true.
func (o *Output) Wait() bool {
	<-o.done
	return true
}

// WaitTimeout waits at most d and reports whether the process exited in time.
// Like ExitCode it also waits for the output to drain, so it can report
// false for up to the drain timeout after the process itself ended.
func (o *Output) WaitTimeout(d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-o.done:
		return true
	case <-t.C:
		return false
	}
}

// WaitContext waits until the process exits or ctx is done, and reports
// whether the process exited. The process is not killed when ctx ends.
func (o *Output) WaitContext(ctx context.Context) bool {
	select {
	case <-o.done:
		return true
	case <-ctx.Done():
		return false
	}
}

// Kill terminates the process immediately. It is a no-op if the process was
// never started or has already exited.
func (o *Output) Kill() error {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.state != StateRunning || o.h.reaped.Load() {
		return nil
	}
	return o.h.kill()
}

// Priority returns the scheduling priority of the running process. It is
// PriorityNormal when the process is not running or cannot be queried.
func (o *Output) Priority() Priority {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.state != StateRunning || o.h.reaped.Load() {
		return PriorityNormal
	}
	p, err := getPriority(o.h.pid())
	if err != nil {
		return PriorityNormal
	}
	return p
}

// SetPriority changes the scheduling priority of the running process. It is
// a no-op when the process is not running.
func (o *Output) SetPriority(p Priority) error {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.state != StateRunning || o.h.reaped.Load() {
		return nil
	}
	return setPriority(o.h.pid(), p)
}

// RequestAttention forwards the attention signal to the Redirector, if any.
func (o *Output) RequestAttention() {
	o.sink.attention()
}

// Close releases the Output. The Redirector, if it implements io.Closer, is
// closed exactly once and receives no lines afterwards. Close does not kill
// a running process; its OS handle is released as soon as it exits. Close
// is idempotent and safe to call concurrently.
func (o *Output) Close() error {
	o.closeOnce.Do(func() {
		if live, ok := o.sink.(*liveSink); ok {
			o.closeErr = live.close()
		} else if o.redirector != nil {
			// A failed launch keeps the redirector only for disposal.
			o.closeErr = (&liveSink{r: o.redirector}).close()
		}
	})
	return o.closeErr
}

// exited records the final state and releases the OS handle. Only the
// monitor goroutine calls it.
func (o *Output) exited(code int) {
	o.mu.Lock()
	o.exitCode = code
	o.exitedAt = time.Now()
	o.state = StateExited
	o.h.release()
	o.mu.Unlock()
	close(o.done)
}
