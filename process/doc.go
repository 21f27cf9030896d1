// Package process launches child processes and captures their output line
// by line.
//
// # Launching
//
// Launch starts a process synchronously and returns an *Output at once. A
// failed start does not return an error: the Output is in
// StateFailedToStart, Stderr holds one line describing the failure and
// LaunchError returns it as an *errors.AppError.
//
//	out := process.Launch(ctx, process.LaunchSpec{
//	    Path:   "go",
//	    Args:   []string{"build", "./..."},
//	    Hidden: true,
//	})
//	defer out.Close()
//	out.Wait()
//	code, _ := out.ExitCode()
//
// # Output modes
//
// Without a Redirector, stdout and stderr lines are buffered and can be
// read with Stdout and Stderr, also while the process runs. With a
// Redirector, every line is forwarded to it instead and nothing is
// buffered. Calls into a Redirector are serialized.
//
// Each stream has its own reader goroutine. Lines of one stream keep their
// order; lines of stdout and stderr have no order relative to each other.
//
// # Command lines
//
// Quote produces tokens that Windows argv splitting reads back unchanged.
// On Windows the quoted command line is passed to CreateProcess verbatim;
// on other systems the arguments are passed as argv and CommandLine is for
// diagnostics only.
//
// # Lifecycle
//
// Wait, WaitTimeout and WaitContext block until exit. Kill terminates at
// once; there is no graceful shutdown. Run composes Launch, WaitContext and
// Kill for callers that want a deadline. Close is idempotent and closes the
// Redirector if it implements io.Closer.
package process
