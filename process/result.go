package process

import "time"

// Result holds the output and status of a completed process.
type Result struct {
	// ID is the identifier of the Output the result was taken from.
	ID string `json:"id" yaml:"id"`
	// CommandLine is the quoted command line, for diagnostics.
	CommandLine string `json:"command_line" yaml:"command_line"`
	// Stdout holds the captured standard output lines.
	Stdout []string `json:"stdout" yaml:"stdout"`
	// Stderr holds the captured standard error lines.
	Stderr []string `json:"stderr" yaml:"stderr"`
	// ExitCode is the process exit code. -1 if the process never ran.
	ExitCode int `json:"exit_code" yaml:"exit_code"`
	// Duration is how long the process ran.
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// Result snapshots o. Call it after Wait for the final values.
func (o *Output) Result() *Result {
	code, ok := o.ExitCode()
	if !ok {
		code = -1
	}
	return &Result{
		ID:          o.id,
		CommandLine: o.commandLine,
		Stdout:      o.Stdout(),
		Stderr:      o.Stderr(),
		ExitCode:    code,
		Duration:    o.Duration(),
	}
}
