package process

import (
	"fmt"
	"os"
	"slices"
	"strings"

	goerrors "github.com/kbukum/procout/errors"
	"github.com/kbukum/procout/validation"
)

// LaunchSpec describes a process to start. It is not modified by Launch.
type LaunchSpec struct {
	// Path is the executable path or name (resolved via PATH).
	Path string
	// Args are the command-line arguments, in order.
	Args []string
	// Dir is the working directory. If empty, uses the current directory.
	Dir string
	// Env overrides individual variables of the inherited environment.
	// Variables not listed here are inherited unchanged.
	Env map[string]string
	// Hidden detaches the process from the console. A hidden process always
	// has its output captured.
	Hidden bool
	// Redirector receives output lines live instead of buffering them.
	Redirector Redirector
	// NoQuote joins Args verbatim with single spaces instead of quoting each.
	NoQuote bool
	// CarryPartialLines joins a line whose bytes arrive in two separate
	// reads. By default every read is split on its own.
	CarryPartialLines bool
	// OnExit is called once, from a background goroutine, when the process
	// terminates. It is not called when the launch fails.
	OnExit func(exitCode int)
}

// Validate checks the fields Launch cannot do without. An empty Path is a
// MISSING_FIELD error; malformed values are INVALID_INPUT.
func (s *LaunchSpec) Validate() error {
	if strings.TrimSpace(s.Path) == "" {
		return goerrors.MissingField("path")
	}
	v := validation.New().NoNUL("path", s.Path).NoNUL("dir", s.Dir)
	for i, arg := range s.Args {
		v.NoNUL(fmt.Sprintf("args[%d]", i), arg)
	}
	for k, val := range s.Env {
		v.Custom(k != "" && !strings.ContainsAny(k, "=\x00"), "env", fmt.Sprintf("invalid variable name %q", k))
		v.NoNUL("env."+k, val)
	}
	return v.Err()
}

// Arguments returns the argument string as it is handed to the process.
func (s *LaunchSpec) Arguments() string {
	if s.NoQuote {
		return JoinArgs(s.Args)
	}
	return QuoteArgs(s.Args)
}

// CommandLine returns the quoted executable followed by Arguments.
func (s *LaunchSpec) CommandLine() string {
	args := s.Arguments()
	if args == "" {
		return Quote(s.Path)
	}
	return Quote(s.Path) + " " + args
}

// redirected reports whether stdout and stderr are captured through pipes.
func (s *LaunchSpec) redirected() bool {
	return s.Hidden || s.Redirector != nil
}

// environ merges Env over the current environment. A nil result makes the
// child inherit the parent environment unchanged.
func (s *LaunchSpec) environ() []string {
	if len(s.Env) == 0 {
		return nil
	}
	keys := make([]string, 0, len(s.Env))
	for k := range s.Env {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	env := os.Environ()
	for _, k := range keys {
		// os/exec keeps the last value of duplicate keys.
		env = append(env, k+"="+s.Env[k])
	}
	return env
}
