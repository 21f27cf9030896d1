//go:build unix

package process

import (
	"errors"
	"os"
	"os/exec"
	"syscall"
)

// newCommand builds the command for spec. Unix receives argv directly, so
// the quoted command line is only used for diagnostics.
func newCommand(spec *LaunchSpec) *exec.Cmd {
	cmd := exec.Command(spec.Path, spec.Args...) //nolint:gosec // launching arbitrary executables is the purpose of this package
	if spec.Hidden {
		// Own process group: terminal signals do not reach it, and Kill can
		// take down its children too.
		cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	}
	return cmd
}

func killProcess(p *os.Process, pid int, group bool) error {
	err := p.Kill()
	if errors.Is(err, os.ErrProcessDone) {
		return nil
	}
	if group {
		_ = syscall.Kill(-pid, syscall.SIGKILL)
	}
	return err
}

// exitStatus follows the shell convention of 128+signal for processes
// terminated by a signal.
func exitStatus(state *os.ProcessState) int {
	if state == nil {
		return -1
	}
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal())
	}
	return state.ExitCode()
}
