//go:build windows

package process

import (
	"errors"
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/windows"
)

// newCommand builds the command for spec. The command line is handed to
// CreateProcess verbatim so the quoting of Quote is what the child sees.
func newCommand(spec *LaunchSpec) *exec.Cmd {
	cmd := exec.Command(spec.Path) //nolint:gosec // launching arbitrary executables is the purpose of this package
	attr := &syscall.SysProcAttr{CmdLine: spec.CommandLine()}
	if spec.Hidden {
		attr.HideWindow = true
		attr.CreationFlags |= windows.CREATE_NO_WINDOW
	}
	cmd.SysProcAttr = attr
	return cmd
}

func killProcess(p *os.Process, _ int, _ bool) error {
	err := p.Kill()
	if errors.Is(err, os.ErrProcessDone) {
		return nil
	}
	return err
}

func exitStatus(state *os.ProcessState) int {
	if state == nil {
		return -1
	}
	return state.ExitCode()
}
