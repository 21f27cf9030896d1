//go:build !unix && !windows

package process

import (
	"errors"
	"os"
	"os/exec"
)

func newCommand(spec *LaunchSpec) *exec.Cmd {
	return exec.Command(spec.Path, spec.Args...) //nolint:gosec // launching arbitrary executables is the purpose of this package
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
