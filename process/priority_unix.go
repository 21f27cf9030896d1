//go:build unix

package process

import (
	"fmt"

	"golang.org/x/sys/unix"
)

func getPriority(pid int) (Priority, error) {
	raw, err := unix.Getpriority(unix.PRIO_PROCESS, pid)
	if err != nil {
		return PriorityNormal, fmt.Errorf("getpriority %d: %w", pid, err)
	}
	return priorityFromNice(niceFromRaw(raw)), nil
}

func setPriority(pid int, p Priority) error {
	nice, ok := niceValues[p]
	if !ok {
		return fmt.Errorf("unsupported priority %s", p)
	}
	if err := unix.Setpriority(unix.PRIO_PROCESS, pid, nice); err != nil {
		return fmt.Errorf("setpriority %d to %d: %w", pid, nice, err)
	}
	return nil
}
