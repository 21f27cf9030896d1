//go:build windows

package process

import (
	"fmt"

	"golang.org/x/sys/windows"
)

var priorityClasses = map[Priority]uint32{
	PriorityLowest:      windows.IDLE_PRIORITY_CLASS,
	PriorityBelowNormal: windows.BELOW_NORMAL_PRIORITY_CLASS,
	PriorityNormal:      windows.NORMAL_PRIORITY_CLASS,
	PriorityAboveNormal: windows.ABOVE_NORMAL_PRIORITY_CLASS,
	PriorityHighest:     windows.HIGH_PRIORITY_CLASS,
	PriorityRealtime:    windows.REALTIME_PRIORITY_CLASS,
}

func getPriority(pid int) (Priority, error) {
	h, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, uint32(pid))
	if err != nil {
		return PriorityNormal, fmt.Errorf("open process %d: %w", pid, err)
	}
	defer windows.CloseHandle(h) //nolint:errcheck

	class, err := windows.GetPriorityClass(h)
	if err != nil {
		return PriorityNormal, fmt.Errorf("get priority class of %d: %w", pid, err)
	}
	for p, c := range priorityClasses {
		if c == class {
			return p, nil
		}
	}
	return PriorityNormal, nil
}

func setPriority(pid int, p Priority) error {
	class, ok := priorityClasses[p]
	if !ok {
		return fmt.Errorf("unsupported priority %s", p)
	}
	h, err := windows.OpenProcess(windows.PROCESS_SET_INFORMATION, false, uint32(pid))
	if err != nil {
		return fmt.Errorf("open process %d: %w", pid, err)
	}
	defer windows.CloseHandle(h) //nolint:errcheck

	if err := windows.SetPriorityClass(h, class); err != nil {
		return fmt.Errorf("set priority class of %d: %w", pid, err)
	}
	return nil
}
