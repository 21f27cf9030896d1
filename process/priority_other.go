//go:build !unix && !windows

package process

import "errors"

var errPriorityUnsupported = errors.New("process priority is not supported on this platform")

func getPriority(int) (Priority, error) { return PriorityNormal, errPriorityUnsupported }

func setPriority(int, Priority) error { return errPriorityUnsupported }
