package process

// The getpriority syscall returns 20-nice on Linux so it is never negative.
func niceFromRaw(raw int) int { return 20 - raw }
