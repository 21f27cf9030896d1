//go:build unix && !linux

package process

func niceFromRaw(raw int) int { return raw }
