package process

import (
	"iter"
	"strings"
	"sync"
)

const lineTerminators = "\r\n"

// SplitLines returns the lines of text without their terminators. "\r",
// "\n" and "\r\n" all end a line. Text without any terminator is yielded as a
// single line; a terminator at the very end does not produce a trailing empty
// line, while content after the last terminator is yielded as a final line.
//
// The sequence is a pure function of text and may be ranged over any number
// of times.
func SplitLines(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		start := 0
		for {
			i := strings.IndexAny(text[start:], lineTerminators)
			if i < 0 {
				break
			}
			end := start + i
			if !yield(text[start:end]) {
				return
			}
			if text[end] == '\r' && end+1 < len(text) && text[end+1] == '\n' {
				end++
			}
			start = end + 1
		}
		switch {
		case start == 0:
			yield(text)
		case start < len(text):
			yield(text[start:])
		}
	}
}

// lineAssembler joins lines that straddle read chunks by keeping the
// unterminated tail of one chunk until the next arrives. A '\r' ending a
// chunk swallows a '\n' starting the next one.
type lineAssembler struct {
	partial   strings.Builder
	pendingCR bool
}

func (a *lineAssembler) feed(chunk string, emit func(string)) {
	if a.pendingCR && strings.HasPrefix(chunk, "\n") {
		chunk = chunk[1:]
	}
	a.pendingCR = false

	start := 0
	for {
		i := strings.IndexAny(chunk[start:], lineTerminators)
		if i < 0 {
			break
		}
		end := start + i
		a.partial.WriteString(chunk[start:end])
		emit(a.partial.String())
		a.partial.Reset()
		if chunk[end] == '\r' {
			if end+1 == len(chunk) {
				a.pendingCR = true
			} else if chunk[end+1] == '\n' {
				end++
			}
		}
		start = end + 1
	}
	a.partial.WriteString(chunk[start:])
}

// flush emits whatever unterminated text is left.
func (a *lineAssembler) flush(emit func(string)) {
	if a.partial.Len() > 0 {
		emit(a.partial.String())
		a.partial.Reset()
	}
	a.pendingCR = false
}

// Lines is an append-only sequence of output lines. It is written by a
// single stream reader and may be read concurrently while the process runs.
type Lines struct {
	mu    sync.RWMutex
	items []string
}

func (l *Lines) append(line string) {
	l.mu.Lock()
	l.items = append(l.items, line)
	l.mu.Unlock()
}

// Len returns the number of lines captured so far.
func (l *Lines) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}

// Snapshot returns a copy of the lines captured so far.
func (l *Lines) Snapshot() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]string, len(l.items))
	copy(out, l.items)
	return out
}

// All iterates over a snapshot of the captured lines.
func (l *Lines) All() iter.Seq[string] {
	snapshot := l.Snapshot()
	return func(yield func(string) bool) {
		for _, line := range snapshot {
			if !yield(line) {
				return
			}
		}
	}
}
