package redirect

import (
	"errors"
	"io"
	"sync"

	"github.com/kbukum/procout/process"
)

// Multi sends every line and attention request to all its targets, in
// order.
type Multi struct {
	targets   []process.Redirector
	closeOnce sync.Once
	closeErr  error
}

// NewMulti creates a Multi. Nil targets are skipped.
func NewMulti(targets ...process.Redirector) *Multi {
	m := &Multi{}
	for _, t := range targets {
		if t != nil {
			m.targets = append(m.targets, t)
		}
	}
	return m
}

func (m *Multi) WriteStdout(line string) {
	for _, t := range m.targets {
		t.WriteStdout(line)
	}
}

func (m *Multi) WriteStderr(line string) {
	for _, t := range m.targets {
		t.WriteStderr(line)
	}
}

func (m *Multi) RequestAttention() {
	for _, t := range m.targets {
		t.RequestAttention()
	}
}

// Close closes every target that implements io.Closer, once, and joins
// their errors.
func (m *Multi) Close() error {
	m.closeOnce.Do(func() {
		var errs []error
		for _, t := range m.targets {
			if c, ok := t.(io.Closer); ok {
				errs = append(errs, c.Close())
			}
		}
		m.closeErr = errors.Join(errs...)
	})
	return m.closeErr
}
