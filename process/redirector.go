package process

import (
	"fmt"
	"io"
	"sync"
)

// Redirector receives the output of a launched process line by line.
//
// Lines never carry their terminator. A Redirector that also implements
// io.Closer is closed exactly once when the owning Output is closed.
type Redirector interface {
	// WriteStdout receives one line written to standard output.
	WriteStdout(line string)
	// WriteStderr receives one line written to standard error.
	WriteStderr(line string)
	// RequestAttention asks the consumer to bring its output to the user.
	RequestAttention()
}

// NopAttention implements RequestAttention as a no-op. Embed it in
// redirectors that have nothing to show.
type NopAttention struct{}

// RequestAttention does nothing.
func (NopAttention) RequestAttention() {}

// Stream identifies one of the two captured output streams.
type Stream int

const (
	Stdout Stream = iota + 1
	Stderr
)

// String returns "stdout" or "stderr".
func (s Stream) String() string {
	switch s {
	case Stdout:
		return "stdout"
	case Stderr:
		return "stderr"
	default:
		return fmt.Sprintf("stream(%d)", int(s))
	}
}

// sink is where an Output delivers lines. The concrete type is chosen once
// at launch: bufferedSink without a Redirector, liveSink with one.
type sink interface {
	deliver(stream Stream, line string)
	attention()
	close() error
}

type bufferedSink struct {
	stdout Lines
	stderr Lines
}

func (b *bufferedSink) deliver(stream Stream, line string) {
	if stream == Stderr {
		b.stderr.append(line)
		return
	}
	b.stdout.append(line)
}

func (b *bufferedSink) attention() {}

func (b *bufferedSink) close() error { return nil }

// liveSink serializes calls into the Redirector so implementations do not
// need to be safe for concurrent use. Nothing reaches the Redirector once it
// has been closed.
type liveSink struct {
	mu     sync.Mutex
	r      Redirector
	closed bool
}

func (l *liveSink) deliver(stream Stream, line string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	if stream == Stderr {
		l.r.WriteStderr(line)
		return
	}
	l.r.WriteStdout(line)
}

func (l *liveSink) attention() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.closed {
		l.r.RequestAttention()
	}
}

func (l *liveSink) close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true
	if c, ok := l.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
