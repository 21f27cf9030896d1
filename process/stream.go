package process

import (
	"context"
	"sync"

	goerrors "github.com/kbukum/procout/errors"
	"github.com/kbukum/procout/provider"
)

var _ provider.Stream[LaunchSpec, Line] = (*Streamer)(nil)

// Line is one output line tagged with the stream it came from.
type Line struct {
	Stream Stream `json:"stream" yaml:"stream"`
	Text   string `json:"text" yaml:"text"`
}

// MarshalText renders the stream as "stdout" or "stderr".
func (s Stream) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses "stdout" or "stderr".
func (s *Stream) UnmarshalText(b []byte) error {
	switch string(b) {
	case "stdout":
		*s = Stdout
	case "stderr":
		*s = Stderr
	default:
		return goerrors.InvalidInput("stream", "unknown stream "+string(b))
	}
	return nil
}

// Streamer runs processes and hands out their output as a pull-based
// sequence of lines, in the order the readers received them.
type Streamer struct {
	launcher *Launcher
	buffer   int
}

// NewStreamer creates a Streamer. buffer lines are queued before the
// process is held back by a slow consumer.
func NewStreamer(cfg Config, buffer int, opts ...LauncherOption) *Streamer {
	if buffer < 0 {
		buffer = 0
	}
	return &Streamer{launcher: NewLauncher(cfg, opts...), buffer: buffer}
}

// Name returns the launcher name (implements provider.Provider).
func (s *Streamer) Name() string { return s.launcher.cfg.Name }

// IsAvailable always returns true (implements provider.Provider).
func (s *Streamer) IsAvailable(_ context.Context) bool { return true }

// Execute launches spec and returns an iterator over its output lines. The
// spec must not carry its own Redirector. A launch failure is returned as
// the error.
func (s *Streamer) Execute(ctx context.Context, spec LaunchSpec) (provider.Iterator[Line], error) {
	it, err := s.Start(ctx, spec)
	if err != nil {
		return nil, err
	}
	return it, nil
}

// Start is Execute returning the concrete iterator, which also exposes the
// Output.
func (s *Streamer) Start(ctx context.Context, spec LaunchSpec) (*LineIterator, error) {
	if spec.Redirector != nil {
		return nil, goerrors.InvalidInput("redirector", "a streamed launch supplies its own redirector")
	}
	ch := &lineChannel{
		lines: make(chan Line, s.buffer),
		done:  make(chan struct{}),
	}
	spec.Redirector = ch

	o := s.launcher.Launch(ctx, spec)
	if err := o.LaunchError(); err != nil {
		_ = o.Close()
		return nil, err
	}

	go func() {
		// All readers have finished once Done is closed.
		<-o.Done()
		close(ch.lines)
	}()
	return &LineIterator{o: o, ch: ch}, nil
}

// LineIterator yields the lines of one streamed process.
type LineIterator struct {
	o         *Output
	ch        *lineChannel
	closeOnce sync.Once
	closeErr  error
}

// Output returns the process behind the iterator.
func (it *LineIterator) Output() *Output { return it.o }

// Next returns the next line. After the last line it returns false, at
// which point the exit code is available from Output.
func (it *LineIterator) Next(ctx context.Context) (Line, bool, error) {
	select {
	case line, ok := <-it.ch.lines:
		return line, ok, nil
	case <-ctx.Done():
		return Line{}, false, ctx.Err()
	}
}

// Close stops delivery, kills the process if it is still running and
// releases it.
func (it *LineIterator) Close() error {
	it.closeOnce.Do(func() {
		close(it.ch.done)
		it.closeErr = it.o.Kill()
		it.o.Wait()
		if err := it.o.Close(); it.closeErr == nil {
			it.closeErr = err
		}
	})
	return it.closeErr
}

// lineChannel is the Redirector behind a LineIterator. A send blocks until
// the consumer pulls or the iterator is closed.
type lineChannel struct {
	NopAttention
	lines chan Line
	done  chan struct{}
}

func (c *lineChannel) WriteStdout(line string) { c.send(Line{Stream: Stdout, Text: line}) }

func (c *lineChannel) WriteStderr(line string) { c.send(Line{Stream: Stderr, Text: line}) }

func (c *lineChannel) send(l Line) {
	select {
	case c.lines <- l:
	case <-c.done:
	}
}
