package redirect

import (
	"sync"

	"github.com/kbukum/procout/process"
)

// Recorder keeps every line it receives in arrival order. Unlike the
// buffered mode of process.Output, it preserves how stdout and stderr lines
// interleaved.
type Recorder struct {
	mu        sync.Mutex
	lines     []process.Line
	attention int
	closes    int
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) WriteStdout(line string) { r.add(process.Stdout, line) }

func (r *Recorder) WriteStderr(line string) { r.add(process.Stderr, line) }

func (r *Recorder) RequestAttention() {
	r.mu.Lock()
	r.attention++
	r.mu.Unlock()
}

// Close counts the calls. Recording continues after Close.
func (r *Recorder) Close() error {
	r.mu.Lock()
	r.closes++
	r.mu.Unlock()
	return nil
}

func (r *Recorder) add(stream process.Stream, text string) {
	r.mu.Lock()
	r.lines = append(r.lines, process.Line{Stream: stream, Text: text})
	r.mu.Unlock()
}

// Lines returns a copy of every line recorded so far.
func (r *Recorder) Lines() []process.Line {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]process.Line, len(r.lines))
	copy(out, r.lines)
	return out
}

// Stdout returns the text of the stdout lines.
func (r *Recorder) Stdout() []string { return r.texts(process.Stdout) }

// Stderr returns the text of the stderr lines.
func (r *Recorder) Stderr() []string { return r.texts(process.Stderr) }

// Attention returns how many attention requests were received.
func (r *Recorder) Attention() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.attention
}

// Closes returns how many times Close was called.
func (r *Recorder) Closes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closes
}

func (r *Recorder) texts(stream process.Stream) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, l := range r.lines {
		if l.Stream == stream {
			out = append(out, l.Text)
		}
	}
	return out
}
