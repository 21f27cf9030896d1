package process_test

import (
	"sync"

	"github.com/kbukum/procout/process"
)

// recorder is a Redirector that keeps lines per stream and counts Close
// calls.
type recorder struct {
	mu        sync.Mutex
	stdout    []string
	stderr    []string
	attention int
	closes    int
}

func (r *recorder) WriteStdout(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stdout = append(r.stdout, line)
}

func (r *recorder) WriteStderr(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stderr = append(r.stderr, line)
}

func (r *recorder) RequestAttention() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attention++
}

func (r *recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closes++
	return nil
}

func (r *recorder) snapshot() (stdout, stderr []string, closes int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.stdout...), append([]string(nil), r.stderr...), r.closes
}

var _ process.Redirector = (*recorder)(nil)

func shell(script string) process.LaunchSpec {
	return process.LaunchSpec{Path: "sh", Args: []string{"-c", script}, Hidden: true}
}
